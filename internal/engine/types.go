package engine

import (
	"fmt"
	"strings"
)

type Category string

const (
	CategorySport    Category = "sport"
	CategoryHealth   Category = "health"
	CategoryWork     Category = "work"
	CategoryLearning Category = "learning"
	CategoryRest     Category = "rest"
	CategoryPersonal Category = "personal"
)

func (c Category) IsValid() bool {
	switch c {
	case CategorySport, CategoryHealth, CategoryWork, CategoryLearning, CategoryRest, CategoryPersonal:
		return true
	default:
		return false
	}
}

// DefaultCategory is used when user input is missing/invalid.
const DefaultCategory Category = CategoryPersonal

func ParseCategory(input string) (Category, error) {
	c := Category(strings.TrimSpace(strings.ToLower(input)))
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %q", input)
	}
	return c, nil
}

func Categories() []Category {
	return []Category{CategorySport, CategoryHealth, CategoryWork, CategoryLearning, CategoryRest, CategoryPersonal}
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

func ParsePriority(input string) (Priority, error) {
	p := Priority(strings.TrimSpace(strings.ToLower(input)))
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority: %q", input)
	}
	return p, nil
}

type Recurrence string

const (
	RecurrenceNone   Recurrence = "none"
	RecurrenceDaily  Recurrence = "daily"
	RecurrenceWeekly Recurrence = "weekly"
	RecurrenceCustom Recurrence = "custom"
)

func (r Recurrence) IsValid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceCustom:
		return true
	default:
		return false
	}
}

func ParseRecurrence(input string) (Recurrence, error) {
	r := Recurrence(strings.TrimSpace(strings.ToLower(input)))
	if !r.IsValid() {
		return "", fmt.Errorf("invalid recurrence: %q", input)
	}
	return r, nil
}
