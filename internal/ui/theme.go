package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HabitFlow theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconSparkle = "✨"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconCoin    = "🪙"
	IconFire    = "🔥"
	IconBolt    = "⚡"
	IconLock    = "🔒"
	IconWarn    = "⚠️"
	IconError   = "🧨"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// CategoryIcon mirrors the category set of the tracker.
func CategoryIcon(category string) string {
	switch category {
	case "sport":
		return "💪"
	case "health":
		return "❤️"
	case "work":
		return "💼"
	case "learning":
		return "📚"
	case "rest":
		return "🧘"
	case "personal":
		return "⭐"
	default:
		return "📌"
	}
}

func PriorityText(priority string) string {
	switch priority {
	case "high":
		return Bad.Render("high")
	case "medium":
		return Warn.Render("medium")
	case "low":
		return Good.Render("low")
	default:
		return Muted.Render(priority)
	}
}
