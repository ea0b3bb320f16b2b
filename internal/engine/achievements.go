package engine

import "time"

// AchievementProgress is the per-user state toward one catalog entry.
// Unlocking is a one-way transition: once Unlocked is true it stays true and
// UnlockedAt is never overwritten.
type AchievementProgress struct {
	Type       AchievementType
	Progress   int
	Target     int
	Unlocked   bool
	UnlockedAt *time.Time
}

// ProgressFacts is the snapshot the evaluator reads. Gathered by the
// completion engine from the updated user state and the ledger.
type ProgressFacts struct {
	CurrentStreak    int
	TotalCompletions int
	TopCategoryCount int
	PerfectDayRun    int // consecutive all-daily-tasks-done days ending today
}

func progressFor(def AchievementDef, facts ProgressFacts) int {
	switch def.Type {
	case AchievementFirstTask, AchievementTaskChampion:
		return facts.TotalCompletions
	case AchievementWeekWarrior, AchievementMonthMaster:
		return facts.CurrentStreak
	case AchievementPerfectWeek:
		return facts.PerfectDayRun
	case AchievementCategoryExpert:
		return facts.TopCategoryCount
	default:
		return 0
	}
}

// EvaluateAchievements recomputes progress for the whole catalog and returns
// the updated rows plus the definitions that newly unlocked. Rows missing
// from existing are created lazily. Idempotent: already-unlocked rows are
// never re-unlocked or regressed, and a row whose progress did not change is
// returned as-is.
func EvaluateAchievements(existing []AchievementProgress, facts ProgressFacts, now time.Time) (updated []AchievementProgress, unlocked []AchievementDef) {
	byType := make(map[AchievementType]AchievementProgress, len(existing))
	for _, row := range existing {
		byType[row.Type] = row
	}

	for _, def := range Catalog() {
		row, ok := byType[def.Type]
		if !ok {
			row = AchievementProgress{Type: def.Type, Target: def.Target}
		}
		if row.Unlocked {
			updated = append(updated, row)
			continue
		}

		progress := progressFor(def, facts)
		// Streak-style progress can regress (a broken streak); keep the high
		// water mark so progress rows stay monotone.
		if progress > row.Progress {
			row.Progress = progress
		}
		row.Target = def.Target

		if row.Progress >= def.Target {
			row.Unlocked = true
			t := now
			row.UnlockedAt = &t
			unlocked = append(unlocked, def)
		}
		updated = append(updated, row)
	}
	return updated, unlocked
}
