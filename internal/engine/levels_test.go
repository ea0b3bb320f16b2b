package engine

import (
	"testing"
	"time"
)

func TestXPBoundaries(t *testing.T) {
	if got := XPRequiredForLevel(1); got != 0 {
		t.Fatalf("XPRequiredForLevel(1)=%d, want 0", got)
	}
	if got := XPRequiredForLevel(2); got != 100 {
		t.Fatalf("XPRequiredForLevel(2)=%d, want 100", got)
	}
	if got := XPRequiredForLevel(3); got != 300 {
		t.Fatalf("XPRequiredForLevel(3)=%d, want 300", got)
	}
	if got := XPRequiredForLevel(4); got != 600 {
		t.Fatalf("XPRequiredForLevel(4)=%d, want 600", got)
	}

	// Thresholds are boundary-inclusive.
	if got := LevelForTotalXP(99); got != 1 {
		t.Fatalf("LevelForTotalXP(99)=%d, want 1", got)
	}
	if got := LevelForTotalXP(100); got != 2 {
		t.Fatalf("LevelForTotalXP(100)=%d, want 2", got)
	}
	if got := LevelForTotalXP(299); got != 2 {
		t.Fatalf("LevelForTotalXP(299)=%d, want 2", got)
	}
	if got := LevelForTotalXP(300); got != 3 {
		t.Fatalf("LevelForTotalXP(300)=%d, want 3", got)
	}
	if got := LevelForTotalXP(0); got != 1 {
		t.Fatalf("LevelForTotalXP(0)=%d, want 1", got)
	}
}

func TestLevelMonotone(t *testing.T) {
	prev := 0
	for xp := 0; xp <= 20_000; xp += 37 {
		lvl := LevelForTotalXP(xp)
		if lvl < prev {
			t.Fatalf("level decreased at %d XP: %d → %d", xp, prev, lvl)
		}
		if XPRequiredForLevel(lvl) > xp {
			t.Fatalf("level %d at %d XP but threshold is %d", lvl, xp, XPRequiredForLevel(lvl))
		}
		if XPRequiredForLevel(lvl+1) <= xp {
			t.Fatalf("level %d at %d XP but level %d threshold %d already met", lvl, xp, lvl+1, XPRequiredForLevel(lvl+1))
		}
		prev = lvl
	}
}

func TestEvaluateAchievementsUnlock(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	facts := ProgressFacts{CurrentStreak: 7, TotalCompletions: 12, TopCategoryCount: 4, PerfectDayRun: 2}

	updated, unlocked := EvaluateAchievements(nil, facts, now)
	if len(updated) != len(Catalog()) {
		t.Fatalf("updated %d rows, want full catalog %d", len(updated), len(Catalog()))
	}

	wantUnlocked := map[AchievementType]bool{
		AchievementFirstTask:   true,
		AchievementWeekWarrior: true,
	}
	gotUnlocked := map[AchievementType]bool{}
	for _, def := range unlocked {
		gotUnlocked[def.Type] = true
	}
	for typ, want := range wantUnlocked {
		if gotUnlocked[typ] != want {
			t.Fatalf("unlocked[%s]=%v, want %v (got %v)", typ, gotUnlocked[typ], want, unlocked)
		}
	}
	if gotUnlocked[AchievementMonthMaster] {
		t.Fatalf("month_master unlocked at streak 7")
	}
}

func TestEvaluateAchievementsOneWay(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	facts := ProgressFacts{CurrentStreak: 7, TotalCompletions: 1}
	rows, unlocked := EvaluateAchievements(nil, facts, now)
	if len(unlocked) == 0 {
		t.Fatalf("expected unlocks on first evaluation")
	}

	// Streak broke; nothing may re-lock and unchanged rows stay unchanged.
	later := now.Add(48 * time.Hour)
	brokenFacts := ProgressFacts{CurrentStreak: 1, TotalCompletions: 1}
	rows2, unlocked2 := EvaluateAchievements(rows, brokenFacts, later)
	if len(unlocked2) != 0 {
		t.Fatalf("re-evaluation unlocked again: %v", unlocked2)
	}
	for i, row := range rows2 {
		if rows[i].Unlocked && !row.Unlocked {
			t.Fatalf("%s re-locked", row.Type)
		}
		if rows[i].Unlocked && row.UnlockedAt != nil && !row.UnlockedAt.Equal(*rows[i].UnlockedAt) {
			t.Fatalf("%s unlocked_at changed on re-evaluation", row.Type)
		}
		if row.Progress < rows[i].Progress {
			t.Fatalf("%s progress regressed %d → %d", row.Type, rows[i].Progress, row.Progress)
		}
	}
}
