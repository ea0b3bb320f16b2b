package engine

import (
	"context"

	"habitflow/internal/storage"
)

// DashboardStats is the read-side summary the front ends render.
type DashboardStats struct {
	Date Date

	TodayTasks     int
	CompletedToday int
	DailyProgress  float64 // 0-100
	CoinsToday     int

	Coins         int
	CurrentStreak int
	LongestStreak int

	Level         int
	LevelProgress float64 // 0-100 toward the next level
	NextLevelAt   int     // cumulative XP threshold of the next level
}

// Stats computes the dashboard summary for the user's current day.
func (s *Service) Stats(ctx context.Context, userID string) (*DashboardStats, error) {
	u, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	today := TodayIn(s.clock, LoadLocation(u.Timezone))

	tasks := storage.NewTaskRepo(s.db)
	ledger := storage.NewCompletionRepo(s.db)

	activeDaily, err := tasks.CountActiveDaily(ctx, userID)
	if err != nil {
		return nil, classifyStorageErr(err)
	}
	doneToday, err := ledger.CountDailyOnDate(ctx, userID, string(today))
	if err != nil {
		return nil, classifyStorageErr(err)
	}
	coinsToday, err := ledger.CoinsOnDate(ctx, userID, string(today))
	if err != nil {
		return nil, classifyStorageErr(err)
	}

	level := LevelForTotalXP(u.ExperiencePoints)
	floor := XPRequiredForLevel(level)
	ceil := XPRequiredForLevel(level + 1)
	levelProgress := 0.0
	if ceil > floor {
		levelProgress = float64(u.ExperiencePoints-floor) / float64(ceil-floor) * 100
	}

	dailyProgress := 0.0
	if activeDaily > 0 {
		dailyProgress = float64(doneToday) / float64(activeDaily) * 100
		if dailyProgress > 100 {
			dailyProgress = 100
		}
	}

	return &DashboardStats{
		Date:           today,
		TodayTasks:     activeDaily,
		CompletedToday: doneToday,
		DailyProgress:  dailyProgress,
		CoinsToday:     coinsToday,
		Coins:          u.Coins,
		CurrentStreak:  u.CurrentStreak,
		LongestStreak:  u.LongestStreak,
		Level:          level,
		LevelProgress:  levelProgress,
		NextLevelAt:    ceil,
	}, nil
}

// History returns the user's completion records between from and to
// inclusive, newest first.
func (s *Service) History(ctx context.Context, userID string, from, to Date) ([]storage.Completion, error) {
	ledger := storage.NewCompletionRepo(s.db)
	out, err := ledger.ListByUserRange(ctx, userID, string(from), string(to))
	if err != nil {
		return nil, classifyStorageErr(err)
	}
	return out, nil
}

// CompletedToday reports which of the user's tasks already have a ledger
// entry for the given date. Used by the board and the bot task list.
func (s *Service) CompletedToday(ctx context.Context, userID string, date Date) (map[string]bool, error) {
	recs, err := s.History(ctx, userID, date, date)
	if err != nil {
		return nil, err
	}
	done := make(map[string]bool, len(recs))
	for _, rec := range recs {
		done[rec.TaskID] = true
	}
	return done, nil
}

// Achievements returns the user's progress rows for the whole catalog, with
// rows not yet persisted shown at zero progress.
func (s *Service) Achievements(ctx context.Context, userID string) ([]AchievementProgress, error) {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	repo := storage.NewAchievementRepo(s.db)
	rows, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, classifyStorageErr(err)
	}

	byType := make(map[AchievementType]AchievementProgress, len(rows))
	for _, p := range toProgress(rows) {
		byType[p.Type] = p
	}
	out := make([]AchievementProgress, 0, len(Catalog()))
	for _, def := range Catalog() {
		p, ok := byType[def.Type]
		if !ok {
			p = AchievementProgress{Type: def.Type, Target: def.Target}
		}
		out = append(out, p)
	}
	return out, nil
}
