package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"habitflow/internal/storage"

	"github.com/google/uuid"
)

// CompleteResult is the authoritative outcome of one completion. Clients
// reflect it as-is; there are no optimistic client-side updates to reconcile.
type CompleteResult struct {
	TaskID         string
	CompletionDate Date

	CoinsEarned     int
	StreakBonus     int
	CompletionBonus int

	NewStreak int
	LevelUp   bool
	NewLevel  int

	UnlockedAchievements []AchievementDef
}

func (r *CompleteResult) TotalCoins() int {
	return r.CoinsEarned + r.StreakBonus + r.CompletionBonus
}

// CompleteTaskToday completes the task for the clock's current date in the
// user's configured time zone.
func (s *Service) CompleteTaskToday(ctx context.Context, userID, taskID string) (*CompleteResult, error) {
	return s.CompleteTask(ctx, userID, taskID, "")
}

// CompleteTask records one completion of taskID by userID on asOf. An empty
// asOf means "today in the user's time zone"; an explicit date supports
// backfill and tests.
//
// The whole operation is one transaction: the ledger reservation, the user
// progression update, and any achievement unlocks commit or roll back
// together. Exactly one concurrent caller per (task, date) wins the
// reservation; the rest observe ErrAlreadyCompleted.
func (s *Service) CompleteTask(ctx context.Context, userID, taskID string, asOf Date) (*CompleteResult, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	var res *CompleteResult
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		res, err = s.completeTaskTx(ctx, tx, userID, taskID, asOf)
		return err
	})
	if err != nil {
		return nil, classifyStorageErr(err)
	}
	return res, nil
}

func (s *Service) completeTaskTx(ctx context.Context, tx *sql.Tx, userID, taskID string, asOf Date) (*CompleteResult, error) {
	users := storage.NewUserRepo(tx)
	tasks := storage.NewTaskRepo(tx)
	ledger := storage.NewCompletionRepo(tx)
	achievements := storage.NewAchievementRepo(tx)

	task, err := tasks.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	// A task owned by someone else is reported as not found rather than
	// leaking its existence.
	if task == nil || task.UserID != userID {
		return nil, fmt.Errorf("task %s: %w", taskID, ErrTaskNotFound)
	}
	if !task.IsActive {
		return nil, fmt.Errorf("task %s: %w", taskID, ErrTaskInactive)
	}

	u, err := users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("user %s: %w", userID, ErrUserNotFound)
	}

	if asOf == "" {
		asOf = TodayIn(s.clock, LoadLocation(u.Timezone))
	}
	now := s.clock.Now().UTC()

	// Step 1: reserve (task_id, date). Losing the race here is the normal
	// AlreadyCompleted outcome, not a failure.
	rec := storage.Completion{
		ID:             uuid.NewString(),
		TaskID:         taskID,
		UserID:         userID,
		CompletionDate: string(asOf),
		CompletedAt:    now,
	}
	if err := ledger.Reserve(ctx, &rec); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, fmt.Errorf("task %s on %s: %w", taskID, asOf, ErrAlreadyCompleted)
		}
		return nil, err
	}

	// Steps 3-5: pure computations on the snapshot.
	streak := Streak{Current: u.CurrentStreak, Longest: u.LongestStreak}
	if u.LastCompletionDate != nil {
		streak.LastDate = Date(*u.LastCompletionDate)
	}
	streak = streak.Advance(asOf)

	dailyClear, err := s.dailyClear(ctx, tasks, ledger, task, asOf)
	if err != nil {
		return nil, err
	}
	reward := CalculateReward(s.cfg, task.CoinValue, streak.Current, dailyClear)

	levelBefore := u.Level
	u.Coins += reward.Total()
	u.ExperiencePoints += reward.Total()
	u.Level = LevelForTotalXP(u.ExperiencePoints)
	u.CurrentStreak = streak.Current
	u.LongestStreak = streak.Longest
	last := string(streak.LastDate)
	u.LastCompletionDate = &last

	// Step 7: achievements see the post-completion state.
	facts, err := s.gatherFacts(ctx, tasks, ledger, u.ID, asOf, streak.Current)
	if err != nil {
		return nil, err
	}
	existing, err := achievements.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	updated, unlocked := EvaluateAchievements(toProgress(existing), facts, now)
	for _, def := range unlocked {
		u.Coins += def.CoinReward
		u.ExperiencePoints += def.CoinReward
	}
	u.Level = LevelForTotalXP(u.ExperiencePoints)

	// Step 6: persist record amounts and the user row as one unit with the
	// reservation (same transaction).
	if err := ledger.SetReward(ctx, rec.ID, reward.CoinsEarned, reward.StreakBonus, reward.CompletionBonus); err != nil {
		return nil, err
	}
	if err := users.UpdateProgress(ctx, u); err != nil {
		return nil, err
	}
	for i := range updated {
		row := toStored(userID, updated[i])
		if err := achievements.Upsert(ctx, &row); err != nil {
			return nil, err
		}
	}

	return &CompleteResult{
		TaskID:               taskID,
		CompletionDate:       asOf,
		CoinsEarned:          reward.CoinsEarned,
		StreakBonus:          reward.StreakBonus,
		CompletionBonus:      reward.CompletionBonus,
		NewStreak:            streak.Current,
		LevelUp:              u.Level > levelBefore,
		NewLevel:             u.Level,
		UnlockedAchievements: unlocked,
	}, nil
}

// dailyClear reports whether this completion makes every active daily task
// completed for asOf. Called after the reservation, so the current completion
// counts. Only a daily task can trigger the bonus: a non-daily completion
// after the board is already clear must not grant it a second time.
func (s *Service) dailyClear(ctx context.Context, tasks *storage.TaskRepo, ledger *storage.CompletionRepo, task *storage.Task, asOf Date) (bool, error) {
	if task.Recurrence != string(RecurrenceDaily) {
		return false, nil
	}
	activeDaily, err := tasks.CountActiveDaily(ctx, task.UserID)
	if err != nil {
		return false, err
	}
	if activeDaily == 0 {
		return false, nil
	}
	done, err := ledger.CountDailyOnDate(ctx, task.UserID, string(asOf))
	if err != nil {
		return false, err
	}
	return done >= activeDaily, nil
}

func (s *Service) gatherFacts(ctx context.Context, tasks *storage.TaskRepo, ledger *storage.CompletionRepo, userID string, asOf Date, streak int) (ProgressFacts, error) {
	total, err := ledger.CountByUser(ctx, userID)
	if err != nil {
		return ProgressFacts{}, err
	}
	topCategory, err := ledger.TopCategoryCount(ctx, userID)
	if err != nil {
		return ProgressFacts{}, err
	}
	run, err := s.perfectDayRun(ctx, tasks, ledger, userID, asOf)
	if err != nil {
		return ProgressFacts{}, err
	}
	return ProgressFacts{
		CurrentStreak:    streak,
		TotalCompletions: total,
		TopCategoryCount: topCategory,
		PerfectDayRun:    run,
	}, nil
}

// perfectDayRun counts consecutive days ending at asOf on which every active
// daily task was completed. Capped at the perfect_week target; older history
// cannot change the unlock decision.
func (s *Service) perfectDayRun(ctx context.Context, tasks *storage.TaskRepo, ledger *storage.CompletionRepo, userID string, asOf Date) (int, error) {
	def, ok := CatalogDef(AchievementPerfectWeek)
	if !ok {
		return 0, nil
	}

	activeDaily, err := tasks.CountActiveDaily(ctx, userID)
	if err != nil {
		return 0, err
	}
	if activeDaily == 0 {
		return 0, nil
	}

	run := 0
	for day := asOf; run < def.Target; day = day.AddDays(-1) {
		done, err := ledger.CountDailyOnDate(ctx, userID, string(day))
		if err != nil {
			return 0, err
		}
		if done < activeDaily {
			break
		}
		run++
	}
	return run, nil
}

func toProgress(rows []storage.Achievement) []AchievementProgress {
	out := make([]AchievementProgress, 0, len(rows))
	for _, row := range rows {
		out = append(out, AchievementProgress{
			Type:       AchievementType(row.Type),
			Progress:   row.Progress,
			Target:     row.Target,
			Unlocked:   row.Unlocked,
			UnlockedAt: row.UnlockedAt,
		})
	}
	return out
}

func toStored(userID string, p AchievementProgress) storage.Achievement {
	return storage.Achievement{
		UserID:     userID,
		Type:       string(p.Type),
		Progress:   p.Progress,
		Target:     p.Target,
		Unlocked:   p.Unlocked,
		UnlockedAt: p.UnlockedAt,
	}
}

// classifyStorageErr maps storage failures onto the engine taxonomy. Engine
// sentinels pass through untouched.
func classifyStorageErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrTaskNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrTaskInactive),
		errors.Is(err, ErrAlreadyCompleted):
		return err
	case storage.IsBusy(err):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	default:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}
