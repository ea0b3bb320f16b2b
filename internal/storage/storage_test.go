package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestDB(t *testing.T) (*UserRepo, *TaskRepo, *CompletionRepo, *AchievementRepo) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	db, err := Open(ctx, filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewUserRepo(db), NewTaskRepo(db), NewCompletionRepo(db), NewAchievementRepo(db)
}

func seedUserAndTask(t *testing.T, users *UserRepo, tasks *TaskRepo) (*User, *Task) {
	t.Helper()
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	u := &User{ID: "u1", Name: "alice", Timezone: "UTC", Level: 1, CreatedAt: now}
	if err := users.Insert(ctx, u); err != nil {
		t.Fatalf("insert user: %v", err)
	}
	task := &Task{
		ID: "t1", UserID: u.ID, Title: "run",
		Category: "sport", Priority: "high", Recurrence: "daily",
		CoinValue: 18, IsActive: true, CreatedAt: now,
	}
	if err := tasks.Insert(ctx, task); err != nil {
		t.Fatalf("insert task: %v", err)
	}
	return u, task
}

func TestLedgerReserveConflict(t *testing.T) {
	users, tasks, ledger, _ := newTestDB(t)
	ctx := context.Background()
	u, task := seedUserAndTask(t, users, tasks)

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	first := &Completion{ID: "c1", TaskID: task.ID, UserID: u.ID, CompletionDate: "2025-03-10", CompletedAt: now}
	if err := ledger.Reserve(ctx, first); err != nil {
		t.Fatalf("first reserve: %v", err)
	}

	dup := &Completion{ID: "c2", TaskID: task.ID, UserID: u.ID, CompletionDate: "2025-03-10", CompletedAt: now}
	err := ledger.Reserve(ctx, dup)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("second reserve: err=%v, want ErrDuplicate", err)
	}

	// A different date is a fresh key.
	next := &Completion{ID: "c3", TaskID: task.ID, UserID: u.ID, CompletionDate: "2025-03-11", CompletedAt: now}
	if err := ledger.Reserve(ctx, next); err != nil {
		t.Fatalf("next-day reserve: %v", err)
	}
}

func TestLedgerSetRewardAndQueries(t *testing.T) {
	users, tasks, ledger, _ := newTestDB(t)
	ctx := context.Background()
	u, task := seedUserAndTask(t, users, tasks)

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	rec := &Completion{ID: "c1", TaskID: task.ID, UserID: u.ID, CompletionDate: "2025-03-10", CompletedAt: now}
	if err := ledger.Reserve(ctx, rec); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if err := ledger.SetReward(ctx, rec.ID, 18, 5, 10); err != nil {
		t.Fatalf("set reward: %v", err)
	}

	got, err := ledger.GetByTaskAndDate(ctx, task.ID, "2025-03-10")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.CoinsEarned != 18 || got.StreakBonus != 5 || got.CompletionBonus != 10 {
		t.Fatalf("record=%+v, want 18/5/10", got)
	}

	coins, err := ledger.CoinsOnDate(ctx, u.ID, "2025-03-10")
	if err != nil {
		t.Fatalf("coins on date: %v", err)
	}
	if coins != 33 {
		t.Fatalf("coins on date=%d, want 33", coins)
	}

	top, err := ledger.TopCategoryCount(ctx, u.ID)
	if err != nil {
		t.Fatalf("top category: %v", err)
	}
	if top != 1 {
		t.Fatalf("top category count=%d, want 1", top)
	}

	n, err := ledger.CountDailyOnDate(ctx, u.ID, "2025-03-10")
	if err != nil {
		t.Fatalf("count daily: %v", err)
	}
	if n != 1 {
		t.Fatalf("daily done=%d, want 1", n)
	}
}

func TestAchievementUpsertOneWay(t *testing.T) {
	users, _, _, achievements := newTestDB(t)
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	u := &User{ID: "u1", Name: "alice", Timezone: "UTC", Level: 1, CreatedAt: now}
	if err := users.Insert(ctx, u); err != nil {
		t.Fatalf("insert user: %v", err)
	}

	unlockedAt := now
	row := &Achievement{UserID: u.ID, Type: "week_warrior", Progress: 7, Target: 7, Unlocked: true, UnlockedAt: &unlockedAt}
	if err := achievements.Upsert(ctx, row); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	// A later write without an unlock cannot regress the flag or the timestamp.
	later := &Achievement{UserID: u.ID, Type: "week_warrior", Progress: 7, Target: 7, Unlocked: false, UnlockedAt: nil}
	if err := achievements.Upsert(ctx, later); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	rows, err := achievements.ListByUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows=%d, want 1", len(rows))
	}
	if !rows[0].Unlocked {
		t.Fatalf("unlock regressed")
	}
	if rows[0].UnlockedAt == nil {
		t.Fatalf("unlocked_at lost")
	}
}

func TestUserRoundtrip(t *testing.T) {
	users, _, _, _ := newTestDB(t)
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	tg := int64(42)
	u := &User{ID: "u1", TelegramID: &tg, Name: "alice", Timezone: "Europe/Berlin", Level: 1, CreatedAt: now}
	if err := users.Insert(ctx, u); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := users.GetByTelegramID(ctx, tg)
	if err != nil {
		t.Fatalf("get by telegram: %v", err)
	}
	if got == nil || got.ID != "u1" || got.Timezone != "Europe/Berlin" {
		t.Fatalf("got=%+v", got)
	}

	last := "2025-03-10"
	got.Coins = 120
	got.ExperiencePoints = 120
	got.Level = 2
	got.CurrentStreak = 3
	got.LongestStreak = 5
	got.LastCompletionDate = &last
	if err := users.UpdateProgress(ctx, got); err != nil {
		t.Fatalf("update progress: %v", err)
	}

	again, err := users.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if again.Coins != 120 || again.Level != 2 || again.CurrentStreak != 3 || again.LongestStreak != 5 {
		t.Fatalf("progress not persisted: %+v", again)
	}
	if again.LastCompletionDate == nil || *again.LastCompletionDate != last {
		t.Fatalf("last completion date=%v, want %s", again.LastCompletionDate, last)
	}

	missing, err := users.Get(ctx, "nope")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing user")
	}
}
