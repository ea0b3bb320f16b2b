package storage

import "time"

type User struct {
	ID                 string
	TelegramID         *int64
	Name               string
	Timezone           string
	Coins              int
	ExperiencePoints   int
	Level              int
	CurrentStreak      int
	LongestStreak      int
	LastCompletionDate *string // YYYY-MM-DD, nil before the first completion
	CreatedAt          time.Time
}

type Task struct {
	ID         string
	UserID     string
	Title      string
	Category   string
	Priority   string
	Recurrence string
	CoinValue  int // frozen at creation
	IsActive   bool
	CreatedAt  time.Time
}

// Completion is one row of the append-only ledger. At most one row exists per
// (task_id, completion_date); rows are never mutated after the reward amounts
// are filled in, and never deleted.
type Completion struct {
	ID              string
	TaskID          string
	UserID          string
	CompletionDate  string // YYYY-MM-DD
	CoinsEarned     int
	StreakBonus     int
	CompletionBonus int
	CompletedAt     time.Time
}

type Achievement struct {
	UserID     string
	Type       string
	Progress   int
	Target     int
	Unlocked   bool
	UnlockedAt *time.Time
}
