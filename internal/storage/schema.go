package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			telegram_id INTEGER UNIQUE,
			name TEXT NOT NULL,
			timezone TEXT NOT NULL DEFAULT 'UTC',

			coins INTEGER NOT NULL DEFAULT 0,
			experience_points INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			current_streak INTEGER NOT NULL DEFAULT 0,
			longest_streak INTEGER NOT NULL DEFAULT 0,
			last_completion_date TEXT,

			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,

			category TEXT NOT NULL,
			priority TEXT NOT NULL,
			recurrence TEXT NOT NULL DEFAULT 'daily',
			coin_value INTEGER NOT NULL,

			is_active INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,

			FOREIGN KEY(user_id) REFERENCES users(id)
		);`,
		// The UNIQUE index on (task_id, completion_date) is the engine's
		// reservation: concurrent completions of the same task on the same day
		// resolve to exactly one inserted row.
		`CREATE TABLE IF NOT EXISTS completions (
			id TEXT PRIMARY KEY,
			task_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			completion_date TEXT NOT NULL,

			coins_earned INTEGER NOT NULL DEFAULT 0,
			streak_bonus INTEGER NOT NULL DEFAULT 0,
			completion_bonus INTEGER NOT NULL DEFAULT 0,
			completed_at DATETIME NOT NULL,

			FOREIGN KEY(task_id) REFERENCES tasks(id),
			FOREIGN KEY(user_id) REFERENCES users(id),
			UNIQUE(task_id, completion_date)
		);`,
		`CREATE TABLE IF NOT EXISTS achievements (
			user_id TEXT NOT NULL,
			achievement_type TEXT NOT NULL,
			progress_value INTEGER NOT NULL DEFAULT 0,
			target_value INTEGER NOT NULL,
			is_unlocked INTEGER NOT NULL DEFAULT 0,
			unlocked_at DATETIME,

			PRIMARY KEY(user_id, achievement_type),
			FOREIGN KEY(user_id) REFERENCES users(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_completions_user_date ON completions(user_id, completion_date);`,
		`CREATE INDEX IF NOT EXISTS idx_completions_task_id ON completions(task_id);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
