package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type UserRepo struct {
	q Querier
}

func NewUserRepo(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, telegram_id, name, timezone, coins, experience_points, level,
	current_streak, longest_streak, last_completion_date, created_at`

func (r *UserRepo) Insert(ctx context.Context, u *User) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO users (id, telegram_id, name, timezone, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, u.ID, u.TelegramID, u.Name, u.Timezone, u.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("user insert: %w", ErrDuplicate)
		}
		return fmt.Errorf("user insert: %w", err)
	}
	return nil
}

func (r *UserRepo) Get(ctx context.Context, id string) (*User, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *UserRepo) GetByTelegramID(ctx context.Context, telegramID int64) (*User, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE telegram_id = ?`, telegramID)
	return scanUser(row)
}

func (r *UserRepo) GetByName(ctx context.Context, name string) (*User, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE name = ? LIMIT 1`, name)
	return scanUser(row)
}

// UpdateProgress writes the progression fields mutated by the completion
// engine: coins, XP, level, and the streak triple.
func (r *UserRepo) UpdateProgress(ctx context.Context, u *User) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE users
		SET coins = ?, experience_points = ?, level = ?,
			current_streak = ?, longest_streak = ?, last_completion_date = ?
		WHERE id = ?
	`, u.Coins, u.ExperiencePoints, u.Level, u.CurrentStreak, u.LongestStreak, u.LastCompletionDate, u.ID)
	if err != nil {
		return fmt.Errorf("user update progress: %w", err)
	}
	return nil
}

func scanUser(row *sql.Row) (*User, error) {
	var (
		u        User
		tgID     sql.NullInt64
		lastDate sql.NullString
	)
	if err := row.Scan(
		&u.ID, &tgID, &u.Name, &u.Timezone, &u.Coins, &u.ExperiencePoints, &u.Level,
		&u.CurrentStreak, &u.LongestStreak, &lastDate, &u.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("user scan: %w", err)
	}
	if tgID.Valid {
		v := tgID.Int64
		u.TelegramID = &v
	}
	if lastDate.Valid {
		v := lastDate.String
		u.LastCompletionDate = &v
	}
	return &u, nil
}
