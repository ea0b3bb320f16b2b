package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// CompletionRepo is the append-only ledger. Reserve is the only insert path
// and SetReward the only update; nothing ever deletes a row.
type CompletionRepo struct {
	q Querier
}

func NewCompletionRepo(q Querier) *CompletionRepo {
	return &CompletionRepo{q: q}
}

const completionColumns = `id, task_id, user_id, completion_date, coins_earned, streak_bonus, completion_bonus, completed_at`

// Reserve atomically claims (task_id, completion_date). Exactly one caller
// wins; the rest get ErrDuplicate from the unique index. Reward amounts start
// at zero and are filled in by SetReward within the same transaction.
func (r *CompletionRepo) Reserve(ctx context.Context, c *Completion) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO completions (id, task_id, user_id, completion_date, completed_at)
		VALUES (?, ?, ?, ?, ?)
	`, c.ID, c.TaskID, c.UserID, c.CompletionDate, c.CompletedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("completion reserve %s@%s: %w", c.TaskID, c.CompletionDate, ErrDuplicate)
		}
		return fmt.Errorf("completion reserve: %w", err)
	}
	return nil
}

func (r *CompletionRepo) SetReward(ctx context.Context, id string, coinsEarned, streakBonus, completionBonus int) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE completions
		SET coins_earned = ?, streak_bonus = ?, completion_bonus = ?
		WHERE id = ?
	`, coinsEarned, streakBonus, completionBonus, id)
	if err != nil {
		return fmt.Errorf("completion set reward: %w", err)
	}
	return nil
}

func (r *CompletionRepo) GetByTaskAndDate(ctx context.Context, taskID, date string) (*Completion, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT `+completionColumns+`
		FROM completions
		WHERE task_id = ? AND completion_date = ?
	`, taskID, date)
	return scanCompletion(row)
}

func (r *CompletionRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM completions WHERE user_id = ?`, userID)
}

// CountDailyOnDate counts distinct active daily tasks the user completed on
// the given date; the numerator of the daily-clear bonus check.
func (r *CompletionRepo) CountDailyOnDate(ctx context.Context, userID, date string) (int, error) {
	return r.count(ctx, `
		SELECT COUNT(DISTINCT c.task_id)
		FROM completions c
		JOIN tasks t ON t.id = c.task_id
		WHERE c.user_id = ? AND c.completion_date = ?
			AND t.is_active = 1 AND t.recurrence = 'daily'
	`, userID, date)
}

// TopCategoryCount returns the user's completion count in their most
// completed category.
func (r *CompletionRepo) TopCategoryCount(ctx context.Context, userID string) (int, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(n), 0)
		FROM (
			SELECT COUNT(*) AS n
			FROM completions c
			JOIN tasks t ON t.id = c.task_id
			WHERE c.user_id = ?
			GROUP BY t.category
		)
	`, userID)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("completion top category: %w", err)
	}
	return n, nil
}

// CoinsOnDate sums all coins granted to the user on one calendar date.
func (r *CompletionRepo) CoinsOnDate(ctx context.Context, userID, date string) (int, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(coins_earned + streak_bonus + completion_bonus), 0)
		FROM completions
		WHERE user_id = ? AND completion_date = ?
	`, userID, date)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("completion coins on date: %w", err)
	}
	return n, nil
}

// ListByUserRange returns the user's history between from and to inclusive,
// newest first.
func (r *CompletionRepo) ListByUserRange(ctx context.Context, userID, from, to string) ([]Completion, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+completionColumns+`
		FROM completions
		WHERE user_id = ? AND completion_date >= ? AND completion_date <= ?
		ORDER BY completed_at DESC
	`, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("completion list range: %w", err)
	}
	defer rows.Close()

	var out []Completion
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("completion list rows: %w", err)
	}
	return out, nil
}

func (r *CompletionRepo) count(ctx context.Context, query string, args ...any) (int, error) {
	row := r.q.QueryRowContext(ctx, query, args...)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("completion count: %w", err)
	}
	return n, nil
}

func scanCompletion(row scanner) (*Completion, error) {
	var c Completion
	if err := row.Scan(
		&c.ID, &c.TaskID, &c.UserID, &c.CompletionDate,
		&c.CoinsEarned, &c.StreakBonus, &c.CompletionBonus, &c.CompletedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("completion scan: %w", err)
	}
	return &c, nil
}
