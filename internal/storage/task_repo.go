package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type TaskRepo struct {
	q Querier
}

func NewTaskRepo(q Querier) *TaskRepo {
	return &TaskRepo{q: q}
}

const taskColumns = `id, user_id, title, category, priority, recurrence, coin_value, is_active, created_at`

func (r *TaskRepo) Insert(ctx context.Context, t *Task) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO tasks (id, user_id, title, category, priority, recurrence, coin_value, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.UserID, t.Title, t.Category, t.Priority, t.Recurrence, t.CoinValue, boolToInt(t.IsActive), t.CreatedAt)
	if err != nil {
		return fmt.Errorf("task insert: %w", err)
	}
	return nil
}

func (r *TaskRepo) Get(ctx context.Context, id string) (*Task, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TaskRepo) ListByUser(ctx context.Context, userID string) ([]Task, error) {
	return r.list(ctx, `SELECT `+taskColumns+` FROM tasks WHERE user_id = ? ORDER BY created_at ASC, id ASC`, userID)
}

func (r *TaskRepo) ListActiveByUser(ctx context.Context, userID string) ([]Task, error) {
	return r.list(ctx, `SELECT `+taskColumns+` FROM tasks WHERE user_id = ? AND is_active = 1 ORDER BY created_at ASC, id ASC`, userID)
}

// CountActiveDaily counts the user's active daily-recurring tasks; the
// denominator of the daily-clear bonus check.
func (r *TaskRepo) CountActiveDaily(ctx context.Context, userID string) (int, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM tasks
		WHERE user_id = ? AND is_active = 1 AND recurrence = 'daily'
	`, userID)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("task count active daily: %w", err)
	}
	return n, nil
}

// SetActive flips the soft-delete flag. Tasks are never hard-deleted while
// the ledger references them.
func (r *TaskRepo) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.q.ExecContext(ctx, `UPDATE tasks SET is_active = ? WHERE id = ?`, boolToInt(active), id)
	if err != nil {
		return fmt.Errorf("task set active: %w", err)
	}
	return nil
}

func (r *TaskRepo) list(ctx context.Context, query string, args ...any) ([]Task, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("task list: %w", err)
	}
	defer rows.Close()

	var out []Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("task list rows: %w", err)
	}
	return out, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (*Task, error) {
	var (
		t        Task
		isActive int
	)
	if err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Category, &t.Priority, &t.Recurrence,
		&t.CoinValue, &isActive, &t.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("task scan: %w", err)
	}
	t.IsActive = isActive != 0
	return &t, nil
}
