package storage

import (
	"context"
	"fmt"
)

type AchievementRepo struct {
	q Querier
}

func NewAchievementRepo(q Querier) *AchievementRepo {
	return &AchievementRepo{q: q}
}

func (r *AchievementRepo) ListByUser(ctx context.Context, userID string) ([]Achievement, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT user_id, achievement_type, progress_value, target_value, is_unlocked, unlocked_at
		FROM achievements
		WHERE user_id = ?
		ORDER BY achievement_type ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("achievement list: %w", err)
	}
	defer rows.Close()

	var out []Achievement
	for rows.Next() {
		var (
			a        Achievement
			unlocked int
		)
		if err := rows.Scan(&a.UserID, &a.Type, &a.Progress, &a.Target, &unlocked, &a.UnlockedAt); err != nil {
			return nil, fmt.Errorf("achievement scan: %w", err)
		}
		a.Unlocked = unlocked != 0
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("achievement rows: %w", err)
	}
	return out, nil
}

// Upsert creates the row lazily on first evaluation and updates it afterward.
// unlocked_at is written once: COALESCE keeps the original timestamp if a
// later evaluation passes one again.
func (r *AchievementRepo) Upsert(ctx context.Context, a *Achievement) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO achievements (user_id, achievement_type, progress_value, target_value, is_unlocked, unlocked_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, achievement_type) DO UPDATE SET
			progress_value = excluded.progress_value,
			target_value = excluded.target_value,
			is_unlocked = MAX(achievements.is_unlocked, excluded.is_unlocked),
			unlocked_at = COALESCE(achievements.unlocked_at, excluded.unlocked_at)
	`, a.UserID, a.Type, a.Progress, a.Target, boolToInt(a.Unlocked), a.UnlockedAt)
	if err != nil {
		return fmt.Errorf("achievement upsert: %w", err)
	}
	return nil
}
