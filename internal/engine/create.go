package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"habitflow/internal/storage"

	"github.com/google/uuid"
)

// LocalUserName is the implicit user the CLI operates on. The bot maps
// Telegram identities to their own users instead.
const LocalUserName = "local"

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", errors.New("title is required")
	}
	return t, nil
}

// RegisterUser creates a user. Identity is trusted input; verification is the
// front door's problem.
func (s *Service) RegisterUser(ctx context.Context, name, timezone string, telegramID *int64) (*storage.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("name is required")
	}
	if timezone == "" {
		timezone = s.tz
	}

	u := &storage.User{
		ID:         uuid.NewString(),
		TelegramID: telegramID,
		Name:       name,
		Timezone:   timezone,
		Level:      1,
		CreatedAt:  s.clock.Now().UTC(),
	}
	users := storage.NewUserRepo(s.db)
	if err := users.Insert(ctx, u); err != nil {
		return nil, classifyStorageErr(err)
	}
	return u, nil
}

// GetOrCreateByTelegram resolves a Telegram chat to a user, registering on
// first contact.
func (s *Service) GetOrCreateByTelegram(ctx context.Context, telegramID int64, name string) (*storage.User, error) {
	users := storage.NewUserRepo(s.db)
	u, err := users.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, classifyStorageErr(err)
	}
	if u != nil {
		return u, nil
	}
	if name == "" {
		name = fmt.Sprintf("tg-%d", telegramID)
	}
	return s.RegisterUser(ctx, name, "", &telegramID)
}

// GetOrCreateLocal returns the CLI's single local user.
func (s *Service) GetOrCreateLocal(ctx context.Context) (*storage.User, error) {
	users := storage.NewUserRepo(s.db)
	u, err := users.GetByName(ctx, LocalUserName)
	if err != nil {
		return nil, classifyStorageErr(err)
	}
	if u != nil {
		return u, nil
	}
	return s.RegisterUser(ctx, LocalUserName, "", nil)
}

func (s *Service) GetUser(ctx context.Context, userID string) (*storage.User, error) {
	users := storage.NewUserRepo(s.db)
	u, err := users.Get(ctx, userID)
	if err != nil {
		return nil, classifyStorageErr(err)
	}
	if u == nil {
		return nil, fmt.Errorf("user %s: %w", userID, ErrUserNotFound)
	}
	return u, nil
}

type CreateTaskInput struct {
	UserID     string
	Title      string
	Category   Category
	Priority   Priority
	Recurrence Recurrence
}

// CreateTask creates a task and freezes its coin value from the current
// reward tables. The value is immutable thereafter.
func (s *Service) CreateTask(ctx context.Context, in CreateTaskInput) (*storage.Task, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	if !in.Category.IsValid() {
		in.Category = DefaultCategory
	}
	if !in.Priority.IsValid() {
		return nil, fmt.Errorf("invalid priority: %q", in.Priority)
	}
	if in.Recurrence == "" {
		in.Recurrence = RecurrenceDaily
	}
	if !in.Recurrence.IsValid() {
		return nil, fmt.Errorf("invalid recurrence: %q", in.Recurrence)
	}

	if _, err := s.GetUser(ctx, in.UserID); err != nil {
		return nil, err
	}

	t := &storage.Task{
		ID:         uuid.NewString(),
		UserID:     in.UserID,
		Title:      title,
		Category:   string(in.Category),
		Priority:   string(in.Priority),
		Recurrence: string(in.Recurrence),
		CoinValue:  s.cfg.CoinValue(in.Priority, in.Category),
		IsActive:   true,
		CreatedAt:  s.clock.Now().UTC(),
	}
	tasks := storage.NewTaskRepo(s.db)
	if err := tasks.Insert(ctx, t); err != nil {
		return nil, classifyStorageErr(err)
	}
	return t, nil
}

// ListActiveTasks returns the user's active tasks in creation order.
func (s *Service) ListActiveTasks(ctx context.Context, userID string) ([]storage.Task, error) {
	tasks := storage.NewTaskRepo(s.db)
	out, err := tasks.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, classifyStorageErr(err)
	}
	return out, nil
}

// DeactivateTask soft-deletes a task. Completion history stays in the ledger.
func (s *Service) DeactivateTask(ctx context.Context, userID, taskID string) error {
	return s.setTaskActive(ctx, userID, taskID, false)
}

// ReactivateTask undoes a soft delete.
func (s *Service) ReactivateTask(ctx context.Context, userID, taskID string) error {
	return s.setTaskActive(ctx, userID, taskID, true)
}

func (s *Service) setTaskActive(ctx context.Context, userID, taskID string, active bool) error {
	tasks := storage.NewTaskRepo(s.db)
	t, err := tasks.Get(ctx, taskID)
	if err != nil {
		return classifyStorageErr(err)
	}
	if t == nil || t.UserID != userID {
		return fmt.Errorf("task %s: %w", taskID, ErrTaskNotFound)
	}
	if err := tasks.SetActive(ctx, taskID, active); err != nil {
		return classifyStorageErr(err)
	}
	return nil
}
