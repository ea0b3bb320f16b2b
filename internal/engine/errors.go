package engine

import "errors"

// Error taxonomy for CompleteTask. Callers branch with errors.Is.
var (
	// ErrUserNotFound and ErrTaskNotFound are fatal to the call; not retried.
	ErrUserNotFound = errors.New("user not found")
	ErrTaskNotFound = errors.New("task not found")

	// ErrTaskInactive means the task was soft-deleted.
	ErrTaskInactive = errors.New("task is inactive")

	// ErrAlreadyCompleted is a normal, expected outcome: the task already has a
	// completion record for that date. Callers should render "already done",
	// not an error banner.
	ErrAlreadyCompleted = errors.New("task already completed for this date")

	// ErrConflict means a concurrent write lost a race at the storage layer.
	// Retrying the whole operation once is safe: the retry observes
	// ErrAlreadyCompleted or succeeds.
	ErrConflict = errors.New("storage conflict")

	// ErrUnavailable wraps storage/transport failures. The engine never retries
	// internally; the caller backs off and retries.
	ErrUnavailable = errors.New("storage unavailable")
)
