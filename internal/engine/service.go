package engine

import (
	"database/sql"
	"sync"
)

// Service is the progression engine. It is stateless between invocations
// apart from the per-user locks; all durable state lives in the store.
type Service struct {
	db    *sql.DB
	cfg   RewardConfig
	clock Clock
	tz    string // default time zone for new users

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

type Option func(*Service)

func WithClock(c Clock) Option {
	return func(s *Service) { s.clock = c }
}

func WithRewardConfig(cfg RewardConfig) Option {
	return func(s *Service) { s.cfg = cfg }
}

func WithDefaultTimezone(tz string) Option {
	return func(s *Service) {
		if tz != "" {
			s.tz = tz
		}
	}
}

func NewService(db *sql.DB, opts ...Option) *Service {
	s := &Service{
		db:    db,
		cfg:   DefaultRewardConfig(),
		clock: SystemClock(),
		tz:    "UTC",
		locks: map[string]*sync.Mutex{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) RewardConfig() RewardConfig { return s.cfg }

// lockUser serializes steps of CompleteTask per user so two tasks completed
// in quick succession cannot race on the same streak/XP/level fields.
// Cross-user operations proceed in parallel.
func (s *Service) lockUser(userID string) func() {
	s.mu.Lock()
	mu, ok := s.locks[userID]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[userID] = mu
	}
	s.mu.Unlock()

	mu.Lock()
	return mu.Unlock
}
