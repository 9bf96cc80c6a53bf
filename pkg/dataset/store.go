package dataset

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/cagmock/cagmock/pkg/logging"
)

// Store is the single owner of the live dataset. It is safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	seed *Dataset
	live *Dataset

	now      func() time.Time
	log      *slog.Logger
	validate *validator.Validate
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for assignment start dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the store logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// NewStore builds a store whose live data starts as a copy of seed.
func NewStore(seed *Dataset, opts ...Option) (*Store, error) {
	if seed == nil {
		return nil, errors.New("seed dataset cannot be nil")
	}
	if err := seed.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSeed, err)
	}

	s := &Store{
		seed:     seed.Clone(),
		live:     seed.Clone(),
		now:      time.Now,
		log:      logging.Nop(),
		validate: newValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Reset discards every mutation and restores the seed.
func (s *Store) Reset() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.live = s.seed.Clone()
	stats := s.live.Stats()
	s.log.Info("dataset reset to seed", "assignedCAGs", stats.AssignedCAGs)
	return stats
}

// Stats reports the live record counts.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.live.Stats()
}

// Snapshot returns a deep copy of the live dataset.
func (s *Store) Snapshot() *Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.live.Clone()
}
