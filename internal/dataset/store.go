package dataset

import (
	"context"
	"log/slog"
	"sync"

	"courtside/pkg/contracts/domain"
)

// Store memoizes loaded datasets keyed by input path. The first Get for a
// path performs the parse; every later Get returns the same frozen slice.
// There is no invalidation: the source file is read-only for the process
// lifetime, so the cache never needs teardown.
type Store struct {
	mu     sync.RWMutex
	cache  map[string]entry
	logger *slog.Logger
}

type entry struct {
	records []domain.GameRecord
	stats   LoadStats
}

// NewStore creates a dataset store
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		cache:  make(map[string]entry),
		logger: logger.With(slog.String("component", "dataset_store")),
	}
}

// Get returns the normalized dataset for path, loading it on first access.
// Callers must treat the returned slice as read-only; the view pipeline
// copies before sorting.
func (s *Store) Get(ctx context.Context, path string) ([]domain.GameRecord, error) {
	s.mu.RLock()
	if e, ok := s.cache[path]; ok {
		s.mu.RUnlock()
		return e.records, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have loaded it while we waited for the lock
	if e, ok := s.cache[path]; ok {
		return e.records, nil
	}

	records, stats, err := Load(path, s.logger)
	if err != nil {
		// Failures are not cached: a missing file is fatal at startup,
		// but a later retry against a fixed path should be able to succeed.
		return nil, err
	}

	s.cache[path] = entry{records: records, stats: stats}
	s.logger.InfoContext(ctx, "dataset cached",
		slog.String("path", path),
		slog.Int("records", len(records)))

	return records, nil
}

// Stats returns the load statistics for an already-cached path.
func (s *Store) Stats(path string) (LoadStats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.cache[path]
	return e.stats, ok
}
