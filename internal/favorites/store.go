// Package favorites owns the set of favorited doctor ids, persisted
// write-through to durable storage after every mutation.
package favorites

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/medibook/medibook/pkg/logging"
)

// Persistence stores the favorites set under a single durable key.
// Load must report absent data as an empty set, never an error.
type Persistence interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, ids []string) error
}

// Store owns the favorites set. Membership is a set: no duplicates,
// order-insignificant.
type Store struct {
	persist Persistence
	logger  *logging.Logger

	mu        sync.RWMutex
	favorites map[string]struct{}
}

// NewStore creates a favorites store initialized from persistence.
func NewStore(ctx context.Context, persist Persistence, logger *logging.Logger) (*Store, error) {
	if persist == nil {
		panic("favorites: persistence required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	ids, err := persist.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("favorites: load: %w", err)
	}
	favorites := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		favorites[id] = struct{}{}
	}

	return &Store{
		persist:   persist,
		logger:    logger,
		favorites: favorites,
	}, nil
}

// Toggle flips the doctor's membership and writes the full resulting set
// through to storage. It reports the new membership state. When the
// write fails the flip is rolled back so storage and memory never
// disagree.
func (s *Store) Toggle(ctx context.Context, doctorID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, was := s.favorites[doctorID]
	if was {
		delete(s.favorites, doctorID)
	} else {
		s.favorites[doctorID] = struct{}{}
	}

	if err := s.persist.Save(ctx, s.listLocked()); err != nil {
		if was {
			s.favorites[doctorID] = struct{}{}
		} else {
			delete(s.favorites, doctorID)
		}
		return was, fmt.Errorf("favorites: save: %w", err)
	}

	s.logger.Info("favorite toggled", "doctor_id", doctorID, "favorite", !was)
	return !was, nil
}

// IsFavorite reports whether the doctor is favorited.
func (s *Store) IsFavorite(doctorID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.favorites[doctorID]
	return ok
}

// List returns the favorited doctor ids, sorted for stable output.
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listLocked()
}

func (s *Store) listLocked() []string {
	ids := make([]string, 0, len(s.favorites))
	for id := range s.favorites {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
