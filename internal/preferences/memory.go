package preferences

import (
	"context"
	"fmt"
	"sync"

	"github.com/vzahanych/weather-dashboard/internal/units"
)

type MemoryStore struct {
	mu    sync.RWMutex
	value units.Units
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{value: units.Default}
}

func (s *MemoryStore) Load(ctx context.Context) (units.Units, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, nil
}

func (s *MemoryStore) Save(ctx context.Context, u units.Units) error {
	if !u.Valid() {
		return fmt.Errorf("preferences: invalid units %q", u)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = u
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
