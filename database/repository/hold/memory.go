package holdRepo

import (
	"sync"
	"time"

	"barkwise/models"
)

// MemoryHoldStore is an in-memory HoldStore used in tests. Now is
// injectable so expiry can be pinned.
type MemoryHoldStore struct {
	mu    sync.Mutex
	holds map[string]*models.BookingHold
	Now   func() time.Time
}

// NewMemoryHoldStore returns an empty in-memory store.
func NewMemoryHoldStore() *MemoryHoldStore {
	return &MemoryHoldStore{
		holds: make(map[string]*models.BookingHold),
		Now:   time.Now,
	}
}

func (s *MemoryHoldStore) Save(hold *models.BookingHold) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *hold
	s.holds[hold.ID] = &cp
	return nil
}

func (s *MemoryHoldStore) Get(id string) (*models.BookingHold, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	hold, ok := s.holds[id]
	if !ok || hold.Expired(s.Now()) {
		return nil, ErrNotFound
	}
	cp := *hold
	return &cp, nil
}

func (s *MemoryHoldStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.holds, id)
	return nil
}
