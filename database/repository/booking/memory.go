package bookingRepo

import (
	"sort"
	"sync"
	"time"

	"barkwise/models"
)

// MemoryBookingRepo is an in-memory BookingRepository used in tests.
type MemoryBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

// NewMemoryBookingRepo returns an empty in-memory repository.
func NewMemoryBookingRepo() *MemoryBookingRepo {
	return &MemoryBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *MemoryBookingRepo) Create(booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *booking
	r.bookings[booking.ID] = &cp
	return nil
}

func (r *MemoryBookingRepo) GetByID(id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *MemoryBookingRepo) UpdateStatus(id, status, note string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.Status = status
	b.Note = note
	b.UpdatedAt = at
	return nil
}

func (r *MemoryBookingRepo) ListByOwner(ownerID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.OwnerID == ownerID {
			out = append(out, *b)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *MemoryBookingRepo) ListByProvider(providerID, date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ProviderID != providerID {
			continue
		}
		if date != "" && b.Date != date {
			continue
		}
		out = append(out, *b)
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *MemoryBookingRepo) DistinctOwnersSince(providerIDs []string, fromDate string) (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := toSet(providerIDs)
	owners := make(map[string]map[string]bool)
	for _, b := range r.bookings {
		if !wanted[b.ProviderID] || models.BookingCancelled(b.Status) || b.Date < fromDate {
			continue
		}
		if owners[b.ProviderID] == nil {
			owners[b.ProviderID] = make(map[string]bool)
		}
		owners[b.ProviderID][b.OwnerID] = true
	}
	counts := make(map[string]int)
	for id, set := range owners {
		counts[id] = len(set)
	}
	return counts, nil
}

func (r *MemoryBookingRepo) ActiveOwnerIDs(providerIDs []string) (map[string][]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := toSet(providerIDs)
	owners := make(map[string]map[string]bool)
	for _, b := range r.bookings {
		if !wanted[b.ProviderID] || models.BookingCancelled(b.Status) {
			continue
		}
		if owners[b.ProviderID] == nil {
			owners[b.ProviderID] = make(map[string]bool)
		}
		owners[b.ProviderID][b.OwnerID] = true
	}
	out := make(map[string][]string)
	for id, set := range owners {
		for owner := range set {
			out[id] = append(out[id], owner)
		}
		sort.Strings(out[id])
	}
	return out, nil
}

func sortNewestFirst(bookings []models.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
