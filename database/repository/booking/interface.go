package bookingRepo

import (
	"errors"
	"time"

	"barkwise/models"
)

// ErrNotFound is returned when no booking matches the given id.
var ErrNotFound = errors.New("booking not found")

// BookingRepository defines data access for bookings.
type BookingRepository interface {
	Create(booking *models.Booking) error
	GetByID(id string) (*models.Booking, error)
	// UpdateStatus rewrites status and note in one write.
	UpdateStatus(id, status, note string, at time.Time) error
	// ListByOwner returns a user's bookings, newest first.
	ListByOwner(ownerID string) ([]models.Booking, error)
	// ListByProvider returns a provider's bookings, newest first; a
	// non-empty date narrows to that day. All statuses are included so
	// callers can apply their own occupancy rules.
	ListByProvider(providerID, date string) ([]models.Booking, error)
	// DistinctOwnersSince counts distinct owners with a non-cancelled
	// booking on or after fromDate, per provider.
	DistinctOwnersSince(providerIDs []string, fromDate string) (map[string]int, error)
	// ActiveOwnerIDs returns the distinct owners holding non-cancelled
	// bookings, per provider.
	ActiveOwnerIDs(providerIDs []string) (map[string][]string, error)
}
