package holdRepo

import (
	"errors"

	"barkwise/models"
)

// ErrNotFound is returned when no hold exists under the given id, which
// includes holds already reaped by TTL expiry.
var ErrNotFound = errors.New("booking hold not found")

// HoldStore keeps advisory booking holds. Holds never block availability;
// the store reaps them after their TTL and readers must still compare
// ExpiresAt against the clock.
type HoldStore interface {
	Save(hold *models.BookingHold) error
	Get(id string) (*models.BookingHold, error)
	Delete(id string) error
}
