package models

import (
	"strings"
	"time"
)

// Booking statuses. A status carrying the cancelled prefix frees the slot
// for availability purposes.
const (
	BookingPending             = "pending_provider_confirmation"
	BookingConfirmed           = "provider_confirmed"
	BookingCancelledByOwner    = "cancelled_by_owner"
	BookingCancelledByProvider = "cancelled_by_provider"

	bookingCancelledPrefix = "cancelled_"
)

// BookingCancelled reports whether status is a terminal cancellation.
func BookingCancelled(status string) bool {
	return strings.HasPrefix(status, bookingCancelledPrefix)
}

// Booking represents a slot reservation against a provider.
type Booking struct {
	ID         string    `bson:"id" json:"id"`
	OwnerID    string    `bson:"ownerId" json:"ownerId"`       // pet owner who booked
	ProviderID string    `bson:"providerId" json:"providerId"` // provider who was booked
	PetName    string    `bson:"petName" json:"petName"`
	Date       string    `bson:"date" json:"date"` // "2006-01-02"
	Slot       string    `bson:"slot" json:"slot"` // "15:04", from the slot template
	Note       string    `bson:"note,omitempty" json:"note,omitempty"`
	Status     string    `bson:"status" json:"status"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// BookingHold is an advisory claim on a slot while an owner finishes a
// booking flow. Holds never block availability; they expire 15 minutes
// after creation and readers must compare ExpiresAt against the clock.
type BookingHold struct {
	ID         string    `bson:"id" json:"id"`
	OwnerID    string    `bson:"ownerId" json:"ownerId"`
	ProviderID string    `bson:"providerId" json:"providerId"`
	Date       string    `bson:"date" json:"date"`
	Slot       string    `bson:"slot" json:"slot"`
	ExpiresAt  time.Time `bson:"expiresAt" json:"expiresAt"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// Expired reports whether the hold is past its expiry at the given instant.
func (h BookingHold) Expired(now time.Time) bool {
	return now.After(h.ExpiresAt)
}

// SlotAvailability is one slot of the availability resolution for a
// provider/date pair. Reason is set only when the slot is unavailable.
type SlotAvailability struct {
	Slot      string `json:"slot"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}
