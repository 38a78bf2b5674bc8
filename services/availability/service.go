package availability

import (
	"errors"
	"time"

	"barkwise/config"
	bookingRepo "barkwise/database/repository/booking"
	providerRepo "barkwise/database/repository/provider"
	"barkwise/models"
	"barkwise/utils"
)

// SlotUnavailable is the single reason attached to blocked slots. Whether
// a blackout or a booking blocked the slot is deliberately not exposed.
const SlotUnavailable = "unavailable"

// AvailabilityService resolves the bookable slots for a provider/date.
type AvailabilityService interface {
	Resolve(providerID, date string) ([]models.SlotAvailability, error)
}

// DefaultAvailabilityService is the production implementation. Resolution
// is a pure read over the slot template, the provider's blackouts and the
// day's bookings; it never mutates and is safe to call concurrently.
type DefaultAvailabilityService struct {
	Providers providerRepo.ProviderRepository
	Bookings  bookingRepo.BookingRepository
}

func (s *DefaultAvailabilityService) Resolve(providerID, date string) ([]models.SlotAvailability, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, utils.InvalidErr("Invalid date; expected YYYY-MM-DD")
	}
	if _, err := s.Providers.GetByID(providerID); err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, utils.NotFoundErr("Provider not found")
		}
		return nil, err
	}

	blackouts, err := s.Providers.ListBlackouts(providerID, date)
	if err != nil {
		return nil, err
	}
	blocked := make(map[string]bool, len(blackouts))
	for _, b := range blackouts {
		blocked[b.Slot] = true
	}

	bookings, err := s.Bookings.ListByProvider(providerID, date)
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		if !models.BookingCancelled(b.Status) {
			blocked[b.Slot] = true
		}
	}

	template := config.Slots()
	slots := make([]models.SlotAvailability, 0, len(template))
	for _, slot := range template {
		entry := models.SlotAvailability{Slot: slot, Available: !blocked[slot]}
		if blocked[slot] {
			entry.Reason = SlotUnavailable
		}
		slots = append(slots, entry)
	}
	return slots, nil
}
