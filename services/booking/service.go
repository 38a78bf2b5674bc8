package booking

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"barkwise/config"
	holdRepo "barkwise/database/repository/hold"
	providerRepo "barkwise/database/repository/provider"
	"barkwise/models"
	"barkwise/utils"
)

func parseSlotStart(date, slot string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, utils.InvalidErr("Invalid date; expected YYYY-MM-DD")
	}
	t, err := time.Parse("15:04", slot)
	if err != nil {
		return time.Time{}, utils.InvalidErr("Invalid time_slot; expected HH:MM")
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

func slotInTemplate(slot string) bool {
	for _, s := range config.Slots() {
		if s == slot {
			return true
		}
	}
	return false
}

// slotBlocked reports what occupies the slot: "blackout", "booked", or ""
// when the slot is free. Holds are advisory and never block.
func (s *DefaultBookingService) slotBlocked(providerID, date, slot string) (string, error) {
	blackouts, err := s.Providers.ListBlackouts(providerID, date)
	if err != nil {
		return "", err
	}
	for _, b := range blackouts {
		if b.Slot == slot {
			return "blackout", nil
		}
	}
	bookings, err := s.Bookings.ListByProvider(providerID, date)
	if err != nil {
		return "", err
	}
	for _, b := range bookings {
		if b.Slot == slot && !models.BookingCancelled(b.Status) {
			return "booked", nil
		}
	}
	return "", nil
}

// validateSlotRequest runs the shared booking/hold checks: live provider,
// template slot, lead-time cutoff, and slot occupancy.
func (s *DefaultBookingService) validateSlotRequest(providerID, date, slot string) (*models.Provider, error) {
	slotStart, err := parseSlotStart(date, slot)
	if err != nil {
		return nil, err
	}
	p, err := s.Providers.GetByID(providerID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, utils.NotFoundErr("Provider not found")
		}
		utils.GetLogger().Error("validateSlotRequest: failed to load provider",
			zap.Error(err), zap.String("providerID", providerID))
		return nil, err
	}
	if p.Status != models.ProviderActive {
		return nil, utils.NotFoundErr("Provider not found")
	}
	if !slotInTemplate(slot) {
		return nil, utils.InvalidErr("Time slot not available")
	}
	if slotStart.Sub(s.now()) < config.BookingLeadTime() {
		return nil, utils.InvalidErr("Booking cutoff applies for this slot")
	}
	reason, err := s.slotBlocked(providerID, date, slot)
	if err != nil {
		return nil, err
	}
	if reason != "" {
		return nil, utils.ConflictErr("Time slot unavailable (%s)", reason)
	}
	return p, nil
}

func (s *DefaultBookingService) CreateBooking(ownerID string, input CreateBookingInput) (*models.Booking, error) {
	p, err := s.validateSlotRequest(input.ProviderID, input.Date, input.Slot)
	if err != nil {
		return nil, err
	}

	now := s.now()
	b := &models.Booking{
		ID:         utils.NewID("bk"),
		OwnerID:    ownerID,
		ProviderID: input.ProviderID,
		PetName:    input.PetName,
		Date:       input.Date,
		Slot:       input.Slot,
		Note:       input.Note,
		Status:     models.BookingPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Bookings.Create(b); err != nil {
		utils.GetLogger().Error("CreateBooking: failed to persist booking",
			zap.Error(err), zap.String("providerID", input.ProviderID))
		return nil, err
	}

	if p.OwnerID != ownerID {
		s.Notifier.Notify(p.OwnerID, "New booking request",
			fmt.Sprintf("%s requested %s %s", b.PetName, b.Date, b.Slot),
			"booking", "booking:"+b.ID)
	}
	return b, nil
}

func (s *DefaultBookingService) CreateBookingHold(ownerID string, input HoldInput) (*models.BookingHold, error) {
	if _, err := s.validateSlotRequest(input.ProviderID, input.Date, input.Slot); err != nil {
		return nil, err
	}

	now := s.now()
	hold := &models.BookingHold{
		ID:         utils.NewID("hold"),
		OwnerID:    ownerID,
		ProviderID: input.ProviderID,
		Date:       input.Date,
		Slot:       input.Slot,
		ExpiresAt:  now.Add(config.HoldTTL()),
		CreatedAt:  now,
	}
	if err := s.Holds.Save(hold); err != nil {
		utils.GetLogger().Error("CreateBookingHold: failed to store hold",
			zap.Error(err), zap.String("providerID", input.ProviderID))
		return nil, err
	}
	return hold, nil
}

func (s *DefaultBookingService) GetBookingHold(id string) (*models.BookingHold, error) {
	hold, err := s.Holds.Get(id)
	if err != nil {
		if errors.Is(err, holdRepo.ErrNotFound) {
			return nil, utils.NotFoundErr("Hold not found")
		}
		return nil, err
	}
	if hold.Expired(s.now()) {
		return nil, utils.NotFoundErr("Hold not found")
	}
	return hold, nil
}

func (s *DefaultBookingService) ListBookingsForUser(userID string) ([]models.Booking, error) {
	return s.Bookings.ListByOwner(userID)
}

func (s *DefaultBookingService) ListBookingsForProvider(providerID, actorID, date string) ([]models.Booking, error) {
	p, err := s.Providers.GetByID(providerID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, utils.NotFoundErr("Provider not found")
		}
		return nil, err
	}
	if p.OwnerID != actorID {
		return nil, utils.PermissionErr("Only provider owner can view bookings")
	}
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return nil, utils.InvalidErr("Invalid date; expected YYYY-MM-DD")
		}
	}
	return s.Bookings.ListByProvider(providerID, date)
}
