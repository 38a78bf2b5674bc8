package booking

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	bookingRepo "barkwise/database/repository/booking"
	providerRepo "barkwise/database/repository/provider"
	"barkwise/models"
	"barkwise/utils"
)

// allowedTransitions is the booking status machine. Cancelled statuses are
// terminal and have no outgoing edges.
var allowedTransitions = map[string][]string{
	models.BookingPending: {
		models.BookingConfirmed,
		models.BookingCancelledByOwner,
		models.BookingCancelledByProvider,
	},
	models.BookingConfirmed: {
		models.BookingCancelledByOwner,
		models.BookingCancelledByProvider,
	},
}

func transitionAllowed(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s *DefaultBookingService) UpdateBookingStatus(bookingID, actorID, status, note string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, utils.NotFoundErr("Booking not found")
		}
		return nil, err
	}
	if models.BookingCancelled(b.Status) {
		return nil, utils.ConflictErr("Booking is already terminal")
	}
	if !transitionAllowed(b.Status, status) {
		return nil, utils.InvalidErr("Invalid status transition: %s -> %s", b.Status, status)
	}

	// The provider owner keeps their booking permissions even if the
	// listing was cancelled in the meantime.
	providerOwnerID := ""
	p, err := s.Providers.GetByID(b.ProviderID)
	if err != nil && !errors.Is(err, providerRepo.ErrNotFound) {
		return nil, err
	}
	if p != nil {
		providerOwnerID = p.OwnerID
	}

	switch status {
	case models.BookingConfirmed, models.BookingCancelledByProvider:
		if actorID != providerOwnerID {
			return nil, utils.PermissionErr("Only provider can apply this status")
		}
	case models.BookingCancelledByOwner:
		if actorID != b.OwnerID {
			return nil, utils.PermissionErr("Only owner can apply this status")
		}
	}

	now := s.now()
	if note == "" {
		note = b.Note
	}
	if err := s.Bookings.UpdateStatus(bookingID, status, note, now); err != nil {
		utils.GetLogger().Error("UpdateBookingStatus: failed to persist status",
			zap.Error(err), zap.String("bookingID", bookingID), zap.String("status", status))
		return nil, err
	}
	b.Status = status
	b.Note = note
	b.UpdatedAt = now

	body := fmt.Sprintf("Booking %s is now %s", b.ID, status)
	if b.OwnerID != actorID {
		s.Notifier.Notify(b.OwnerID, "Booking updated", body, "booking", "booking:"+b.ID)
	}
	if providerOwnerID != "" && providerOwnerID != actorID && providerOwnerID != b.OwnerID {
		s.Notifier.Notify(providerOwnerID, "Booking updated", body, "booking", "booking:"+b.ID)
	}
	return b, nil
}
