package booking

import (
	"time"

	bookingRepo "barkwise/database/repository/booking"
	holdRepo "barkwise/database/repository/hold"
	providerRepo "barkwise/database/repository/provider"
	"barkwise/models"
	"barkwise/services/notification"
)

// CreateBookingInput carries the owner-supplied booking fields.
type CreateBookingInput struct {
	ProviderID string `json:"providerId"`
	PetName    string `json:"petName"`
	Date       string `json:"date"`
	Slot       string `json:"slot"`
	Note       string `json:"note"`
}

// HoldInput claims a slot while the owner finishes the booking flow.
type HoldInput struct {
	ProviderID string `json:"providerId"`
	Date       string `json:"date"`
	Slot       string `json:"slot"`
}

// BookingService manages the booking lifecycle, holds and blackouts.
type BookingService interface {
	CreateBooking(ownerID string, input CreateBookingInput) (*models.Booking, error)
	CreateBookingHold(ownerID string, input HoldInput) (*models.BookingHold, error)
	GetBookingHold(id string) (*models.BookingHold, error)
	UpdateBookingStatus(bookingID, actorID, status, note string) (*models.Booking, error)
	ListBookingsForUser(userID string) ([]models.Booking, error)
	ListBookingsForProvider(providerID, actorID, date string) ([]models.Booking, error)
	CreateProviderBlackout(providerID, actorID, date, slot, reason string) (*models.ProviderBlackout, error)
	ListProviderBlackouts(providerID, date string) ([]models.ProviderBlackout, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Bookings  bookingRepo.BookingRepository
	Providers providerRepo.ProviderRepository
	Holds     holdRepo.HoldStore
	Notifier  notification.Dispatcher
	Now       func() time.Time
}

func NewDefaultBookingService(
	bookings bookingRepo.BookingRepository,
	providers providerRepo.ProviderRepository,
	holds holdRepo.HoldStore,
	notifier notification.Dispatcher,
) *DefaultBookingService {
	return &DefaultBookingService{
		Bookings:  bookings,
		Providers: providers,
		Holds:     holds,
		Notifier:  notifier,
		Now:       time.Now,
	}
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
