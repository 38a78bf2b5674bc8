package provider

import (
	"time"

	"github.com/go-redis/redis/v8"

	bookingRepo "barkwise/database/repository/booking"
	groupRepo "barkwise/database/repository/group"
	providerRepo "barkwise/database/repository/provider"
	"barkwise/models"
	"barkwise/services/notification"
)

// CreateProviderInput carries the owner-supplied listing fields.
type CreateProviderInput struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Suburb      string `json:"suburb"`
	PriceFrom   int    `json:"priceFrom"`
	Description string `json:"description"`
}

// ProviderPatch is a partial update; nil fields are left untouched.
type ProviderPatch struct {
	Name        *string `json:"name"`
	Suburb      *string `json:"suburb"`
	PriceFrom   *int    `json:"priceFrom"`
	Description *string `json:"description"`
}

// ListQuery mirrors the directory query parameters.
type ListQuery struct {
	Category        string
	Suburb          string
	ViewerID        string
	IncludeInactive bool
	MinRating       float64
	MaxDistanceKM   *float64
	UserLat         *float64
	UserLng         *float64
	Q               string
	SortBy          string
	Limit           int
}

// ProviderService manages listings and the provider directory.
type ProviderService interface {
	CreateProvider(ownerID string, input CreateProviderInput) (*models.Provider, error)
	GetProvider(id, viewerID string) (*models.Provider, error)
	ListProviders(q ListQuery) ([]*models.Provider, error)
	UpdateProvider(id, actorID string, patch ProviderPatch) (*models.Provider, error)
	CancelProvider(id, actorID string) error
	RestoreProvider(id, actorID string) (*models.Provider, error)
	AddReview(providerID, authorID string, rating int, comment string) (*models.Provider, error)
	VerifyGroomerByVet(providerID, vetUserID string) (*models.Provider, error)
}

// DefaultProviderService implements ProviderService.
type DefaultProviderService struct {
	Repo     providerRepo.ProviderRepository
	Bookings bookingRepo.BookingRepository
	Groups   groupRepo.GroupRepository
	Notifier notification.Dispatcher
	Cache    *redis.Client // nil disables profile caching
	Now      func() time.Time
}

func NewDefaultProviderService(
	repo providerRepo.ProviderRepository,
	bookings bookingRepo.BookingRepository,
	groups groupRepo.GroupRepository,
	notifier notification.Dispatcher,
	cache *redis.Client,
) *DefaultProviderService {
	return &DefaultProviderService{
		Repo:     repo,
		Bookings: bookings,
		Groups:   groups,
		Notifier: notifier,
		Cache:    cache,
		Now:      time.Now,
	}
}

func (s *DefaultProviderService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
