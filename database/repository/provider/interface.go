package providerRepo

import (
	"errors"
	"time"

	"barkwise/models"
)

// Sentinel errors returned by implementations; services translate these
// into API error kinds.
var (
	ErrNotFound       = errors.New("provider not found")
	ErrBlackoutExists = errors.New("blackout already exists")
)

// ListFilter narrows a provider listing query. Zero values mean "no filter".
// The base filter always restricts to active listings; IncludeOwnerID widens
// it so that one owner also sees their own cancelled listings.
type ListFilter struct {
	Category       string
	Suburb         string // case-insensitive exact match
	MinRating      float64
	Query          string // substring over name, description, category, suburb
	ExcludeOwnerID string // drop listings owned by this user
	IncludeOwnerID string // also return this owner's non-active listings
	Limit          int64
}

// ProviderRepository defines data access for provider listings and their
// blackout slots. List results are ordered rating desc, review count desc.
type ProviderRepository interface {
	Create(provider *models.Provider) error
	GetByID(id string) (*models.Provider, error)
	Update(provider *models.Provider) error
	List(filter ListFilter) ([]models.Provider, error)
	// SetStatus flips the lifecycle status (active/cancelled).
	SetStatus(id, status string, at time.Time) error
	// SetReputation rewrites the derived quote-response fields.
	SetReputation(id string, responseMinutes, responseRate, responseStreak int, tier string) error
	// SetVetVerification records a vet check valid until the given instant.
	SetVetVerification(id, vetUserID string, until time.Time) error
	// AddReview appends a review and rewrites the aggregate rating fields.
	AddReview(id string, review models.Review, rating float64, reviewCount int) error

	CreateBlackout(blackout *models.ProviderBlackout) error
	// ListBlackouts returns a provider's blackouts, optionally for one date,
	// ordered by date then slot.
	ListBlackouts(providerID, date string) ([]models.ProviderBlackout, error)
}
