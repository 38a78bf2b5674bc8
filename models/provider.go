package models

import "time"

// Service categories offered on the marketplace.
const (
	CategoryDogWalking = "dog_walking"
	CategoryGrooming   = "grooming"
)

// ValidCategory reports whether c is a known service category.
func ValidCategory(c string) bool {
	return c == CategoryDogWalking || c == CategoryGrooming
}

// Provider lifecycle statuses.
const (
	ProviderActive    = "active"
	ProviderCancelled = "cancelled"
)

// Quote Sprint tiers, worst to best.
const (
	TierNone     = "none"
	TierBronze   = "bronze"
	TierSilver   = "silver"
	TierGold     = "gold"
	TierPlatinum = "platinum"
)

// Review is a customer review embedded in the provider document.
type Review struct {
	ID        string    `bson:"id" json:"id"`
	AuthorID  string    `bson:"authorId" json:"authorId"`
	Rating    int       `bson:"rating" json:"rating"` // 1..5
	Comment   string    `bson:"comment" json:"comment,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Provider is a service listing. Reputation fields are derived from
// quote-response history and rewritten by the scorer after every response;
// everything else is mutated only by the listing owner.
type Provider struct {
	ID          string  `bson:"id" json:"id"`
	OwnerID     string  `bson:"ownerId" json:"ownerId"`
	Name        string  `bson:"name" json:"name"`
	Category    string  `bson:"category" json:"category"` // dog_walking | grooming
	Suburb      string  `bson:"suburb" json:"suburb"`
	Latitude    float64 `bson:"latitude" json:"latitude"`
	Longitude   float64 `bson:"longitude" json:"longitude"`
	Rating      float64 `bson:"rating" json:"rating"`
	ReviewCount int     `bson:"reviewCount" json:"reviewCount"`
	PriceFrom   int     `bson:"priceFrom" json:"priceFrom"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
	Status      string  `bson:"status" json:"status"` // active | cancelled

	// Derived reputation fields (see services/reputation).
	ResponseMinutes int    `bson:"responseMinutes,omitempty" json:"responseMinutes,omitempty"` // 0 = unknown
	ResponseRate    int    `bson:"responseRate" json:"responseRate"`                           // percent, 0..100
	ResponseStreak  int    `bson:"responseStreak" json:"responseStreak"`
	Tier            string `bson:"tier" json:"tier"`

	// Vet trust signals.
	VetChecked       bool       `bson:"vetChecked" json:"vetChecked"`
	VetCheckedUntil  *time.Time `bson:"vetCheckedUntil,omitempty" json:"vetCheckedUntil,omitempty"`
	VetCheckedBy     string     `bson:"vetCheckedBy,omitempty" json:"vetCheckedBy,omitempty"`
	HighlightedUntil *time.Time `bson:"highlightedUntil,omitempty" json:"highlightedUntil,omitempty"`

	Reviews   []Review  `bson:"reviews,omitempty" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`

	// Populated on reads, never stored.
	DistanceKM  *float64 `bson:"-" json:"distanceKm,omitempty"`
	SocialProof []string `bson:"-" json:"socialProof"`
}

// TierScore ranks tiers for relevance sorting.
func TierScore(tier string) int {
	switch tier {
	case TierPlatinum:
		return 4
	case TierGold:
		return 3
	case TierSilver:
		return 2
	case TierBronze:
		return 1
	default:
		return 0
	}
}

// ProviderBlackout marks a (date, slot) a provider never accepts,
// regardless of bookings.
type ProviderBlackout struct {
	ID         string    `bson:"id" json:"id"`
	ProviderID string    `bson:"providerId" json:"providerId"`
	Date       string    `bson:"date" json:"date"` // "2006-01-02"
	Slot       string    `bson:"slot" json:"slot"` // "15:04", from the slot template
	Reason     string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}
