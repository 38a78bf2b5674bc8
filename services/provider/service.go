package provider

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	providerRepo "barkwise/database/repository/provider"
	"barkwise/models"
	"barkwise/utils"
)

const vetVerificationDays = 90

func (s *DefaultProviderService) CreateProvider(ownerID string, input CreateProviderInput) (*models.Provider, error) {
	name := strings.TrimSpace(input.Name)
	suburb := strings.TrimSpace(input.Suburb)
	if name == "" {
		return nil, utils.InvalidErr("Name is required")
	}
	if suburb == "" {
		return nil, utils.InvalidErr("Suburb is required")
	}
	if !models.ValidCategory(input.Category) {
		return nil, utils.InvalidErr("Invalid category. Allowed: %s, %s",
			models.CategoryDogWalking, models.CategoryGrooming)
	}
	if input.PriceFrom < 0 {
		return nil, utils.InvalidErr("priceFrom must be non-negative")
	}

	now := s.now()
	p := &models.Provider{
		ID:          utils.NewID("prov"),
		OwnerID:     ownerID,
		Name:        name,
		Category:    input.Category,
		Suburb:      suburb,
		PriceFrom:   input.PriceFrom,
		Description: strings.TrimSpace(input.Description),
		Status:      models.ProviderActive,
		Tier:        models.TierNone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if c, ok := suburbCoords[titleWords(suburb)]; ok {
		p.Latitude, p.Longitude = c[0], c[1]
	}

	if err := s.Repo.Create(p); err != nil {
		utils.GetLogger().Error("CreateProvider: failed to persist listing",
			zap.Error(err), zap.String("ownerID", ownerID))
		return nil, err
	}
	return p, nil
}

func (s *DefaultProviderService) UpdateProvider(id, actorID string, patch ProviderPatch) (*models.Provider, error) {
	p, err := s.fetch(id)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != actorID {
		return nil, utils.PermissionErr("Only provider owner can update listing")
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, utils.InvalidErr("Name is required")
		}
		p.Name = name
	}
	if patch.Suburb != nil {
		suburb := strings.TrimSpace(*patch.Suburb)
		if suburb == "" {
			return nil, utils.InvalidErr("Suburb is required")
		}
		p.Suburb = suburb
		p.Latitude, p.Longitude = 0, 0
		if c, ok := suburbCoords[titleWords(suburb)]; ok {
			p.Latitude, p.Longitude = c[0], c[1]
		}
	}
	if patch.PriceFrom != nil {
		if *patch.PriceFrom < 0 {
			return nil, utils.InvalidErr("priceFrom must be non-negative")
		}
		p.PriceFrom = *patch.PriceFrom
	}
	if ptr := patch.Description; ptr != nil {
		p.Description = strings.TrimSpace(*ptr)
	}
	p.UpdatedAt = s.now()

	if err := s.Repo.Update(p); err != nil {
		utils.GetLogger().Error("UpdateProvider: failed to persist update",
			zap.Error(err), zap.String("providerID", id))
		return nil, err
	}
	s.invalidate(id)
	return p, nil
}

// CancelProvider takes the listing off the directory and cancels every
// booking still in flight, notifying the affected owners.
func (s *DefaultProviderService) CancelProvider(id, actorID string) error {
	p, err := s.fetch(id)
	if err != nil {
		return err
	}
	if p.OwnerID != actorID {
		return utils.PermissionErr("Only provider owner can cancel listing")
	}

	now := s.now()
	if err := s.Repo.SetStatus(id, models.ProviderCancelled, now); err != nil {
		utils.GetLogger().Error("CancelProvider: failed to set status",
			zap.Error(err), zap.String("providerID", id))
		return err
	}
	s.invalidate(id)

	bookings, err := s.Bookings.ListByProvider(id, "")
	if err != nil {
		utils.GetLogger().Error("CancelProvider: failed to list bookings for cascade",
			zap.Error(err), zap.String("providerID", id))
		return nil
	}
	for _, b := range bookings {
		if models.BookingCancelled(b.Status) {
			continue
		}
		if err := s.Bookings.UpdateStatus(b.ID, models.BookingCancelledByProvider, "Listing cancelled by provider", now); err != nil {
			utils.GetLogger().Error("CancelProvider: failed to cancel booking",
				zap.Error(err), zap.String("bookingID", b.ID))
			continue
		}
		s.Notifier.Notify(b.OwnerID, "Booking updated",
			fmt.Sprintf("Booking %s is now %s", b.ID, models.BookingCancelledByProvider),
			"booking", "booking:"+b.ID)
	}
	return nil
}

func (s *DefaultProviderService) RestoreProvider(id, actorID string) (*models.Provider, error) {
	p, err := s.fetch(id)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != actorID {
		return nil, utils.PermissionErr("Only provider owner can restore listing")
	}
	if p.Status == models.ProviderActive {
		return nil, utils.ConflictErr("Listing is already active")
	}

	now := s.now()
	if err := s.Repo.SetStatus(id, models.ProviderActive, now); err != nil {
		utils.GetLogger().Error("RestoreProvider: failed to set status",
			zap.Error(err), zap.String("providerID", id))
		return nil, err
	}
	s.invalidate(id)
	p.Status = models.ProviderActive
	p.UpdatedAt = now
	return p, nil
}

func (s *DefaultProviderService) AddReview(providerID, authorID string, rating int, comment string) (*models.Provider, error) {
	if rating < 1 || rating > 5 {
		return nil, utils.InvalidErr("Rating must be between 1 and 5")
	}
	p, err := s.fetch(providerID)
	if err != nil {
		return nil, err
	}

	review := models.Review{
		ID:        utils.NewID("rev"),
		AuthorID:  authorID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
		CreatedAt: s.now(),
	}
	count := p.ReviewCount + 1
	mean := (p.Rating*float64(p.ReviewCount) + float64(rating)) / float64(count)
	mean = math.Round(mean*100) / 100

	if err := s.Repo.AddReview(providerID, review, mean, count); err != nil {
		utils.GetLogger().Error("AddReview: failed to persist review",
			zap.Error(err), zap.String("providerID", providerID))
		return nil, err
	}
	s.invalidate(providerID)

	p.Reviews = append(p.Reviews, review)
	p.Rating = mean
	p.ReviewCount = count
	return p, nil
}

// VerifyGroomerByVet stamps a grooming listing as vet-checked for the next
// ninety days. The stamp feeds the "Vet-checked until" social-proof line.
func (s *DefaultProviderService) VerifyGroomerByVet(providerID, vetUserID string) (*models.Provider, error) {
	p, err := s.fetch(providerID)
	if err != nil {
		return nil, err
	}
	if p.Category != models.CategoryGrooming {
		return nil, utils.InvalidErr("Vet verification is only available for grooming providers")
	}
	if p.OwnerID == vetUserID {
		return nil, utils.PermissionErr("Vets cannot verify their own listing")
	}

	until := s.now().Add(vetVerificationDays * 24 * time.Hour)
	if err := s.Repo.SetVetVerification(providerID, vetUserID, until); err != nil {
		utils.GetLogger().Error("VerifyGroomerByVet: failed to persist verification",
			zap.Error(err), zap.String("providerID", providerID))
		return nil, err
	}
	s.invalidate(providerID)

	p.VetChecked = true
	p.VetCheckedBy = vetUserID
	p.VetCheckedUntil = &until
	return p, nil
}

func (s *DefaultProviderService) fetch(id string) (*models.Provider, error) {
	p, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, utils.NotFoundErr("Provider not found")
		}
		utils.GetLogger().Error("fetch: failed to load provider",
			zap.Error(err), zap.String("providerID", id))
		return nil, err
	}
	return p, nil
}
