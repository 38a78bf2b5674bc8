package quote

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"barkwise/config"
	providerRepo "barkwise/database/repository/provider"
	quoteRepo "barkwise/database/repository/quote"
	"barkwise/models"
	"barkwise/utils"
)

const selectionPoolSize = 20

// CreateQuoteRequest picks up to the fanout limit of matching providers,
// suburb matches first, and fans the request out to them. The requester's
// own listings are never targeted.
func (s *DefaultQuoteService) CreateQuoteRequest(requesterID string, input CreateQuoteInput) (*models.QuoteRequest, error) {
	suburb := strings.TrimSpace(input.Suburb)
	window := strings.TrimSpace(input.PreferredWindow)
	petDetails := strings.TrimSpace(input.PetDetails)
	if !models.ValidCategory(input.Category) {
		return nil, utils.InvalidErr("Invalid category. Allowed: %s, %s",
			models.CategoryDogWalking, models.CategoryGrooming)
	}
	if suburb == "" {
		return nil, utils.InvalidErr("Suburb is required")
	}
	if window == "" {
		return nil, utils.InvalidErr("Preferred time window is required")
	}
	if petDetails == "" {
		return nil, utils.InvalidErr("Pet details are required")
	}

	pool, err := s.selectionPool(input.Category, suburb, requesterID)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, utils.NotFoundErr("No matching providers found")
	}
	if limit := config.QuoteFanout(); len(pool) > limit {
		pool = pool[:limit]
	}

	now := s.now()
	q := &models.QuoteRequest{
		ID:              utils.NewID("qr"),
		RequesterID:     requesterID,
		Category:        input.Category,
		Suburb:          suburb,
		PreferredWindow: window,
		PetDetails:      petDetails,
		Note:            strings.TrimSpace(input.Note),
		Status:          models.QuotePending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, p := range pool {
		q.Targets = append(q.Targets, models.QuoteTarget{
			ID:              utils.NewID("qrt"),
			ProviderID:      p.ID,
			ProviderName:    p.Name,
			ProviderOwnerID: p.OwnerID,
			Status:          models.TargetPending,
			CreatedAt:       now,
		})
	}

	if err := s.Quotes.Create(q); err != nil {
		utils.GetLogger().Error("CreateQuoteRequest: failed to persist request",
			zap.Error(err), zap.String("requesterID", requesterID))
		return nil, err
	}

	for _, t := range q.Targets {
		s.Notifier.Notify(t.ProviderOwnerID, "New quote request",
			fmt.Sprintf("%s request in %s: %s", q.Category, q.Suburb, q.PreferredWindow),
			"booking", "quote:"+q.ID)
	}

	if s.Scheduler != nil {
		if err := s.Scheduler.ScheduleQuoteReminders(q.ID, now); err != nil {
			utils.GetLogger().Error("CreateQuoteRequest: failed to schedule reminders",
				zap.Error(err), zap.String("quoteRequestID", q.ID))
		}
	}
	return q, nil
}

// selectionPool returns the top-rated active providers in the category,
// restricted to the suburb when it has any, excluding the requester's own
// listings.
func (s *DefaultQuoteService) selectionPool(category, suburb, requesterID string) ([]models.Provider, error) {
	filter := providerRepo.ListFilter{
		Category:       category,
		Suburb:         suburb,
		ExcludeOwnerID: requesterID,
		Limit:          selectionPoolSize,
	}
	pool, err := s.Providers.List(filter)
	if err != nil {
		utils.GetLogger().Error("selectionPool: provider query failed", zap.Error(err))
		return nil, err
	}
	if len(pool) > 0 {
		return pool, nil
	}
	filter.Suburb = ""
	pool, err = s.Providers.List(filter)
	if err != nil {
		utils.GetLogger().Error("selectionPool: fallback provider query failed", zap.Error(err))
		return nil, err
	}
	return pool, nil
}

func (s *DefaultQuoteService) GetQuoteRequest(quoteRequestID string) (*models.QuoteRequest, error) {
	q, err := s.Quotes.GetByID(quoteRequestID)
	if err != nil {
		if errors.Is(err, quoteRepo.ErrNotFound) {
			return nil, utils.NotFoundErr("Quote request not found")
		}
		return nil, err
	}
	return q, nil
}

func (s *DefaultQuoteService) ListQuoteRequestsForRequester(requesterID string) ([]models.QuoteRequest, error) {
	return s.Quotes.ListByRequester(requesterID)
}

func (s *DefaultQuoteService) ListIncomingQuoteRequests(providerOwnerID string) ([]models.QuoteRequest, error) {
	return s.Quotes.ListForProviderOwner(providerOwnerID)
}
