package quote

import (
	"time"

	providerRepo "barkwise/database/repository/provider"
	quoteRepo "barkwise/database/repository/quote"
	"barkwise/models"
	"barkwise/services/notification"
	"barkwise/services/reputation"
)

// CreateQuoteInput carries the requester-supplied quote fields.
type CreateQuoteInput struct {
	Category        string `json:"category"`
	Suburb          string `json:"suburb"`
	PreferredWindow string `json:"preferredWindow"`
	PetDetails      string `json:"petDetails"`
	Note            string `json:"note"`
}

// ReminderScheduler enqueues the deferred reminder sweeps for a new quote
// request. Scheduling failures are logged, never surfaced to the requester.
type ReminderScheduler interface {
	ScheduleQuoteReminders(quoteRequestID string, createdAt time.Time) error
}

// QuoteService routes quote requests to providers and records responses.
type QuoteService interface {
	CreateQuoteRequest(requesterID string, input CreateQuoteInput) (*models.QuoteRequest, error)
	RespondToQuoteTarget(quoteRequestID, providerID, actorID, decision, message string) (*models.QuoteRequest, error)
	GetQuoteRequest(quoteRequestID string) (*models.QuoteRequest, error)
	ListQuoteRequestsForRequester(requesterID string) ([]models.QuoteRequest, error)
	ListIncomingQuoteRequests(providerOwnerID string) ([]models.QuoteRequest, error)
	DispatchQuoteReminders(quoteRequestID string) ([]models.QuoteReminder, error)
}

// DefaultQuoteService implements QuoteService.
type DefaultQuoteService struct {
	Quotes     quoteRepo.QuoteRepository
	Providers  providerRepo.ProviderRepository
	Notifier   notification.Dispatcher
	Reputation reputation.ReputationService
	Scheduler  ReminderScheduler // nil disables deferred reminders
	Now        func() time.Time
}

func NewDefaultQuoteService(
	quotes quoteRepo.QuoteRepository,
	providers providerRepo.ProviderRepository,
	notifier notification.Dispatcher,
	rep reputation.ReputationService,
	scheduler ReminderScheduler,
) *DefaultQuoteService {
	return &DefaultQuoteService{
		Quotes:     quotes,
		Providers:  providers,
		Notifier:   notifier,
		Reputation: rep,
		Scheduler:  scheduler,
		Now:        time.Now,
	}
}

func (s *DefaultQuoteService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
