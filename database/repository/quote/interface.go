package quoteRepo

import (
	"errors"
	"time"

	"barkwise/models"
)

// Sentinel errors returned by implementations.
var (
	ErrNotFound = errors.New("quote request not found")
	// ErrTargetNotPending means the conditional respond write matched no
	// pending target: somebody else got there first.
	ErrTargetNotPending = errors.New("quote target is not pending")
)

// QuoteRepository defines data access for quote requests and their targets.
type QuoteRepository interface {
	Create(quote *models.QuoteRequest) error
	GetByID(id string) (*models.QuoteRequest, error)
	// ListByRequester returns a user's quote requests, newest first.
	ListByRequester(requesterID string) ([]models.QuoteRequest, error)
	// ListForProviderOwner returns quote requests containing a target owned
	// by the given user, newest first.
	ListForProviderOwner(ownerID string) ([]models.QuoteRequest, error)
	// RespondTarget moves one pending target to the given status and
	// re-derives the aggregate request status from the resulting targets.
	// The pending check, the target write and the aggregate recompute are
	// a single atomic operation, so responses to sibling targets can never
	// persist a stale aggregate. A target that is no longer pending yields
	// ErrTargetNotPending; the updated request is returned on success.
	RespondTarget(quoteID, targetID, status, message string, respondedAt time.Time) (*models.QuoteRequest, error)
	// SetReminderFlags marks reminders sent on one target; flags only ever
	// go from false to true.
	SetReminderFlags(quoteID, targetID string, sent15, sent60 bool) error
	// TargetsForProvider returns every target ever addressed to the
	// provider across all quote requests, newest-created first.
	TargetsForProvider(providerID string) ([]models.QuoteTarget, error)
}
