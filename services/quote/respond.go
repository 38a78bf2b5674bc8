package quote

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	quoteRepo "barkwise/database/repository/quote"
	"barkwise/models"
	"barkwise/utils"
)

// RespondToQuoteTarget applies a provider's decision to their target. A
// target leaves pending exactly once and the aggregate request status is
// derived in the same repository write, so concurrent responses can
// neither double-apply nor persist a stale aggregate.
func (s *DefaultQuoteService) RespondToQuoteTarget(quoteRequestID, providerID, actorID, decision, message string) (*models.QuoteRequest, error) {
	if decision != models.TargetAccepted && decision != models.TargetDeclined {
		return nil, utils.InvalidErr("Invalid decision. Allowed: accepted, declined")
	}

	q, err := s.Quotes.GetByID(quoteRequestID)
	if err != nil {
		if errors.Is(err, quoteRepo.ErrNotFound) {
			return nil, utils.NotFoundErr("Quote request not found")
		}
		return nil, err
	}

	var target *models.QuoteTarget
	for i := range q.Targets {
		if q.Targets[i].ProviderID == providerID {
			target = &q.Targets[i]
			break
		}
	}
	if target == nil {
		return nil, utils.NotFoundErr("Quote target not found")
	}
	if target.ProviderOwnerID != actorID {
		return nil, utils.PermissionErr("Only listing owner can respond to this quote")
	}
	if target.Status != models.TargetPending {
		return nil, utils.ConflictErr("Quote target already responded")
	}

	now := s.now()
	message = strings.TrimSpace(message)
	q, err = s.Quotes.RespondTarget(quoteRequestID, target.ID, decision, message, now)
	if err != nil {
		if errors.Is(err, quoteRepo.ErrTargetNotPending) {
			return nil, utils.ConflictErr("Quote target already responded")
		}
		utils.GetLogger().Error("RespondToQuoteTarget: failed to persist response",
			zap.Error(err), zap.String("quoteRequestID", quoteRequestID), zap.String("targetID", target.ID))
		return nil, err
	}

	// Reputation derives from response history; a recompute failure must
	// not undo an accepted response.
	if s.Reputation != nil {
		if _, err := s.Reputation.Recompute(providerID); err != nil {
			utils.GetLogger().Error("RespondToQuoteTarget: reputation recompute failed",
				zap.Error(err), zap.String("providerID", providerID))
		}
	}

	s.Notifier.Notify(q.RequesterID, "Quote response received",
		fmt.Sprintf("%s %s your quote request", target.ProviderName, decision),
		"booking", "quote:"+q.ID)

	return q, nil
}
