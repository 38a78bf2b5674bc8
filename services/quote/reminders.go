package quote

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	quoteRepo "barkwise/database/repository/quote"
	"barkwise/models"
	"barkwise/utils"
)

// Reminder tiers, by elapsed minutes since the target was created.
const (
	ReminderTier15 = "15m"
	ReminderTier60 = "60m"
)

// DispatchQuoteReminders nudges provider owners who have left a target
// pending. The sent flags make the sweep idempotent: re-running it never
// re-notifies a tier, and the 60-minute tier swallows an unsent 15-minute
// one rather than sending both.
func (s *DefaultQuoteService) DispatchQuoteReminders(quoteRequestID string) ([]models.QuoteReminder, error) {
	q, err := s.Quotes.GetByID(quoteRequestID)
	if err != nil {
		if errors.Is(err, quoteRepo.ErrNotFound) {
			return nil, utils.NotFoundErr("Quote request not found")
		}
		return nil, err
	}

	now := s.now()
	var due []models.QuoteReminder
	for i := range q.Targets {
		t := &q.Targets[i]
		if t.Status != models.TargetPending || t.RespondedAt != nil {
			continue
		}
		elapsed := int(now.Sub(t.CreatedAt).Minutes())
		if elapsed < 0 {
			elapsed = 0
		}

		tier := ""
		sent15, sent60 := t.Reminder15Sent, t.Reminder60Sent
		switch {
		case elapsed >= 60 && !t.Reminder60Sent:
			tier = ReminderTier60
			sent15, sent60 = true, true
		case elapsed >= 15 && !t.Reminder15Sent:
			tier = ReminderTier15
			sent15 = true
		}
		if tier == "" {
			continue
		}

		if err := s.Quotes.SetReminderFlags(quoteRequestID, t.ID, sent15, sent60); err != nil {
			utils.GetLogger().Error("DispatchQuoteReminders: failed to set reminder flags",
				zap.Error(err), zap.String("quoteRequestID", quoteRequestID), zap.String("targetID", t.ID))
			continue
		}
		t.Reminder15Sent, t.Reminder60Sent = sent15, sent60

		s.Notifier.Notify(t.ProviderOwnerID, "Quote reminder",
			fmt.Sprintf("A quote request for %s is still waiting", t.ProviderName),
			"booking", "quote:"+q.ID)

		due = append(due, models.QuoteReminder{
			QuoteRequestID: q.ID,
			TargetID:       t.ID,
			ProviderID:     t.ProviderID,
			ProviderName:   t.ProviderName,
			OwnerUserID:    t.ProviderOwnerID,
			ElapsedMinutes: elapsed,
			Tier:           tier,
		})
	}
	return due, nil
}
