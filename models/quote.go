package models

import "time"

// Aggregate quote request statuses.
const (
	QuotePending   = "pending"
	QuoteResponded = "responded"
	QuoteClosed    = "closed"
)

// Per-target statuses.
const (
	TargetPending  = "pending"
	TargetAccepted = "accepted"
	TargetDeclined = "declined"
)

// QuoteTarget is one provider's slice of a quote request. It transitions
// out of pending exactly once; the reminder flags are idempotent markers
// written by the reminder scheduler.
type QuoteTarget struct {
	ID              string     `bson:"id" json:"id"`
	ProviderID      string     `bson:"providerId" json:"providerId"`
	ProviderName    string     `bson:"providerName" json:"providerName"`
	ProviderOwnerID string     `bson:"providerOwnerId" json:"providerOwnerId"`
	Status          string     `bson:"status" json:"status"` // pending | accepted | declined
	ResponseMessage string     `bson:"responseMessage,omitempty" json:"responseMessage,omitempty"`
	CreatedAt       time.Time  `bson:"createdAt" json:"createdAt"`
	RespondedAt     *time.Time `bson:"respondedAt,omitempty" json:"respondedAt,omitempty"`
	Reminder15Sent  bool       `bson:"reminder15Sent" json:"reminder15Sent"`
	Reminder60Sent  bool       `bson:"reminder60Sent" json:"reminder60Sent"`
}

// Responded reports whether the target has been answered.
func (t QuoteTarget) Responded() bool {
	return t.Status == TargetAccepted || t.Status == TargetDeclined || t.RespondedAt != nil
}

// QuoteRequest fans a service request out to up to three providers and
// tracks their responses independently. Status is a pure function of the
// target statuses, recomputed on every target update.
type QuoteRequest struct {
	ID              string        `bson:"id" json:"id"`
	RequesterID     string        `bson:"requesterId" json:"requesterId"`
	Category        string        `bson:"category" json:"category"`
	Suburb          string        `bson:"suburb" json:"suburb"`
	PreferredWindow string        `bson:"preferredWindow" json:"preferredWindow"`
	PetDetails      string        `bson:"petDetails" json:"petDetails"`
	Note            string        `bson:"note,omitempty" json:"note,omitempty"`
	Status          string        `bson:"status" json:"status"` // pending | responded | closed
	Targets         []QuoteTarget `bson:"targets" json:"targets"`
	CreatedAt       time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// AggregateQuoteStatus derives the request status from its targets:
// every target declined closes the request; any response at all moves it
// to responded; otherwise it stays pending.
func AggregateQuoteStatus(targets []QuoteTarget) string {
	if len(targets) == 0 {
		return QuoteClosed
	}
	responded := 0
	declined := 0
	for _, t := range targets {
		switch t.Status {
		case TargetAccepted:
			responded++
		case TargetDeclined:
			responded++
			declined++
		}
	}
	if declined == len(targets) {
		return QuoteClosed
	}
	if responded > 0 {
		return QuoteResponded
	}
	return QuotePending
}

// QuoteReminder describes one due reminder produced by the scheduler sweep.
type QuoteReminder struct {
	QuoteRequestID string `json:"quoteRequestId"`
	TargetID       string `json:"targetId"`
	ProviderID     string `json:"providerId"`
	ProviderName   string `json:"providerName"`
	OwnerUserID    string `json:"ownerUserId"` // provider owner to nudge
	ElapsedMinutes int    `json:"elapsedMinutes"`
	Tier           string `json:"tier"` // "15m" | "60m"
}

// QuoteRemindersPayload is the queue payload for a deferred reminder sweep.
type QuoteRemindersPayload struct {
	QuoteRequestID string `json:"quoteRequestId"`
}
