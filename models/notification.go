package models

import "time"

// Notification categories.
const (
	NotifyBooking   = "booking"
	NotifyMessage   = "message"
	NotifyCommunity = "community"
	NotifySystem    = "system"
)

// Notification is a stored in-app notification. Delivery to devices is a
// best-effort concern outside this core; the record is the source of truth.
type Notification struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	Title     string    `bson:"title" json:"title"`
	Body      string    `bson:"body" json:"body"`
	Category  string    `bson:"category" json:"category"` // booking | message | community | system
	Read      bool      `bson:"read" json:"read"`
	DeepLink  string    `bson:"deepLink,omitempty" json:"deepLink,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// DeviceToken registers a push endpoint for a user. Registration is
// best-effort: blank tokens are dropped without error.
type DeviceToken struct {
	UserID    string    `bson:"userId" json:"userId"`
	Token     string    `bson:"token" json:"token"`
	Platform  string    `bson:"platform,omitempty" json:"platform,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
