package notification

import (
	"barkwise/models"
)

// Dispatcher is the fire-and-forget sink services emit notifications to.
// Delivery problems are logged, never propagated: a failed notification
// must not fail the operation that triggered it.
type Dispatcher interface {
	Notify(userID, title, body, category, deepLink string)
}

// NotificationService exposes the notification inbox and device token
// registry on top of Dispatcher.
type NotificationService interface {
	Dispatcher
	ListForUser(userID string) ([]models.Notification, error)
	MarkRead(userID, notificationID string) error
	// RegisterDeviceToken is best-effort: a blank token reports false
	// instead of erroring.
	RegisterDeviceToken(userID, token, platform string) (bool, error)
	TokensForUser(userID string) ([]models.DeviceToken, error)
}
