package notificationRepo

import (
	"errors"

	"barkwise/models"
)

// ErrNotFound is returned when no notification matches the given id.
var ErrNotFound = errors.New("notification not found")

// NotificationRepository stores in-app notifications and device tokens.
type NotificationRepository interface {
	Create(notification *models.Notification) error
	// ListByUser returns the user's notifications, newest first, capped
	// at limit.
	ListByUser(userID string, limit int64) ([]models.Notification, error)
	// MarkRead flips the read flag of one of the user's notifications.
	MarkRead(userID, notificationID string) error
	SaveDeviceToken(token *models.DeviceToken) error
	TokensForUser(userID string) ([]models.DeviceToken, error)
}
