package notification

import (
	"strings"
	"time"

	notificationRepo "barkwise/database/repository/notification"
	"barkwise/models"
	"barkwise/utils"

	"go.uber.org/zap"
)

const inboxLimit = 100

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo notificationRepo.NotificationRepository
	Now  func() time.Time
}

// NewDefaultNotificationService wires the service onto a repository.
func NewDefaultNotificationService(repo notificationRepo.NotificationRepository) *DefaultNotificationService {
	return &DefaultNotificationService{Repo: repo, Now: time.Now}
}

func (s *DefaultNotificationService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Notify records an in-app notification. Failures are logged and dropped.
func (s *DefaultNotificationService) Notify(userID, title, body, category, deepLink string) {
	if userID == "" {
		return
	}
	n := &models.Notification{
		ID:        utils.NewID("n"),
		UserID:    userID,
		Title:     title,
		Body:      body,
		Category:  category,
		DeepLink:  deepLink,
		CreatedAt: s.now(),
	}
	if err := s.Repo.Create(n); err != nil {
		utils.GetLogger().Error("Notify: failed to store notification",
			zap.String("userID", userID), zap.String("title", title), zap.Error(err))
	}
}

func (s *DefaultNotificationService) ListForUser(userID string) ([]models.Notification, error) {
	return s.Repo.ListByUser(userID, inboxLimit)
}

func (s *DefaultNotificationService) MarkRead(userID, notificationID string) error {
	if err := s.Repo.MarkRead(userID, notificationID); err != nil {
		if err == notificationRepo.ErrNotFound {
			return utils.NotFoundErr("Notification not found")
		}
		return err
	}
	return nil
}

func (s *DefaultNotificationService) RegisterDeviceToken(userID, token, platform string) (bool, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return false, nil
	}
	t := &models.DeviceToken{
		UserID:    userID,
		Token:     token,
		Platform:  platform,
		CreatedAt: s.now(),
	}
	if err := s.Repo.SaveDeviceToken(t); err != nil {
		return false, err
	}
	return true, nil
}

func (s *DefaultNotificationService) TokensForUser(userID string) ([]models.DeviceToken, error) {
	return s.Repo.TokensForUser(userID)
}
