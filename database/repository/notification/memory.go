package notificationRepo

import (
	"sort"
	"sync"

	"barkwise/models"
)

// MemoryNotificationRepo is an in-memory NotificationRepository used in
// tests.
type MemoryNotificationRepo struct {
	mu            sync.Mutex
	notifications []models.Notification
	tokens        []models.DeviceToken
}

// NewMemoryNotificationRepo returns an empty in-memory repository.
func NewMemoryNotificationRepo() *MemoryNotificationRepo {
	return &MemoryNotificationRepo{}
}

func (r *MemoryNotificationRepo) Create(notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *MemoryNotificationRepo) ListByUser(userID string, limit int64) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryNotificationRepo) MarkRead(userID, notificationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].ID == notificationID && r.notifications[i].UserID == userID {
			r.notifications[i].Read = true
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryNotificationRepo) SaveDeviceToken(token *models.DeviceToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tokens {
		if r.tokens[i].UserID == token.UserID && r.tokens[i].Token == token.Token {
			r.tokens[i] = *token
			return nil
		}
	}
	r.tokens = append(r.tokens, *token)
	return nil
}

func (r *MemoryNotificationRepo) TokensForUser(userID string) ([]models.DeviceToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.DeviceToken
	for _, t := range r.tokens {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}
