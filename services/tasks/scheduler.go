package tasks

import (
	"time"

	"github.com/hibiken/asynq"
)

// Reminder sweeps fire at these offsets from quote creation. The sweep
// itself decides which targets are due, so a late-running task is safe.
var reminderOffsets = []time.Duration{15 * time.Minute, 60 * time.Minute}

// AsynqScheduler enqueues deferred reminder sweeps onto the task queue.
type AsynqScheduler struct {
	Client *asynq.Client
}

func NewAsynqScheduler(client *asynq.Client) *AsynqScheduler {
	return &AsynqScheduler{Client: client}
}

// ScheduleQuoteReminders enqueues one sweep per reminder tier for the request.
func (s *AsynqScheduler) ScheduleQuoteReminders(quoteRequestID string, createdAt time.Time) error {
	for _, offset := range reminderOffsets {
		task, opts, err := NewQuoteReminderTask(quoteRequestID, createdAt.Add(offset))
		if err != nil {
			return err
		}
		if _, err := s.Client.Enqueue(task, opts...); err != nil {
			return err
		}
	}
	return nil
}
