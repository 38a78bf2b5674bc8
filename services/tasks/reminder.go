package tasks

import (
	"barkwise/models"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TypeQuoteReminders = "quote:reminders"

func NewQuoteReminderTask(quoteRequestID string, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(models.QuoteRemindersPayload{QuoteRequestID: quoteRequestID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeQuoteReminders, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}
