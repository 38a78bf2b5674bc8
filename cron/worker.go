package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"barkwise/config"
	"barkwise/models"
	"barkwise/services/quote"
	"barkwise/services/tasks"
	"barkwise/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitQuoteReminderWorker runs the async worker in background.
func InitQuoteReminderWorker(quoteSvc quote.QuoteService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeQuoteReminders, handleQuoteReminderTask(quoteSvc))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[QuoteReminderWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[QuoteReminderWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[QuoteReminderWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleQuoteReminderTask(quoteSvc quote.QuoteService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.QuoteRemindersPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[QuoteReminderHandler] 🔴 Invalid payload: %v", err)
			return err
		}

		log.Printf("[QuoteReminderHandler] ⏰ Sweeping reminders for quote request %s", p.QuoteRequestID)

		sent, err := quoteSvc.DispatchQuoteReminders(p.QuoteRequestID)
		if err != nil {
			// A deleted request has nothing to remind; dropping the task
			// beats retrying it forever.
			if utils.IsNotFound(err) {
				log.Printf("[QuoteReminderHandler] ⚠️ Quote request %s gone, dropping task", p.QuoteRequestID)
				return nil
			}
			log.Printf("[QuoteReminderHandler] ❌ Sweep failed for %s: %v", p.QuoteRequestID, err)
			return err
		}

		log.Printf("[QuoteReminderHandler] 📨 Sent %d reminder(s) for quote request %s", len(sent), p.QuoteRequestID)
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[QuoteReminderWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
