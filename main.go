package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"barkwise/config"
	"barkwise/cron"
	"barkwise/database"
	bookingRepoPkg "barkwise/database/repository/booking"
	groupRepoPkg "barkwise/database/repository/group"
	holdRepoPkg "barkwise/database/repository/hold"
	notificationRepoPkg "barkwise/database/repository/notification"
	providerRepoPkg "barkwise/database/repository/provider"
	quoteRepoPkg "barkwise/database/repository/quote"
	"barkwise/handlers"
	"barkwise/middleware"
	"barkwise/routes"
	"barkwise/services/availability"
	"barkwise/services/booking"
	"barkwise/services/group"
	"barkwise/services/notification"
	"barkwise/services/provider"
	"barkwise/services/quote"
	"barkwise/services/reputation"
	"barkwise/services/tasks"
	"barkwise/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitHoldCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(middleware.Identity())

	// repositories.
	provRepo := providerRepoPkg.NewMongoProviderRepo()
	bookRepo := bookingRepoPkg.NewMongoBookingRepo()
	qtRepo := quoteRepoPkg.NewMongoQuoteRepo()
	grpRepo := groupRepoPkg.NewMongoGroupRepo()
	notifRepo := notificationRepoPkg.NewMongoNotificationRepo()
	holdStore := holdRepoPkg.NewRedisHoldStore()

	// Task queue client for the deferred quote reminder sweeps.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()

	// services.
	notificationService := notification.NewDefaultNotificationService(notifRepo)

	reputationService := &reputation.DefaultReputationService{
		Quotes:    qtRepo,
		Providers: provRepo,
		Cache:     utils.GetCacheClient(),
	}

	availabilityService := &availability.DefaultAvailabilityService{
		Providers: provRepo,
		Bookings:  bookRepo,
	}

	providerService := provider.NewDefaultProviderService(
		provRepo, bookRepo, grpRepo, notificationService, utils.GetCacheClient())

	bookingService := booking.NewDefaultBookingService(
		bookRepo, provRepo, holdStore, notificationService)

	quoteService := quote.NewDefaultQuoteService(
		qtRepo, provRepo, notificationService, reputationService,
		tasks.NewAsynqScheduler(asynqClient))

	groupService := group.NewDefaultGroupService(grpRepo, notificationService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Availability:  &handlers.AvailabilityHandler{Service: availabilityService},
		Providers:     &handlers.ProviderHandler{Service: providerService},
		Bookings:      &handlers.BookingHandler{Service: bookingService},
		Quotes:        &handlers.QuoteHandler{Service: quoteService},
		Groups:        &handlers.GroupHandler{Service: groupService},
		Notifications: &handlers.NotificationHandler{Service: notificationService},
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background worker for deferred quote reminders.
	cron.InitQuoteReminderWorker(quoteService)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetHoldClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
