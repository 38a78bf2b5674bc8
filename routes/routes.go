package routes

import (
	"barkwise/handlers"
	"barkwise/middleware"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterServiceRoutes registers the provider directory, availability and
// booking endpoints.
func RegisterServiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/services")
	{
		// Public directory reads.
		api.GET("/providers", hb.Providers.ListProvidersHandler)
		api.GET("/providers/:id", hb.Providers.GetProviderHandler)
		api.GET("/providers/:id/availability", hb.Availability.GetAvailabilityHandler)
		api.GET("/providers/:id/blackouts", hb.Bookings.ListBlackoutsHandler)
		api.GET("/bookings/holds/:id", hb.Bookings.GetHoldHandler)

		// Everything that acts on behalf of a user requires identity.
		protected := api.Group("")
		protected.Use(middleware.RequireUser())
		protected.POST("/providers", hb.Providers.CreateProviderHandler)
		protected.PATCH("/providers/:id", hb.Providers.UpdateProviderHandler)
		protected.POST("/providers/:id/cancel", hb.Providers.CancelProviderHandler)
		protected.POST("/providers/:id/restore", hb.Providers.RestoreProviderHandler)
		protected.POST("/providers/:id/reviews", hb.Providers.AddReviewHandler)
		protected.POST("/providers/:id/vet-verify", hb.Providers.VetVerifyHandler)
		protected.POST("/providers/:id/blackouts", hb.Bookings.CreateBlackoutHandler)
		protected.GET("/providers/:id/bookings", hb.Bookings.ListProviderBookingsHandler)
		protected.POST("/bookings", hb.Bookings.CreateBookingHandler)
		protected.GET("/bookings", hb.Bookings.ListMyBookingsHandler)
		protected.POST("/bookings/holds", hb.Bookings.CreateHoldHandler)
		protected.POST("/bookings/:id/status", hb.Bookings.UpdateBookingStatusHandler)
	}
}

// RegisterQuoteRoutes registers the quote request endpoints.
func RegisterQuoteRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/quotes")
	{
		api.Use(middleware.RequireUser())
		api.POST("", hb.Quotes.CreateQuoteHandler)
		api.GET("", hb.Quotes.ListMyQuotesHandler)
		api.GET("/incoming", hb.Quotes.ListIncomingQuotesHandler)
		api.GET("/:id", hb.Quotes.GetQuoteHandler)
		api.POST("/:id/respond", hb.Quotes.RespondQuoteHandler)
	}
}

// RegisterCommunityRoutes registers group, challenge and invite endpoints.
func RegisterCommunityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/community")
	{
		// Group discovery and invite resolution work without identity.
		api.GET("/groups", hb.Groups.ListGroupsHandler)
		api.GET("/groups/:id", hb.Groups.GetGroupHandler)
		api.GET("/groups/:id/challenges", hb.Groups.ListChallengesHandler)
		api.GET("/invites/:token", hb.Groups.ResolveInviteHandler)

		protected := api.Group("")
		protected.Use(middleware.RequireUser())
		protected.POST("/groups", hb.Groups.CreateGroupHandler)
		protected.POST("/groups/:id/join", hb.Groups.JoinGroupHandler)
		protected.POST("/groups/:id/members", hb.Groups.AddMemberHandler)
		protected.GET("/groups/:id/join-requests", hb.Groups.ListJoinRequestsHandler)
		protected.POST("/groups/:id/join-requests", hb.Groups.ModerateJoinRequestHandler)
		protected.POST("/groups/:id/challenges/participate", hb.Groups.ParticipateHandler)
		protected.POST("/invites", hb.Groups.CreateInviteHandler)
		protected.POST("/invites/:token/redeem", hb.Groups.RedeemInviteHandler)
	}
}

// RegisterNotificationRoutes registers the inbox endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.RequireUser())
		api.GET("", hb.Notifications.ListNotificationsHandler)
		api.POST("/register-device", hb.Notifications.RegisterDeviceHandler)
		api.POST("/:id/read", hb.Notifications.MarkReadHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Barkwise"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterServiceRoutes(r, hb)
	RegisterQuoteRoutes(r, hb)
	RegisterCommunityRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterHealthRoute(r)
}
