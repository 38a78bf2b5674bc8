package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"barkwise/middleware"
	"barkwise/services/notification"
	"barkwise/utils"
)

// NotificationHandler serves the inbox and device registry endpoints.
type NotificationHandler struct {
	Service notification.NotificationService
}

// ListNotificationsHandler handles GET /api/notifications.
func (h *NotificationHandler) ListNotificationsHandler(c *gin.Context) {
	records, err := h.Service.ListForUser(middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// MarkReadHandler handles POST /api/notifications/:id/read.
func (h *NotificationHandler) MarkReadHandler(c *gin.Context) {
	if err := h.Service.MarkRead(middleware.UserID(c), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked read"})
}

// RegisterDeviceHandler handles POST /api/notifications/register-device.
func (h *NotificationHandler) RegisterDeviceHandler(c *gin.Context) {
	var input struct {
		Token    string `json:"token"`
		Platform string `json:"platform"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	registered, err := h.Service.RegisterDeviceToken(middleware.UserID(c), input.Token, input.Platform)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"registered": registered})
}
