package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"barkwise/services/availability"
	"barkwise/utils"
)

// AvailabilityHandler serves the slot resolver endpoint.
type AvailabilityHandler struct {
	Service availability.AvailabilityService
}

// GetAvailabilityHandler handles GET /api/services/providers/:id/availability.
func (h *AvailabilityHandler) GetAvailabilityHandler(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}
	slots, err := h.Service.Resolve(c.Param("id"), date)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}
