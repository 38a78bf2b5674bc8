package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"barkwise/middleware"
	"barkwise/services/quote"
	"barkwise/utils"
)

// QuoteHandler serves the quote routing endpoints.
type QuoteHandler struct {
	Service quote.QuoteService
}

// CreateQuoteHandler handles POST /api/quotes.
func (h *QuoteHandler) CreateQuoteHandler(c *gin.Context) {
	var input quote.CreateQuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	q, err := h.Service.CreateQuoteRequest(middleware.UserID(c), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, q)
}

// GetQuoteHandler handles GET /api/quotes/:id.
func (h *QuoteHandler) GetQuoteHandler(c *gin.Context) {
	q, err := h.Service.GetQuoteRequest(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// ListMyQuotesHandler handles GET /api/quotes.
func (h *QuoteHandler) ListMyQuotesHandler(c *gin.Context) {
	quotes, err := h.Service.ListQuoteRequestsForRequester(middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quotes)
}

// ListIncomingQuotesHandler handles GET /api/quotes/incoming.
func (h *QuoteHandler) ListIncomingQuotesHandler(c *gin.Context) {
	quotes, err := h.Service.ListIncomingQuoteRequests(middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quotes)
}

// RespondQuoteHandler handles POST /api/quotes/:id/respond.
func (h *QuoteHandler) RespondQuoteHandler(c *gin.Context) {
	var input struct {
		ProviderID string `json:"providerId"`
		Decision   string `json:"decision"`
		Message    string `json:"message"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	q, err := h.Service.RespondToQuoteTarget(c.Param("id"), input.ProviderID, middleware.UserID(c), input.Decision, input.Message)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}
