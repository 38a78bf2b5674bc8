package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"barkwise/middleware"
	"barkwise/services/provider"
	"barkwise/utils"
)

// ProviderHandler serves the listing and directory endpoints.
type ProviderHandler struct {
	Service provider.ProviderService
}

// CreateProviderHandler handles POST /api/services/providers.
func (h *ProviderHandler) CreateProviderHandler(c *gin.Context) {
	var input provider.CreateProviderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	p, err := h.Service.CreateProvider(middleware.UserID(c), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// GetProviderHandler handles GET /api/services/providers/:id.
func (h *ProviderHandler) GetProviderHandler(c *gin.Context) {
	p, err := h.Service.GetProvider(c.Param("id"), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListProvidersHandler handles GET /api/services/providers.
func (h *ProviderHandler) ListProvidersHandler(c *gin.Context) {
	q := provider.ListQuery{
		Category:        c.Query("category"),
		Suburb:          c.Query("suburb"),
		ViewerID:        middleware.UserID(c),
		IncludeInactive: c.Query("include_inactive") == "true",
		Q:               c.Query("q"),
		SortBy:          c.Query("sort_by"),
	}

	if v := c.Query("min_rating"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_rating"})
			return
		}
		q.MinRating = f
	}
	var bad string
	q.MaxDistanceKM = floatQuery(c, "max_distance_km", &bad)
	q.UserLat = floatQuery(c, "lat", &bad)
	q.UserLng = floatQuery(c, "lng", &bad)
	if bad != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + bad})
		return
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		q.Limit = n
	}

	providers, err := h.Service.ListProviders(q)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, providers)
}

// floatQuery parses an optional float query parameter, recording the
// parameter name in bad when the value is present but malformed.
func floatQuery(c *gin.Context, key string, bad *string) *float64 {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*bad = key
		return nil
	}
	return &f
}

// UpdateProviderHandler handles PATCH /api/services/providers/:id.
func (h *ProviderHandler) UpdateProviderHandler(c *gin.Context) {
	var patch provider.ProviderPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	p, err := h.Service.UpdateProvider(c.Param("id"), middleware.UserID(c), patch)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// CancelProviderHandler handles POST /api/services/providers/:id/cancel.
func (h *ProviderHandler) CancelProviderHandler(c *gin.Context) {
	if err := h.Service.CancelProvider(c.Param("id"), middleware.UserID(c)); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Listing cancelled"})
}

// RestoreProviderHandler handles POST /api/services/providers/:id/restore.
func (h *ProviderHandler) RestoreProviderHandler(c *gin.Context) {
	p, err := h.Service.RestoreProvider(c.Param("id"), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// AddReviewHandler handles POST /api/services/providers/:id/reviews.
func (h *ProviderHandler) AddReviewHandler(c *gin.Context) {
	var input struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	p, err := h.Service.AddReview(c.Param("id"), middleware.UserID(c), input.Rating, input.Comment)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// VetVerifyHandler handles POST /api/services/providers/:id/vet-verify.
func (h *ProviderHandler) VetVerifyHandler(c *gin.Context) {
	p, err := h.Service.VerifyGroomerByVet(c.Param("id"), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
