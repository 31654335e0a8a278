package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cataloglens/backend/internal/domain"
	"github.com/cataloglens/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	parseService *usecase.ParseService
}

// NewHandler creates a new HTTP handler
func NewHandler(parseService *usecase.ParseService) *Handler {
	return &Handler{parseService: parseService}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "cataloglens-backend",
		"version": "1.0.0",
	})
}

// ParseProduct parses a free-text product description into a
// canonicalized structured document
func (h *Handler) ParseProduct(c *gin.Context) {
	var req domain.ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "description is required"})
		return
	}

	if h.parseService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "parse service not configured"})
		return
	}

	result, err := h.parseService.Parse(c.Request.Context(), req.Description)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": "description cannot be empty"})
		case errors.Is(err, domain.ErrExtractionFailed), errors.Is(err, domain.ErrMalformedExtraction):
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to parse description"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetSchema returns the taxonomy schema document verbatim. The document's
// field names and shapes are a stable contract with external callers.
func (h *Handler) GetSchema(c *gin.Context) {
	if h.parseService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "parse service not configured"})
		return
	}
	c.JSON(http.StatusOK, h.parseService.Schema())
}
