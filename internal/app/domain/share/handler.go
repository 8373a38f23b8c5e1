package share

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/models"
)

// Handler serves stored itineraries by share id. The lookup is public:
// anyone holding the link can read the trip.
type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// GetShared handles GET /api/shared/:id.
func (h *Handler) GetShared(c *gin.Context) {
	id := c.Param("id")

	record, err := h.service.Load(c.Request.Context(), id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, record)
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "shared trip not found"})
	default:
		h.logger.Error("Failed to load shared trip", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load shared trip"})
	}
}
