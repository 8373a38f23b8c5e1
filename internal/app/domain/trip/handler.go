package trip

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/domain/itinerary"
	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/domain/share"
	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/middleware"
	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/models"
	"github.com/TejasKeerthi/yatra-smart-guide/internal/app/observability/metrics"
)

// Handler exposes the trip state machine over HTTP. Every mutation
// returns the post-transition snapshot so clients can render from the
// response alone.
type Handler struct {
	service Service
	shares  share.Service
	manager *Manager
	logger  *zap.Logger
}

func NewHandler(service Service, shares share.Service, manager *Manager, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		shares:  shares,
		manager: manager,
		logger:  logger,
	}
}

// Trips are keyed by the authenticated uid; the router guards these
// routes behind the auth middleware.
func (h *Handler) trip(c *gin.Context) *Trip {
	return h.manager.Get(middleware.GetSessionFromContext(c).UID)
}

type searchRequest struct {
	Query string `json:"query"`
}

type selectRequest struct {
	AttractionID string `json:"attractionId" binding:"required"`
}

// GetTrip handles GET /api/trip: the current snapshot. A one-shot ?trip=
// parameter performs the shared-link jump; if the trip is not Idle the
// parameter is consumed without effect.
func (h *Handler) GetTrip(c *gin.Context) {
	t := h.trip(c)
	if id := c.Query("trip"); id != "" {
		snap, err := h.service.LoadShared(c.Request.Context(), t, id)
		if err == nil {
			c.JSON(http.StatusOK, snap)
			return
		}
	}
	c.JSON(http.StatusOK, t.Snapshot())
}

// Search handles POST /api/search.
func (h *Handler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	snap, err := h.service.SubmitQuery(c.Request.Context(), h.trip(c), req.Query)
	metrics.Get().SearchRequestsTotal.Add(c.Request.Context(), 1,
		metric.WithAttributes(attribute.Bool("accepted", err == nil)))
	h.respond(c, snap, err)
}

// Toggle handles POST /api/trip/select.
func (h *Handler) Toggle(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "attractionId is required"})
		return
	}

	snap, err := h.service.ToggleAttraction(h.trip(c), req.AttractionID)
	h.respond(c, snap, err)
}

// Generate handles POST /api/trip/generate.
func (h *Handler) Generate(c *gin.Context) {
	start := time.Now()
	snap, err := h.service.Generate(c.Request.Context(), h.trip(c))
	m := metrics.Get()
	m.ItineraryRequestsTotal.Add(c.Request.Context(), 1,
		metric.WithAttributes(attribute.Bool("accepted", err == nil)))
	m.GenerationDuration.Record(c.Request.Context(), time.Since(start).Seconds())
	h.respond(c, snap, err)
}

// Reset handles POST /api/trip/reset.
func (h *Handler) Reset(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Reset(h.trip(c)))
}

// Share handles POST /api/share: persist the itinerary currently on
// screen and hand back a short link.
func (h *Handler) Share(c *gin.Context) {
	snap := h.trip(c).Snapshot()
	if snap.State != StateViewingPlan || snap.Itinerary == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "no itinerary to share"})
		return
	}

	id, err := h.shares.Save(c.Request.Context(), *snap.Itinerary, snap.Query)
	if err != nil {
		h.logger.Error("Failed to save shared trip", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to share trip"})
		return
	}

	metrics.Get().SharedTripsCreatedTotal.Add(c.Request.Context(), 1)
	c.JSON(http.StatusOK, gin.H{"id": id, "url": "/?trip=" + id})
}

// ExportPDF handles GET /api/trip/pdf: the itinerary on screen as a
// printable document.
func (h *Handler) ExportPDF(c *gin.Context) {
	snap := h.trip(c).Snapshot()
	if snap.State != StateViewingPlan || snap.Itinerary == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "no itinerary to export"})
		return
	}

	shareURL := ""
	if id := c.Query("share"); id != "" {
		shareURL = "/?trip=" + id
	}

	payload, err := itinerary.ExportPDF(snap.Itinerary, snap.Query, shareURL)
	if err != nil {
		h.logger.Error("PDF export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export itinerary"})
		return
	}

	filename := fmt.Sprintf("itinerary-%s.pdf", snap.Query)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", payload)
}

// respond maps service errors to status codes. Pipeline failures never
// reach here as errors; they surface inside the snapshot message.
func (h *Handler) respond(c *gin.Context, snap Snapshot, err error) {
	switch {
	case err == nil:
		c.JSON(http.StatusOK, snap)
	case errors.Is(err, models.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": "another request is in flight", "snapshot": snap})
	case errors.Is(err, models.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "snapshot": snap})
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "snapshot": snap})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "snapshot": snap})
	default:
		h.logger.Error("Trip operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
