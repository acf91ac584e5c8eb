package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/credimed/app-leads/internal/models"
	"go.opentelemetry.io/otel"
)

// AdminStatsResponse aggregates pipeline and event totals for the dashboard
type AdminStatsResponse struct {
	LeadsByStatus map[string]int64 `json:"leads_by_status"`
	EventsByType  map[string]int64 `json:"events_by_type"`
}

// TrackEvent godoc
// @Summary Record an analytics event
// @Description Accepts a page-level analytics event. The write is fire-and-forget; the endpoint always acknowledges.
// @Tags events
// @Accept json
// @Produce json
// @Param data body models.EventRequest true "Event"
// @Success 202 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /events [post]
func TrackEvent(c *gin.Context) {
	_, span := otel.Tracer("").Start(c.Request.Context(), "TrackEvent")
	defer span.End()

	var req models.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "event_type is required"})
		return
	}

	deps.Analytics.TrackAsync(models.AnalyticsEvent{
		EventType: req.EventType,
		EventData: req.EventData,
		SessionID: req.SessionID,
		PageURL:   req.PageURL,
		UserAgent: c.Request.UserAgent(),
	})
	c.JSON(http.StatusAccepted, SuccessResponse{Message: "event recorded"})
}

// ListRecentEvents godoc
// @Summary List recent analytics events
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param event_type query string false "Filter by event type"
// @Param limit query integer false "Maximum events to return (max 500)"
// @Success 200 {array} models.AnalyticsEvent
// @Router /admin/events [get]
func ListRecentEvents(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ListRecentEvents")
	defer span.End()

	limit, _ := strconv.Atoi(c.Query("limit"))
	events, err := deps.Analytics.Recent(ctx, c.Query("event_type"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// AdminStats godoc
// @Summary Dashboard statistics
// @Description Returns lead totals per pipeline status and event totals per type.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} AdminStatsResponse
// @Router /admin/stats [get]
func AdminStats(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AdminStats")
	defer span.End()

	leadCounts, err := deps.Leads.CountByStatus(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	eventCounts, err := deps.Analytics.CountByType(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, AdminStatsResponse{
		LeadsByStatus: leadCounts,
		EventsByType:  eventCounts,
	})
}
