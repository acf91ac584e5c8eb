package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/credimed/app-leads/internal/middleware"
	"github.com/credimed/app-leads/internal/models"
	"github.com/credimed/app-leads/internal/services"
	"go.opentelemetry.io/otel"
)

// ListLeads godoc
// @Summary List leads
// @Description Returns a page of leads, newest first, optionally narrowed by status and broker.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Pipeline status" Enums(new, contacted, qualified, converted, closed)
// @Param broker_id query string false "Assigned broker ID"
// @Param page query integer false "Page number"
// @Param per_page query integer false "Page size (max 100)"
// @Success 200 {object} services.LeadList
// @Failure 400 {object} ErrorResponse
// @Router /admin/leads [get]
func ListLeads(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ListLeads")
	defer span.End()

	var filters services.LeadListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid filter parameters"})
		return
	}

	list, err := deps.Leads.List(ctx, filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetLead godoc
// @Summary Get a lead
// @Description Returns a single lead with its answers, matches and notes.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead ID"
// @Success 200 {object} models.Lead
// @Failure 404 {object} ErrorResponse
// @Router /admin/leads/{id} [get]
func GetLead(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "GetLead")
	defer span.End()

	lead, err := deps.Leads.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// UpdateLead godoc
// @Summary Update a lead
// @Description Moves a lead through the pipeline and/or appends a note attributed to the acting administrator.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead ID"
// @Param data body models.LeadUpdateRequest true "Status and/or note"
// @Success 200 {object} models.Lead
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /admin/leads/{id} [put]
func UpdateLead(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "UpdateLead")
	defer span.End()

	var req models.LeadUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	author, _ := middleware.CallerEmail(c)
	lead, err := deps.Leads.Update(ctx, c.Param("id"), author, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// AssignLead godoc
// @Summary Assign a lead to a broker
// @Description Hands the lead to an existing broker for follow-up.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lead ID"
// @Param data body models.LeadAssignRequest true "Broker assignment"
// @Success 200 {object} models.Lead
// @Failure 404 {object} ErrorResponse
// @Router /admin/leads/{id}/assign [post]
func AssignLead(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AssignLead")
	defer span.End()

	var req models.LeadAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	broker, err := deps.Brokers.Get(ctx, req.BrokerID)
	if err != nil {
		respondError(c, err)
		return
	}

	lead, err := deps.Leads.Assign(ctx, c.Param("id"), broker.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}
