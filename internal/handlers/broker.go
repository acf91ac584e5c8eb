package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/credimed/app-leads/internal/models"
	"go.opentelemetry.io/otel"
)

// ListBrokers godoc
// @Summary List brokers
// @Description Returns every broker on the roster ordered by name.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Broker
// @Router /admin/brokers [get]
func ListBrokers(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ListBrokers")
	defer span.End()

	brokers, err := deps.Brokers.List(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, brokers)
}

// GetBroker godoc
// @Summary Get a broker
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Broker ID"
// @Success 200 {object} models.Broker
// @Failure 404 {object} ErrorResponse
// @Router /admin/brokers/{id} [get]
func GetBroker(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "GetBroker")
	defer span.End()

	broker, err := deps.Brokers.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, broker)
}

// CreateBroker godoc
// @Summary Register a broker
// @Description Adds a broker to the roster. Broker emails are unique.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param data body models.BrokerCreateRequest true "Broker"
// @Success 201 {object} models.Broker
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/brokers [post]
func CreateBroker(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "CreateBroker")
	defer span.End()

	var req models.BrokerCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	broker, err := deps.Brokers.Create(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, broker)
}

// UpdateBroker godoc
// @Summary Update a broker
// @Description Applies the provided fields to an existing broker. Omitted fields are untouched.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Broker ID"
// @Param data body models.BrokerUpdateRequest true "Fields to update"
// @Success 200 {object} models.Broker
// @Failure 404 {object} ErrorResponse
// @Router /admin/brokers/{id} [put]
func UpdateBroker(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "UpdateBroker")
	defer span.End()

	var req models.BrokerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	broker, err := deps.Brokers.Update(ctx, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, broker)
}

// DeleteBroker godoc
// @Summary Remove a broker
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Broker ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/brokers/{id} [delete]
func DeleteBroker(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "DeleteBroker")
	defer span.End()

	if err := deps.Brokers.Delete(ctx, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "broker deleted"})
}
