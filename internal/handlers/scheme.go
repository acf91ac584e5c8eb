package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/credimed/app-leads/internal/models"
	"go.opentelemetry.io/otel"
)

// ListSchemes godoc
// @Summary List active schemes
// @Description Returns active schemes, optionally narrowed by the same filters the wizard uses.
// @Tags schemes
// @Produce json
// @Param budget query number false "Maximum monthly premium in ZAR"
// @Param chronic query boolean false "Require chronic medication cover"
// @Param dependants query integer false "Total dependants"
// @Param day_to_day query string false "Day-to-day tier" Enums(comprehensive, basic, none)
// @Param dsp_comfort query string false "DSP comfort tier" Enums(high, medium, basic)
// @Param hospital_network query string false "Hospital network tier" Enums(comprehensive, selective, basic)
// @Success 200 {array} models.MedicalScheme
// @Failure 400 {object} ErrorResponse
// @Router /schemes [get]
func ListSchemes(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ListSchemes")
	defer span.End()

	var filters models.SchemeFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid filter parameters"})
		return
	}

	schemes, err := deps.Schemes.ListFiltered(ctx, filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schemes)
}

// GetScheme godoc
// @Summary Get a scheme
// @Description Returns a single scheme by ID.
// @Tags schemes
// @Produce json
// @Param id path string true "Scheme ID"
// @Success 200 {object} models.MedicalScheme
// @Failure 404 {object} ErrorResponse
// @Router /schemes/{id} [get]
func GetScheme(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "GetScheme")
	defer span.End()

	scheme, err := deps.Schemes.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, scheme)
}

// AdminListSchemes godoc
// @Summary List all schemes
// @Description Returns the full catalogue including inactive plans.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.MedicalScheme
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /admin/schemes [get]
func AdminListSchemes(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AdminListSchemes")
	defer span.End()

	schemes, err := deps.Schemes.List(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schemes)
}

// CreateScheme godoc
// @Summary Create a scheme
// @Description Adds a plan to the catalogue. The scheme and plan name pair must be unique.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param data body models.SchemeCreateRequest true "Scheme"
// @Success 201 {object} models.MedicalScheme
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/schemes [post]
func CreateScheme(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "CreateScheme")
	defer span.End()

	var req models.SchemeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	scheme, err := deps.Schemes.Create(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, scheme)
}

// UpdateScheme godoc
// @Summary Update a scheme
// @Description Applies the provided fields to an existing scheme. Omitted fields are untouched.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Scheme ID"
// @Param data body models.SchemeUpdateRequest true "Fields to update"
// @Success 200 {object} models.MedicalScheme
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/schemes/{id} [put]
func UpdateScheme(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "UpdateScheme")
	defer span.End()

	var req models.SchemeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	scheme, err := deps.Schemes.Update(ctx, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, scheme)
}

// DeleteScheme godoc
// @Summary Delete a scheme
// @Description Removes a plan from the catalogue.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Scheme ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/schemes/{id} [delete]
func DeleteScheme(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "DeleteScheme")
	defer span.End()

	if err := deps.Schemes.Delete(ctx, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "scheme deleted"})
}
