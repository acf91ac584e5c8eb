package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/credimed/app-leads/internal/models"
	"go.opentelemetry.io/otel"
)

// ListEmailTemplates godoc
// @Summary List email templates
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.EmailTemplate
// @Router /admin/templates [get]
func ListEmailTemplates(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ListEmailTemplates")
	defer span.End()

	templates, err := deps.Email.ListTemplates(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

// GetEmailTemplate godoc
// @Summary Get an email template
// @Description Returns the template stored under a key. The welcome key resolves to a built-in default when unconfigured.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param key path string true "Template key"
// @Success 200 {object} models.EmailTemplate
// @Failure 404 {object} ErrorResponse
// @Router /admin/templates/{key} [get]
func GetEmailTemplate(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "GetEmailTemplate")
	defer span.End()

	tmpl, err := deps.Email.GetTemplate(ctx, c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tmpl)
}

// UpsertEmailTemplate godoc
// @Summary Create or replace an email template
// @Description Stores the subject and body under the given key. The body may contain {{placeholder}} markers.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param data body models.EmailTemplateRequest true "Template"
// @Success 200 {object} models.EmailTemplate
// @Failure 400 {object} ErrorResponse
// @Router /admin/templates [put]
func UpsertEmailTemplate(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "UpsertEmailTemplate")
	defer span.End()

	var req models.EmailTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	tmpl, err := deps.Email.UpsertTemplate(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tmpl)
}

// DeleteEmailTemplate godoc
// @Summary Delete an email template
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param key path string true "Template key"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/templates/{key} [delete]
func DeleteEmailTemplate(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "DeleteEmailTemplate")
	defer span.End()

	if err := deps.Email.DeleteTemplate(ctx, c.Param("key")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "template deleted"})
}
