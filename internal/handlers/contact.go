package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/credimed/app-leads/internal/models"
	"github.com/credimed/app-leads/internal/utils"
	"go.opentelemetry.io/otel"
)

// SubmitContact godoc
// @Summary Submit the contact form
// @Description Records a contact-form enquiry as a new lead.
// @Tags contact
// @Accept json
// @Produce json
// @Param data body models.ContactRequest true "Enquiry"
// @Success 201 {object} models.Lead
// @Failure 400 {object} ErrorResponse
// @Router /contact [post]
func SubmitContact(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "SubmitContact")
	defer span.End()

	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if req.Phone != "" {
		normalized, err := utils.NormalizePhoneNumber(req.Phone)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid phone number"})
			return
		}
		req.Phone = normalized
	}

	sessionID := c.GetHeader("X-Session-ID")
	lead, err := deps.Leads.CreateFromContact(ctx, req, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	deps.Analytics.Emit(models.EventContactSubmitted, sessionID, map[string]interface{}{
		"lead_id": lead.ID.Hex(),
	})
	c.JSON(http.StatusCreated, lead)
}
