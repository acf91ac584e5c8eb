package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/credimed/app-leads/internal/models"
	"go.opentelemetry.io/otel"
)

// DocumentReviewRequest carries the reviewer's verdict
type DocumentReviewRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListRegistrationDocuments godoc
// @Summary List a registration's documents
// @Description Returns every uploaded document reference with its verification status.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param registration_id path string true "Registration ID"
// @Success 200 {array} models.DocumentRef
// @Failure 404 {object} ErrorResponse
// @Router /admin/registrations/{registration_id}/documents [get]
func ListRegistrationDocuments(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ListRegistrationDocuments")
	defer span.End()

	docs, err := deps.Registrations.ListDocuments(ctx, c.Param("registration_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// ListPendingDocuments godoc
// @Summary List documents awaiting review
// @Description Returns the review queue of uploads still pending a verdict, oldest first.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.PendingDocument
// @Failure 500 {object} ErrorResponse
// @Router /admin/documents/pending [get]
func ListPendingDocuments(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ListPendingDocuments")
	defer span.End()

	queue, err := deps.Registrations.PendingDocuments(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, queue)
}

// ReviewDocument godoc
// @Summary Review a document
// @Description Marks a document verified or rejected.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param registration_id path string true "Registration ID"
// @Param type path string true "Document type" Enums(id_document, proof_of_address, proof_of_income, student_proof)
// @Param data body DocumentReviewRequest true "Verdict"
// @Success 200 {object} models.Registration
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/registrations/{registration_id}/documents/{type} [put]
func ReviewDocument(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ReviewDocument")
	defer span.End()

	var req DocumentReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "status is required"})
		return
	}

	reg, err := deps.Registrations.ReviewDocument(ctx, c.Param("registration_id"), c.Param("type"), req.Status)
	if err != nil {
		switch err {
		case models.ErrRegistrationNotFound, models.ErrDocumentNotFound:
			respondError(c, err)
		default:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, reg)
}
