package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/credimed/app-leads/internal/models"
	"go.opentelemetry.io/otel"
)

// SchemeSelectionRequest names the matched scheme the visitor picked
type SchemeSelectionRequest struct {
	SchemeID string `json:"scheme_id" binding:"required"`
}

// CreateSession godoc
// @Summary Start a comparison wizard session
// @Description Creates a new questionnaire session at step one and returns its state.
// @Tags sessions
// @Produce json
// @Success 201 {object} models.QuestionnaireState
// @Failure 500 {object} ErrorResponse
// @Router /sessions [post]
func CreateSession(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "CreateSession")
	defer span.End()

	state, err := deps.Questionnaire.StartSession(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, state)
}

// GetSession godoc
// @Summary Get wizard session state
// @Description Returns the current step, accumulated answers and any match results for a session.
// @Tags sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} models.QuestionnaireState
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{session_id} [get]
func GetSession(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "GetSession")
	defer span.End()

	state, err := deps.Questionnaire.GetSession(ctx, c.Param("session_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// UpdateSessionAnswers godoc
// @Summary Save wizard answers
// @Description Merges partial answers into the session. Fields absent from the payload keep their stored value.
// @Tags sessions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param data body models.QuestionnaireAnswers true "Partial answers"
// @Success 200 {object} models.QuestionnaireState
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{session_id}/answers [put]
func UpdateSessionAnswers(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "UpdateSessionAnswers")
	defer span.End()

	var partial models.QuestionnaireAnswers
	if err := c.ShouldBindJSON(&partial); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	state, err := deps.Questionnaire.UpdateAnswers(ctx, c.Param("session_id"), partial)
	if err != nil {
		if err == models.ErrSessionNotFound {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, state)
}

// NextSessionStep godoc
// @Summary Advance the wizard
// @Description Moves the session one step forward. The current step's answer must be present. Advancing off the final step computes matches, stores the lead and returns the results.
// @Tags sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} models.QuestionnaireState
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /sessions/{session_id}/next [post]
func NextSessionStep(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "NextSessionStep")
	defer span.End()

	state, err := deps.Questionnaire.Next(ctx, c.Param("session_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// PrevSessionStep godoc
// @Summary Step the wizard back
// @Description Moves the session one step back, clamped at the first step. Stored answers are kept.
// @Tags sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} models.QuestionnaireState
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{session_id}/prev [post]
func PrevSessionStep(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "PrevSessionStep")
	defer span.End()

	state, err := deps.Questionnaire.Prev(ctx, c.Param("session_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// ResetSession godoc
// @Summary Reset the wizard
// @Description Wipes all answers and results, returning the session to step one under the same ID.
// @Tags sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} models.QuestionnaireState
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{session_id}/reset [post]
func ResetSession(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ResetSession")
	defer span.End()

	state, err := deps.Questionnaire.Reset(ctx, c.Param("session_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// SubmitSession godoc
// @Summary Recompute matches
// @Description Reruns matching for a completed session, refreshing the stored results and lead.
// @Tags sessions
// @Produce json
// @Param session_id path string true "Session ID"
// @Success 200 {object} models.QuestionnaireState
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /sessions/{session_id}/submit [post]
func SubmitSession(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "SubmitSession")
	defer span.End()

	state, err := deps.Questionnaire.Submit(ctx, c.Param("session_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// SelectScheme godoc
// @Summary Record a scheme selection
// @Description Marks one of the session's matched schemes as the visitor's pick and records it on the lead.
// @Tags sessions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID"
// @Param data body SchemeSelectionRequest true "Selected scheme"
// @Success 200 {object} models.QuestionnaireState
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{session_id}/selection [post]
func SelectScheme(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "SelectScheme")
	defer span.End()

	var req SchemeSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "scheme_id is required"})
		return
	}

	state, err := deps.Questionnaire.SelectScheme(ctx, c.Param("session_id"), req.SchemeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}
