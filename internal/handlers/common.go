package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/credimed/app-leads/internal/models"
	"github.com/credimed/app-leads/internal/services"
)

// ErrorResponse is the uniform error payload
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse is the uniform acknowledgement payload
type SuccessResponse struct {
	Message string `json:"message"`
}

// HealthResponse reports service and dependency status
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// Deps carries every service the handler layer needs
type Deps struct {
	Sessions      *services.SessionStore
	Questionnaire *services.QuestionnaireService
	Matcher       *services.MatcherService
	Schemes       *services.SchemeService
	Registrations *services.RegistrationService
	Leads         *services.LeadService
	Brokers       *services.BrokerService
	Email         *services.EmailService
	Analytics     *services.AnalyticsService
	Roles         *services.RoleService
	Export        *services.ExportService
}

var deps Deps

// Init wires the handler layer to its services. Must run before any route
// is served.
func Init(d Deps) {
	deps = d
}

// respondError maps domain errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrSessionNotFound),
		errors.Is(err, models.ErrSchemeNotFound),
		errors.Is(err, models.ErrLeadNotFound),
		errors.Is(err, models.ErrBrokerNotFound),
		errors.Is(err, models.ErrTemplateNotFound),
		errors.Is(err, models.ErrRegistrationNotFound),
		errors.Is(err, models.ErrDocumentNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrEmailTaken),
		errors.Is(err, models.ErrSchemeExists),
		errors.Is(err, models.ErrRegistrationComplete):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrStepIncomplete),
		errors.Is(err, models.ErrPhoneNotVerified),
		errors.Is(err, models.ErrFinalizeRequired),
		errors.Is(err, models.ErrConsentRequired),
		errors.Is(err, models.ErrWrongStep),
		errors.Is(err, models.ErrInvalidOTP),
		errors.Is(err, models.ErrOTPNotRequested),
		errors.Is(err, models.ErrInvalidLeadStatus),
		errors.Is(err, models.ErrPasswordMismatch),
		errors.Is(err, models.ErrInvalidProvince),
		errors.Is(err, models.ErrUnknownExportType),
		errors.Is(err, models.ErrUnknownExportFormat):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrOTPCooldown):
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
