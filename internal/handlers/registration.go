package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/credimed/app-leads/internal/models"
	"go.opentelemetry.io/otel"
)

// StartRegistrationRequest optionally links the registration to a wizard
// session
type StartRegistrationRequest struct {
	SessionID string `json:"session_id"`
}

// StartRegistration godoc
// @Summary Start a registration
// @Description Opens a new registration at the account step, optionally linked to a wizard session.
// @Tags registrations
// @Accept json
// @Produce json
// @Param data body StartRegistrationRequest false "Optional session link"
// @Success 201 {object} models.Registration
// @Failure 500 {object} ErrorResponse
// @Router /registrations [post]
func StartRegistration(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "StartRegistration")
	defer span.End()

	var req StartRegistrationRequest
	_ = c.ShouldBindJSON(&req)

	reg, err := deps.Registrations.Start(ctx, req.SessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reg)
}

// GetRegistration godoc
// @Summary Get registration state
// @Description Returns the current step and captured data for a registration.
// @Tags registrations
// @Produce json
// @Param registration_id path string true "Registration ID"
// @Success 200 {object} models.Registration
// @Failure 404 {object} ErrorResponse
// @Router /registrations/{registration_id} [get]
func GetRegistration(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "GetRegistration")
	defer span.End()

	reg, err := deps.Registrations.Get(ctx, c.Param("registration_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reg)
}

// SubmitAccountStep godoc
// @Summary Submit account details
// @Description Captures email, phone and password, then sends a verification code to the phone.
// @Tags registrations
// @Accept json
// @Produce json
// @Param registration_id path string true "Registration ID"
// @Param data body models.AccountStepRequest true "Account details"
// @Success 200 {object} models.Registration
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /registrations/{registration_id}/account [put]
func SubmitAccountStep(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "SubmitAccountStep")
	defer span.End()

	var req models.AccountStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	reg, err := deps.Registrations.SubmitAccount(ctx, c.Param("registration_id"), req)
	if err != nil {
		switch err {
		case models.ErrRegistrationNotFound, models.ErrEmailTaken, models.ErrRegistrationComplete:
			respondError(c, err)
		default:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, reg)
}

// ResendOTP godoc
// @Summary Resend the verification code
// @Description Issues a fresh code to the registered phone. Rate limited to one per minute.
// @Tags registrations
// @Produce json
// @Param registration_id path string true "Registration ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /registrations/{registration_id}/otp/resend [post]
func ResendOTP(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ResendOTP")
	defer span.End()

	if err := deps.Registrations.ResendOTP(ctx, c.Param("registration_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "verification code sent"})
}

// VerifyOTP godoc
// @Summary Verify the phone number
// @Description Checks the submitted code. A correct code opens the account-step gate; codes are single use.
// @Tags registrations
// @Accept json
// @Produce json
// @Param registration_id path string true "Registration ID"
// @Param data body models.OTPVerifyRequest true "Verification code"
// @Success 200 {object} models.Registration
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /registrations/{registration_id}/otp/verify [post]
func VerifyOTP(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "VerifyOTP")
	defer span.End()

	var req models.OTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "code is required"})
		return
	}

	reg, err := deps.Registrations.VerifyOTP(ctx, c.Param("registration_id"), req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reg)
}

// BypassOTP godoc
// @Summary Bypass phone verification
// @Description Opens the verification gate without a code. Only available outside production when explicitly enabled.
// @Tags registrations
// @Produce json
// @Param registration_id path string true "Registration ID"
// @Success 200 {object} models.Registration
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /registrations/{registration_id}/otp/bypass [post]
func BypassOTP(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "BypassOTP")
	defer span.End()

	reg, err := deps.Registrations.BypassOTP(ctx, c.Param("registration_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reg)
}

// SubmitPersonalStep godoc
// @Summary Submit personal details
// @Description Captures name, South African ID number and address.
// @Tags registrations
// @Accept json
// @Produce json
// @Param registration_id path string true "Registration ID"
// @Param data body models.PersonalStepRequest true "Personal details"
// @Success 200 {object} models.Registration
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /registrations/{registration_id}/personal [put]
func SubmitPersonalStep(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "SubmitPersonalStep")
	defer span.End()

	var req models.PersonalStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	reg, err := deps.Registrations.SubmitPersonal(ctx, c.Param("registration_id"), req)
	if err != nil {
		switch err {
		case models.ErrRegistrationNotFound, models.ErrRegistrationComplete:
			respondError(c, err)
		default:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, reg)
}

// AttachDocument godoc
// @Summary Attach an uploaded document
// @Description Records a document reference for the registration, replacing any earlier upload of the same type.
// @Tags registrations
// @Accept json
// @Produce json
// @Param registration_id path string true "Registration ID"
// @Param data body models.DocumentRequest true "Document reference"
// @Success 200 {object} models.Registration
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /registrations/{registration_id}/documents [post]
func AttachDocument(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "AttachDocument")
	defer span.End()

	var req models.DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	reg, err := deps.Registrations.AttachDocument(ctx, c.Param("registration_id"), req)
	if err != nil {
		switch err {
		case models.ErrRegistrationNotFound, models.ErrRegistrationComplete:
			respondError(c, err)
		default:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, reg)
}

// SubmitConsentStep godoc
// @Summary Submit consents
// @Description Captures the POPIA, disclosure and marketing consent flags.
// @Tags registrations
// @Accept json
// @Produce json
// @Param registration_id path string true "Registration ID"
// @Param data body models.ConsentStepRequest true "Consent flags"
// @Success 200 {object} models.Registration
// @Failure 404 {object} ErrorResponse
// @Router /registrations/{registration_id}/consents [put]
func SubmitConsentStep(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "SubmitConsentStep")
	defer span.End()

	var req models.ConsentStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	reg, err := deps.Registrations.SubmitConsents(ctx, c.Param("registration_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reg)
}

// NextRegistrationStep godoc
// @Summary Advance the registration
// @Description Moves the registration one step forward. The account step requires a verified phone; the consent step can only be left through finalization.
// @Tags registrations
// @Produce json
// @Param registration_id path string true "Registration ID"
// @Success 200 {object} models.Registration
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /registrations/{registration_id}/next [post]
func NextRegistrationStep(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "NextRegistrationStep")
	defer span.End()

	reg, err := deps.Registrations.Next(ctx, c.Param("registration_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reg)
}

// PrevRegistrationStep godoc
// @Summary Step the registration back
// @Description Moves the registration one step back. The success step is terminal.
// @Tags registrations
// @Produce json
// @Param registration_id path string true "Registration ID"
// @Success 200 {object} models.Registration
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /registrations/{registration_id}/prev [post]
func PrevRegistrationStep(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "PrevRegistrationStep")
	defer span.End()

	reg, err := deps.Registrations.Prev(ctx, c.Param("registration_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reg)
}

// FinalizeRegistration godoc
// @Summary Finalize the registration
// @Description Provisions the account, sends the welcome email and moves the registration to its terminal step. Both required consents must be accepted.
// @Tags registrations
// @Produce json
// @Param registration_id path string true "Registration ID"
// @Success 200 {object} models.Registration
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /registrations/{registration_id}/finalize [post]
func FinalizeRegistration(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "FinalizeRegistration")
	defer span.End()

	reg, err := deps.Registrations.Finalize(ctx, c.Param("registration_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reg)
}
