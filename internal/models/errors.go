package models

import "errors"

// Wizard and registration errors
var (
	ErrStepIncomplete       = errors.New("current step answer is missing")
	ErrPhoneNotVerified     = errors.New("phone number not verified")
	ErrFinalizeRequired     = errors.New("registration must be finalized from the consent step")
	ErrConsentRequired      = errors.New("required consents must be accepted")
	ErrWrongStep            = errors.New("operation not valid for current step")
	ErrRegistrationComplete = errors.New("registration already completed")
)

// Lookup errors
var (
	ErrSessionNotFound      = errors.New("session not found")
	ErrSchemeNotFound       = errors.New("scheme not found")
	ErrLeadNotFound         = errors.New("lead not found")
	ErrBrokerNotFound       = errors.New("broker not found")
	ErrTemplateNotFound     = errors.New("email template not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrDocumentNotFound     = errors.New("document not found")
)

// Validation and conflict errors
var (
	ErrInvalidOTP        = errors.New("invalid or expired verification code")
	ErrOTPNotRequested   = errors.New("no verification code was requested for this phone")
	ErrOTPCooldown       = errors.New("verification code was requested too recently")
	ErrEmailTaken        = errors.New("an account with this email already exists")
	ErrSchemeExists      = errors.New("a plan with this scheme and plan name already exists")
	ErrInvalidLeadStatus = errors.New("invalid lead status")
	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrInvalidProvince   = errors.New("unknown province")
)

// Export errors
var (
	ErrUnknownExportType   = errors.New("unknown export data type")
	ErrUnknownExportFormat = errors.New("unknown export format")
)
