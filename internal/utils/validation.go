package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/credimed/app-leads/internal/models"
)

// ValidationError represents a validation error with field and message
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult represents the result of validation
type ValidationResult struct {
	IsValid bool              `json:"is_valid"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

// NewValidationResult creates a new validation result
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		IsValid: true,
		Errors:  []ValidationError{},
	}
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.IsValid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// Error flattens the result into a single message
func (vr *ValidationResult) Error() string {
	if vr.IsValid {
		return ""
	}
	msgs := make([]string, len(vr.Errors))
	for i, e := range vr.Errors {
		msgs[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return strings.Join(msgs, "; ")
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidEmail reports whether the address has a plausible shape
func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidProvince reports whether p is one of the nine provinces
func ValidProvince(p string) bool {
	for _, known := range models.Provinces {
		if known == p {
			return true
		}
	}
	return false
}

// ValidHospitalNetwork reports whether n is a known network tier
func ValidHospitalNetwork(n string) bool {
	return n == models.NetworkComprehensive || n == models.NetworkSelective || n == models.NetworkBasic
}

// ValidDayToDay reports whether d is a known day-to-day tier
func ValidDayToDay(d string) bool {
	return d == models.DayToDayComprehensive || d == models.DayToDayBasic || d == models.DayToDayNone
}

// ValidDSPComfort reports whether d is a known DSP comfort tier
func ValidDSPComfort(d string) bool {
	return d == models.DSPComfortHigh || d == models.DSPComfortMedium || d == models.DSPComfortBasic
}

// ValidArea reports whether a is a known lifestyle area
func ValidArea(a string) bool {
	return a == models.AreaUrban || a == models.AreaRural
}

// ValidateAnswers validates a partial answer set field by field; nil fields
// are skipped since absence just means "not answered yet"
func ValidateAnswers(a models.QuestionnaireAnswers) *ValidationResult {
	result := NewValidationResult()

	if a.Budget != nil && (*a.Budget < models.BudgetMin || *a.Budget > models.BudgetMax) {
		result.AddError("budget", fmt.Sprintf("must be between %d and %d", models.BudgetMin, models.BudgetMax))
	}
	if a.HospitalNetwork != nil && !ValidHospitalNetwork(*a.HospitalNetwork) {
		result.AddError("hospital_network", "unknown network tier")
	}
	if a.Dependants != nil {
		if a.Dependants.Adults < 0 || a.Dependants.Adults > 10 {
			result.AddError("dependants.adults", "must be between 0 and 10")
		}
		if a.Dependants.Children < 0 || a.Dependants.Children > 10 {
			result.AddError("dependants.children", "must be between 0 and 10")
		}
	}
	if a.DayToDayBenefits != nil && !ValidDayToDay(*a.DayToDayBenefits) {
		result.AddError("day_to_day_benefits", "unknown benefit tier")
	}
	if a.Province != nil && !ValidProvince(*a.Province) {
		result.AddError("province", "unknown province")
	}
	if a.Lifestyle != nil && !ValidArea(a.Lifestyle.Area) {
		result.AddError("lifestyle.area", "must be urban or rural")
	}
	if a.DSPComfort != nil && !ValidDSPComfort(*a.DSPComfort) {
		result.AddError("dsp_comfort", "unknown comfort tier")
	}

	return result
}

// ValidateAccountStep validates the registration account-creation fields
func ValidateAccountStep(email, phone, password, confirmPassword string) *ValidationResult {
	result := NewValidationResult()

	if !ValidEmail(email) {
		result.AddError("email", "invalid email address")
	}
	if strings.TrimSpace(phone) == "" {
		result.AddError("phone", "phone is required")
	}
	if len(password) < 8 {
		result.AddError("password", "must be at least 8 characters")
	}
	if password != confirmPassword {
		result.AddError("confirm_password", "passwords do not match")
	}

	return result
}
