package utils

import (
	"testing"

	"github.com/credimed/app-leads/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("jane.doe@example.co.za"))
	assert.True(t, ValidEmail("j+tag@sub.example.com"))
	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail("missing@tld"))
	assert.False(t, ValidEmail(""))
}

func TestValidProvince(t *testing.T) {
	assert.True(t, ValidProvince("gauteng"))
	assert.True(t, ValidProvince("western-cape"))
	assert.False(t, ValidProvince("atlantis"))
	assert.False(t, ValidProvince(""))
}

func TestValidateAnswers_EmptyIsValid(t *testing.T) {
	result := ValidateAnswers(models.QuestionnaireAnswers{})
	assert.True(t, result.IsValid)
}

func TestValidateAnswers_BudgetBounds(t *testing.T) {
	low := 100.0
	result := ValidateAnswers(models.QuestionnaireAnswers{Budget: &low})
	assert.False(t, result.IsValid)

	high := 50000.0
	result = ValidateAnswers(models.QuestionnaireAnswers{Budget: &high})
	assert.False(t, result.IsValid)

	ok := 4000.0
	result = ValidateAnswers(models.QuestionnaireAnswers{Budget: &ok})
	assert.True(t, result.IsValid)
}

func TestValidateAnswers_Enums(t *testing.T) {
	bad := "platinum"
	result := ValidateAnswers(models.QuestionnaireAnswers{HospitalNetwork: &bad})
	assert.False(t, result.IsValid)

	result = ValidateAnswers(models.QuestionnaireAnswers{DSPComfort: &bad})
	assert.False(t, result.IsValid)

	result = ValidateAnswers(models.QuestionnaireAnswers{
		Lifestyle: &models.Lifestyle{Area: "suburban"},
	})
	assert.False(t, result.IsValid)
}

func TestValidateAnswers_Dependants(t *testing.T) {
	result := ValidateAnswers(models.QuestionnaireAnswers{
		Dependants: &models.Dependants{Adults: 11, Children: 0},
	})
	assert.False(t, result.IsValid)

	result = ValidateAnswers(models.QuestionnaireAnswers{
		Dependants: &models.Dependants{Adults: 2, Children: 3},
	})
	assert.True(t, result.IsValid)
}

func TestValidateAccountStep(t *testing.T) {
	result := ValidateAccountStep("jane@example.com", "+27712345678", "s3curePass", "s3curePass")
	assert.True(t, result.IsValid)

	result = ValidateAccountStep("jane@example.com", "+27712345678", "s3curePass", "different")
	assert.False(t, result.IsValid)

	result = ValidateAccountStep("bad-email", "", "short", "short")
	assert.False(t, result.IsValid)
	assert.Len(t, result.Errors, 3)
	assert.NotEmpty(t, result.Error())
}
