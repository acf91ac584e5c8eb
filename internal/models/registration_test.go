package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistration_Initial(t *testing.T) {
	r := NewRegistration("reg-1", "sess-1")

	assert.Equal(t, RegistrationStepAccount, r.Step)
	assert.False(t, r.PhoneVerified)
	assert.False(t, r.Complete())
}

func TestRegistration_OTPGate(t *testing.T) {
	r := NewRegistration("reg-1", "")

	// Unverified phone keeps the machine on step 1
	err := r.Next()
	assert.ErrorIs(t, err, ErrPhoneNotVerified)
	assert.Equal(t, RegistrationStepAccount, r.Step)

	r.PhoneVerified = true
	require.NoError(t, r.Next())
	assert.Equal(t, RegistrationStepPersonal, r.Step)
}

func TestRegistration_OTPBypass(t *testing.T) {
	r := NewRegistration("reg-1", "")
	r.OTPBypass = true

	require.NoError(t, r.Next())
	assert.Equal(t, RegistrationStepPersonal, r.Step)
}

func TestRegistration_ConsentGate(t *testing.T) {
	r := NewRegistration("reg-1", "")
	r.PhoneVerified = true
	require.NoError(t, r.Next()) // -> 2
	require.NoError(t, r.Next()) // -> 3
	require.NoError(t, r.Next()) // -> 4

	// Plain Next cannot cross the consent step
	err := r.Next()
	assert.ErrorIs(t, err, ErrFinalizeRequired)
	assert.Equal(t, RegistrationStepConsent, r.Step)

	// Missing POPIA consent blocks finalization
	r.Data.Consents = Consents{POPIA: false, Disclosure: true}
	err = r.Finalize("user-1")
	assert.ErrorIs(t, err, ErrConsentRequired)
	assert.Equal(t, RegistrationStepConsent, r.Step)
	assert.Empty(t, r.AccountID)

	// Missing disclosure consent blocks finalization
	r.Data.Consents = Consents{POPIA: true, Disclosure: false}
	err = r.Finalize("user-1")
	assert.ErrorIs(t, err, ErrConsentRequired)

	// Both required consents allow finalization; marketing is optional
	r.Data.Consents = Consents{POPIA: true, Disclosure: true}
	require.NoError(t, r.Finalize("user-1"))
	assert.Equal(t, RegistrationStepSuccess, r.Step)
	assert.Equal(t, "user-1", r.AccountID)
	assert.True(t, r.Complete())
}

func TestRegistration_FinalizeOnlyFromConsentStep(t *testing.T) {
	r := NewRegistration("reg-1", "")
	r.Data.Consents = Consents{POPIA: true, Disclosure: true}

	err := r.Finalize("user-1")
	assert.ErrorIs(t, err, ErrWrongStep)
	assert.Equal(t, RegistrationStepAccount, r.Step)
}

func TestRegistration_PrevClampAndTerminal(t *testing.T) {
	r := NewRegistration("reg-1", "")

	require.NoError(t, r.Prev())
	assert.Equal(t, RegistrationStepAccount, r.Step)

	r.Step = RegistrationStepSuccess
	err := r.Prev()
	assert.ErrorIs(t, err, ErrRegistrationComplete)
	assert.Equal(t, RegistrationStepSuccess, r.Step)
}

func TestRegistration_GateFailureKeepsData(t *testing.T) {
	r := NewRegistration("reg-1", "")
	r.Data.Email = "jane@example.com"
	r.Data.Phone = "+27712345678"

	_ = r.Next()

	assert.Equal(t, "jane@example.com", r.Data.Email)
	assert.Equal(t, "+27712345678", r.Data.Phone)
}

func TestRegistrationData_SetDocument(t *testing.T) {
	d := RegistrationData{}

	d.SetDocument(DocumentRef{Type: DocumentTypeID, Path: "docs/a.pdf", Status: DocumentStatusPending})
	d.SetDocument(DocumentRef{Type: DocumentTypeProofOfAddress, Path: "docs/b.pdf", Status: DocumentStatusPending})
	require.Len(t, d.Documents, 2)

	// Re-upload replaces the earlier reference of the same type
	d.SetDocument(DocumentRef{Type: DocumentTypeID, Path: "docs/c.pdf", Status: DocumentStatusPending})
	require.Len(t, d.Documents, 2)

	ref, ok := d.Document(DocumentTypeID)
	require.True(t, ok)
	assert.Equal(t, "docs/c.pdf", ref.Path)

	_, ok = d.Document(DocumentTypeProofOfIncome)
	assert.False(t, ok)
}

func TestConsents_RequiredGiven(t *testing.T) {
	assert.False(t, Consents{}.RequiredGiven())
	assert.False(t, Consents{POPIA: true}.RequiredGiven())
	assert.False(t, Consents{Disclosure: true}.RequiredGiven())
	assert.True(t, Consents{POPIA: true, Disclosure: true}.RequiredGiven())
	assert.True(t, Consents{POPIA: true, Disclosure: true, Marketing: true}.RequiredGiven())
}
