package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Registration wizard steps
const (
	RegistrationStepAccount   = 1
	RegistrationStepPersonal  = 2
	RegistrationStepDocuments = 3
	RegistrationStepConsent   = 4
	RegistrationStepSuccess   = 5

	RegistrationTotalSteps = 5
)

// Document types collected during registration
const (
	DocumentTypeID             = "id_document"
	DocumentTypeProofOfAddress = "proof_of_address"
	DocumentTypeProofOfIncome  = "proof_of_income"
	DocumentTypeStudentProof   = "student_proof"
)

// Document verification statuses
const (
	DocumentStatusPending  = "pending"
	DocumentStatusVerified = "verified"
	DocumentStatusRejected = "rejected"
)

// DocumentRef points at an externally stored upload
type DocumentRef struct {
	Type       string     `bson:"type" json:"type"`
	Path       string     `bson:"path" json:"path"`
	Status     string     `bson:"status" json:"status"`
	UploadedAt time.Time  `bson:"uploaded_at" json:"uploaded_at"`
	VerifiedAt *time.Time `bson:"verified_at,omitempty" json:"verified_at,omitempty"`
}

// Consents holds the POPIA and disclosure gates plus the optional
// marketing opt-in
type Consents struct {
	POPIA      bool `bson:"popia" json:"popia"`
	Disclosure bool `bson:"disclosure" json:"disclosure"`
	Marketing  bool `bson:"marketing" json:"marketing"`
}

// RequiredGiven reports whether both mandatory consents were accepted
func (c Consents) RequiredGiven() bool {
	return c.POPIA && c.Disclosure
}

// RegistrationData accumulates applicant details across registration steps
type RegistrationData struct {
	Email        string        `bson:"email" json:"email"`
	Phone        string        `bson:"phone" json:"phone"`
	PasswordHash string        `bson:"password_hash" json:"-"`
	FirstName    string        `bson:"first_name" json:"first_name"`
	LastName     string        `bson:"last_name" json:"last_name"`
	IDNumber     string        `bson:"id_number" json:"id_number"`
	Address      string        `bson:"address" json:"address"`
	City         string        `bson:"city" json:"city"`
	PostalCode   string        `bson:"postal_code" json:"postal_code"`
	Documents    []DocumentRef `bson:"documents" json:"documents"`
	Consents     Consents      `bson:"consents" json:"consents"`
}

// SetDocument records an upload reference, replacing any earlier upload of
// the same type
func (d *RegistrationData) SetDocument(ref DocumentRef) {
	for i := range d.Documents {
		if d.Documents[i].Type == ref.Type {
			d.Documents[i] = ref
			return
		}
	}
	d.Documents = append(d.Documents, ref)
}

// Document returns the reference of the given type, if present
func (d *RegistrationData) Document(docType string) (DocumentRef, bool) {
	for _, ref := range d.Documents {
		if ref.Type == docType {
			return ref, true
		}
	}
	return DocumentRef{}, false
}

// Registration is the durable registration wizard record. The machine only
// knows whether it may move forward; how a gate signal (phone verification,
// account creation) was produced is the owning service's concern.
type Registration struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	RegistrationID string             `bson:"registration_id" json:"registration_id"`
	SessionID      string             `bson:"session_id,omitempty" json:"session_id,omitempty"`
	Step           int                `bson:"step" json:"step"`
	Data           RegistrationData   `bson:"data" json:"data"`
	PhoneVerified  bool               `bson:"phone_verified" json:"phone_verified"`
	OTPBypass      bool               `bson:"otp_bypass" json:"otp_bypass"`
	AccountID      string             `bson:"account_id,omitempty" json:"account_id,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// NewRegistration returns a registration at the account step
func NewRegistration(registrationID, sessionID string) *Registration {
	now := time.Now()
	return &Registration{
		RegistrationID: registrationID,
		SessionID:      sessionID,
		Step:           RegistrationStepAccount,
		Data:           RegistrationData{Documents: []DocumentRef{}},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Next advances one step when the current step's gate is satisfied.
// Failure leaves the step unchanged; entered data is never rolled back.
func (r *Registration) Next() error {
	switch r.Step {
	case RegistrationStepAccount:
		if !r.PhoneVerified && !r.OTPBypass {
			return ErrPhoneNotVerified
		}
	case RegistrationStepConsent:
		// 4 -> 5 happens only through Finalize, which also creates the account
		return ErrFinalizeRequired
	case RegistrationStepSuccess:
		return nil
	}
	if r.Step < RegistrationTotalSteps {
		r.Step++
	}
	return nil
}

// Prev retreats one step, clamped at the account step. The success step is
// terminal.
func (r *Registration) Prev() error {
	if r.Step == RegistrationStepSuccess {
		return ErrRegistrationComplete
	}
	if r.Step > RegistrationStepAccount {
		r.Step--
	}
	return nil
}

// Finalize moves 4 -> 5 once both required consents are given and an
// account has been provisioned
func (r *Registration) Finalize(accountID string) error {
	if r.Step != RegistrationStepConsent {
		return ErrWrongStep
	}
	if !r.Data.Consents.RequiredGiven() {
		return ErrConsentRequired
	}
	r.AccountID = accountID
	r.Step = RegistrationStepSuccess
	return nil
}

// Complete reports whether the wizard reached its terminal step
func (r *Registration) Complete() bool {
	return r.Step == RegistrationStepSuccess
}

// AccountStepRequest is the payload for the account step
type AccountStepRequest struct {
	Email           string `json:"email" binding:"required"`
	Phone           string `json:"phone" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// PersonalStepRequest is the payload for the personal-details step
type PersonalStepRequest struct {
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	IDNumber   string `json:"id_number" binding:"required"`
	Address    string `json:"address" binding:"required"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
}

// DocumentRequest records an upload reference for the documents step
type DocumentRequest struct {
	Type string `json:"type" binding:"required"`
	Path string `json:"path" binding:"required"`
}

// ValidDocumentType reports whether t is a collected document type
func ValidDocumentType(t string) bool {
	switch t {
	case DocumentTypeID, DocumentTypeProofOfAddress, DocumentTypeProofOfIncome, DocumentTypeStudentProof:
		return true
	}
	return false
}

// ConsentStepRequest is the payload for the consent step
type ConsentStepRequest struct {
	POPIA      bool `json:"popia"`
	Disclosure bool `json:"disclosure"`
	Marketing  bool `json:"marketing"`
}

// PendingDocument is a review-queue entry: one unverified upload together
// with the registration it belongs to
type PendingDocument struct {
	RegistrationID string      `json:"registration_id"`
	Applicant      string      `json:"applicant"`
	Email          string      `json:"email"`
	Document       DocumentRef `json:"document"`
}

// OTPVerifyRequest carries a submitted verification code
type OTPVerifyRequest struct {
	Code string `json:"code" binding:"required"`
}
