package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/credimed/app-leads/internal/config"
	"github.com/credimed/app-leads/internal/logging"
	"github.com/credimed/app-leads/internal/models"
	"github.com/credimed/app-leads/internal/observability"
	"github.com/credimed/app-leads/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// RegistrationService drives the registration wizard: durable step records,
// phone verification gates and final account provisioning.
type RegistrationService struct {
	collection *mongo.Collection
	otp        *OTPService
	users      *UserService
	email      *EmailService
	analytics  *AnalyticsService
	logger     *zap.Logger
}

// NewRegistrationService creates a new registration service instance
func NewRegistrationService(otp *OTPService, users *UserService, email *EmailService, analytics *AnalyticsService) *RegistrationService {
	return &RegistrationService{
		collection: config.MongoDB.Collection(config.AppConfig.RegistrationCollection),
		otp:        otp,
		users:      users,
		email:      email,
		analytics:  analytics,
		logger:     logging.Logger.Named("registration_service"),
	}
}

// Start opens a new registration, optionally linked to a wizard session
func (s *RegistrationService) Start(ctx context.Context, sessionID string) (*models.Registration, error) {
	reg := models.NewRegistration(utils.GenerateUUID(), sessionID)
	if _, err := s.collection.InsertOne(ctx, reg); err != nil {
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}

	s.logger.Info("registration started",
		zap.String("registration_id", reg.RegistrationID),
		zap.String("session_id", sessionID))
	return reg, nil
}

// Get fetches a registration by its public ID
func (s *RegistrationService) Get(ctx context.Context, registrationID string) (*models.Registration, error) {
	var reg models.Registration
	err := s.collection.FindOne(ctx, bson.M{"registration_id": registrationID}).Decode(&reg)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrRegistrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch registration: %w", err)
	}
	return &reg, nil
}

// save persists the full registration document
func (s *RegistrationService) save(ctx context.Context, reg *models.Registration) error {
	reg.UpdatedAt = time.Now()
	_, err := s.collection.ReplaceOne(ctx, bson.M{"registration_id": reg.RegistrationID}, reg)
	if err != nil {
		return fmt.Errorf("failed to save registration: %w", err)
	}
	return nil
}

// SubmitAccount captures the account step and triggers phone verification.
// Changing the phone after a verification resets the verified flag.
func (s *RegistrationService) SubmitAccount(ctx context.Context, registrationID string, req models.AccountStepRequest) (*models.Registration, error) {
	if result := utils.ValidateAccountStep(req.Email, req.Phone, req.Password, req.ConfirmPassword); !result.IsValid {
		return nil, fmt.Errorf("invalid account details: %s", result.Error())
	}

	reg, err := s.Get(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if reg.Complete() {
		return nil, models.ErrRegistrationComplete
	}

	phone, err := utils.NormalizePhoneNumber(req.Phone)
	if err != nil {
		return nil, fmt.Errorf("invalid phone number: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	taken, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.ErrEmailTaken
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	if reg.Data.Phone != "" && reg.Data.Phone != phone {
		reg.PhoneVerified = false
	}
	reg.Data.Email = email
	reg.Data.Phone = phone
	reg.Data.PasswordHash = hash

	if err := s.save(ctx, reg); err != nil {
		return nil, err
	}

	if err := s.otp.Send(ctx, phone); err != nil && err != models.ErrOTPCooldown {
		s.logger.Error("failed to send verification code",
			zap.String("registration_id", registrationID),
			zap.Error(err))
	}
	return reg, nil
}

// ResendOTP re-issues the verification code for the registered phone
func (s *RegistrationService) ResendOTP(ctx context.Context, registrationID string) error {
	reg, err := s.Get(ctx, registrationID)
	if err != nil {
		return err
	}
	if reg.Data.Phone == "" {
		return models.ErrWrongStep
	}
	return s.otp.Send(ctx, reg.Data.Phone)
}

// VerifyOTP checks the submitted code and opens the account-step gate
func (s *RegistrationService) VerifyOTP(ctx context.Context, registrationID, code string) (*models.Registration, error) {
	reg, err := s.Get(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if reg.Data.Phone == "" {
		return nil, models.ErrOTPNotRequested
	}

	if err := s.otp.Verify(ctx, reg.Data.Phone, code); err != nil {
		return nil, err
	}

	reg.PhoneVerified = true
	if err := s.save(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// BypassOTP opens the gate without a code. Only honored outside production
// and only when explicitly enabled.
func (s *RegistrationService) BypassOTP(ctx context.Context, registrationID string) (*models.Registration, error) {
	if !config.AppConfig.OTPBypassAllow {
		return nil, models.ErrPhoneNotVerified
	}

	reg, err := s.Get(ctx, registrationID)
	if err != nil {
		return nil, err
	}

	reg.OTPBypass = true
	if err := s.save(ctx, reg); err != nil {
		return nil, err
	}

	s.logger.Warn("otp bypass used",
		zap.String("registration_id", registrationID))
	return reg, nil
}

// SubmitPersonal captures the personal-details step. The ID number must be
// a structurally valid South African identity number.
func (s *RegistrationService) SubmitPersonal(ctx context.Context, registrationID string, req models.PersonalStepRequest) (*models.Registration, error) {
	if !utils.ValidateSAID(req.IDNumber) {
		return nil, fmt.Errorf("invalid South African ID number")
	}

	reg, err := s.Get(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if reg.Complete() {
		return nil, models.ErrRegistrationComplete
	}

	reg.Data.FirstName = strings.TrimSpace(req.FirstName)
	reg.Data.LastName = strings.TrimSpace(req.LastName)
	reg.Data.IDNumber = strings.ReplaceAll(req.IDNumber, " ", "")
	reg.Data.Address = strings.TrimSpace(req.Address)
	reg.Data.City = strings.TrimSpace(req.City)
	reg.Data.PostalCode = strings.TrimSpace(req.PostalCode)

	if err := s.save(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// AttachDocument records an upload reference, replacing any earlier upload
// of the same type
func (s *RegistrationService) AttachDocument(ctx context.Context, registrationID string, req models.DocumentRequest) (*models.Registration, error) {
	if !models.ValidDocumentType(req.Type) {
		return nil, fmt.Errorf("unknown document type: %s", req.Type)
	}

	reg, err := s.Get(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if reg.Complete() {
		return nil, models.ErrRegistrationComplete
	}

	reg.Data.SetDocument(models.DocumentRef{
		Type:       req.Type,
		Path:       req.Path,
		Status:     models.DocumentStatusPending,
		UploadedAt: time.Now(),
	})

	if err := s.save(ctx, reg); err != nil {
		return nil, err
	}

	s.analytics.Emit(models.EventDocumentUploaded, reg.SessionID, map[string]interface{}{
		"registration_id": registrationID,
		"document_type":   req.Type,
	})
	return reg, nil
}

// SubmitConsents captures the consent step. The gate itself is only
// enforced at finalization.
func (s *RegistrationService) SubmitConsents(ctx context.Context, registrationID string, req models.ConsentStepRequest) (*models.Registration, error) {
	reg, err := s.Get(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if reg.Complete() {
		return nil, models.ErrRegistrationComplete
	}

	reg.Data.Consents = models.Consents{
		POPIA:      req.POPIA,
		Disclosure: req.Disclosure,
		Marketing:  req.Marketing,
	}

	if err := s.save(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// Next advances the wizard one step, enforcing the step gates
func (s *RegistrationService) Next(ctx context.Context, registrationID string) (*models.Registration, error) {
	reg, err := s.Get(ctx, registrationID)
	if err != nil {
		return nil, err
	}

	if err := reg.Next(); err != nil {
		return nil, err
	}
	if err := s.save(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// Prev retreats the wizard one step
func (s *RegistrationService) Prev(ctx context.Context, registrationID string) (*models.Registration, error) {
	reg, err := s.Get(ctx, registrationID)
	if err != nil {
		return nil, err
	}

	if err := reg.Prev(); err != nil {
		return nil, err
	}
	if err := s.save(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// Finalize provisions the account and moves the wizard to its terminal
// step. Both required consents must be given; the email must still be
// free at this point.
func (s *RegistrationService) Finalize(ctx context.Context, registrationID string) (*models.Registration, error) {
	reg, err := s.Get(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if reg.Step != models.RegistrationStepConsent {
		return nil, models.ErrWrongStep
	}
	if !reg.Data.Consents.RequiredGiven() {
		return nil, models.ErrConsentRequired
	}

	user, err := s.users.Create(ctx, models.User{
		Email:        reg.Data.Email,
		PasswordHash: reg.Data.PasswordHash,
		FirstName:    reg.Data.FirstName,
		LastName:     reg.Data.LastName,
		Phone:        reg.Data.Phone,
		Role:         models.RoleUser,
		Consents:     reg.Data.Consents,
	})
	if err != nil {
		return nil, err
	}

	if err := reg.Finalize(user.ID.Hex()); err != nil {
		return nil, err
	}
	if err := s.save(ctx, reg); err != nil {
		return nil, err
	}

	s.email.SendWelcome(ctx, user)
	s.analytics.Emit(models.EventUserRegistered, reg.SessionID, map[string]interface{}{
		"registration_id": registrationID,
		"account_id":      user.ID.Hex(),
	})

	s.logger.Info("registration finalized",
		zap.String("registration_id", registrationID),
		zap.String("account_id", user.ID.Hex()),
		zap.String("email", observability.MaskEmail(user.Email)))
	return reg, nil
}

// ListDocuments returns all uploads for a registration, for back-office
// review
func (s *RegistrationService) ListDocuments(ctx context.Context, registrationID string) ([]models.DocumentRef, error) {
	reg, err := s.Get(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	return reg.Data.Documents, nil
}

// PendingDocuments returns the review queue: every upload still awaiting a
// verdict, across all registrations, oldest first
func (s *RegistrationService) PendingDocuments(ctx context.Context) ([]models.PendingDocument, error) {
	cursor, err := s.collection.Find(ctx,
		bson.M{"data.documents.status": models.DocumentStatusPending},
		options.Find().SetSort(bson.M{"updated_at": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending documents: %w", err)
	}
	defer cursor.Close(ctx)

	queue := []models.PendingDocument{}
	for cursor.Next(ctx) {
		var reg models.Registration
		if err := cursor.Decode(&reg); err != nil {
			return nil, fmt.Errorf("failed to decode registration: %w", err)
		}
		for _, ref := range reg.Data.Documents {
			if ref.Status != models.DocumentStatusPending {
				continue
			}
			queue = append(queue, models.PendingDocument{
				RegistrationID: reg.RegistrationID,
				Applicant:      strings.TrimSpace(reg.Data.FirstName + " " + reg.Data.LastName),
				Email:          reg.Data.Email,
				Document:       ref,
			})
		}
	}
	return queue, cursor.Err()
}

// ReviewDocument marks a document verified or rejected
func (s *RegistrationService) ReviewDocument(ctx context.Context, registrationID, docType, status string) (*models.Registration, error) {
	if status != models.DocumentStatusVerified && status != models.DocumentStatusRejected {
		return nil, fmt.Errorf("invalid document status: %s", status)
	}

	reg, err := s.Get(ctx, registrationID)
	if err != nil {
		return nil, err
	}

	ref, ok := reg.Data.Document(docType)
	if !ok {
		return nil, models.ErrDocumentNotFound
	}

	ref.Status = status
	if status == models.DocumentStatusVerified {
		now := time.Now()
		ref.VerifiedAt = &now
	} else {
		ref.VerifiedAt = nil
	}
	reg.Data.SetDocument(ref)

	if err := s.save(ctx, reg); err != nil {
		return nil, err
	}

	s.logger.Info("document reviewed",
		zap.String("registration_id", registrationID),
		zap.String("document_type", docType),
		zap.String("status", status))
	return reg, nil
}
