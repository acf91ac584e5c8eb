package tests

import (
	"context"
	"testing"
	"time"

	"github.com/credimed/app-leads/internal/config"
	"github.com/credimed/app-leads/internal/models"
	"github.com/credimed/app-leads/internal/services"
	"github.com/credimed/app-leads/tests/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemeServiceCRUD(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	containers := SetupTestContainers(t)
	defer containers.Cleanup()
	ctx := context.Background()

	schemes := services.NewSchemeService()

	created, err := schemes.Create(ctx, models.SchemeCreateRequest{
		SchemeName:     "Testcare",
		PlanName:       "Entry",
		MonthlyPremium: 900,
		Coverage:       models.CoverageIndicators{Hospital: 50, Chronic: 50, DayToDay: 40, Dental: 20},
	})
	require.NoError(t, err)
	assert.True(t, created.Active)

	fetched, err := schemes.Get(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Testcare", fetched.SchemeName)

	newPremium := 950.0
	updated, err := schemes.Update(ctx, created.ID.Hex(), models.SchemeUpdateRequest{
		MonthlyPremium: &newPremium,
	})
	require.NoError(t, err)
	assert.Equal(t, 950.0, updated.MonthlyPremium)
	assert.Equal(t, "Entry", updated.PlanName)

	all, err := schemes.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, schemes.Delete(ctx, created.ID.Hex()))
	_, err = schemes.Get(ctx, created.ID.Hex())
	assert.Equal(t, models.ErrSchemeNotFound, err)
}

func TestQuestionnaireFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	containers := SetupTestContainers(t)
	defer containers.Cleanup()
	ctx := context.Background()

	fixtures.InsertSchemes(t,
		containers.MongoDB.Collection(config.AppConfig.SchemeCollection),
		fixtures.SampleSchemes())

	sessions := services.NewSessionStore()
	schemes := services.NewSchemeService()
	matcher := services.NewMatcherService(schemes)
	leads := services.NewLeadService()
	analytics := services.NewAnalyticsService()
	questionnaire := services.NewQuestionnaireService(sessions, matcher, leads, analytics, schemes)

	state, err := questionnaire.StartSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Step)

	// advancing without an answer is rejected
	_, err = questionnaire.Next(ctx, state.SessionID)
	assert.Equal(t, models.ErrStepIncomplete, err)

	state, err = questionnaire.UpdateAnswers(ctx, state.SessionID, fixtures.CompleteAnswers())
	require.NoError(t, err)
	assert.True(t, state.Data.Complete())

	for i := 0; i < 8; i++ {
		state, err = questionnaire.Next(ctx, state.SessionID)
		require.NoError(t, err)
	}
	assert.True(t, state.IsComplete)
	assert.NotEmpty(t, state.Results)
	assert.LessOrEqual(t, len(state.Results), 3)

	// the submission created a lead keyed by the session
	list, err := leads.List(ctx, services.LeadListFilters{})
	require.NoError(t, err)
	require.Len(t, list.Leads, 1)
	assert.Equal(t, state.SessionID, list.Leads[0].SessionID)
	assert.Equal(t, models.LeadSourceQuestionnaire, list.Leads[0].Source)

	// resubmitting does not duplicate the lead
	_, err = questionnaire.Submit(ctx, state.SessionID)
	require.NoError(t, err)
	list, err = leads.List(ctx, services.LeadListFilters{})
	require.NoError(t, err)
	assert.Len(t, list.Leads, 1)

	// selecting a matched scheme is recorded on session and lead
	state, err = questionnaire.SelectScheme(ctx, state.SessionID, state.Results[0].ID.Hex())
	require.NoError(t, err)
	require.NotNil(t, state.SelectedScheme)

	lead, err := leads.Get(ctx, list.Leads[0].ID.Hex())
	require.NoError(t, err)
	require.NotNil(t, lead.SelectedSchemeID)
	assert.Equal(t, state.SelectedScheme.ID, *lead.SelectedSchemeID)

	// reset clears everything but keeps the session alive
	state, err = questionnaire.Reset(ctx, state.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, state.Step)
	assert.False(t, state.IsComplete)
	assert.Empty(t, state.Results)
}

func TestRegistrationFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	containers := SetupTestContainers(t)
	defer containers.Cleanup()
	ctx := context.Background()

	otp := services.NewOTPService()
	users := services.NewUserService()
	email := services.NewEmailService()
	analytics := services.NewAnalyticsService()
	registrations := services.NewRegistrationService(otp, users, email, analytics)

	reg, err := registrations.Start(ctx, "session-123")
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationStepAccount, reg.Step)

	reg, err = registrations.SubmitAccount(ctx, reg.RegistrationID, models.AccountStepRequest{
		Email:           "jane@example.com",
		Phone:           "0712345678",
		Password:        "s3curePassword",
		ConfirmPassword: "s3curePassword",
	})
	require.NoError(t, err)
	assert.Equal(t, "+27712345678", reg.Data.Phone)

	// the gate blocks until the phone is verified or bypassed
	_, err = registrations.Next(ctx, reg.RegistrationID)
	assert.Equal(t, models.ErrPhoneNotVerified, err)

	reg, err = registrations.BypassOTP(ctx, reg.RegistrationID)
	require.NoError(t, err)
	assert.True(t, reg.OTPBypass)

	reg, err = registrations.Next(ctx, reg.RegistrationID)
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationStepPersonal, reg.Step)

	reg, err = registrations.SubmitPersonal(ctx, reg.RegistrationID, models.PersonalStepRequest{
		FirstName:  "Jane",
		LastName:   "Doe",
		IDNumber:   "8001015009087",
		Address:    "12 Main Road",
		City:       "Johannesburg",
		PostalCode: "2000",
	})
	require.NoError(t, err)

	reg, err = registrations.Next(ctx, reg.RegistrationID)
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationStepDocuments, reg.Step)

	reg, err = registrations.AttachDocument(ctx, reg.RegistrationID, models.DocumentRequest{
		Type: models.DocumentTypeID,
		Path: "uploads/jane-id.pdf",
	})
	require.NoError(t, err)
	require.Len(t, reg.Data.Documents, 1)
	assert.Equal(t, models.DocumentStatusPending, reg.Data.Documents[0].Status)

	reg, err = registrations.Next(ctx, reg.RegistrationID)
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationStepConsent, reg.Step)

	// finalizing without consents is rejected
	_, err = registrations.Finalize(ctx, reg.RegistrationID)
	assert.Equal(t, models.ErrConsentRequired, err)

	reg, err = registrations.SubmitConsents(ctx, reg.RegistrationID, models.ConsentStepRequest{
		POPIA:      true,
		Disclosure: true,
	})
	require.NoError(t, err)

	// the consent step can only be left through finalization
	_, err = registrations.Next(ctx, reg.RegistrationID)
	assert.Equal(t, models.ErrFinalizeRequired, err)

	reg, err = registrations.Finalize(ctx, reg.RegistrationID)
	require.NoError(t, err)
	assert.True(t, reg.Complete())
	assert.NotEmpty(t, reg.AccountID)

	user, err := users.FindByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, "Jane", user.FirstName)

	// a second registration with the same email is rejected
	reg2, err := registrations.Start(ctx, "")
	require.NoError(t, err)
	_, err = registrations.SubmitAccount(ctx, reg2.RegistrationID, models.AccountStepRequest{
		Email:           "jane@example.com",
		Phone:           "0723334444",
		Password:        "anotherPassword",
		ConfirmPassword: "anotherPassword",
	})
	assert.Equal(t, models.ErrEmailTaken, err)
}

func TestLeadPipeline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	containers := SetupTestContainers(t)
	defer containers.Cleanup()
	ctx := context.Background()

	leads := services.NewLeadService()
	brokers := services.NewBrokerService()

	lead, err := leads.CreateFromContact(ctx, models.ContactRequest{
		Name:    "Sipho M",
		Email:   "sipho@example.com",
		Message: "Please call me about hospital plans",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, models.LeadStatusNew, lead.Status)

	broker, err := brokers.Create(ctx, fixtures.SampleBroker())
	require.NoError(t, err)

	lead, err = leads.Assign(ctx, lead.ID.Hex(), broker.ID)
	require.NoError(t, err)
	require.NotNil(t, lead.BrokerID)
	assert.Equal(t, broker.ID, *lead.BrokerID)

	status := models.LeadStatusContacted
	note := "Left a voicemail"
	lead, err = leads.Update(ctx, lead.ID.Hex(), "agent@credimed.co.za", models.LeadUpdateRequest{
		Status: &status,
		Note:   &note,
	})
	require.NoError(t, err)
	assert.Equal(t, models.LeadStatusContacted, lead.Status)
	require.Len(t, lead.Notes, 1)
	assert.Equal(t, "Left a voicemail", lead.Notes[0].Text)

	bad := "lost"
	_, err = leads.Update(ctx, lead.ID.Hex(), "agent@credimed.co.za", models.LeadUpdateRequest{Status: &bad})
	assert.Equal(t, models.ErrInvalidLeadStatus, err)

	counts, err := leads.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[models.LeadStatusContacted])
}

func TestDataExport(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	containers := SetupTestContainers(t)
	defer containers.Cleanup()
	ctx := context.Background()

	fixtures.InsertSchemes(t,
		containers.MongoDB.Collection(config.AppConfig.SchemeCollection),
		fixtures.SampleSchemes())

	leads := services.NewLeadService()
	_, err := leads.CreateFromContact(ctx, models.ContactRequest{
		Name:    "Sipho M",
		Email:   "sipho@example.com",
		Message: "Please call me",
	}, "sess-export")
	require.NoError(t, err)

	export := services.NewExportService()

	schemes, err := export.Fetch(ctx, services.ExportSchemes, nil, nil)
	require.NoError(t, err)
	assert.Len(t, schemes, len(fixtures.SampleSchemes()))

	leadDocs, err := export.Fetch(ctx, services.ExportLeads, nil, nil)
	require.NoError(t, err)
	require.Len(t, leadDocs, 1)
	assert.Equal(t, "sipho@example.com", leadDocs[0]["email"])

	out, err := export.CSV(services.ExportLeads, leadDocs)
	require.NoError(t, err)
	assert.Contains(t, string(out), "sipho@example.com")

	// a range entirely in the future excludes everything
	tomorrow := time.Now().Add(24 * time.Hour)
	leadDocs, err = export.Fetch(ctx, services.ExportLeads, &tomorrow, nil)
	require.NoError(t, err)
	assert.Empty(t, leadDocs)

	// a range covering today includes the lead
	yesterday := time.Now().Add(-24 * time.Hour)
	leadDocs, err = export.Fetch(ctx, services.ExportLeads, &yesterday, &tomorrow)
	require.NoError(t, err)
	assert.Len(t, leadDocs, 1)

	_, err = export.Fetch(ctx, "users", nil, nil)
	assert.Equal(t, models.ErrUnknownExportType, err)
}

func TestRoleResolution(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	containers := SetupTestContainers(t)
	defer containers.Cleanup()
	ctx := context.Background()

	fixtures.InsertUser(t,
		containers.MongoDB.Collection(config.AppConfig.UserCollection),
		fixtures.AdminUser())

	roles := services.NewRoleService()
	assert.True(t, roles.IsAdmin(ctx, "admin@credimed.co.za"))
	assert.True(t, roles.IsAdmin(ctx, "ADMIN@credimed.co.za"))
	assert.False(t, roles.IsAdmin(ctx, "nobody@credimed.co.za"))
	assert.False(t, roles.IsAdmin(ctx, ""))

	// cached result survives the store record being removed
	_, err := containers.MongoDB.Collection(config.AppConfig.UserCollection).
		DeleteMany(ctx, map[string]interface{}{})
	require.NoError(t, err)
	assert.True(t, roles.IsAdmin(ctx, "admin@credimed.co.za"))

	roles.Invalidate(ctx, "admin@credimed.co.za")
	assert.False(t, roles.IsAdmin(ctx, "admin@credimed.co.za"))
}
