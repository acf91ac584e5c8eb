package services

import (
	"context"
	"fmt"
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

// defaultWelcomeTemplate is used when no welcome template has been
// configured yet
var defaultWelcomeTemplate = models.EmailTemplate{
	Key:     models.TemplateKeyWelcome,
	Subject: "Welcome to CrediMed, {{first_name}}",
	Body: "<p>Hi {{first_name}},</p>" +
		"<p>Your CrediMed account is ready. A consultant will be in touch " +
		"to walk you through your selected cover options.</p>" +
		"<p>The CrediMed Team</p>",
}

// EmailService manages templates and sends rendered messages through the
// mail relay
type EmailService struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewEmailService creates a new email service instance
func NewEmailService() *EmailService {
	return &EmailService{
		collection: config.MongoDB.Collection(config.AppConfig.EmailTemplateCollection),
		logger:     logging.Logger.Named("email_service"),
	}
}

// GetTemplate fetches a template by key. The welcome key falls back to a
// built-in default so account provisioning never blocks on configuration.
func (s *EmailService) GetTemplate(ctx context.Context, key string) (*models.EmailTemplate, error) {
	var tmpl models.EmailTemplate
	err := s.collection.FindOne(ctx, bson.M{"key": key}).Decode(&tmpl)
	if err == mongo.ErrNoDocuments {
		if key == models.TemplateKeyWelcome {
			fallback := defaultWelcomeTemplate
			return &fallback, nil
		}
		return nil, models.ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch template: %w", err)
	}
	return &tmpl, nil
}

// ListTemplates returns all templates ordered by key
func (s *EmailService) ListTemplates(ctx context.Context) ([]models.EmailTemplate, error) {
	opts := options.Find().SetSort(bson.D{{Key: "key", Value: 1}})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer cursor.Close(ctx)

	templates := []models.EmailTemplate{}
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, fmt.Errorf("failed to decode templates: %w", err)
	}
	return templates, nil
}

// UpsertTemplate creates or replaces the template stored under req.Key
func (s *EmailService) UpsertTemplate(ctx context.Context, req models.EmailTemplateRequest) (*models.EmailTemplate, error) {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"subject":    req.Subject,
			"body":       req.Body,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"key":        req.Key,
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var tmpl models.EmailTemplate
	if err := s.collection.FindOneAndUpdate(ctx, bson.M{"key": req.Key}, update, opts).Decode(&tmpl); err != nil {
		return nil, fmt.Errorf("failed to upsert template: %w", err)
	}

	s.logger.Info("email template saved", zap.String("key", req.Key))
	return &tmpl, nil
}

// DeleteTemplate removes a template by key
func (s *EmailService) DeleteTemplate(ctx context.Context, key string) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"key": key})
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	if result.DeletedCount == 0 {
		return models.ErrTemplateNotFound
	}
	return nil
}

// Send renders the template under key with vars and delivers it
func (s *EmailService) Send(ctx context.Context, key, to string, vars map[string]string) error {
	tmpl, err := s.GetTemplate(ctx, key)
	if err != nil {
		return err
	}

	subject := utils.RenderTemplate(tmpl.Subject, vars)
	body := utils.RenderTemplate(tmpl.Body, vars)
	return utils.SendEmail(ctx, to, subject, body)
}

// SendWelcome delivers the welcome email to a freshly provisioned account.
// Delivery failures are logged and swallowed; registration already
// succeeded by the time this runs.
func (s *EmailService) SendWelcome(ctx context.Context, user *models.User) {
	err := s.Send(ctx, models.TemplateKeyWelcome, user.Email, map[string]string{
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"email":      user.Email,
	})
	if err != nil {
		s.logger.Error("failed to send welcome email",
			zap.String("email", observability.MaskEmail(user.Email)),
			zap.Error(err))
	}
}
