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
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserService provisions and looks up accounts
type UserService struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewUserService creates a new user service instance
func NewUserService() *UserService {
	return &UserService{
		collection: config.MongoDB.Collection(config.AppConfig.UserCollection),
		logger:     logging.Logger.Named("user_service"),
	}
}

// HashPassword produces a bcrypt hash for storage
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Create provisions a user account. Emails are stored lowercased and must
// be unique.
func (s *UserService) Create(ctx context.Context, user models.User) (*models.User, error) {
	now := time.Now()
	user.ID = primitive.NewObjectID()
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := s.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, models.ErrEmailTaken
		}
		observability.DatabaseOperations.WithLabelValues("mongodb", "insert", "error").Inc()
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID.Hex()),
		zap.String("email", observability.MaskEmail(user.Email)),
		zap.String("role", user.Role))
	return &user, nil
}

// EmailExists reports whether an account already uses the given email
func (s *UserService) EmailExists(ctx context.Context, email string) (bool, error) {
	count, err := s.collection.CountDocuments(ctx, bson.M{
		"email": strings.ToLower(strings.TrimSpace(email)),
	})
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

// FindByEmail looks up an account by its lowercased email
func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{
		"email": strings.ToLower(strings.TrimSpace(email)),
	}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, mongo.ErrNoDocuments
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}
