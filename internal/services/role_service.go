package services

import (
	"context"
	"strings"
	"time"

	"github.com/credimed/app-leads/internal/config"
	"github.com/credimed/app-leads/internal/logging"
	"github.com/credimed/app-leads/internal/observability"
	"github.com/credimed/app-leads/internal/redisclient"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const roleCacheKeyPrefix = "role:"

// RoleService resolves a caller's role from the user store, with a short
// Redis cache in front so every admin request does not hit Mongo
type RoleService struct {
	collection *mongo.Collection
	redis      *redisclient.Client
	cacheTTL   time.Duration
	adminRole  string
	logger     *zap.Logger
}

// NewRoleService creates a new role service instance
func NewRoleService() *RoleService {
	return &RoleService{
		collection: config.MongoDB.Collection(config.AppConfig.UserCollection),
		redis:      config.Redis,
		cacheTTL:   config.AppConfig.RoleCacheTTL,
		adminRole:  config.AppConfig.AdminRole,
		logger:     logging.Logger.Named("role_service"),
	}
}

// Role resolves the stored role for an email, empty when no account exists
func (s *RoleService) Role(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	cacheKey := roleCacheKeyPrefix + email

	cached, err := s.redis.Get(ctx, cacheKey).Result()
	if err == nil {
		observability.CacheHits.WithLabelValues("role").Inc()
		return cached, nil
	}
	if err != redis.Nil {
		s.logger.Warn("role cache read failed, falling through to store", zap.Error(err))
	}

	var user struct {
		Role string `bson:"role"`
	}
	err = s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		user.Role = ""
	} else if err != nil {
		return "", err
	}

	if err := s.redis.Set(ctx, cacheKey, user.Role, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("role cache write failed", zap.Error(err))
	}
	return user.Role, nil
}

// IsAdmin reports whether the email belongs to an administrator account.
// Resolution failures deny access.
func (s *RoleService) IsAdmin(ctx context.Context, email string) bool {
	if email == "" {
		return false
	}
	role, err := s.Role(ctx, email)
	if err != nil {
		s.logger.Error("role resolution failed, denying admin access",
			zap.String("email", observability.MaskEmail(email)),
			zap.Error(err))
		return false
	}
	return role == s.adminRole
}

// Invalidate drops the cached role for an email, used after role changes
func (s *RoleService) Invalidate(ctx context.Context, email string) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.redis.Del(ctx, roleCacheKeyPrefix+email).Err(); err != nil {
		s.logger.Warn("role cache invalidation failed", zap.Error(err))
	}
}
