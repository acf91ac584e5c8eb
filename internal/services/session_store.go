package services

import (
	"context"
	"fmt"
	"time"

	"github.com/credimed/app-leads/internal/config"
	"github.com/credimed/app-leads/internal/logging"
	"github.com/credimed/app-leads/internal/models"
	"github.com/credimed/app-leads/internal/observability"
	"github.com/credimed/app-leads/internal/redisclient"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const sessionKeyPrefix = "session:"

// SessionStore persists wizard state per session in Redis with a sliding TTL
type SessionStore struct {
	redis  *redisclient.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewSessionStore creates a new session store instance
func NewSessionStore() *SessionStore {
	return &SessionStore{
		redis:  config.Redis,
		ttl:    config.AppConfig.SessionTTL,
		logger: logging.Logger.Named("session_store"),
	}
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

// Get loads the wizard state for a session. A missing or expired session
// yields models.ErrSessionNotFound.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*models.QuestionnaireState, error) {
	raw, err := s.redis.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, models.ErrSessionNotFound
	}
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("redis", "get", "error").Inc()
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	observability.CacheHits.WithLabelValues("session").Inc()

	var state models.QuestionnaireState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		s.logger.Error("corrupt session payload, discarding",
			zap.String("session_id", sessionID),
			zap.Error(err))
		s.redis.Del(ctx, sessionKey(sessionID))
		return nil, models.ErrSessionNotFound
	}
	return &state, nil
}

// Save writes the wizard state and refreshes the session TTL. Last write
// wins across concurrent tabs.
func (s *SessionStore) Save(ctx context.Context, state *models.QuestionnaireState) error {
	state.UpdatedAt = time.Now()

	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}
	if err := s.redis.Set(ctx, sessionKey(state.SessionID), payload, s.ttl).Err(); err != nil {
		observability.DatabaseOperations.WithLabelValues("redis", "set", "error").Inc()
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Delete removes a session outright
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.redis.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// TTL reports the remaining lifetime of a session
func (s *SessionStore) TTL(ctx context.Context, sessionID string) (time.Duration, error) {
	ttl, err := s.redis.TTL(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read session ttl: %w", err)
	}
	return ttl, nil
}
