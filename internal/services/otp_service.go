package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/credimed/app-leads/internal/config"
	"github.com/credimed/app-leads/internal/logging"
	"github.com/credimed/app-leads/internal/models"
	"github.com/credimed/app-leads/internal/observability"
	"github.com/credimed/app-leads/internal/redisclient"
	"github.com/credimed/app-leads/internal/utils"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	otpKeyPrefix         = "otp:"
	otpAttemptsKeyPrefix = "otp_attempts:"
	otpCooldownKeyPrefix = "otp_cooldown:"

	otpMaxAttempts    = 5
	otpResendCooldown = 60 * time.Second
)

// OTPService issues and checks one-time phone verification codes. Codes
// live in Redis under the phone number with the configured TTL.
type OTPService struct {
	redis  *redisclient.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewOTPService creates a new OTP service instance
func NewOTPService() *OTPService {
	return &OTPService{
		redis:  config.Redis,
		ttl:    config.AppConfig.OTPTTL,
		logger: logging.Logger.Named("otp_service"),
	}
}

// Send issues a fresh code to the given phone number. Re-requesting inside
// the cooldown window is rejected to keep the SMS gateway bill sane.
func (s *OTPService) Send(ctx context.Context, phone string) error {
	normalized, err := utils.NormalizePhoneNumber(phone)
	if err != nil {
		return fmt.Errorf("invalid phone number: %w", err)
	}

	set, err := s.redis.SetNX(ctx, otpCooldownKeyPrefix+normalized, "1", otpResendCooldown).Result()
	if err != nil {
		return fmt.Errorf("failed to check resend cooldown: %w", err)
	}
	if !set {
		return models.ErrOTPCooldown
	}

	code := utils.GenerateVerificationCode()
	if err := s.redis.Set(ctx, otpKeyPrefix+normalized, code, s.ttl).Err(); err != nil {
		observability.OTPSends.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to store verification code: %w", err)
	}
	s.redis.Del(ctx, otpAttemptsKeyPrefix+normalized)

	if err := utils.SendVerificationCode(ctx, normalized, code); err != nil {
		observability.OTPSends.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to send verification code: %w", err)
	}

	observability.OTPSends.WithLabelValues("ok").Inc()
	s.logger.Info("verification code sent",
		zap.String("phone", observability.MaskPhone(normalized)))
	return nil
}

// Verify checks a submitted code. The code is single-use: a successful
// check consumes it. Exceeding the attempt budget also consumes it.
func (s *OTPService) Verify(ctx context.Context, phone, code string) error {
	normalized, err := utils.NormalizePhoneNumber(phone)
	if err != nil {
		return fmt.Errorf("invalid phone number: %w", err)
	}

	stored, err := s.redis.Get(ctx, otpKeyPrefix+normalized).Result()
	if err == redis.Nil {
		observability.OTPVerifications.WithLabelValues("expired").Inc()
		return models.ErrOTPNotRequested
	}
	if err != nil {
		return fmt.Errorf("failed to load verification code: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		attempts, err := s.redis.Incr(ctx, otpAttemptsKeyPrefix+normalized).Result()
		if err == nil && attempts == 1 {
			s.redis.Expire(ctx, otpAttemptsKeyPrefix+normalized, s.ttl)
		}
		if attempts >= otpMaxAttempts {
			s.redis.Del(ctx, otpKeyPrefix+normalized, otpAttemptsKeyPrefix+normalized)
			s.logger.Warn("verification attempts exhausted",
				zap.String("phone", observability.MaskPhone(normalized)))
		}
		observability.OTPVerifications.WithLabelValues("mismatch").Inc()
		return models.ErrInvalidOTP
	}

	s.redis.Del(ctx, otpKeyPrefix+normalized, otpAttemptsKeyPrefix+normalized)
	observability.OTPVerifications.WithLabelValues("ok").Inc()
	s.logger.Info("phone verified",
		zap.String("phone", observability.MaskPhone(normalized)))
	return nil
}
