package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	// Server configuration
	Port        int    `json:"port"`
	Environment string `json:"environment"`

	// MongoDB configuration
	MongoURI      string `json:"mongo_uri"`
	MongoDatabase string `json:"mongo_database"`

	// Redis configuration
	RedisURI      string `json:"redis_uri"`
	RedisPassword string `json:"redis_password"`
	RedisDB       int    `json:"redis_db"`

	// Collection names
	SchemeCollection        string `json:"mongo_scheme_collection"`
	LeadCollection          string `json:"mongo_lead_collection"`
	BrokerCollection        string `json:"mongo_broker_collection"`
	UserCollection          string `json:"mongo_user_collection"`
	QuestionnaireCollection string `json:"mongo_questionnaire_collection"`
	RegistrationCollection  string `json:"mongo_registration_collection"`
	EmailTemplateCollection string `json:"mongo_email_template_collection"`
	AnalyticsCollection     string `json:"mongo_analytics_collection"`

	// Wizard session configuration
	SessionTTL time.Duration `json:"session_ttl"`

	// OTP configuration
	OTPTTL         time.Duration `json:"otp_ttl"`
	OTPBypassAllow bool          `json:"otp_bypass_allow"`

	// SMS gateway configuration
	SMSEnabled  bool   `json:"sms_enabled"`
	SMSBaseURL  string `json:"sms_base_url"`
	SMSAPIKey   string `json:"sms_api_key"`
	SMSSenderID string `json:"sms_sender_id"`

	// Mail relay configuration
	MailEnabled bool   `json:"mail_enabled"`
	MailBaseURL string `json:"mail_base_url"`
	MailAPIKey  string `json:"mail_api_key"`
	MailFrom    string `json:"mail_from"`

	// Authorization configuration
	AdminRole    string        `json:"admin_role"`
	RoleCacheTTL time.Duration `json:"role_cache_ttl"`

	// Tracing configuration
	TracingEnabled  bool   `json:"tracing_enabled"`
	TracingEndpoint string `json:"tracing_endpoint"`
}

var (
	AppConfig *Config
)

// LoadConfig loads configuration from environment variables
func LoadConfig() error {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	sessionTTL, err := time.ParseDuration(getEnvOrDefault("SESSION_TTL", "24h"))
	if err != nil {
		return fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	otpTTL, err := time.ParseDuration(getEnvOrDefault("OTP_TTL", "5m"))
	if err != nil {
		return fmt.Errorf("invalid OTP_TTL: %w", err)
	}

	roleCacheTTL, err := time.ParseDuration(getEnvOrDefault("ROLE_CACHE_TTL", "15m"))
	if err != nil {
		return fmt.Errorf("invalid ROLE_CACHE_TTL: %w", err)
	}

	environment := getEnvOrDefault("ENVIRONMENT", "development")

	// OTP bypass is a testing convenience and must never be honored in production
	otpBypassAllow := getEnvOrDefault("OTP_BYPASS_ALLOW", "false") == "true" && environment != "production"

	smsEnabled := getEnvOrDefault("SMS_ENABLED", "false") == "true"
	if smsEnabled && os.Getenv("SMS_BASE_URL") == "" {
		return fmt.Errorf("SMS_BASE_URL environment variable is required when SMS_ENABLED=true")
	}

	mailEnabled := getEnvOrDefault("MAIL_ENABLED", "false") == "true"
	if mailEnabled && os.Getenv("MAIL_BASE_URL") == "" {
		return fmt.Errorf("MAIL_BASE_URL environment variable is required when MAIL_ENABLED=true")
	}

	AppConfig = &Config{
		// Server configuration
		Port:        port,
		Environment: environment,

		// MongoDB configuration
		MongoURI:      getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnvOrDefault("MONGODB_DATABASE", "credimed"),

		// Redis configuration
		RedisURI:      getEnvOrDefault("REDIS_URI", "localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,

		// Collection names
		SchemeCollection:        getEnvOrDefault("MONGODB_SCHEME_COLLECTION", "medical_schemes"),
		LeadCollection:          getEnvOrDefault("MONGODB_LEAD_COLLECTION", "leads"),
		BrokerCollection:        getEnvOrDefault("MONGODB_BROKER_COLLECTION", "brokers"),
		UserCollection:          getEnvOrDefault("MONGODB_USER_COLLECTION", "users"),
		QuestionnaireCollection: getEnvOrDefault("MONGODB_QUESTIONNAIRE_COLLECTION", "questionnaires"),
		RegistrationCollection:  getEnvOrDefault("MONGODB_REGISTRATION_COLLECTION", "registrations"),
		EmailTemplateCollection: getEnvOrDefault("MONGODB_EMAIL_TEMPLATE_COLLECTION", "email_templates"),
		AnalyticsCollection:     getEnvOrDefault("MONGODB_ANALYTICS_COLLECTION", "analytics_events"),

		// Wizard session configuration
		SessionTTL: sessionTTL,

		// OTP configuration
		OTPTTL:         otpTTL,
		OTPBypassAllow: otpBypassAllow,

		// SMS gateway configuration
		SMSEnabled:  smsEnabled,
		SMSBaseURL:  getEnvOrDefault("SMS_BASE_URL", ""),
		SMSAPIKey:   getEnvOrDefault("SMS_API_KEY", ""),
		SMSSenderID: getEnvOrDefault("SMS_SENDER_ID", "CrediMed"),

		// Mail relay configuration
		MailEnabled: mailEnabled,
		MailBaseURL: getEnvOrDefault("MAIL_BASE_URL", ""),
		MailAPIKey:  getEnvOrDefault("MAIL_API_KEY", ""),
		MailFrom:    getEnvOrDefault("MAIL_FROM", "no-reply@credimed.co.za"),

		// Authorization configuration
		AdminRole:    getEnvOrDefault("ADMIN_ROLE", "admin"),
		RoleCacheTTL: roleCacheTTL,

		// Tracing configuration
		TracingEnabled:  getEnvOrDefault("TRACING_ENABLED", "false") == "true",
		TracingEndpoint: getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),
	}

	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
