package observability

import (
	"strings"

	"github.com/credimed/app-leads/internal/logging"
	"go.uber.org/zap"
)

// Logger returns the global logger instance
func Logger() *zap.Logger {
	return logging.Logger
}

// MaskPhone masks a phone number for logging, keeping the last four digits
func MaskPhone(phone string) string {
	if len(phone) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}

// MaskEmail masks the local part of an email address for logging
func MaskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 1 {
		return "****"
	}
	return email[:1] + "****" + email[at:]
}

// MaskIDNumber masks a South African ID number, keeping the birth-date prefix
func MaskIDNumber(id string) string {
	if len(id) != 13 {
		return "*************"
	}
	return id[:6] + "*******"
}

// MaskSensitiveData masks sensitive data in a map
func MaskSensitiveData(data map[string]interface{}) map[string]interface{} {
	sensitiveFields := []string{"email", "phone", "id_number", "password", "first_name", "last_name", "address"}
	masked := make(map[string]interface{})

	for k, v := range data {
		if contains(sensitiveFields, k) {
			masked[k] = "********"
		} else {
			masked[k] = v
		}
	}

	return masked
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
