package utils

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// NormalizePhoneNumber parses a South African phone number in any common
// local form ("071 234 5678", "27712345678", "+27712345678") and returns
// it in E.164 format.
func NormalizePhoneNumber(phoneString string) (string, error) {
	cleanPhone := strings.TrimSpace(phoneString)

	if !strings.HasPrefix(cleanPhone, "+") {
		if strings.HasPrefix(cleanPhone, "27") {
			cleanPhone = "+" + cleanPhone
		}
	}

	num, err := phonenumbers.Parse(cleanPhone, "ZA")
	if err != nil {
		return "", fmt.Errorf("failed to parse phone number: %w", err)
	}

	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("invalid phone number: %s", phoneString)
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// IsMobileNumber reports whether the number can receive an SMS
func IsMobileNumber(e164 string) bool {
	num, err := phonenumbers.Parse(e164, "ZA")
	if err != nil {
		return false
	}
	t := phonenumbers.GetNumberType(num)
	return t == phonenumbers.MOBILE || t == phonenumbers.FIXED_LINE_OR_MOBILE
}
