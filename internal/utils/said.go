package utils

import (
	"regexp"
	"time"
)

var nonDigit = regexp.MustCompile(`\D`)

// ValidateSAID validates a South African ID number. It checks the 13-digit
// shape, that the leading six digits form a plausible birth date, the
// citizenship digit, and the trailing Luhn check digit.
func ValidateSAID(id string) bool {
	id = nonDigit.ReplaceAllString(id, "")

	if len(id) != 13 {
		return false
	}

	// Birth date YYMMDD; the century is ambiguous so both are tried
	if !validBirthDate("19"+id[:6]) && !validBirthDate("20"+id[:6]) {
		return false
	}

	// Citizenship digit is 0 (citizen) or 1 (permanent resident)
	if id[10] != '0' && id[10] != '1' {
		return false
	}

	return luhnValid(id)
}

func validBirthDate(yyyymmdd string) bool {
	t, err := time.Parse("20060102", yyyymmdd)
	if err != nil {
		return false
	}
	return !t.After(time.Now())
}

// luhnValid checks the Luhn check digit over the full number
func luhnValid(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
