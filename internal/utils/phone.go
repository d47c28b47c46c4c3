package utils

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultPhoneRegion is assumed for numbers written without a country code.
const DefaultPhoneRegion = "PH"

// NormalizePhoneNumber normalizes a phone number to E.164 format
// Numbers without a country code are parsed in the given region
func NormalizePhoneNumber(phone, region string) (string, error) {
	// Trim whitespace
	phone = strings.TrimSpace(phone)
	if region == "" {
		region = DefaultPhoneRegion
	}

	num, err := phonenumbers.Parse(phone, region)
	if err != nil {
		return "", err
	}

	// Validate the phone number
	if !phonenumbers.IsValidNumber(num) {
		return "", phonenumbers.ErrNotANumber
	}

	// Format to E.164 (e.g., +639171234567)
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// NormalizePhoneLenient returns the E.164 form when the number parses and the
// trimmed input otherwise. Guest request phones are free text, so an
// unparseable value is kept as typed.
func NormalizePhoneLenient(phone, region string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}
	if normalized, err := NormalizePhoneNumber(phone, region); err == nil {
		return normalized
	}
	return phone
}
