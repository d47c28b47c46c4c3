package utils

import (
	"testing"
)

func TestNormalizePhoneNumber(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    string
		shouldError bool
	}{
		{
			name:        "Romanian mobile with country code",
			input:       "+40721234567",
			expected:    "+40721234567",
			shouldError: false,
		},
		{
			name:        "International format with country code",
			input:       "+40 721 234 567",
			expected:    "+40721234567",
			shouldError: false,
		},
		{
			name:        "Invalid phone number - too short",
			input:       "123",
			expected:    "",
			shouldError: true,
		},
		{
			name:        "Invalid phone number - letters",
			input:       "abcdefghij",
			expected:    "",
			shouldError: true,
		},
		{
			name:        "Empty string",
			input:       "",
			expected:    "",
			shouldError: true,
		},
		// German phone numbers
		{
			name:        "German mobile with country code",
			input:       "+491701234567",
			expected:    "+491701234567",
			shouldError: false,
		},
		{
			name:        "German mobile with spaces",
			input:       "+49 170 1234567",
			expected:    "+491701234567",
			shouldError: false,
		},
		{
			name:        "German landline Berlin",
			input:       "+49 30 12345678",
			expected:    "+493012345678",
			shouldError: false,
		},
		// Philippine numbers without country code use the default region
		{
			name:        "Philippine mobile without country code",
			input:       "09171234567",
			expected:    "+639171234567",
			shouldError: false,
		},
		{
			name:        "Philippine mobile with country code",
			input:       "+63 917 123 4567",
			expected:    "+639171234567",
			shouldError: false,
		},
		// Irish phone numbers
		{
			name:        "Irish mobile with country code",
			input:       "+353871234567",
			expected:    "+353871234567",
			shouldError: false,
		},
		{
			name:        "Irish mobile with parentheses",
			input:       "+353 (87) 123 4567",
			expected:    "+353871234567",
			shouldError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := NormalizePhoneNumber(tt.input, "")

			if tt.shouldError {
				if err == nil {
					t.Errorf("Expected error for input %q, but got none", tt.input)
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error for input %q: %v", tt.input, err)
				}
				if result != tt.expected {
					t.Errorf("For input %q, expected %q but got %q", tt.input, tt.expected, result)
				}
			}
		})
	}
}

func TestNormalizePhoneLenient(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"  +40 721 234 567 ", "+40721234567"},
		{" call me maybe ", "call me maybe"},
	}

	for _, tt := range tests {
		if got := NormalizePhoneLenient(tt.input, ""); got != tt.expected {
			t.Errorf("NormalizePhoneLenient(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"a@b.co", true},
		{"ana@example.com", true},
		{"not-an-email", false},
		{"bad-email", false},
		{"a b@c.de", false},
		{"a@b", false},
		{"@b.co", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := IsValidEmail(tt.email); got != tt.valid {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.valid)
			}
		})
	}
}
