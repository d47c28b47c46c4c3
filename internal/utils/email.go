package utils

import "regexp"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail checks the loose "something@something.tld" shape used by the
// RSVP forms. It does not try to be RFC 5322 complete.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
