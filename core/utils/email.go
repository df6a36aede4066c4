package utils

import "strings"

// IsValidEmail applies the minimal validity check the booking rules
// require: the address must contain "@" and ".". The email is a
// capability token, not a verified identity.
func IsValidEmail(s string) bool {
	return strings.Contains(s, "@") && strings.Contains(s, ".")
}

// NormalizeEmail produces the canonical form used for ownership
// comparison.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
