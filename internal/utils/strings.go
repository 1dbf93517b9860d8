package utils

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Safe returns fallback when s is blank.
func Safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// PhoneDigest is a short stable fingerprint of a phone number for log lines.
// Only digits are hashed, so formatting differences map to the same digest.
func PhoneDigest(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	sum := blake2b.Sum256([]byte(digits.String()))
	return hex.EncodeToString(sum[:6])
}
