// Package couponcode generates coupon codes from a cryptographically
// secure random source. Codes are opaque, upper-case ASCII so they survive
// user transcription; uniqueness is enforced by the orders table.
package couponcode

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strings"
)

const (
	Prefix       = "COUPON-"
	randomLength = 10
	alphabet     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9-]+$`)

// Generate returns a fresh code, e.g. "COUPON-X7R2MQ09ZK". Collisions are
// possible (36^10 space) and handled by the caller regenerating.
func Generate() (string, error) {
	buf := make([]byte, randomLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return Prefix + string(buf), nil
}

// Normalize upper-cases and trims a user-supplied code so transcription
// differences don't cause lookup misses.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsWellFormed reports whether a normalized code could have been issued by
// this service.
func IsWellFormed(code string) bool {
	return code != "" && codePattern.MatchString(code)
}
