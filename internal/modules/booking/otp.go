package booking

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
)

// codeDigits is the length of the one-time walk code. Six decimal
// digits, leading zeros preserved.
const codeDigits = 6

var codeSpace = big.NewInt(1_000_000)

// GenerateWalkCode draws a fresh six-digit code from crypto/rand.
// One code per booking, generated at creation, never rotated.
func GenerateWalkCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("generate walk code: %w", err)
	}
	return fmt.Sprintf("%0*d", codeDigits, n), nil
}

// codesMatch compares a supplied code against the stored one without
// early exit, so response timing leaks nothing about partial matches.
func codesMatch(supplied, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(stored)) == 1
}
