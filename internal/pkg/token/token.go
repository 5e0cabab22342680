package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// refreshTokenBytes of entropy, hex-encoded to a 64-character string.
const refreshTokenBytes = 32

// NewRefreshToken generates an unpredictable refresh token suitable for
// long-lived session renewal.
func NewRefreshToken() (string, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
