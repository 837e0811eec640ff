package util

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// AccessToken returns a 64-character hex token from 32 bytes of crypto/rand.
// It is the only external identifier a candidate ever receives.
func AccessToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
