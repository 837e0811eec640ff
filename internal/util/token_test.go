package util

import (
	"encoding/hex"
	"testing"
)

func TestAccessToken_Format(t *testing.T) {
	token, err := AccessToken()
	if err != nil {
		t.Fatalf("AccessToken() error = %v", err)
	}
	if len(token) != 64 {
		t.Errorf("token length = %d, want 64", len(token))
	}
	if _, err := hex.DecodeString(token); err != nil {
		t.Errorf("token is not hex: %v", err)
	}
}

func TestAccessToken_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		token, err := AccessToken()
		if err != nil {
			t.Fatalf("AccessToken() error = %v", err)
		}
		if _, dup := seen[token]; dup {
			t.Fatalf("duplicate token after %d draws", i)
		}
		seen[token] = struct{}{}
	}
}
