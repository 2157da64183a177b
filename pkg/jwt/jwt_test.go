package jwt

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateToken(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		expiration time.Duration
		secret     string
	}{
		{
			name:       "valid token generation",
			userID:     "owner",
			expiration: 15 * time.Minute,
			secret:     "test-secret-key-32-characters!",
		},
		{
			name:       "short expiration",
			userID:     "owner",
			expiration: 1 * time.Second,
			secret:     "test-secret",
		},
		{
			name:       "long expiration",
			userID:     "owner",
			expiration: 24 * time.Hour,
			secret:     "test-secret",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateToken(tt.userID, tt.expiration, tt.secret)
			if err != nil {
				t.Errorf("GenerateToken() error = %v", err)
				return
			}

			if token == "" {
				t.Error("GenerateToken() returned empty token")
			}

			if len(strings.Split(token, ".")) != 3 {
				t.Errorf("GenerateToken() token is not a JWT: %q", token)
			}
		})
	}
}

func TestValidateToken(t *testing.T) {
	secret := "test-secret-key-32-characters!"

	token, err := GenerateToken("owner", 15*time.Minute, secret)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ValidateToken(token, secret)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != "owner" {
		t.Errorf("ValidateToken() userID = %q, want %q", claims.UserID, "owner")
	}

	if _, err := ValidateToken(token, "wrong-secret"); err == nil {
		t.Error("ValidateToken() accepted a token signed with another secret")
	}

	if _, err := ValidateToken("not.a.token", secret); err == nil {
		t.Error("ValidateToken() accepted a malformed token")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateToken("owner", -1*time.Minute, secret)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := ValidateToken(token, secret); err == nil {
		t.Error("ValidateToken() accepted an expired token")
	}
}
