package auth

import (
	"testing"
	"time"

	"github.com/article-comments-api/internal/models"
)

func TestMintAndParseToken(t *testing.T) {
	principal := &models.Principal{
		Username:    "alice",
		Email:       "alice@example.com",
		IsModerator: true,
	}

	token, err := MintToken("secret", principal, time.Hour)
	if err != nil {
		t.Fatalf("MintToken failed: %v", err)
	}

	parsed, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if parsed.Username != "alice" {
		t.Errorf("Expected username 'alice', got %q", parsed.Username)
	}
	if parsed.Email != "alice@example.com" {
		t.Errorf("Expected email 'alice@example.com', got %q", parsed.Email)
	}
	if !parsed.IsModerator {
		t.Error("Moderator flag should survive the roundtrip")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := MintToken("secret", &models.Principal{Username: "alice"}, time.Hour)
	if err != nil {
		t.Fatalf("MintToken failed: %v", err)
	}

	if _, err := ParseToken("other-secret", token); err == nil {
		t.Error("Expected an error for a token signed with a different secret")
	}
}

func TestParseToken_Garbage(t *testing.T) {
	if _, err := ParseToken("secret", "not.a.token"); err == nil {
		t.Error("Expected an error for a malformed token")
	}
}

func TestParseToken_Expired(t *testing.T) {
	token, err := MintToken("secret", &models.Principal{Username: "alice"}, -time.Minute)
	if err != nil {
		t.Fatalf("MintToken failed: %v", err)
	}

	if _, err := ParseToken("secret", token); err == nil {
		t.Error("Expected an error for an expired token")
	}
}
