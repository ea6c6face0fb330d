package utils

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	tok, err := issuer.GenerateToken("m-1", "ann@example.com", "admin")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	claims, err := issuer.ValidateToken(tok)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Subject != "m-1" || claims.Role != "admin" || claims.Email != "ann@example.com" {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestTokenRejectsOtherSecretAndExpiry(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	tok, _ := issuer.GenerateToken("m-1", "a@b.c", "member")

	if _, err := NewTokenIssuer("other", time.Hour).ValidateToken(tok); err == nil {
		t.Error("token signed with another secret was accepted")
	}

	expired := NewTokenIssuer("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _ := expired.GenerateToken("m-1", "a@b.c", "member")
	if _, err := issuer.ValidateToken(old); err == nil {
		t.Error("expired token was accepted")
	}
}
