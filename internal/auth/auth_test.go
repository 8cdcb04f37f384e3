package auth

import (
	"testing"
	"time"
)

func TestHashPasswordNeverEqualsPlaintext(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("stored credential equals plaintext")
	}
	if !CheckPassword(hash, "s3cret-pass") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("wrong password accepted")
	}
}

func TestIssueAndParseRoundTrip(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	token, issued, err := issuer.Issue(42, "user")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != 42 || claims.Role != "user" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.JTI != issued.JTI {
		t.Fatalf("jti mismatch: %s vs %s", claims.JTI, issued.JTI)
	}
}

func TestParseRejectsMalformedToken(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	if _, err := issuer.Parse("not-a-jwt"); err != ErrTokenMalformed {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, _, err := NewIssuer("secret-a", time.Hour).Issue(1, "user")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := NewIssuer("secret-b", time.Hour).Parse(token); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issuer := NewIssuer("test-secret", -time.Minute)
	token, _, err := issuer.Issue(1, "user")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := issuer.Parse(token); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid for expired token, got %v", err)
	}
}
