package auth

import (
	"testing"
	"time"
)

const testSecret = "test-signing-secret-at-least-32-chars!!"

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)

	token, err := issuer.Issue("user-1", RoleTeacher)
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}

	session := issuer.Decode(token)
	if session == nil {
		t.Fatal("expected a valid session")
	}
	if session.UserID != "user-1" {
		t.Errorf("expected user-1, got %s", session.UserID)
	}
	if session.Role != RoleTeacher {
		t.Errorf("expected TEACHER, got %s", session.Role)
	}
	remaining := time.Until(session.ExpiresAt)
	if remaining < 59*time.Minute || remaining > time.Hour {
		t.Errorf("unexpected expiry: %v remaining", remaining)
	}
}

func TestDecode_RejectsGarbage(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)

	for _, token := range []string{
		"",
		"garbage",
		"a.b.c",
		"eyJhbGciOiJub25lIn0.eyJzdWIiOiJ1c2VyLTEifQ.",
	} {
		if session := issuer.Decode(token); session != nil {
			t.Errorf("expected nil session for %q, got %+v", token, session)
		}
	}
}

func TestDecode_RejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)
	other := NewTokenIssuer("another-secret-thats-also-32-chars!!!!!", time.Hour)

	token, err := issuer.Issue("user-1", RoleStudent)
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}
	if session := other.Decode(token); session != nil {
		t.Error("expected token signed with a different secret to be rejected")
	}
}

func TestDecode_RejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, -time.Minute)

	token, err := issuer.Issue("user-1", RoleStudent)
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}
	if session := issuer.Decode(token); session != nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestNeedsRefresh(t *testing.T) {
	issuer := NewTokenIssuer(testSecret, time.Hour)

	fresh := &Session{ExpiresAt: time.Now().Add(55 * time.Minute)}
	if issuer.NeedsRefresh(fresh) {
		t.Error("fresh session should not need refresh")
	}

	aging := &Session{ExpiresAt: time.Now().Add(20 * time.Minute)}
	if !issuer.NeedsRefresh(aging) {
		t.Error("session past half its lifetime should need refresh")
	}
}
