package app

import (
	"testing"
	"time"
)

func TestInviteRoundTrip(t *testing.T) {
	svc := NewInviteService("test-secret", "monstercoup", 0)

	token, err := svc.CreateToken("match-123", "host-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	matchID, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if matchID != "match-123" {
		t.Fatalf("match id = %s, want match-123", matchID)
	}
}

func TestInviteRejectsWrongSecret(t *testing.T) {
	issuer := NewInviteService("secret-a", "monstercoup", 0)
	verifier := NewInviteService("secret-b", "monstercoup", 0)

	token, err := issuer.CreateToken("match-123", "host-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := verifier.Verify(token); err == nil {
		t.Fatalf("token signed with another secret must not verify")
	}
}

func TestInviteRejectsExpired(t *testing.T) {
	svc := NewInviteService("test-secret", "monstercoup", 0)
	// The constructor clamps non-positive ttls, so force expiry directly.
	svc.ttl = -time.Minute

	token, err := svc.CreateToken("match-123", "host-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Verify(token); err == nil {
		t.Fatalf("expired token must not verify")
	}
}

func TestInviteRequiresConfiguration(t *testing.T) {
	svc := NewInviteService("", "monstercoup", 0)
	if _, err := svc.CreateToken("match-123", "host-1"); err == nil {
		t.Fatalf("unconfigured service must refuse to sign")
	}
	if _, err := svc.Verify("whatever"); err == nil {
		t.Fatalf("unconfigured service must refuse to verify")
	}

	ok := NewInviteService("test-secret", "monstercoup", 0)
	if _, err := ok.CreateToken("", "host-1"); err == nil {
		t.Fatalf("empty match id must be refused")
	}
	if _, err := ok.Verify("not-a-jwt"); err == nil {
		t.Fatalf("garbage token must not verify")
	}
}
