package character

import (
	"testing"

	"duskward/pkg/engineerr"
)

func TestLoginHappyPathReachesPlaying(t *testing.T) {
	existing, _ := NewCharacter(1, "grom", "hunter2")
	lookup := func(u string) (*Character, bool) {
		if u == "grom" {
			return existing, true
		}
		return nil, false
	}

	m := NewLoginMachine(3)
	if needsCreation := m.SubmitUsername("grom", lookup); needsCreation {
		t.Fatalf("expected known username not to need creation")
	}
	if m.State() != AwaitingPassword {
		t.Fatalf("expected AwaitingPassword, got %v", m.State())
	}

	sess := NewSession()
	got, err := m.SubmitPassword("hunter2", sess)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != existing {
		t.Errorf("expected the looked-up character to be returned")
	}
	if m.State() != Playing {
		t.Fatalf("expected Playing, got %v", m.State())
	}
	if existing.Session() != sess {
		t.Errorf("expected session bound to the character")
	}
}

func TestLoginUnknownUsernameNeedsCreation(t *testing.T) {
	m := NewLoginMachine(3)
	lookup := func(string) (*Character, bool) { return nil, false }
	if needsCreation := m.SubmitUsername("newbie", lookup); !needsCreation {
		t.Errorf("expected unknown username to signal needsCreation")
	}
}

func TestLoginClosesAfterTooManyFailedAttempts(t *testing.T) {
	existing, _ := NewCharacter(1, "grom", "hunter2")
	lookup := func(string) (*Character, bool) { return existing, true }

	m := NewLoginMachine(2)
	m.SubmitUsername("grom", lookup)

	if _, err := m.SubmitPassword("wrong1", NewSession()); !engineerr.Is(err, engineerr.PermissionDenied) {
		t.Fatalf("expected PermissionDenied on first failure, got %v", err)
	}
	if m.State() != AwaitingPassword {
		t.Fatalf("expected to remain AwaitingPassword after one failure")
	}

	if _, err := m.SubmitPassword("wrong2", NewSession()); !engineerr.Is(err, engineerr.PermissionDenied) {
		t.Fatalf("expected PermissionDenied on second failure, got %v", err)
	}
	if m.State() != Closed {
		t.Fatalf("expected Closed after exhausting attempts, got %v", m.State())
	}
}

func TestLoginRejectsBannedCharacter(t *testing.T) {
	existing, _ := NewCharacter(1, "grom", "hunter2")
	existing.IsBanned = true
	lookup := func(string) (*Character, bool) { return existing, true }

	m := NewLoginMachine(3)
	m.SubmitUsername("grom", lookup)
	if _, err := m.SubmitPassword("hunter2", NewSession()); !engineerr.Is(err, engineerr.PermissionDenied) {
		t.Fatalf("expected PermissionDenied for banned character, got %v", err)
	}
	if m.State() != Closed {
		t.Errorf("expected banned login to close the connection")
	}
}

func TestDisconnectClearsSessionAndReportsLinkdead(t *testing.T) {
	existing, _ := NewCharacter(1, "grom", "hunter2")
	lookup := func(string) (*Character, bool) { return existing, true }

	m := NewLoginMachine(3)
	m.SubmitUsername("grom", lookup)
	m.SubmitPassword("hunter2", NewSession())

	character, keepMob := m.Disconnect(true)
	if character != existing {
		t.Fatalf("expected the playing character to be returned")
	}
	if !keepMob {
		t.Errorf("expected linkdead=true to keep the mob in the world")
	}
	if existing.Session() != nil {
		t.Errorf("expected session cleared on disconnect")
	}
	if m.State() != Closed {
		t.Errorf("expected Closed after disconnect")
	}
}
