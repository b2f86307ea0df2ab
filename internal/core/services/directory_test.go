package services

import (
	"errors"
	"testing"

	"esolve-collections/internal/core/domain"

	"golang.org/x/crypto/bcrypt"
)

func TestDirectory(t *testing.T) {
	dir, err := NewDirectory([]domain.User{
		{ID: "1", Name: "Admin User", Email: "admin@esolve.com", Role: domain.RoleAdmin, Token: "stale"},
	}, "secret", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewDirectory failed: %v", err)
	}

	for _, email := range []string{" admin@esolve.com", "admin@ESOLVE.com", "admin@esolve.com ", ""} {
		if _, err := dir.Authenticate(email, "secret"); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("Authenticate(%q) expected ErrInvalidCredentials, got %v", email, err)
		}
	}

	user, err := dir.Authenticate("admin@esolve.com", "secret")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if user.ID != "1" || user.Token != "" {
		t.Errorf("Unexpected user: %+v", user)
	}

	if _, err := dir.Authenticate("admin@esolve.com", "Secret"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}

	// returned users are copies
	user.Name = "changed"
	again, ok := dir.ByID("1")
	if !ok || again.Name != "Admin User" {
		t.Errorf("ByID returned %+v", again)
	}

	if _, ok := dir.ByID("2"); ok {
		t.Error("Unknown id should not be found")
	}
}
