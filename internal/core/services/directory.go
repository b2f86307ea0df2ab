package services

import (
	"fmt"

	"esolve-collections/internal/core/domain"
	"esolve-collections/internal/pkg/password"
)

// Directory is the fixed set of accounts allowed to sign in.
// Every account shares one password, kept only as a bcrypt hash.
type Directory struct {
	byEmail      map[string]domain.User
	byID         map[string]domain.User
	passwordHash string
}

// NewDirectory builds a directory from accounts and the shared password
func NewDirectory(accounts []domain.User, sharedPassword string, hashCost int) (*Directory, error) {
	hash, err := password.HashWithCost(sharedPassword, hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash shared password: %w", err)
	}

	d := &Directory{
		byEmail:      make(map[string]domain.User, len(accounts)),
		byID:         make(map[string]domain.User, len(accounts)),
		passwordHash: hash,
	}
	for _, acc := range accounts {
		acc.Token = ""
		d.byEmail[acc.Email] = acc
		d.byID[acc.ID] = acc
	}
	return d, nil
}

// Authenticate returns the account for email when password matches the
// shared secret. Emails must match a directory entry exactly.
func (d *Directory) Authenticate(email, pass string) (*domain.User, error) {
	user, ok := d.byEmail[email]
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	if !password.Verify(pass, d.passwordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return &user, nil
}

// ByID looks up an account by id
func (d *Directory) ByID(id string) (*domain.User, bool) {
	user, ok := d.byID[id]
	if !ok {
		return nil, false
	}
	return &user, true
}
