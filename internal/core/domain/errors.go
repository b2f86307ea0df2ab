package domain

import "errors"

// Credential errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrLoginSuperseded    = errors.New("login superseded by a newer attempt")
)

// Persistence errors
var (
	ErrKeyNotFound = errors.New("key not found")
)
