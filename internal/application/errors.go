package application

import "errors"

var (
	ErrDuplicateEmail     = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingToken       = errors.New("not authorized, no token")
	ErrInvalidToken       = errors.New("not authorized, token failed")
	ErrUnauthorized       = errors.New("not authorized")
	ErrNotFound           = errors.New("user not found")

	// ErrIdentityRevoked is returned by IdentityCache.Get for a deleted account.
	ErrIdentityRevoked = errors.New("identity revoked")
)
