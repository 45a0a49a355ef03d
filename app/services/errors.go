// Package services implements the marketplace business rules on top of the
// repositories: account registration and login, catalogue management,
// review aggregation and image uploads.
package services

import "errors"

// Sentinel errors the controllers translate into HTTP statuses.
var (
	ErrNotFound           = errors.New("record not found")
	ErrForbidden          = errors.New("not allowed")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSellerUnverified   = errors.New("seller account is not verified")
)
