// Package common defines the sentinel errors shared by repositories,
// services, and the HTTP layer. Callers match them with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Validation errors.
	ErrMissingFields   = errors.New("missing fields")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidItemType = errors.New("invalid item type")

	// Auth errors. Every token failure (malformed, forged, expired)
	// collapses to ErrInvalidToken so callers cannot tell them apart.
	ErrInvalidToken = errors.New("invalid token")

	// Category protect-on-delete.
	ErrCategoryInUse = errors.New("category in use")
)
