// Package users provides the repository for user accounts.
package users

import (
	"context"

	"github.com/chemhub/chemforum/internal/server/models"
)

type Repository interface {
	// Create inserts a new user and fills in its ID. Duplicate username
	// or email yields common.ErrAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByID returns the user or common.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// GetByUsername returns the user or common.ErrNotFound.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByEmail returns the user or common.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
