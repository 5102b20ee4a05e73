// Package categories provides the repository for forum categories.
package categories

import (
	"context"

	"github.com/chemhub/chemforum/internal/server/models"
)

type Repository interface {
	// List returns all categories ordered by name.
	List(ctx context.Context) ([]models.Category, error)

	// GetBySlug returns the category or common.ErrNotFound.
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)

	// Delete removes a category. A category referenced by any thread is
	// protected: the delete fails with common.ErrCategoryInUse.
	Delete(ctx context.Context, id int64) error
}
