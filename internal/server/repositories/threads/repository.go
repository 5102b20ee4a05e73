// Package threads provides the repository for forum threads, including
// the filtered/sorted/paginated listing behind the query endpoint.
package threads

import (
	"context"

	"github.com/chemhub/chemforum/internal/server/models"
)

// Sort orders for List.
const (
	SortLatest = "latest" // newest first
	SortActive = "active" // most recently updated first
	SortTop    = "top"    // most live answers first, newest as tie-break
)

// Filter narrows and orders a thread listing. Soft-deleted threads are
// always excluded regardless of the filter.
type Filter struct {
	Query        string // case-insensitive substring of title or content
	CategorySlug string // exact match
	Sort         string // one of the Sort constants
	Limit        uint64
	Offset       uint64
}

type Repository interface {
	// Create inserts a new thread and fills in ID, CreatedAt, UpdatedAt.
	Create(ctx context.Context, thread *models.Thread) (*models.Thread, error)

	// GetActive returns a non-deleted thread or common.ErrNotFound.
	GetActive(ctx context.Context, id int64) (*models.Thread, error)

	// List returns summaries for the page selected by the filter.
	List(ctx context.Context, f Filter) ([]models.ThreadSummary, error)

	// Count returns the number of threads matching the filter, ignoring
	// Limit and Offset.
	Count(ctx context.Context, f Filter) (int64, error)
}
