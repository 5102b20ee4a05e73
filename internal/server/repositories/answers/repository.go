// Package answers provides the repository for thread answers and their
// denormalized vote counter.
package answers

import (
	"context"

	"github.com/chemhub/chemforum/internal/server/models"
)

type Repository interface {
	// Create inserts a new answer with votes=0 and fills in ID, CreatedAt.
	Create(ctx context.Context, answer *models.Answer) (*models.Answer, error)

	// GetActiveForUpdate returns a non-deleted answer, locking its row
	// for the duration of the surrounding transaction, or
	// common.ErrNotFound. Vote toggles take this lock so that concurrent
	// toggles on the same answer are serialized.
	GetActiveForUpdate(ctx context.Context, id int64) (*models.Answer, error)

	// IncrementVotes adds one to the counter and returns the new value.
	IncrementVotes(ctx context.Context, id int64) (int64, error)

	// DecrementVotes subtracts one from the counter, flooring at zero,
	// and returns the new value.
	DecrementVotes(ctx context.Context, id int64) (int64, error)
}
