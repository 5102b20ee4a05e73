// Package votes provides the vote ledger: at most one row per
// (answer, user) pair at any time. Presence means the user currently
// upvotes the answer.
package votes

import "context"

type Repository interface {
	// Exists reports whether the (answer, user) pair currently holds a vote.
	Exists(ctx context.Context, answerID, userID int64) (bool, error)

	// Create inserts a vote for the pair.
	Create(ctx context.Context, answerID, userID int64) error

	// Delete removes the pair's vote.
	Delete(ctx context.Context, answerID, userID int64) error
}
