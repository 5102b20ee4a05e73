package models

import "time"

// Answer carries a denormalized vote counter; it must always equal the
// number of live rows in answer_votes for this answer.
type Answer struct {
	ID        int64
	ThreadID  int64
	Content   string
	AuthorID  int64
	CreatedAt time.Time
	Votes     int64
	IsDeleted bool
}
