package models

import "time"

type Thread struct {
	ID         int64
	Title      string
	Content    string
	CategoryID int64
	AuthorID   int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
	IsDeleted  bool
}

// ThreadSummary is the listing projection: thread fields joined with the
// category, the author username, and the live (non-deleted) answer count.
type ThreadSummary struct {
	ID           int64
	Title        string
	Content      string
	CategoryName string
	CategorySlug string
	Author       string
	CreatedAt    time.Time
	AnswersCount int64
}
