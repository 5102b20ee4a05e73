package models

import "time"

// Report references an item by type and numeric id. The id is not a
// foreign key: a report may outlive, or never match, its target.
type Report struct {
	ID         int64
	ItemType   string
	ItemID     int64
	Reason     string
	ReporterID int64
	CreatedAt  time.Time
	Resolved   bool
}

// Report item types.
const (
	ItemTypeThread = "thread"
	ItemTypeAnswer = "answer"
)
