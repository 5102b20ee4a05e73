package models

// Category is immutable reference data; threads must reference an
// existing category.
type Category struct {
	ID   int64
	Name string
	Slug string
}
