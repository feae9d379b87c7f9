package models

// Medicine defines the medicine model based on the 'medicines' table
type Medicine struct {
	ID    int64   `json:"id" db:"id"`
	Name  string  `json:"name" db:"name"`
	Brand *string `json:"brand,omitempty" db:"brand"`
	Stock int     `json:"stock" db:"stock"`
}
