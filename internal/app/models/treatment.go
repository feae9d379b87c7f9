package models

import "time"

// Treatment defines a visit record based on the 'treatments' table.
// StudentRef points at students.id; the ordered medicine references live in
// the 'treatment_medicines' join table. Neither reference is FK-constrained,
// so a referenced row may have been deleted since the visit was recorded.
type Treatment struct {
	ID         int64     `json:"id" db:"id"`
	StudentRef int64     `json:"-" db:"student_ref"`
	Symptoms   *string   `json:"symptoms,omitempty" db:"symptoms"`
	Date       time.Time `json:"date" db:"date"`

	// Relations (populated by the repository when loading)
	Student   *Student   `json:"student,omitempty"`
	Medicines []Medicine `json:"medicines,omitempty"`
}
