package dto

import (
	"encoding/json"

	"github.com/yberk/infirmary/internal/pkg/validation"
)

// GradeLevel accepts either a JSON number or a descriptive string such as
// "Year 3". Unparseable input normalizes to "absent" rather than failing,
// so binding never rejects a payload over this field.
type GradeLevel struct {
	value *int
}

// UnmarshalJSON implements json.Unmarshaler
func (g *GradeLevel) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := validation.ParseGradeLevel(raw); ok {
		g.value = &v
	} else {
		g.value = nil
	}
	return nil
}

// Int returns the normalized grade level, or nil when absent
func (g GradeLevel) Int() *int {
	return g.value
}

// NewGradeLevel builds a GradeLevel holding a concrete value (test helper)
func NewGradeLevel(v int) GradeLevel {
	return GradeLevel{value: &v}
}

// CreateStudentRequest is the payload for creating a student record.
// Unknown payload keys are dropped by binding; only the fields below ever
// reach storage.
type CreateStudentRequest struct {
	StudentID  string     `json:"student_id" binding:"required"`
	Name       string     `json:"name" binding:"required"`
	Age        *int       `json:"age"`
	Department *string    `json:"department"`
	GradeLevel GradeLevel `json:"grade_level"`
}

// UpdateStudentRequest is the partial-update patch for a student record.
// Nil fields are left untouched.
type UpdateStudentRequest struct {
	StudentID  *string     `json:"student_id"`
	Name       *string     `json:"name"`
	Age        *int        `json:"age"`
	Department *string     `json:"department"`
	GradeLevel *GradeLevel `json:"grade_level"`
}
