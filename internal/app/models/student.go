package models

// Student defines the student model based on the 'students' table.
// StudentID is the externally assigned number (e.g. "S1001"); ID is the
// storage key and never carries business meaning.
type Student struct {
	ID         int64   `json:"id" db:"id"`
	StudentID  string  `json:"studentId" db:"student_id"`
	Name       string  `json:"name" db:"name"`
	Age        *int    `json:"age,omitempty" db:"age"`
	Department *string `json:"department,omitempty" db:"department"`
	GradeLevel *int    `json:"gradeLevel,omitempty" db:"grade_level"`
}
