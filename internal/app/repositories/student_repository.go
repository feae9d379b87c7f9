package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yberk/infirmary/internal/app/models"
	"github.com/yberk/infirmary/internal/pkg/apperrors"
	"github.com/yberk/infirmary/internal/pkg/dberrors"
)

// StudentRepository handles database operations for student records
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// Create inserts a new student and fills in its storage id
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (student_id, name, age, department, grade_level)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		student.StudentID,
		student.Name,
		student.Age,
		student.Department,
		student.GradeLevel,
	).Scan(&student.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_student_id_key") {
			return apperrors.ErrStudentIDAlreadyExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by storage id
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

// GetByStudentID retrieves a student by the externally assigned student number
func (r *StudentRepository) GetByStudentID(ctx context.Context, studentID string) (*models.Student, error) {
	return r.getOne(ctx, `WHERE student_id = $1`, studentID)
}

func (r *StudentRepository) getOne(ctx context.Context, where string, arg interface{}) (*models.Student, error) {
	query := `
		SELECT id, student_id, name, age, department, grade_level
		FROM students
	` + where

	var student models.Student
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&student.ID,
		&student.StudentID,
		&student.Name,
		&student.Age,
		&student.Department,
		&student.GradeLevel,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// GetAll retrieves all students ordered by their external student number
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	query := `
		SELECT id, student_id, name, age, department, grade_level
		FROM students
		ORDER BY student_id ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(
			&student.ID,
			&student.StudentID,
			&student.Name,
			&student.Age,
			&student.Department,
			&student.GradeLevel,
		); err != nil {
			return nil, err
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// Update writes the full student row. The service applies the partial
// patch to a freshly loaded model before calling this.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET student_id = $1, name = $2, age = $3, department = $4, grade_level = $5
		WHERE id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		student.StudentID,
		student.Name,
		student.Age,
		student.Department,
		student.GradeLevel,
		student.ID,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_student_id_key") {
			return apperrors.ErrStudentIDAlreadyExists
		}
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Delete removes a student by storage id
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
