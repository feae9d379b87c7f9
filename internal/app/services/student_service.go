package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yberk/infirmary/internal/app/models"
	"github.com/yberk/infirmary/internal/app/models/dto"
	"github.com/yberk/infirmary/internal/pkg/apperrors"
	"github.com/yberk/infirmary/internal/pkg/validation"
)

// StudentService handles student record operations
type StudentService struct {
	studentStore StudentStore
}

// NewStudentService creates a new student service
func NewStudentService(studentStore StudentStore) *StudentService {
	return &StudentService{
		studentStore: studentStore,
	}
}

// ListStudents returns all students ordered by external student number
func (s *StudentService) ListStudents(ctx context.Context) ([]*models.Student, error) {
	students, err := s.studentStore.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}
	if students == nil {
		students = []*models.Student{}
	}
	return students, nil
}

// GetStudent retrieves a single student by storage id
func (s *StudentService) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentStore.GetByID(ctx, id)
}

// CreateStudent validates and persists a new student record. A duplicate
// external student number is a conflict, not an overwrite.
func (s *StudentService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	studentID := strings.TrimSpace(req.StudentID)
	if studentID == "" {
		return nil, fmt.Errorf("%w: student_id cannot be empty", apperrors.ErrValidationFailed)
	}
	if !validation.ValidName(req.Name) {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	student := &models.Student{
		StudentID:  studentID,
		Name:       strings.TrimSpace(req.Name),
		Age:        req.Age,
		Department: req.Department,
		GradeLevel: req.GradeLevel.Int(),
	}

	if err := s.studentStore.Create(ctx, student); err != nil {
		return nil, err
	}

	return student, nil
}

// UpdateStudent applies a partial patch to an existing student. Fields
// absent from the patch are left untouched.
func (s *StudentService) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.studentStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.StudentID != nil {
		trimmed := strings.TrimSpace(*req.StudentID)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: student_id cannot be empty", apperrors.ErrValidationFailed)
		}
		student.StudentID = trimmed
	}
	if req.Name != nil {
		if !validation.ValidName(*req.Name) {
			return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
		}
		student.Name = strings.TrimSpace(*req.Name)
	}
	if req.Age != nil {
		student.Age = req.Age
	}
	if req.Department != nil {
		student.Department = req.Department
	}
	if req.GradeLevel != nil {
		student.GradeLevel = req.GradeLevel.Int()
	}

	if err := s.studentStore.Update(ctx, student); err != nil {
		return nil, err
	}

	return student, nil
}

// DeleteStudent removes a student by storage id. Treatments referencing the
// student are left in place.
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	return s.studentStore.Delete(ctx, id)
}
