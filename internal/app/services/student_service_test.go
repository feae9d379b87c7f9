package services

import (
	"context"
	"testing"

	"github.com/yberk/infirmary/internal/app/models/dto"
	"github.com/yberk/infirmary/internal/pkg/apperrors"
)

func intPtr(i int) *int { return &i }

func TestCreateStudentDuplicateIDIsConflict(t *testing.T) {
	store := newMemStudentStore()
	service := NewStudentService(store)
	ctx := context.Background()

	first, err := service.CreateStudent(ctx, &dto.CreateStudentRequest{
		StudentID: "S1001",
		Name:      "Alice",
	})
	if err != nil {
		t.Fatalf("CreateStudent: %v", err)
	}

	_, err = service.CreateStudent(ctx, &dto.CreateStudentRequest{
		StudentID: "S1001",
		Name:      "Mallory",
	})
	if !apperrors.Is(err, apperrors.ErrStudentIDAlreadyExists) {
		t.Fatalf("err = %v, want ErrStudentIDAlreadyExists", err)
	}

	// The first record must be untouched
	kept, err := service.GetStudent(ctx, first.ID)
	if err != nil {
		t.Fatal(err)
	}
	if kept.Name != "Alice" {
		t.Errorf("first record overwritten: %+v", kept)
	}
}

func TestCreateStudentRequiredFields(t *testing.T) {
	service := NewStudentService(newMemStudentStore())
	ctx := context.Background()

	if _, err := service.CreateStudent(ctx, &dto.CreateStudentRequest{Name: "Alice"}); !apperrors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("missing student_id err = %v, want ErrValidationFailed", err)
	}
	if _, err := service.CreateStudent(ctx, &dto.CreateStudentRequest{StudentID: "S1"}); !apperrors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("missing name err = %v, want ErrValidationFailed", err)
	}
	if _, err := service.CreateStudent(ctx, &dto.CreateStudentRequest{StudentID: "  ", Name: "Alice"}); !apperrors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("blank student_id err = %v, want ErrValidationFailed", err)
	}
}

func TestCreateStudentNormalizesGradeLevel(t *testing.T) {
	service := NewStudentService(newMemStudentStore())

	student, err := service.CreateStudent(context.Background(), &dto.CreateStudentRequest{
		StudentID:  "S1001",
		Name:       "Alice",
		GradeLevel: dto.NewGradeLevel(3),
	})
	if err != nil {
		t.Fatal(err)
	}
	if student.GradeLevel == nil || *student.GradeLevel != 3 {
		t.Errorf("grade level = %v, want 3", student.GradeLevel)
	}
}

func TestUpdateStudentPartialPatch(t *testing.T) {
	store := newMemStudentStore()
	service := NewStudentService(store)
	ctx := context.Background()

	created, err := service.CreateStudent(ctx, &dto.CreateStudentRequest{
		StudentID:  "S1001",
		Name:       "Alice",
		Age:        intPtr(12),
		Department: strPtr("Science"),
	})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := service.UpdateStudent(ctx, created.ID, &dto.UpdateStudentRequest{
		Age: intPtr(13),
	})
	if err != nil {
		t.Fatalf("UpdateStudent: %v", err)
	}

	if updated.Age == nil || *updated.Age != 13 {
		t.Errorf("age = %v, want 13", updated.Age)
	}
	if updated.Name != "Alice" || updated.StudentID != "S1001" {
		t.Errorf("untouched fields changed: %+v", updated)
	}
	if updated.Department == nil || *updated.Department != "Science" {
		t.Errorf("department reset: %v", updated.Department)
	}
}

func TestUpdateStudentUnknownIDIsNotFound(t *testing.T) {
	service := NewStudentService(newMemStudentStore())
	_, err := service.UpdateStudent(context.Background(), 99, &dto.UpdateStudentRequest{Name: strPtr("X")})
	if !apperrors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("err = %v, want ErrStudentNotFound", err)
	}
}

func TestDeleteStudentTwiceIsNotFound(t *testing.T) {
	store := newMemStudentStore()
	service := NewStudentService(store)
	ctx := context.Background()

	created, err := service.CreateStudent(ctx, &dto.CreateStudentRequest{StudentID: "S1001", Name: "Alice"})
	if err != nil {
		t.Fatal(err)
	}

	if err := service.DeleteStudent(ctx, created.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := service.DeleteStudent(ctx, created.ID); !apperrors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("second delete err = %v, want ErrStudentNotFound", err)
	}
}
