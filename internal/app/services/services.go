// Package services holds the business rules between the HTTP controllers
// and the repositories: field allow-listing, required-field checks,
// reference resolution and response assembly.
package services

import (
	"context"
	"time"

	"github.com/yberk/infirmary/internal/app/models"
)

// UserStore is the persistence surface the auth service needs
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetAll(ctx context.Context) ([]*models.User, error)
}

// TokenStore tracks issued refresh tokens
type TokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenUser(ctx context.Context, token string) (int64, error)
	RevokeToken(ctx context.Context, token string) error
}

// StudentStore is the persistence surface for student records
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByStudentID(ctx context.Context, studentID string) (*models.Student, error)
	GetAll(ctx context.Context) ([]*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

// MedicineStore is the persistence surface for the medicine shelf
type MedicineStore interface {
	Create(ctx context.Context, medicine *models.Medicine) error
	GetByID(ctx context.Context, id int64) (*models.Medicine, error)
	GetAll(ctx context.Context) ([]*models.Medicine, error)
	Search(ctx context.Context, query string) ([]*models.Medicine, error)
	Update(ctx context.Context, medicine *models.Medicine) error
	Delete(ctx context.Context, id int64) error
}

// TreatmentStore is the persistence surface for visit records
type TreatmentStore interface {
	Create(ctx context.Context, treatment *models.Treatment, medicineIDs []int64) error
	Update(ctx context.Context, treatment *models.Treatment, medicineIDs *[]int64) error
	GetByID(ctx context.Context, id int64) (*models.Treatment, error)
	GetAll(ctx context.Context) ([]*models.Treatment, error)
	GetByStudentRef(ctx context.Context, studentRef int64) ([]*models.Treatment, error)
	GetTreatedStudents(ctx context.Context) ([]*models.Student, error)
	MedicineIDs(ctx context.Context, treatmentID int64) ([]int64, error)
	Delete(ctx context.Context, id int64) error
}
