package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yberk/infirmary/internal/app/models"
	"github.com/yberk/infirmary/internal/db"
	"github.com/yberk/infirmary/internal/pkg/apperrors"
)

// TreatmentRepository handles database operations for visit records.
// Treatment rows and their ordered medicine references (treatment_medicines)
// are always written together inside a transaction, so a visit is never
// persisted with half of its references.
type TreatmentRepository struct {
	db *pgxpool.Pool
}

// NewTreatmentRepository creates a new treatment repository
func NewTreatmentRepository(db *pgxpool.Pool) *TreatmentRepository {
	return &TreatmentRepository{
		db: db,
	}
}

// Create inserts the treatment row plus its medicine references atomically
func (r *TreatmentRepository) Create(ctx context.Context, treatment *models.Treatment, medicineIDs []int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO treatments (student_ref, symptoms, date)
			VALUES ($1, $2, $3)
			RETURNING id
		`, treatment.StudentRef, treatment.Symptoms, treatment.Date).Scan(&treatment.ID)
		if err != nil {
			return fmt.Errorf("error creating treatment: %w", err)
		}

		return insertMedicineRefs(ctx, tx, treatment.ID, medicineIDs)
	})
}

// Update writes the treatment row and, when medicineIDs is non-nil, replaces
// the medicine references. A nil medicineIDs leaves the existing references
// untouched.
func (r *TreatmentRepository) Update(ctx context.Context, treatment *models.Treatment, medicineIDs *[]int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, `
			UPDATE treatments
			SET student_ref = $1, symptoms = $2, date = $3
			WHERE id = $4
		`, treatment.StudentRef, treatment.Symptoms, treatment.Date, treatment.ID)
		if err != nil {
			return fmt.Errorf("error updating treatment: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrTreatmentNotFound
		}

		if medicineIDs == nil {
			return nil
		}

		if _, err := tx.Exec(ctx, `DELETE FROM treatment_medicines WHERE treatment_id = $1`, treatment.ID); err != nil {
			return fmt.Errorf("error clearing medicine references: %w", err)
		}

		return insertMedicineRefs(ctx, tx, treatment.ID, *medicineIDs)
	})
}

func insertMedicineRefs(ctx context.Context, tx pgx.Tx, treatmentID int64, medicineIDs []int64) error {
	for i, medicineID := range medicineIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO treatment_medicines (treatment_id, medicine_id, position)
			VALUES ($1, $2, $3)
		`, treatmentID, medicineID, i); err != nil {
			return fmt.Errorf("error adding medicine reference: %w", err)
		}
	}
	return nil
}

// GetByID retrieves a single treatment without relations
func (r *TreatmentRepository) GetByID(ctx context.Context, id int64) (*models.Treatment, error) {
	var treatment models.Treatment
	err := r.db.QueryRow(ctx, `
		SELECT id, student_ref, symptoms, date
		FROM treatments
		WHERE id = $1
	`, id).Scan(&treatment.ID, &treatment.StudentRef, &treatment.Symptoms, &treatment.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTreatmentNotFound
		}
		return nil, fmt.Errorf("error retrieving treatment: %w", err)
	}

	return &treatment, nil
}

// MedicineIDs returns the ordered medicine references of a treatment,
// including ones that no longer resolve to a medicine row.
func (r *TreatmentRepository) MedicineIDs(ctx context.Context, treatmentID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT medicine_id
		FROM treatment_medicines
		WHERE treatment_id = $1
		ORDER BY position
	`, treatmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// GetAll retrieves every treatment in insertion order, with the referenced
// student and the resolvable medicines attached.
func (r *TreatmentRepository) GetAll(ctx context.Context) ([]*models.Treatment, error) {
	return r.load(ctx, ``)
}

// GetByStudentRef retrieves every treatment referencing a student, in
// insertion order.
func (r *TreatmentRepository) GetByStudentRef(ctx context.Context, studentRef int64) ([]*models.Treatment, error) {
	return r.load(ctx, `WHERE t.student_ref = $1`, studentRef)
}

func (r *TreatmentRepository) load(ctx context.Context, where string, args ...interface{}) ([]*models.Treatment, error) {
	query := `
		SELECT t.id, t.student_ref, t.symptoms, t.date,
		       s.id, s.student_id, s.name, s.age, s.department, s.grade_level
		FROM treatments t
		LEFT JOIN students s ON s.id = t.student_ref
	` + where + `
		ORDER BY t.id
	`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var treatments []*models.Treatment
	byID := make(map[int64]*models.Treatment)
	for rows.Next() {
		var treatment models.Treatment
		var sID *int64
		var sStudentID, sName *string
		var sAge, sGrade *int
		var sDept *string

		if err := rows.Scan(
			&treatment.ID, &treatment.StudentRef, &treatment.Symptoms, &treatment.Date,
			&sID, &sStudentID, &sName, &sAge, &sDept, &sGrade,
		); err != nil {
			return nil, err
		}

		// The student may have been deleted after the visit was recorded
		if sID != nil {
			treatment.Student = &models.Student{
				ID:         *sID,
				StudentID:  *sStudentID,
				Name:       *sName,
				Age:        sAge,
				Department: sDept,
				GradeLevel: sGrade,
			}
		}

		treatment.Medicines = []models.Medicine{}
		treatments = append(treatments, &treatment)
		byID[treatment.ID] = &treatment
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(treatments) == 0 {
		return treatments, nil
	}

	if err := r.attachMedicines(ctx, byID); err != nil {
		return nil, err
	}

	return treatments, nil
}

// attachMedicines loads the resolvable medicine references for a set of
// treatments. The inner join silently drops references whose medicine has
// been deleted.
func (r *TreatmentRepository) attachMedicines(ctx context.Context, byID map[int64]*models.Treatment) error {
	ids := make([]int64, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	rows, err := r.db.Query(ctx, `
		SELECT tm.treatment_id, m.id, m.name, m.brand, m.stock
		FROM treatment_medicines tm
		JOIN medicines m ON m.id = tm.medicine_id
		WHERE tm.treatment_id = ANY($1)
		ORDER BY tm.treatment_id, tm.position
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var treatmentID int64
		var medicine models.Medicine
		if err := rows.Scan(&treatmentID, &medicine.ID, &medicine.Name, &medicine.Brand, &medicine.Stock); err != nil {
			return err
		}
		if t, ok := byID[treatmentID]; ok {
			t.Medicines = append(t.Medicines, medicine)
		}
	}

	return rows.Err()
}

// GetTreatedStudents returns the distinct set of students referenced by at
// least one treatment, deduplicated by storage id.
func (r *TreatmentRepository) GetTreatedStudents(ctx context.Context) ([]*models.Student, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT s.id, s.student_id, s.name, s.age, s.department, s.grade_level
		FROM students s
		JOIN treatments t ON t.student_ref = s.id
		ORDER BY s.id
	`)
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

	return students, rows.Err()
}

// Delete removes a treatment. The join table rows go with it via cascade;
// the referenced student and medicines are untouched.
func (r *TreatmentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM treatments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting treatment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTreatmentNotFound
	}

	return nil
}
