package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yberk/infirmary/internal/app/models"
	"github.com/yberk/infirmary/internal/pkg/apperrors"
)

// MedicineRepository handles database operations for the medicine shelf
type MedicineRepository struct {
	db *pgxpool.Pool
}

// NewMedicineRepository creates a new medicine repository
func NewMedicineRepository(db *pgxpool.Pool) *MedicineRepository {
	return &MedicineRepository{
		db: db,
	}
}

// Create inserts a new medicine and fills in its storage id
func (r *MedicineRepository) Create(ctx context.Context, medicine *models.Medicine) error {
	query := `
		INSERT INTO medicines (name, brand, stock)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, medicine.Name, medicine.Brand, medicine.Stock).
		Scan(&medicine.ID)
	if err != nil {
		return fmt.Errorf("error creating medicine: %w", err)
	}

	return nil
}

// GetByID retrieves a medicine by storage id
func (r *MedicineRepository) GetByID(ctx context.Context, id int64) (*models.Medicine, error) {
	query := `
		SELECT id, name, brand, stock
		FROM medicines
		WHERE id = $1
	`

	var medicine models.Medicine
	err := r.db.QueryRow(ctx, query, id).Scan(
		&medicine.ID,
		&medicine.Name,
		&medicine.Brand,
		&medicine.Stock,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrMedicineNotFound
		}
		return nil, fmt.Errorf("error retrieving medicine: %w", err)
	}

	return &medicine, nil
}

// GetAll retrieves every medicine in insertion order
func (r *MedicineRepository) GetAll(ctx context.Context) ([]*models.Medicine, error) {
	return r.query(ctx, `
		SELECT id, name, brand, stock
		FROM medicines
		ORDER BY id
	`)
}

// Search returns medicines whose name or brand contains the query as a
// case-insensitive substring, in insertion order.
func (r *MedicineRepository) Search(ctx context.Context, query string) ([]*models.Medicine, error) {
	pattern := "%" + escapeLike(query) + "%"
	return r.query(ctx, `
		SELECT id, name, brand, stock
		FROM medicines
		WHERE name ILIKE $1 OR brand ILIKE $1
		ORDER BY id
	`, pattern)
}

func (r *MedicineRepository) query(ctx context.Context, sql string, args ...interface{}) ([]*models.Medicine, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var medicines []*models.Medicine
	for rows.Next() {
		var medicine models.Medicine
		if err := rows.Scan(
			&medicine.ID,
			&medicine.Name,
			&medicine.Brand,
			&medicine.Stock,
		); err != nil {
			return nil, err
		}
		medicines = append(medicines, &medicine)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return medicines, nil
}

// Update writes the full medicine row
func (r *MedicineRepository) Update(ctx context.Context, medicine *models.Medicine) error {
	query := `
		UPDATE medicines
		SET name = $1, brand = $2, stock = $3
		WHERE id = $4
	`

	cmdTag, err := r.db.Exec(ctx, query,
		medicine.Name,
		medicine.Brand,
		medicine.Stock,
		medicine.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating medicine: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMedicineNotFound
	}

	return nil
}

// Delete removes a medicine by storage id
func (r *MedicineRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM medicines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting medicine: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrMedicineNotFound
	}

	return nil
}

// escapeLike escapes the LIKE metacharacters so a search query matches them
// literally.
func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
