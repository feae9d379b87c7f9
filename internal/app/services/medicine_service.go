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

// MedicineService handles medicine shelf operations
type MedicineService struct {
	medicineStore MedicineStore
}

// NewMedicineService creates a new medicine service
func NewMedicineService(medicineStore MedicineStore) *MedicineService {
	return &MedicineService{
		medicineStore: medicineStore,
	}
}

// ListMedicines returns every medicine in insertion order
func (s *MedicineService) ListMedicines(ctx context.Context) ([]*models.Medicine, error) {
	medicines, err := s.medicineStore.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving medicines: %w", err)
	}
	if medicines == nil {
		medicines = []*models.Medicine{}
	}
	return medicines, nil
}

// GetMedicine retrieves a single medicine by storage id
func (s *MedicineService) GetMedicine(ctx context.Context, id int64) (*models.Medicine, error) {
	return s.medicineStore.GetByID(ctx, id)
}

// SearchMedicines returns medicines whose name or brand contains the query
// as a case-insensitive substring. An empty query is rejected.
func (s *MedicineService) SearchMedicines(ctx context.Context, query string) ([]*models.Medicine, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.ErrEmptySearchQuery
	}

	medicines, err := s.medicineStore.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error searching medicines: %w", err)
	}
	if medicines == nil {
		medicines = []*models.Medicine{}
	}
	return medicines, nil
}

// CreateMedicine validates and persists a new medicine. Stock defaults to
// zero when absent; negative stock is not rejected (observed behavior).
func (s *MedicineService) CreateMedicine(ctx context.Context, req *dto.CreateMedicineRequest) (*models.Medicine, error) {
	if !validation.ValidName(req.Name) {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	medicine := &models.Medicine{
		Name:  strings.TrimSpace(req.Name),
		Brand: req.Brand,
	}
	if req.Stock != nil {
		medicine.Stock = *req.Stock
	}

	if err := s.medicineStore.Create(ctx, medicine); err != nil {
		return nil, err
	}

	return medicine, nil
}

// UpdateMedicine applies a partial patch to an existing medicine
func (s *MedicineService) UpdateMedicine(ctx context.Context, id int64, req *dto.UpdateMedicineRequest) (*models.Medicine, error) {
	medicine, err := s.medicineStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if !validation.ValidName(*req.Name) {
			return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
		}
		medicine.Name = strings.TrimSpace(*req.Name)
	}
	if req.Brand != nil {
		medicine.Brand = req.Brand
	}
	if req.Stock != nil {
		medicine.Stock = *req.Stock
	}

	if err := s.medicineStore.Update(ctx, medicine); err != nil {
		return nil, err
	}

	return medicine, nil
}

// DeleteMedicine removes a medicine by storage id. Treatments referencing
// it keep their reference; reads skip it once gone.
func (s *MedicineService) DeleteMedicine(ctx context.Context, id int64) error {
	return s.medicineStore.Delete(ctx, id)
}
