package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/yberk/infirmary/internal/app/models"
	"github.com/yberk/infirmary/internal/app/models/dto"
	"github.com/yberk/infirmary/internal/pkg/apperrors"
)

// TreatmentService handles visit records. Students are resolved by their
// externally assigned student number everywhere (create, update, history);
// the storage id never acts as an input identifier for treatments.
type TreatmentService struct {
	treatmentStore TreatmentStore
	studentStore   StudentStore
	medicineStore  MedicineStore
	logger         zerolog.Logger
}

// NewTreatmentService creates a new treatment service
func NewTreatmentService(treatmentStore TreatmentStore, studentStore StudentStore, medicineStore MedicineStore, logger zerolog.Logger) *TreatmentService {
	return &TreatmentService{
		treatmentStore: treatmentStore,
		studentStore:   studentStore,
		medicineStore:  medicineStore,
		logger:         logger,
	}
}

// resolveStudent resolves the external student number in a write payload.
// A miss is a bad request, not a 404: the payload references a nonexistent
// entity rather than naming a missing resource in the URL.
func (s *TreatmentService) resolveStudent(ctx context.Context, studentID string) (*models.Student, error) {
	student, err := s.studentStore.GetByStudentID(ctx, studentID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrStudentRefNotFound,
				fmt.Sprintf("student %q not found", studentID))
		}
		return nil, err
	}
	return student, nil
}

// resolveMedicines resolves every referenced medicine id. Resolution is
// all-or-nothing: the first failing id aborts the whole operation.
func (s *TreatmentService) resolveMedicines(ctx context.Context, ids []int64) ([]models.Medicine, error) {
	medicines := make([]models.Medicine, 0, len(ids))
	for _, id := range ids {
		medicine, err := s.medicineStore.GetByID(ctx, id)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrMedicineNotFound) {
				return nil, apperrors.NewCustomError(apperrors.ErrMedicineRefNotFound,
					fmt.Sprintf("medicine with id %d not found", id))
			}
			return nil, err
		}
		medicines = append(medicines, *medicine)
	}
	return medicines, nil
}

// CreateTreatment resolves all references, persists the visit and returns
// the denormalized representation. Nothing is persisted when any reference
// fails to resolve.
func (s *TreatmentService) CreateTreatment(ctx context.Context, req *dto.CreateTreatmentRequest) (*dto.TreatmentResponse, error) {
	student, err := s.resolveStudent(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}

	medicines, err := s.resolveMedicines(ctx, req.MedicineIDs)
	if err != nil {
		return nil, err
	}

	treatment := &models.Treatment{
		StudentRef: student.ID,
		Symptoms:   req.Symptoms,
		Date:       time.Now().UTC(),
	}
	if req.Date != nil {
		treatment.Date = *req.Date
	}

	if err := s.treatmentStore.Create(ctx, treatment, req.MedicineIDs); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("treatmentID", treatment.ID).
		Str("studentID", student.StudentID).
		Int("medicines", len(medicines)).
		Msg("Treatment recorded")

	treatment.Student = student
	treatment.Medicines = medicines
	return toTreatmentResponse(treatment), nil
}

// UpdateTreatment applies a partial patch to a visit record. Present fields
// follow the same resolution rules as create; absent fields, including the
// medicine list, are left untouched.
func (s *TreatmentService) UpdateTreatment(ctx context.Context, id int64, req *dto.UpdateTreatmentRequest) (*dto.TreatmentResponse, error) {
	treatment, err := s.treatmentStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var student *models.Student
	if req.StudentID != nil {
		student, err = s.resolveStudent(ctx, *req.StudentID)
		if err != nil {
			return nil, err
		}
		treatment.StudentRef = student.ID
	}

	var medicines []models.Medicine
	if req.MedicineIDs != nil {
		medicines, err = s.resolveMedicines(ctx, *req.MedicineIDs)
		if err != nil {
			return nil, err
		}
	}

	if req.Symptoms != nil {
		treatment.Symptoms = req.Symptoms
	}
	if req.Date != nil {
		treatment.Date = *req.Date
	}

	if err := s.treatmentStore.Update(ctx, treatment, req.MedicineIDs); err != nil {
		return nil, err
	}

	// Assemble the denormalized response from what the patch did not change
	if student == nil {
		student, err = s.studentStore.GetByID(ctx, treatment.StudentRef)
		if err != nil && !apperrors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, err
		}
	}
	if req.MedicineIDs == nil {
		ids, err := s.treatmentStore.MedicineIDs(ctx, id)
		if err != nil {
			return nil, err
		}
		medicines = s.lookupMedicines(ctx, ids)
	}

	treatment.Student = student
	treatment.Medicines = medicines
	return toTreatmentResponse(treatment), nil
}

// lookupMedicines fetches whatever medicines still resolve, silently
// skipping dangling references.
func (s *TreatmentService) lookupMedicines(ctx context.Context, ids []int64) []models.Medicine {
	medicines := make([]models.Medicine, 0, len(ids))
	for _, id := range ids {
		medicine, err := s.medicineStore.GetByID(ctx, id)
		if err != nil {
			continue
		}
		medicines = append(medicines, *medicine)
	}
	return medicines
}

// ListTreatments returns every visit, denormalized, in insertion order
func (s *TreatmentService) ListTreatments(ctx context.Context) ([]*dto.TreatmentResponse, error) {
	treatments, err := s.treatmentStore.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving treatments: %w", err)
	}

	result := make([]*dto.TreatmentResponse, 0, len(treatments))
	for _, treatment := range treatments {
		result = append(result, toTreatmentResponse(treatment))
	}
	return result, nil
}

// TreatedStudents returns the distinct students referenced by at least one
// visit, deduplicated by storage identity.
func (s *TreatmentService) TreatedStudents(ctx context.Context) ([]*models.Student, error) {
	students, err := s.treatmentStore.GetTreatedStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving treated students: %w", err)
	}
	if students == nil {
		students = []*models.Student{}
	}
	return students, nil
}

// TreatmentHistory returns every visit of a student addressed by external
// student number, plus a count equal to the history length.
func (s *TreatmentService) TreatmentHistory(ctx context.Context, studentID string) (*dto.TreatmentHistoryResponse, error) {
	student, err := s.studentStore.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	treatments, err := s.treatmentStore.GetByStudentRef(ctx, student.ID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving treatment history: %w", err)
	}

	history := make([]dto.TreatmentResponse, 0, len(treatments))
	for _, treatment := range treatments {
		history = append(history, *toTreatmentResponse(treatment))
	}

	return &dto.TreatmentHistoryResponse{
		Student: dto.TreatmentStudent{
			ID:        student.ID,
			StudentID: student.StudentID,
			Name:      student.Name,
		},
		TreatmentCount: len(history),
		History:        history,
	}, nil
}

// DeleteTreatment removes a visit record; the referenced student and
// medicines are untouched.
func (s *TreatmentService) DeleteTreatment(ctx context.Context, id int64) error {
	return s.treatmentStore.Delete(ctx, id)
}

// toTreatmentResponse inlines the referenced entities' display fields.
// A dangling student reference renders as an id-only stub instead of
// failing the whole read.
func toTreatmentResponse(t *models.Treatment) *dto.TreatmentResponse {
	resp := &dto.TreatmentResponse{
		ID:        t.ID,
		Symptoms:  t.Symptoms,
		Medicines: make([]dto.TreatmentMedicine, 0, len(t.Medicines)),
		Date:      t.Date,
	}

	if t.Student != nil {
		resp.Student = dto.TreatmentStudent{
			ID:        t.Student.ID,
			StudentID: t.Student.StudentID,
			Name:      t.Student.Name,
		}
	} else {
		resp.Student = dto.TreatmentStudent{ID: t.StudentRef}
	}

	for _, m := range t.Medicines {
		resp.Medicines = append(resp.Medicines, dto.TreatmentMedicine{
			ID:   m.ID,
			Name: m.Name,
		})
	}

	return resp
}
