package dto

import "time"

// CreateTreatmentRequest is the payload for recording a visit. The student
// is addressed by the externally assigned student number, never by storage id.
type CreateTreatmentRequest struct {
	StudentID   string     `json:"student_id" binding:"required"`
	Symptoms    *string    `json:"symptoms"`
	MedicineIDs []int64    `json:"medicine_ids"`
	Date        *time.Time `json:"date"`
}

// UpdateTreatmentRequest is the partial-update patch for a visit record.
// An absent medicine_ids leaves the existing references untouched; a present
// empty list clears them.
type UpdateTreatmentRequest struct {
	StudentID   *string    `json:"student_id"`
	Symptoms    *string    `json:"symptoms"`
	MedicineIDs *[]int64   `json:"medicine_ids"`
	Date        *time.Time `json:"date"`
}

// TreatmentStudent is the inlined student part of a treatment response
type TreatmentStudent struct {
	ID        int64  `json:"id"`
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
}

// TreatmentMedicine is the inlined medicine part of a treatment response
type TreatmentMedicine struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TreatmentResponse is the fully denormalized visit representation.
// Clients never receive bare references.
type TreatmentResponse struct {
	ID        int64               `json:"id"`
	Student   TreatmentStudent    `json:"student"`
	Symptoms  *string             `json:"symptoms,omitempty"`
	Medicines []TreatmentMedicine `json:"medicines"`
	Date      time.Time           `json:"date"`
}

// TreatmentHistoryResponse bundles a student's visit history with its count
type TreatmentHistoryResponse struct {
	Student        TreatmentStudent    `json:"student"`
	TreatmentCount int                 `json:"treatment_count"`
	History        []TreatmentResponse `json:"history"`
}
