package dto

// CreateMedicineRequest is the payload for adding a medicine to the shelf
type CreateMedicineRequest struct {
	Name  string  `json:"name" binding:"required"`
	Brand *string `json:"brand"`
	Stock *int    `json:"stock"` // defaults to 0 when absent
}

// UpdateMedicineRequest is the partial-update patch for a medicine record
type UpdateMedicineRequest struct {
	Name  *string `json:"name"`
	Brand *string `json:"brand"`
	Stock *int    `json:"stock"`
}
