package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yberk/infirmary/internal/app/models/dto"
	"github.com/yberk/infirmary/internal/app/services"
	"github.com/yberk/infirmary/internal/middleware"
)

// MedicineController handles medicine inventory operations
type MedicineController struct {
	medicineService *services.MedicineService
}

// NewMedicineController creates a new MedicineController
func NewMedicineController(medicineService *services.MedicineService) *MedicineController {
	return &MedicineController{
		medicineService: medicineService,
	}
}

// GetAllMedicines lists the full inventory
func (c *MedicineController) GetAllMedicines(ctx *gin.Context) {
	medicines, err := c.medicineService.ListMedicines(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      medicines,
		Timestamp: time.Now(),
	})
}

// GetMedicineByID retrieves a single medicine
func (c *MedicineController) GetMedicineByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	medicine, err := c.medicineService.GetMedicine(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      medicine,
		Timestamp: time.Now(),
	})
}

// SearchMedicines performs a case-insensitive substring search on name and brand
func (c *MedicineController) SearchMedicines(ctx *gin.Context) {
	query := ctx.Query("q")

	medicines, err := c.medicineService.SearchMedicines(ctx.Request.Context(), query)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      medicines,
		Timestamp: time.Now(),
	})
}

// CreateMedicine handles medicine creation
func (c *MedicineController) CreateMedicine(ctx *gin.Context) {
	var req dto.CreateMedicineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid medicine data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	medicine, err := c.medicineService.CreateMedicine(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      medicine,
		Timestamp: time.Now(),
	})
}

// UpdateMedicine applies a partial update to an existing medicine
func (c *MedicineController) UpdateMedicine(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateMedicineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid medicine data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	medicine, err := c.medicineService.UpdateMedicine(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      medicine,
		Timestamp: time.Now(),
	})
}

// DeleteMedicine removes a medicine from the inventory
func (c *MedicineController) DeleteMedicine(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.medicineService.DeleteMedicine(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Medicine deleted"},
		Timestamp: time.Now(),
	})
}
