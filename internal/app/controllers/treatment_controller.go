package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yberk/infirmary/internal/app/models/dto"
	"github.com/yberk/infirmary/internal/app/services"
	"github.com/yberk/infirmary/internal/middleware"
)

// TreatmentController handles treatment record operations
type TreatmentController struct {
	treatmentService *services.TreatmentService
}

// NewTreatmentController creates a new TreatmentController
func NewTreatmentController(treatmentService *services.TreatmentService) *TreatmentController {
	return &TreatmentController{
		treatmentService: treatmentService,
	}
}

// GetAllTreatments lists every treatment with its student and medicines
func (c *TreatmentController) GetAllTreatments(ctx *gin.Context) {
	treatments, err := c.treatmentService.ListTreatments(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      treatments,
		Timestamp: time.Now(),
	})
}

// CreateTreatment records a treatment for a student
func (c *TreatmentController) CreateTreatment(ctx *gin.Context) {
	var req dto.CreateTreatmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid treatment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	treatment, err := c.treatmentService.CreateTreatment(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      treatment,
		Timestamp: time.Now(),
	})
}

// UpdateTreatment applies a partial update to an existing treatment
func (c *TreatmentController) UpdateTreatment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateTreatmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid treatment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	treatment, err := c.treatmentService.UpdateTreatment(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      treatment,
		Timestamp: time.Now(),
	})
}

// DeleteTreatment removes a treatment record
func (c *TreatmentController) DeleteTreatment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.treatmentService.DeleteTreatment(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Treatment deleted"},
		Timestamp: time.Now(),
	})
}

// GetTreatedStudents lists students that have at least one treatment
func (c *TreatmentController) GetTreatedStudents(ctx *gin.Context) {
	students, err := c.treatmentService.TreatedStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      students,
		Timestamp: time.Now(),
	})
}

// GetTreatmentHistory lists a student's treatments by school-issued id
func (c *TreatmentController) GetTreatmentHistory(ctx *gin.Context) {
	studentID := ctx.Param("studentId")

	history, err := c.treatmentService.TreatmentHistory(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      history,
		Timestamp: time.Now(),
	})
}
