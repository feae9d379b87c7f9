// Package controllers wires HTTP requests to the service layer.
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yberk/infirmary/internal/app/models/dto"
)

// parseIDParam reads a numeric path parameter. On failure it writes the
// 400 response itself and reports false.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	raw := ctx.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidID, "Invalid id format")
		errorDetail = errorDetail.WithDetails("id must be a valid number").WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
