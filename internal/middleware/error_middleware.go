package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yberk/infirmary/internal/app/models/dto"
	"github.com/yberk/infirmary/internal/pkg/apperrors"
)

// HandleAPIError maps application errors to standardized JSON responses
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, messageOr(err, "Invalid credentials"))
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, messageOr(err, "Token expired"))
	case errors.Is(err, apperrors.ErrTokenRevoked):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeRevokedToken, messageOr(err, "Token revoked"))
	case errors.Is(err, apperrors.ErrTokenNotFound):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, messageOr(err, "Token not found"))
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, messageOr(err, "Invalid token"))
	case errors.Is(err, apperrors.ErrUnauthorized):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, messageOr(err, "Authentication required"))

	case errors.Is(err, apperrors.ErrStudentRefNotFound),
		errors.Is(err, apperrors.ErrMedicineRefNotFound):
		respond(c, http.StatusBadRequest, dto.ErrorCodeInvalidReference, messageOr(err, "Referenced resource not found"))
	case errors.Is(err, apperrors.ErrInvalidID):
		respond(c, http.StatusBadRequest, dto.ErrorCodeInvalidID, messageOr(err, "Invalid id format"))
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrEmptySearchQuery),
		errors.Is(err, apperrors.ErrBadRequest):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, messageOr(err, "Validation failed"))

	case errors.Is(err, apperrors.ErrUsernameAlreadyExists),
		errors.Is(err, apperrors.ErrStudentIDAlreadyExists),
		errors.Is(err, apperrors.ErrConflict):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, messageOr(err, "Resource already exists"))

	case errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrMedicineNotFound),
		errors.Is(err, apperrors.ErrTreatmentNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, messageOr(err, "Resource not found"))

	default:
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// messageOr returns the wrapped client-facing message when the error carries
// one, otherwise the fallback. Internal error text never reaches clients.
func messageOr(err error, fallback string) string {
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		return customErr.Message
	}
	return fallback
}
