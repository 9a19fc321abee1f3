package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/demirhan/taportal/internal/app/models/dto"
	"github.com/demirhan/taportal/internal/pkg/apperrors"
	"github.com/demirhan/taportal/internal/pkg/logger"
)

// HandleAPIError maps application errors onto HTTP responses. Lifecycle
// denials come back with their own codes so clients can tell exactly which
// guard refused the request.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	// Lifecycle denials
	case errors.Is(err, apperrors.ErrAlreadyEmployed):
		respond(c, http.StatusConflict, dto.ErrorCodeAlreadyEmployed, "Student already holds a position")
	case errors.Is(err, apperrors.ErrPendingExists):
		respond(c, http.StatusConflict, dto.ErrorCodePendingExists, "Student already has a pending application")
	case errors.Is(err, apperrors.ErrDuplicateTarget):
		respond(c, http.StatusConflict, dto.ErrorCodeDuplicateTarget, "Student already applied to this position")
	case errors.Is(err, apperrors.ErrPositionClosed):
		respond(c, http.StatusConflict, dto.ErrorCodePositionClosed, "Position is not open for applications")
	case errors.Is(err, apperrors.ErrPositionFull):
		respond(c, http.StatusConflict, dto.ErrorCodePositionFull, "Position has no remaining slots")
	case errors.Is(err, apperrors.ErrInvalidTransition):
		respond(c, http.StatusConflict, dto.ErrorCodeInvalidTransition, "Application already decided")
	case errors.Is(err, apperrors.ErrDuplicateDecision):
		respond(c, http.StatusConflict, dto.ErrorCodeInvalidTransition, "Decision already recorded")

	// Lookups
	case errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrPositionNotFound),
		errors.Is(err, apperrors.ErrApplicationNotFound),
		errors.Is(err, apperrors.ErrDepartmentNotFound),
		errors.Is(err, apperrors.ErrNoticeNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, messageOf(err, "Resource not found"))

	// Authentication
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Account is disabled")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrTokenRevoked):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found")
	case errors.Is(err, apperrors.ErrUnauthorized):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Authentication required")

	// Authorization
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, messageOf(err, "Permission denied"))

	// Validation and conflicts
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, messageOf(err, "Validation failed"))
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrStudentNoExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Student number already exists")
	case errors.Is(err, apperrors.ErrConflict):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, messageOf(err, "Conflict"))

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}

// messageOf prefers the wrapped CustomError message when one was attached
func messageOf(err error, fallback string) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return fallback
}
