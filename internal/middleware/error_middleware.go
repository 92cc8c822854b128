package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/atcampus/internal/app/models/dto"
	"github.com/yigit/atcampus/internal/pkg/apperrors"
	"github.com/yigit/atcampus/internal/pkg/logger"
)

// Messages shown for accounts that cannot sign in yet
const (
	AccountRejectedMessage = "Unfortunately, your account registration has been rejected."
	AccountPendingMessage  = "Your account is waiting for approval."
)

type errorRule struct {
	target  error
	status  int
	code    dto.ErrorCode
	message string
}

// errorRules is matched top to bottom, so specific sentinels come before the
// generic ones they might wrap.
var errorRules = []errorRule{
	{apperrors.ErrAccountRejected, http.StatusForbidden, dto.ErrorCodeAccountRejected, AccountRejectedMessage},
	{apperrors.ErrAccountPending, http.StatusForbidden, dto.ErrorCodeAccountPending, AccountPendingMessage},

	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrInvalidFormat, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token format"},
	{apperrors.ErrTokenRevoked, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Token revoked"},
	{apperrors.ErrTokenNotFound, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found"},

	{apperrors.ErrInvalidEmail, http.StatusBadRequest, dto.ErrorCodeInvalidEmail, "Invalid email"},
	{apperrors.ErrInvalidPassword, http.StatusBadRequest, dto.ErrorCodeInvalidPassword, "Invalid password"},
	{apperrors.ErrInvalidUsername, http.StatusBadRequest, dto.ErrorCodeInvalidUsername, "Invalid username"},
	{apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists"},
	{apperrors.ErrUsernameAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Username already exists"},
	{apperrors.ErrResourceAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},

	{apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found"},
	{apperrors.ErrResearchNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Research not found"},
	{apperrors.ErrAttachmentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Attachment not found"},
	{apperrors.ErrJobNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Job not found"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},

	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},
	{apperrors.ErrConflict, http.StatusConflict, dto.ErrorCodeConflict, "Conflict"},

	{apperrors.ErrInvalidDescription, http.StatusBadRequest, dto.ErrorCodeResourceInvalid, "Invalid description"},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeBadRequest, "Bad request"},
}

// HandleAPIError maps an error to its HTTP status and error code. Client
// errors carry the error text as details; server errors are logged and never
// leak their cause.
func HandleAPIError(c *gin.Context, err error) {
	for _, rule := range errorRules {
		if !errors.Is(err, rule.target) {
			continue
		}
		detail := dto.NewErrorDetail(rule.code, rule.message)
		if msg := err.Error(); msg != rule.message {
			detail = detail.WithDetails(clientMessage(err))
		}
		c.JSON(rule.status, dto.NewErrorResponse(detail))
		return
	}

	logger.Error().Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("Unhandled error")
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
}

// clientMessage prefers the message of a CustomError anywhere in the chain
func clientMessage(err error) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return err.Error()
}
