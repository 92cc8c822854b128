package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/atcampus/internal/app/models/dto"
)

// BindJSON decodes the request body and runs its binding rules. On failure it
// writes a 400 response and returns false.
func BindJSON[T any](c *gin.Context) (*T, bool) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return nil, false
	}

	return &req, true
}

// ValidUUIDParams rejects requests whose named path parameters are not UUIDs
func ValidUUIDParams(names ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, name := range names {
			if _, err := uuid.Parse(c.Param(name)); err != nil {
				errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid path parameter").
					WithField(name).
					WithDetails(name + " must be a valid UUID")
				c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
				return
			}
		}
		c.Next()
	}
}
