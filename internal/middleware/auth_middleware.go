package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/atcampus/internal/app/models"
	"github.com/yigit/atcampus/internal/app/models/dto"
	"github.com/yigit/atcampus/internal/domain"
	"github.com/yigit/atcampus/internal/pkg/auth"
)

// Context keys set by JWTAuth
const (
	ContextKeyUserID   = "userID"
	ContextKeyEmail    = "email"
	ContextKeyRoleType = "roleType"
	ContextKeyViewer   = "viewer"
)

// AccountLookup loads the current state of an account
type AccountLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
	userRepo   AccountLookup
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, userRepo AccountLookup) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
	}
}

func abortUnauthorized(c *gin.Context, code dto.ErrorCode, details string) {
	errorDetail := dto.NewErrorDetail(code, "Authentication required").WithDetails(details)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
}

// JWTAuth validates the bearer token and stores the viewer in the context.
// Browsers cannot set headers on WebSocket upgrades, so a "token" query
// parameter is accepted as well.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			authHeader = c.Query("token")
		}
		if authHeader == "" {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Authorization header missing")
			return
		}

		tokenString, err := auth.ExtractBearerToken(strings.Trim(authHeader, "\"'"))
		if err != nil {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "Invalid token format")
			return
		}

		claims, err := m.jwtService.ValidateAndExtractClaims(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrorCodeExpiredToken, "Token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrorCodeInvalidToken, "Invalid token")
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyEmail, claims.Email)
		c.Set(ContextKeyRoleType, claims.RoleType)
		c.Set(ContextKeyViewer, domain.Viewer{UserID: claims.UserID, Role: claims.RoleType})

		c.Next()
	}
}

// ViewerFromContext returns the viewer stored by JWTAuth
func ViewerFromContext(c *gin.Context) (domain.Viewer, bool) {
	v, exists := c.Get(ContextKeyViewer)
	if !exists {
		return domain.Viewer{}, false
	}
	viewer, ok := v.(domain.Viewer)
	if !ok || viewer.IsZero() {
		return domain.Viewer{}, false
	}
	return viewer, true
}

// AccountApprovalRequired blocks accounts that are not APPROVED. The status is
// read from the database because an admin may have changed it after the
// token was issued.
func (m *AuthMiddleware) AccountApprovalRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := ViewerFromContext(c)
		if !ok {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "User information not found")
			return
		}

		user, err := m.userRepo.GetByID(c.Request.Context(), viewer.UserID)
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		switch user.AccountStatus {
		case models.AccountApproved:
			c.Next()
		case models.AccountRejected:
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeAccountRejected, AccountRejectedMessage)))
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeAccountPending, AccountPendingMessage)))
		}
	}
}

// RoleRequired middleware to check if user has required role
func (m *AuthMiddleware) RoleRequired(requiredRole models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := ViewerFromContext(c)
		if !ok {
			abortUnauthorized(c, dto.ErrorCodeUnauthorized, "User role not found")
			return
		}

		if viewer.Role != string(requiredRole) {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
				WithDetails("You don't have sufficient permissions for this operation")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}
