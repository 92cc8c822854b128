// Package controllers handles HTTP request handling
package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/atcampus/internal/app/models/dto"
	"github.com/yigit/atcampus/internal/app/services"
	"github.com/yigit/atcampus/internal/domain"
	"github.com/yigit/atcampus/internal/middleware"
	"github.com/yigit/atcampus/internal/pkg/helpers"
)

// AccountService is the account surface used by AuthController
type AccountService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error)
	ListAccounts(ctx context.Context, status string, page, size int) (*dto.AccountListResponse, error)
	ReviewAccount(ctx context.Context, reviewer domain.Viewer, userID string, req *dto.ReviewAccountRequest) (*dto.UserResponse, error)
}

var _ AccountService = (*services.AuthService)(nil)

// AuthController handles authentication related operations
type AuthController struct {
	authService AccountService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService AccountService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Register handles user registration
// @Summary Register a new user
// @Description Creates a student or instructor account. New accounts start PENDING and cannot sign in until an admin approves them.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration information"
// @Success 201 {object} dto.APIResponse{data=dto.RegisterResponse} "Registration received"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format, email, password or username"
// @Failure 409 {object} dto.ErrorResponse "Email or username already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	req, ok := middleware.BindJSON[dto.RegisterRequest](ctx)
	if !ok {
		return
	}

	registerResponse, err := c.authService.Register(ctx.Request.Context(), req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Registration failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Str("userID", registerResponse.User.ID).
		Str("roleType", req.RoleType).
		Msg("User registered, waiting for approval")

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(registerResponse))
}

// Login handles user login
// @Summary User login
// @Description Authenticates an APPROVED account and returns an access and refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "Account pending (ACC_002) or rejected (ACC_001)"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	req, ok := middleware.BindJSON[dto.LoginRequest](ctx)
	if !ok {
		return
	}

	authResponse, err := c.authService.Login(ctx.Request.Context(), req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(authResponse))
}

// RefreshToken rotates a refresh token
// @Summary Refresh access token
// @Description Exchanges a refresh token for a new token pair. The old refresh token is revoked.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "New token pair"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Refresh token invalid, expired or revoked"
// @Failure 403 {object} dto.ErrorResponse "Account no longer approved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	req, ok := middleware.BindJSON[dto.RefreshTokenRequest](ctx)
	if !ok {
		return
	}

	tokenResponse, err := c.authService.RefreshToken(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(tokenResponse))
}

// Logout revokes a refresh token
// @Summary Logout
// @Description Revokes the given refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse "Logged out"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Refresh token not found"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	req, ok := middleware.BindJSON[dto.RefreshTokenRequest](ctx)
	if !ok {
		return
	}

	if err := c.authService.Logout(ctx.Request.Context(), req.RefreshToken); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Logged out"))
}

// GetProfile returns the signed-in user's profile
// @Summary Current user profile
// @Description Returns the profile of the authenticated user, including the resolved avatar
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Profile"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /auth/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	viewer, ok := requireViewer(ctx)
	if !ok {
		return
	}

	profile, err := c.authService.GetProfile(ctx.Request.Context(), viewer.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile))
}

// ListAccounts lists accounts for review
// @Summary List accounts (admin)
// @Description Lists accounts, optionally filtered by review status. Admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Account status" Enums(PENDING, APPROVED, REJECTED)
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.AccountListResponse} "Accounts"
// @Failure 400 {object} dto.ErrorResponse "Unknown status"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /admin/accounts [get]
func (c *AuthController) ListAccounts(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	accounts, err := c.authService.ListAccounts(ctx.Request.Context(), ctx.Query("status"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(accounts))
}

// ReviewAccount approves or rejects a registration
// @Summary Review account (admin)
// @Description Sets an account to APPROVED or REJECTED. Rejecting revokes the account's refresh tokens. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID" format(uuid)
// @Param request body dto.ReviewAccountRequest true "Review decision"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "Reviewed account"
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Admin role required, or target is an admin"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/accounts/{id}/review [put]
func (c *AuthController) ReviewAccount(ctx *gin.Context) {
	viewer, ok := requireViewer(ctx)
	if !ok {
		return
	}
	req, ok := middleware.BindJSON[dto.ReviewAccountRequest](ctx)
	if !ok {
		return
	}

	user, err := c.authService.ReviewAccount(ctx.Request.Context(), viewer, ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().
		Str("reviewerID", viewer.UserID).
		Str("userID", user.ID).
		Str("status", user.AccountStatus).
		Msg("Account reviewed")

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user))
}

// requireViewer reads the viewer set by JWTAuth, answering 401 when absent
func requireViewer(ctx *gin.Context) (domain.Viewer, bool) {
	viewer, ok := middleware.ViewerFromContext(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return domain.Viewer{}, false
	}
	return viewer, true
}
