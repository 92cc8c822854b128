package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	authz "github.com/yigit/atcampus/internal/app/auth"
	"github.com/yigit/atcampus/internal/app/models"
	"github.com/yigit/atcampus/internal/app/models/dto"
	"github.com/yigit/atcampus/internal/domain"
	"github.com/yigit/atcampus/internal/pkg/apperrors"
	"github.com/yigit/atcampus/internal/pkg/auth"
	"github.com/yigit/atcampus/internal/pkg/email"
	"github.com/yigit/atcampus/internal/pkg/helpers"
	"github.com/yigit/atcampus/internal/pkg/validation"
)

// RegistrationReceivedMessage is returned to a freshly registered user
const RegistrationReceivedMessage = "Registration received. Your account is waiting for approval."

// UserStore is the account persistence the auth service needs
type UserStore interface {
	UserReader
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	UpdateLastLogin(ctx context.Context, userID string) error
	UpdateAccountStatus(ctx context.Context, userID string, status models.AccountStatus) error
	ListByStatus(ctx context.Context, status models.AccountStatus, offset uint64, limit int) ([]*models.User, int64, error)
}

// TokenStore persists refresh tokens
type TokenStore interface {
	CreateToken(ctx context.Context, token, userID string, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (string, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID string) error
}

// AuthService handles registration, login, sessions and account review
type AuthService struct {
	userRepo     UserStore
	tokenRepo    TokenStore
	jwtService   *auth.JWTService
	authzService *authz.AuthorizationService
	notifier     email.Notifier
	logger       zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo UserStore,
	tokenRepo TokenStore,
	jwtService *auth.JWTService,
	authzService *authz.AuthorizationService,
	notifier email.Notifier,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		jwtService:   jwtService,
		authzService: authzService,
		notifier:     notifier,
		logger:       logger,
	}
}

// validateEmail validates an email address
func (s *AuthService) validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email cannot be empty", apperrors.ErrValidationFailed)
	}
	if !validation.IsValidEmail(email) {
		return apperrors.ErrInvalidEmail
	}
	return nil
}

// validatePassword checks if password meets requirements
func (s *AuthService) validatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password cannot be empty", apperrors.ErrValidationFailed)
	}
	if !validation.IsStrongPassword(password) {
		return fmt.Errorf("%w: password must be at least %d characters long and contain a letter and a digit",
			apperrors.ErrInvalidPassword, validation.PasswordMinLength)
	}
	return nil
}

// validateUsername checks the profile handle
func (s *AuthService) validateUsername(username string) error {
	if !validation.IsValidUsername(username) {
		return fmt.Errorf("%w: use 3 to 30 lowercase letters, digits or underscores", apperrors.ErrInvalidUsername)
	}
	return nil
}

// Register creates a PENDING account that an administrator has to approve
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	displayUsername := strings.TrimSpace(req.Username)
	username := strings.ToLower(displayUsername)

	if err := s.validateEmail(email); err != nil {
		return nil, err
	}
	if err := s.validatePassword(req.Password); err != nil {
		return nil, err
	}
	if err := s.validateUsername(username); err != nil {
		return nil, err
	}

	role := models.RoleType(req.RoleType)
	if role != models.RoleStudent && role != models.RoleInstructor {
		return nil, fmt.Errorf("%w: role must be STUDENT or INSTRUCTOR", apperrors.ErrValidationFailed)
	}

	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	exists, err = s.userRepo.UsernameExists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error checking if username exists: %w", err)
	}
	if exists {
		return nil, apperrors.ErrUsernameAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:           email,
		Password:        hashedPassword,
		Name:            strings.TrimSpace(req.Name),
		Username:        username,
		DisplayUsername: displayUsername,
		RoleType:        role,
		AccountStatus:   models.AccountPending,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("userID", user.ID).Str("role", string(role)).Msg("User registered, awaiting approval")
	return &dto.RegisterResponse{
		User:    dto.NewUserResponse(user),
		Message: RegistrationReceivedMessage,
	}, nil
}

// accountStatusError maps a non-approved account to the error shown at login
func accountStatusError(status models.AccountStatus) error {
	switch status {
	case models.AccountApproved:
		return nil
	case models.AccountRejected:
		return apperrors.ErrAccountRejected
	default:
		return apperrors.ErrAccountPending
	}
}

// Login authenticates a user and opens a session
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validateEmail(email); err != nil {
		return nil, err
	}
	if req.Password == "" {
		return nil, fmt.Errorf("%w: password cannot be empty", apperrors.ErrValidationFailed)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := accountStatusError(user.AccountStatus); err != nil {
		s.logger.Info().Str("userID", user.ID).Str("status", string(user.AccountStatus)).Msg("Login refused for unapproved account")
		return nil, err
	}

	token, err := s.generateTokenResponse(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Str("userID", user.ID).Msg("Failed to record last login")
	}

	return &dto.AuthResponse{Token: *token, User: dto.NewUserResponse(user)}, nil
}

// RefreshToken rotates a refresh token and issues a new access token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	userID, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	// Revoke the old token so it cannot be replayed
	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke old token: %w", err)
	}

	if err := accountStatusError(user.AccountStatus); err != nil {
		return nil, err
	}

	return s.generateTokenResponse(ctx, user)
}

// Logout revokes a refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokenRepo.RevokeToken(ctx, refreshToken)
}

// GetProfile returns the private profile of a user
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

// ListAccounts pages through accounts in one review state
func (s *AuthService) ListAccounts(ctx context.Context, status string, page, size int) (*dto.AccountListResponse, error) {
	accountStatus := models.AccountStatus(strings.ToUpper(status))
	if accountStatus != "" && !accountStatus.Valid() {
		return nil, apperrors.NewBadRequestError("status must be PENDING, APPROVED or REJECTED")
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	users, total, err := s.userRepo.ListByStatus(ctx, accountStatus, offset, limit)
	if err != nil {
		return nil, err
	}

	accounts := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		accounts = append(accounts, *dto.NewUserResponse(u))
	}
	return &dto.AccountListResponse{
		Accounts:       accounts,
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// ReviewAccount approves or rejects a registration. Rejection ends every
// session of the account.
func (s *AuthService) ReviewAccount(ctx context.Context, reviewer domain.Viewer, userID string, req *dto.ReviewAccountRequest) (*dto.UserResponse, error) {
	status := models.AccountStatus(req.Status)
	if status != models.AccountApproved && status != models.AccountRejected {
		return nil, apperrors.NewBadRequestError("status must be APPROVED or REJECTED")
	}

	isAdmin, err := s.authzService.IsAdmin(ctx, userID)
	if err != nil {
		return nil, err
	}
	if isAdmin {
		return nil, apperrors.NewForbiddenError("administrator accounts cannot be reviewed")
	}

	if err := s.userRepo.UpdateAccountStatus(ctx, userID, status); err != nil {
		return nil, err
	}

	if status == models.AccountRejected {
		if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
			s.logger.Error().Err(err).Str("userID", userID).Msg("Failed to revoke sessions of rejected account")
		}
	}

	s.logger.Info().
		Str("userID", userID).
		Str("reviewerID", reviewer.UserID).
		Str("status", string(status)).
		Msg("Account reviewed")

	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	// The review already happened; a lost notice is only logged
	if err := s.notifier.SendAccountReviewed(ctx, profile.Email, profile.Name, status == models.AccountApproved); err != nil {
		s.logger.Warn().Err(err).Str("userID", userID).Msg("Failed to send account review notice")
	}
	return profile, nil
}

// generateTokenResponse creates a token pair and stores the refresh token
func (s *AuthService) generateTokenResponse(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	pair, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	if err := s.tokenRepo.CreateToken(ctx, pair.RefreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("token saving error: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:           pair.AccessToken,
		TokenType:             "Bearer",
		ExpiresIn:             int64(pair.ExpiresIn),
		RefreshToken:          pair.RefreshToken,
		RefreshTokenExpiresIn: int64(pair.RefreshExpiresIn),
	}, nil
}
