package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/atcampus/internal/app/models"
	"github.com/yigit/atcampus/internal/domain"
	"github.com/yigit/atcampus/internal/pkg/apperrors"
	"github.com/yigit/atcampus/internal/pkg/logger"
)

// ErrNotResearchOwner is returned when a viewer manages a research they do not own
var ErrNotResearchOwner = fmt.Errorf("%w: only the research owner can do this", apperrors.ErrPermissionDenied)

// ResearchOwnerLookup resolves the owner of a research
type ResearchOwnerLookup interface {
	GetResearchOwnerID(ctx context.Context, researchID string) (string, error)
}

// UserLookup loads a user by ID
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// AuthorizationService handles authorization operations
type AuthorizationService struct {
	userRepo     UserLookup
	researchRepo ResearchOwnerLookup
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(userRepo UserLookup, researchRepo ResearchOwnerLookup) *AuthorizationService {
	return &AuthorizationService{
		userRepo:     userRepo,
		researchRepo: researchRepo,
	}
}

// IsAdmin checks if the user is an administrator
func (s *AuthorizationService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return false, err
		}
		logger.Error().Err(err).Str("userID", userID).Msg("Error getting user by ID in IsAdmin")
		return false, err
	}
	return user.RoleType == models.RoleAdmin, nil
}

// CanManageResearch checks if the viewer owns the research
func (s *AuthorizationService) CanManageResearch(ctx context.Context, researchID string, viewer domain.Viewer) (bool, error) {
	if viewer.IsZero() {
		return false, nil
	}

	ownerID, err := s.researchRepo.GetResearchOwnerID(ctx, researchID)
	if err != nil {
		return false, err
	}
	return ownerID == viewer.UserID, nil
}

// ValidateResearchOwnership returns ErrNotResearchOwner unless the viewer owns the research
func (s *AuthorizationService) ValidateResearchOwnership(ctx context.Context, researchID string, viewer domain.Viewer) error {
	canManage, err := s.CanManageResearch(ctx, researchID, viewer)
	if err != nil {
		if errors.Is(err, apperrors.ErrResearchNotFound) {
			return err
		}
		logger.Error().Err(err).Str("researchID", researchID).Str("userID", viewer.UserID).Msg("Unexpected error during research ownership validation")
		return fmt.Errorf("failed to check research ownership: %w", err)
	}

	if !canManage {
		return ErrNotResearchOwner
	}
	return nil
}
