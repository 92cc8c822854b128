package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	authz "github.com/yigit/atcampus/internal/app/auth"
	"github.com/yigit/atcampus/internal/app/models"
	"github.com/yigit/atcampus/internal/app/models/dto"
	"github.com/yigit/atcampus/internal/domain"
	"github.com/yigit/atcampus/internal/pkg/apperrors"
	"github.com/yigit/atcampus/internal/pkg/filestorage"
	"github.com/yigit/atcampus/internal/pkg/helpers"
	"github.com/yigit/atcampus/internal/pkg/realtime"
	"github.com/yigit/atcampus/internal/pkg/richtext"
	"github.com/yigit/atcampus/internal/pkg/validation"
)

const (
	// PDFMimeType is the only attachment type accepted on researches
	PDFMimeType = "application/pdf"

	metadataExcerptLength = 50
	summaryExcerptLength  = 160
)

// ErrUnsupportedAttachment is returned for uploads that are not PDF documents
var ErrUnsupportedAttachment = apperrors.NewBadRequestError("only PDF attachments are supported")

// ResearchStore is the persistence the research service needs
type ResearchStore interface {
	CreateResearch(ctx context.Context, research *models.Research) error
	GetResearchOwnerID(ctx context.Context, researchID string) (string, error)
	LoadResearchView(ctx context.Context, researchID string) (*domain.Research, error)
	ListResearchesByUser(ctx context.Context, userID string, offset uint64, limit int) ([]models.ResearchSummary, int64, error)
	CreateCollaborationRequest(ctx context.Context, req *domain.CollaborationRequest) error
	ResolveCollaborationRequest(ctx context.Context, researchID, requestID string, decision domain.Decision) (*domain.Resolution, error)
	AddAttachment(ctx context.Context, a *models.ResearchAttachment) error
	DeleteAttachment(ctx context.Context, researchID, attachmentID string) (*models.ResearchAttachment, error)
}

// UserReader loads users by ID
type UserReader interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// ResearchService defines the interface for research and collaboration operations
type ResearchService interface {
	GetResearchView(ctx context.Context, researchID string, viewer domain.Viewer) (*dto.ResearchViewResponse, error)
	CreateResearch(ctx context.Context, viewer domain.Viewer, req *dto.CreateResearchRequest) (*dto.ResearchViewResponse, error)
	ListMyResearches(ctx context.Context, viewer domain.Viewer, page, size int) (*dto.ResearchListResponse, error)
	RequestCollaboration(ctx context.Context, researchID string, viewer domain.Viewer) (*dto.CollaborationRequestResponse, error)
	ListPendingRequests(ctx context.Context, researchID string, viewer domain.Viewer) ([]dto.CollaborationRequestResponse, error)
	ResolveRequest(ctx context.Context, researchID, requestID string, viewer domain.Viewer, decision string) (*dto.ResolutionResponse, error)
	AddAttachment(ctx context.Context, researchID string, viewer domain.Viewer, fileHeader *multipart.FileHeader) (*dto.AttachmentResponse, error)
	DeleteAttachment(ctx context.Context, researchID, attachmentID string, viewer domain.Viewer) error
}

// researchServiceImpl implements ResearchService
type researchServiceImpl struct {
	store        ResearchStore
	userRepo     UserReader
	fileStorage  filestorage.FileStorage
	authzService *authz.AuthorizationService
	publisher    realtime.Publisher
	logger       zerolog.Logger
}

// NewResearchService creates a new ResearchService
func NewResearchService(
	store ResearchStore,
	userRepo UserReader,
	fileStorage filestorage.FileStorage,
	authzService *authz.AuthorizationService,
	publisher realtime.Publisher,
	logger zerolog.Logger,
) ResearchService {
	return &researchServiceImpl{
		store:        store,
		userRepo:     userRepo,
		fileStorage:  fileStorage,
		authzService: authzService,
		publisher:    publisher,
		logger:       logger,
	}
}

// GetResearchView builds the research page for one viewer. Pending requests
// are only included for the owner.
func (s *researchServiceImpl) GetResearchView(ctx context.Context, researchID string, viewer domain.Viewer) (*dto.ResearchViewResponse, error) {
	research, err := s.store.LoadResearchView(ctx, researchID)
	if err != nil {
		return nil, err
	}
	return s.buildView(research, viewer), nil
}

func (s *researchServiceImpl) buildView(research *domain.Research, viewer domain.Viewer) *dto.ResearchViewResponse {
	html, err := richtext.ToHTML(research.Description)
	if err != nil {
		s.logger.Warn().Err(err).Str("researchID", research.ID).Msg("Stored description is not a valid document")
	}
	plain, _ := richtext.PlainText(research.Description)

	view := &dto.ResearchViewResponse{
		ID:              research.ID,
		Owner:           dto.NewUserSummary(research.User),
		DescriptionHTML: html,
		Attachments:     dto.NewAttachmentResponses(research.Attachments),
		Collaborators:   dto.NewUserSummaries(research.Collaborators),
		CanViewRequests: domain.CanViewRequests(research, viewer.UserID),
		IsCollaborator:  research.HasCollaborator(viewer.UserID),
		MetadataTitle:   metadataTitle(research.User, plain),
		CreatedAt:       research.CreatedAt,
	}
	if err == nil {
		view.Description = []byte(research.Description)
	}

	if view.CanViewRequests {
		view.PendingRequests = make([]dto.CollaborationRequestResponse, 0)
	}
	for req := range domain.PendingRequests(research) {
		if req.Requester.ID == viewer.UserID {
			view.HasPendingRequest = true
		}
		if view.CanViewRequests {
			view.PendingRequests = append(view.PendingRequests, dto.NewCollaborationRequestResponse(req))
		}
	}
	return view
}

func metadataTitle(owner domain.User, plain string) string {
	name := owner.DisplayUsername
	if name == "" {
		name = owner.Username
	}
	return fmt.Sprintf("%s: %s...", name, richtext.Truncate(plain, metadataExcerptLength))
}

// CreateResearch stores a new research owned by the viewer
func (s *researchServiceImpl) CreateResearch(ctx context.Context, viewer domain.Viewer, req *dto.CreateResearchRequest) (*dto.ResearchViewResponse, error) {
	if viewer.IsZero() {
		return nil, apperrors.ErrTokenNotFound
	}

	raw := string(req.Description)
	plain, err := richtext.PlainText(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidDescription, err)
	}
	if utf8.RuneCountInString(plain) > validation.DescriptionMaxLength {
		return nil, fmt.Errorf("%w: description exceeds %d characters", apperrors.ErrInvalidDescription, validation.DescriptionMaxLength)
	}

	research := &models.Research{
		ID:          uuid.NewString(),
		UserID:      viewer.UserID,
		Description: raw,
	}
	if err := s.store.CreateResearch(ctx, research); err != nil {
		return nil, err
	}

	s.logger.Info().Str("researchID", research.ID).Str("userID", viewer.UserID).Msg("Research created")
	return s.GetResearchView(ctx, research.ID, viewer)
}

// ListMyResearches returns the viewer's researches, newest first
func (s *researchServiceImpl) ListMyResearches(ctx context.Context, viewer domain.Viewer, page, size int) (*dto.ResearchListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	rows, total, err := s.store.ListResearchesByUser(ctx, viewer.UserID, offset, limit)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.ResearchSummary, 0, len(rows))
	for _, row := range rows {
		plain, err := richtext.PlainText(row.Description)
		if err != nil {
			s.logger.Warn().Err(err).Str("researchID", row.ID).Msg("Skipping excerpt of invalid description")
		}
		summaries = append(summaries, dto.ResearchSummary{
			ID:                row.ID,
			Excerpt:           richtext.Excerpt(plain, summaryExcerptLength),
			CollaboratorCount: row.CollaboratorCount,
			PendingCount:      row.PendingCount,
			CreatedAt:         row.CreatedAt,
		})
	}

	return &dto.ResearchListResponse{
		Researches:     summaries,
		PaginationInfo: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// RequestCollaboration opens a PENDING request from the viewer and notifies the owner
func (s *researchServiceImpl) RequestCollaboration(ctx context.Context, researchID string, viewer domain.Viewer) (*dto.CollaborationRequestResponse, error) {
	if viewer.IsZero() {
		return nil, apperrors.ErrTokenNotFound
	}

	research, err := s.store.LoadResearchView(ctx, researchID)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateNewRequest(research, viewer.UserID); err != nil {
		return nil, err
	}

	requester, err := s.userRepo.GetByID(ctx, viewer.UserID)
	if err != nil {
		return nil, fmt.Errorf("error loading requester: %w", err)
	}

	req := &domain.CollaborationRequest{
		ID:         uuid.NewString(),
		ResearchID: researchID,
		Requester:  requester.ToDomain(),
		Status:     domain.RequestStatusPending,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.CreateCollaborationRequest(ctx, req); err != nil {
		return nil, err
	}

	resp := dto.NewCollaborationRequestResponse(req)
	s.publisher.Publish(research.OwnerID(), realtime.Event{
		Type:    realtime.EventCollaborationRequested,
		Payload: resp,
	})

	s.logger.Info().
		Str("researchID", researchID).
		Str("requestID", req.ID).
		Str("requesterID", viewer.UserID).
		Msg("Collaboration requested")
	return &resp, nil
}

// ListPendingRequests returns the open requests of a research to its owner
func (s *researchServiceImpl) ListPendingRequests(ctx context.Context, researchID string, viewer domain.Viewer) ([]dto.CollaborationRequestResponse, error) {
	research, err := s.store.LoadResearchView(ctx, researchID)
	if err != nil {
		return nil, err
	}
	if !domain.CanViewRequests(research, viewer.UserID) {
		return nil, domain.ErrUnauthorized
	}

	out := make([]dto.CollaborationRequestResponse, 0, len(research.CollaborationRequests))
	for req := range domain.PendingRequests(research) {
		out = append(out, dto.NewCollaborationRequestResponse(req))
	}
	return out, nil
}

// ResolveRequest accepts or declines a request. The decision is checked
// first, then the research, then ownership; the state transition itself is a
// compare-and-swap in the store so concurrent resolutions cannot both win.
func (s *researchServiceImpl) ResolveRequest(ctx context.Context, researchID, requestID string, viewer domain.Viewer, decision string) (*dto.ResolutionResponse, error) {
	d, err := domain.ParseDecision(decision)
	if err != nil {
		return nil, err
	}

	ownerID, err := s.store.GetResearchOwnerID(ctx, researchID)
	if err != nil {
		return nil, err
	}
	research := &domain.Research{ID: researchID, User: domain.User{ID: ownerID}}
	if !domain.CanViewRequests(research, viewer.UserID) {
		s.logger.Warn().
			Str("researchID", researchID).
			Str("userID", viewer.UserID).
			Msg("Non-owner tried to resolve a collaboration request")
		return nil, domain.ErrUnauthorized
	}

	resolution, err := s.store.ResolveCollaborationRequest(ctx, researchID, requestID, d)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidState) && !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error().Err(err).Str("requestID", requestID).Msg("Failed to resolve collaboration request")
		}
		return nil, err
	}

	s.publisher.Publish(resolution.Request.Requester.ID, realtime.Event{
		Type:    realtime.EventCollaborationResolved,
		Payload: dto.NewCollaborationRequestResponse(&resolution.Request),
	})
	return dto.NewResolutionResponse(resolution), nil
}

// AddAttachment stores a PDF and links it to the research
func (s *researchServiceImpl) AddAttachment(ctx context.Context, researchID string, viewer domain.Viewer, fileHeader *multipart.FileHeader) (*dto.AttachmentResponse, error) {
	if err := s.authzService.ValidateResearchOwnership(ctx, researchID, viewer); err != nil {
		return nil, err
	}

	info, err := s.fileStorage.SaveFileWithPath(fileHeader, "research/"+researchID)
	if err != nil {
		return nil, fmt.Errorf("error storing attachment: %w", err)
	}
	if info.MimeType != PDFMimeType {
		s.removeStoredFile(info.Path)
		return nil, ErrUnsupportedAttachment
	}

	attachment := &models.ResearchAttachment{
		ID:         uuid.NewString(),
		ResearchID: researchID,
		URL:        info.URL,
		FilePath:   info.Path,
		MimeType:   info.MimeType,
		FileSize:   info.FileSize,
		UploadedBy: viewer.UserID,
	}
	if err := s.store.AddAttachment(ctx, attachment); err != nil {
		s.removeStoredFile(info.Path)
		return nil, err
	}

	resp := dto.NewAttachmentResponses([]domain.Attachment{attachment.ToDomain()})[0]
	return &resp, nil
}

// DeleteAttachment unlinks an attachment and removes its file
func (s *researchServiceImpl) DeleteAttachment(ctx context.Context, researchID, attachmentID string, viewer domain.Viewer) error {
	if err := s.authzService.ValidateResearchOwnership(ctx, researchID, viewer); err != nil {
		return err
	}

	attachment, err := s.store.DeleteAttachment(ctx, researchID, attachmentID)
	if err != nil {
		return err
	}
	s.removeStoredFile(attachment.FilePath)
	return nil
}

// removeStoredFile deletes a file whose row is gone; failures only leave an orphan
func (s *researchServiceImpl) removeStoredFile(path string) {
	if err := s.fileStorage.DeleteFile(path); err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("Failed to delete stored file")
	}
}
