package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/yigit/atcampus/internal/app/models"
	"github.com/yigit/atcampus/internal/db"
	"github.com/yigit/atcampus/internal/domain"
	"github.com/yigit/atcampus/internal/pkg/apperrors"
	"github.com/yigit/atcampus/internal/pkg/dberrors"
	"github.com/yigit/atcampus/internal/pkg/logger"
)

// ResearchRepository persists researches, their collaborators, collaboration
// requests and attachments.
type ResearchRepository struct {
	db     *pgxpool.Pool
	sb     squirrel.StatementBuilderType
	logger zerolog.Logger
}

// NewResearchRepository creates a new ResearchRepository
func NewResearchRepository(pool *pgxpool.Pool) *ResearchRepository {
	return &ResearchRepository{
		db:     pool,
		sb:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		logger: logger.Component("research_repository"),
	}
}

func userCols(alias string) []string {
	return []string{
		alias + ".id", alias + ".name", alias + ".username", alias + ".display_username", alias + ".image",
	}
}

// userScan holds the destinations for userCols
type userScan struct {
	u     domain.User
	image *string
}

func (s *userScan) dest() []any {
	return []any{&s.u.ID, &s.u.Name, &s.u.Username, &s.u.DisplayUsername, &s.image}
}

func (s *userScan) user() domain.User {
	if s.image != nil {
		s.u.Image = *s.image
	}
	return s.u
}

// CreateResearch inserts a research owned by r.UserID
func (r *ResearchRepository) CreateResearch(ctx context.Context, research *models.Research) error {
	now := time.Now().UTC()
	research.CreatedAt, research.UpdatedAt = now, now

	sql, args, err := r.sb.Insert("researches").
		Columns("id", "user_id", "description", "created_at", "updated_at").
		Values(research.ID, research.UserID, research.Description, research.CreatedAt, research.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create research query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		r.logger.Error().Err(err).Str("userID", research.UserID).Msg("Error creating research")
		return fmt.Errorf("error creating research: %w", err)
	}
	return nil
}

// GetResearchOwnerID returns the owner of a research
func (r *ResearchRepository) GetResearchOwnerID(ctx context.Context, researchID string) (string, error) {
	sql, args, err := r.sb.Select("user_id").From("researches").Where(squirrel.Eq{"id": researchID}).ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build get research owner query: %w", err)
	}

	var ownerID string
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&ownerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrResearchNotFound
		}
		return "", fmt.Errorf("error retrieving research owner: %w", err)
	}
	return ownerID, nil
}

// LoadResearchView loads a research with everything the research page shows.
// The owner row is read first, the related lists are then fetched concurrently.
func (r *ResearchRepository) LoadResearchView(ctx context.Context, researchID string) (*domain.Research, error) {
	sql, args, err := r.sb.Select(append([]string{"r.id", "r.description", "r.created_at"}, userCols("u")...)...).
		From("researches r").
		Join("users u ON u.id = r.user_id").
		Where(squirrel.Eq{"r.id": researchID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build load research query: %w", err)
	}

	research := &domain.Research{}
	var owner userScan
	dest := append([]any{&research.ID, &research.Description, &research.CreatedAt}, owner.dest()...)
	if err := r.db.QueryRow(ctx, sql, args...).Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResearchNotFound
		}
		return nil, fmt.Errorf("error loading research: %w", err)
	}
	research.User = owner.user()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		collaborators, err := r.listCollaborators(gctx, r.db, researchID)
		research.Collaborators = collaborators
		return err
	})
	g.Go(func() error {
		requests, err := r.listRequests(gctx, researchID)
		research.CollaborationRequests = requests
		return err
	})
	g.Go(func() error {
		attachments, err := r.listAttachments(gctx, researchID)
		research.Attachments = attachments
		return err
	})
	if err := g.Wait(); err != nil {
		r.logger.Error().Err(err).Str("researchID", researchID).Msg("Error loading research relations")
		return nil, err
	}

	return research, nil
}

func (r *ResearchRepository) listCollaborators(ctx context.Context, q db.Querier, researchID string) ([]domain.User, error) {
	sql, args, err := r.sb.Select(userCols("u")...).
		From("research_collaborators rc").
		Join("users u ON u.id = rc.user_id").
		Where(squirrel.Eq{"rc.research_id": researchID}).
		OrderBy("rc.joined_at ASC", "u.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list collaborators query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing collaborators: %w", err)
	}
	defer rows.Close()

	collaborators := []domain.User{}
	for rows.Next() {
		var s userScan
		if err := rows.Scan(s.dest()...); err != nil {
			return nil, fmt.Errorf("error scanning collaborator: %w", err)
		}
		collaborators = append(collaborators, s.user())
	}
	return collaborators, rows.Err()
}

func (r *ResearchRepository) listRequests(ctx context.Context, researchID string) ([]*domain.CollaborationRequest, error) {
	sql, args, err := r.sb.Select(append([]string{"cr.id", "cr.research_id", "cr.status", "cr.created_at", "cr.resolved_at"}, userCols("u")...)...).
		From("collaboration_requests cr").
		Join("users u ON u.id = cr.requester_id").
		Where(squirrel.Eq{"cr.research_id": researchID}).
		OrderBy("cr.created_at ASC", "cr.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list requests query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing collaboration requests: %w", err)
	}
	defer rows.Close()

	requests := []*domain.CollaborationRequest{}
	for rows.Next() {
		req := &domain.CollaborationRequest{}
		var requester userScan
		dest := append([]any{&req.ID, &req.ResearchID, &req.Status, &req.CreatedAt, &req.ResolvedAt}, requester.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("error scanning collaboration request: %w", err)
		}
		req.Requester = requester.user()
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (r *ResearchRepository) listAttachments(ctx context.Context, researchID string) ([]domain.Attachment, error) {
	sql, args, err := r.sb.Select("id", "url", "mime_type", "created_at").
		From("research_attachments").
		Where(squirrel.Eq{"research_id": researchID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list attachments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing attachments: %w", err)
	}
	defer rows.Close()

	attachments := []domain.Attachment{}
	for rows.Next() {
		var a domain.Attachment
		if err := rows.Scan(&a.ID, &a.URL, &a.Type, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning attachment: %w", err)
		}
		attachments = append(attachments, a)
	}
	return attachments, rows.Err()
}

// ListResearchesByUser pages through the researches a user owns, newest first
func (r *ResearchRepository) ListResearchesByUser(ctx context.Context, userID string, offset uint64, limit int) ([]models.ResearchSummary, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("researches").Where(squirrel.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count researches query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting researches: %w", err)
	}

	sql, args, err := r.sb.Select(
		"r.id", "r.user_id", "r.description", "r.created_at", "r.updated_at",
		"(SELECT COUNT(*) FROM research_collaborators rc WHERE rc.research_id = r.id) AS collaborator_count",
		"(SELECT COUNT(*) FROM collaboration_requests cr WHERE cr.research_id = r.id AND cr.status = 'PENDING') AS pending_count",
	).
		From("researches r").
		Where(squirrel.Eq{"r.user_id": userID}).
		OrderBy("r.created_at DESC", "r.id DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list researches query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing researches: %w", err)
	}
	defer rows.Close()

	list := make([]models.ResearchSummary, 0, limit)
	for rows.Next() {
		var s models.ResearchSummary
		if err := rows.Scan(&s.ID, &s.UserID, &s.Description, &s.CreatedAt, &s.UpdatedAt, &s.CollaboratorCount, &s.PendingCount); err != nil {
			return nil, 0, fmt.Errorf("error scanning research: %w", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating researches: %w", err)
	}

	return list, total, nil
}

// CreateCollaborationRequest opens a PENDING request. A concurrent duplicate is
// caught by the partial unique index on open requests.
func (r *ResearchRepository) CreateCollaborationRequest(ctx context.Context, req *domain.CollaborationRequest) error {
	sql, args, err := r.sb.Insert("collaboration_requests").
		Columns("id", "research_id", "requester_id", "status", "created_at").
		Values(req.ID, req.ResearchID, req.Requester.ID, req.Status, req.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create request query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, "collaboration_requests_pending_key"):
			return domain.ErrDuplicateRequest
		case dberrors.IsForeignKeyError(err, "collaboration_requests_research_id_fkey"):
			return apperrors.ErrResearchNotFound
		}
		r.logger.Error().Err(err).Str("researchID", req.ResearchID).Msg("Error creating collaboration request")
		return fmt.Errorf("error creating collaboration request: %w", err)
	}
	return nil
}

// ResolveCollaborationRequest moves a PENDING request to its decided status in
// one transaction. The UPDATE is conditional on the PENDING status, so of two
// concurrent resolutions exactly one matches a row; the other gets
// domain.ErrInvalidState. Ownership must be checked by the caller.
func (r *ResearchRepository) ResolveCollaborationRequest(ctx context.Context, researchID, requestID string, decision domain.Decision) (*domain.Resolution, error) {
	next, err := domain.RequestStatusPending.Apply(decision)
	if err != nil {
		return nil, err
	}

	var resolution *domain.Resolution
	err = db.RunInTx(ctx, r.db, r.logger, func(ctx context.Context, tx pgx.Tx) error {
		resolvedAt := time.Now().UTC()
		sql, args, err := r.resolveRequestQuery(researchID, requestID, next, resolvedAt).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build resolve request query: %w", err)
		}

		req := domain.CollaborationRequest{
			ID:         requestID,
			ResearchID: researchID,
			Status:     next,
			ResolvedAt: &resolvedAt,
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&req.Requester.ID, &req.CreatedAt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return r.classifyUnresolvable(ctx, tx, researchID, requestID)
			}
			return fmt.Errorf("error resolving collaboration request: %w", err)
		}

		requester, err := r.loadUser(ctx, tx, req.Requester.ID)
		if err != nil {
			return err
		}
		req.Requester = requester

		resolution = &domain.Resolution{Request: req}
		if next != domain.RequestStatusAccepted {
			return nil
		}

		insertSQL, insertArgs, err := r.addCollaboratorQuery(researchID, requester.ID, resolvedAt).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build add collaborator query: %w", err)
		}
		if _, err := tx.Exec(ctx, insertSQL, insertArgs...); err != nil {
			return fmt.Errorf("error adding collaborator: %w", err)
		}

		resolution.Collaborators, err = r.listCollaborators(ctx, tx, researchID)
		return err
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info().
		Str("researchID", researchID).
		Str("requestID", requestID).
		Str("status", string(next)).
		Msg("Collaboration request resolved")
	return resolution, nil
}

// resolveRequestQuery only matches the request while it is still PENDING
func (r *ResearchRepository) resolveRequestQuery(researchID, requestID string, next domain.RequestStatus, resolvedAt time.Time) squirrel.UpdateBuilder {
	return r.sb.Update("collaboration_requests").
		Set("status", next).
		Set("resolved_at", resolvedAt).
		Where(squirrel.Eq{"id": requestID, "research_id": researchID, "status": domain.RequestStatusPending}).
		Suffix("RETURNING requester_id, created_at")
}

// addCollaboratorQuery is a no-op for an existing collaborator
func (r *ResearchRepository) addCollaboratorQuery(researchID, userID string, joinedAt time.Time) squirrel.InsertBuilder {
	return r.sb.Insert("research_collaborators").
		Columns("research_id", "user_id", "joined_at").
		Values(researchID, userID, joinedAt).
		Suffix("ON CONFLICT (research_id, user_id) DO NOTHING")
}

// classifyUnresolvable explains why the conditional update matched no row
func (r *ResearchRepository) classifyUnresolvable(ctx context.Context, q db.Querier, researchID, requestID string) error {
	sql, args, err := r.sb.Select("status").
		From("collaboration_requests").
		Where(squirrel.Eq{"id": requestID, "research_id": researchID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build request status query: %w", err)
	}

	var status domain.RequestStatus
	if err := q.QueryRow(ctx, sql, args...).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("error reading collaboration request status: %w", err)
	}
	return domain.ErrInvalidState
}

func (r *ResearchRepository) loadUser(ctx context.Context, q db.Querier, userID string) (domain.User, error) {
	sql, args, err := r.sb.Select(userCols("u")...).From("users u").Where(squirrel.Eq{"u.id": userID}).ToSql()
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to build load user query: %w", err)
	}

	var s userScan
	if err := q.QueryRow(ctx, sql, args...).Scan(s.dest()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, apperrors.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("error loading user: %w", err)
	}
	return s.user(), nil
}

// AddAttachment records a stored file against a research
func (r *ResearchRepository) AddAttachment(ctx context.Context, a *models.ResearchAttachment) error {
	a.CreatedAt = time.Now().UTC()

	sql, args, err := r.sb.Insert("research_attachments").
		Columns("id", "research_id", "url", "file_path", "mime_type", "file_size", "uploaded_by", "created_at").
		Values(a.ID, a.ResearchID, a.URL, a.FilePath, a.MimeType, a.FileSize, a.UploadedBy, a.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build add attachment query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsForeignKeyError(err, "research_attachments_research_id_fkey") {
			return apperrors.ErrResearchNotFound
		}
		return fmt.Errorf("error adding attachment: %w", err)
	}
	return nil
}

// DeleteAttachment removes an attachment row and returns it so the caller can
// delete the stored file.
func (r *ResearchRepository) DeleteAttachment(ctx context.Context, researchID, attachmentID string) (*models.ResearchAttachment, error) {
	sql, args, err := r.sb.Delete("research_attachments").
		Where(squirrel.Eq{"id": attachmentID, "research_id": researchID}).
		Suffix("RETURNING id, research_id, url, file_path, mime_type, file_size, uploaded_by, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build delete attachment query: %w", err)
	}

	a := &models.ResearchAttachment{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&a.ID, &a.ResearchID, &a.URL, &a.FilePath, &a.MimeType, &a.FileSize, &a.UploadedBy, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAttachmentNotFound
		}
		return nil, fmt.Errorf("error deleting attachment: %w", err)
	}
	return a, nil
}
