package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/yigit/atcampus/internal/app/models"
	"github.com/yigit/atcampus/internal/domain"
	"github.com/yigit/atcampus/internal/pkg/apperrors"
	"github.com/yigit/atcampus/internal/pkg/realtime"
)

type fakeUsers struct {
	mu    sync.Mutex
	byID  map[string]*models.User
	byKey map[string]string
}

func newFakeUsers(users ...*models.User) *fakeUsers {
	f := &fakeUsers{byID: map[string]*models.User{}, byKey: map[string]string{}}
	for _, u := range users {
		f.put(u)
	}
	return f
}

func (f *fakeUsers) put(u *models.User) {
	f.byID[u.ID] = u
	f.byKey["email:"+u.Email] = u.ID
	f.byKey["username:"+u.Username] = u.ID
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byKey["email:"+user.Email]; ok {
		return apperrors.ErrEmailAlreadyExists
	}
	if _, ok := f.byKey["username:"+user.Username]; ok {
		return apperrors.ErrUsernameAlreadyExists
	}
	if user.ID == "" {
		user.ID = fmt.Sprintf("u-%d", len(f.byID)+1)
	}
	user.CreatedAt = time.Now().UTC()
	cp := *user
	f.put(&cp)
	return nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	id, ok := f.byKey["email:"+email]
	f.mu.Unlock()
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return f.GetByID(ctx, id)
}

func (f *fakeUsers) EmailExists(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.byKey["email:"+email]
	return ok, nil
}

func (f *fakeUsers) UsernameExists(_ context.Context, username string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.byKey["username:"+username]
	return ok, nil
}

func (f *fakeUsers) UpdateLastLogin(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[userID]; ok {
		now := time.Now().UTC()
		u.LastLoginAt = &now
	}
	return nil
}

func (f *fakeUsers) UpdateAccountStatus(_ context.Context, userID string, status models.AccountStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.AccountStatus = status
	return nil
}

func (f *fakeUsers) ListByStatus(_ context.Context, status models.AccountStatus, offset uint64, limit int) ([]*models.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []*models.User
	for _, u := range f.byID {
		if status == "" || u.AccountStatus == status {
			cp := *u
			all = append(all, &cp)
		}
	}
	slices.SortFunc(all, func(a, b *models.User) int { return strings.Compare(a.ID, b.ID) })
	start := min(int(offset), len(all))
	end := min(start+limit, len(all))
	return all[start:end], int64(len(all)), nil
}

type fakeToken struct {
	userID  string
	expiry  time.Time
	revoked bool
}

type fakeTokens struct {
	mu     sync.Mutex
	tokens map[string]*fakeToken
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{tokens: map[string]*fakeToken{}}
}

func (f *fakeTokens) CreateToken(_ context.Context, token, userID string, expiryDate time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = &fakeToken{userID: userID, expiry: expiryDate}
	return nil
}

func (f *fakeTokens) GetTokenByValue(_ context.Context, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[token]
	switch {
	case !ok:
		return "", apperrors.ErrTokenNotFound
	case t.revoked:
		return "", apperrors.ErrTokenRevoked
	case t.expiry.Before(time.Now()):
		return "", apperrors.ErrTokenExpired
	}
	return t.userID, nil
}

func (f *fakeTokens) RevokeToken(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.tokens[token]; ok {
		t.revoked = true
	}
	return nil
}

func (f *fakeTokens) RevokeAllUserTokens(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tokens {
		if t.userID == userID {
			t.revoked = true
		}
	}
	return nil
}

func (f *fakeTokens) active(userID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, t := range f.tokens {
		if t.userID == userID && !t.revoked {
			n++
		}
	}
	return n
}

type published struct {
	userID string
	event  realtime.Event
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) Publish(userID string, event realtime.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{userID: userID, event: event})
}

func (p *recordingPublisher) sent() []published {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.events)
}

// memResearchStore keeps researches in memory and applies the same
// compare-and-swap rules as the Postgres repository.
type memResearchStore struct {
	mu          sync.Mutex
	users       *fakeUsers
	researches  map[string]*domain.Research
	order       []string
	attachments map[string]*models.ResearchAttachment
}

func newMemResearchStore(users *fakeUsers) *memResearchStore {
	return &memResearchStore{
		users:       users,
		researches:  map[string]*domain.Research{},
		attachments: map[string]*models.ResearchAttachment{},
	}
}

func (m *memResearchStore) add(r *domain.Research) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.researches[r.ID] = r
	m.order = append(m.order, r.ID)
}

func cloneResearch(r *domain.Research) *domain.Research {
	cp := *r
	cp.Attachments = slices.Clone(r.Attachments)
	cp.Collaborators = slices.Clone(r.Collaborators)
	cp.CollaborationRequests = make([]*domain.CollaborationRequest, 0, len(r.CollaborationRequests))
	for _, req := range r.CollaborationRequests {
		rc := *req
		cp.CollaborationRequests = append(cp.CollaborationRequests, &rc)
	}
	return &cp
}

func (m *memResearchStore) CreateResearch(ctx context.Context, research *models.Research) error {
	owner, err := m.users.GetByID(ctx, research.UserID)
	if err != nil {
		return err
	}
	research.CreatedAt = time.Now().UTC()
	m.add(&domain.Research{
		ID:          research.ID,
		User:        owner.ToDomain(),
		Description: research.Description,
		CreatedAt:   research.CreatedAt,
	})
	return nil
}

func (m *memResearchStore) GetResearchOwnerID(_ context.Context, researchID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.researches[researchID]
	if !ok {
		return "", apperrors.ErrResearchNotFound
	}
	return r.OwnerID(), nil
}

func (m *memResearchStore) LoadResearchView(_ context.Context, researchID string) (*domain.Research, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.researches[researchID]
	if !ok {
		return nil, apperrors.ErrResearchNotFound
	}
	return cloneResearch(r), nil
}

func (m *memResearchStore) ListResearchesByUser(_ context.Context, userID string, offset uint64, limit int) ([]models.ResearchSummary, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var all []models.ResearchSummary
	for i := len(m.order) - 1; i >= 0; i-- {
		r := m.researches[m.order[i]]
		if r.OwnerID() != userID {
			continue
		}
		pending := 0
		for range domain.PendingRequests(r) {
			pending++
		}
		all = append(all, models.ResearchSummary{
			Research:          models.Research{ID: r.ID, UserID: userID, Description: r.Description, CreatedAt: r.CreatedAt},
			CollaboratorCount: len(r.Collaborators),
			PendingCount:      pending,
		})
	}

	total := int64(len(all))
	start := min(int(offset), len(all))
	end := min(start+limit, len(all))
	return all[start:end], total, nil
}

func (m *memResearchStore) CreateCollaborationRequest(_ context.Context, req *domain.CollaborationRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.researches[req.ResearchID]
	if !ok {
		return apperrors.ErrResearchNotFound
	}
	for pending := range domain.PendingRequests(r) {
		if pending.Requester.ID == req.Requester.ID {
			return domain.ErrDuplicateRequest
		}
	}
	cp := *req
	r.CollaborationRequests = append(r.CollaborationRequests, &cp)
	return nil
}

func (m *memResearchStore) ResolveCollaborationRequest(_ context.Context, researchID, requestID string, decision domain.Decision) (*domain.Resolution, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.researches[researchID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return domain.ResolveRequest(r, r.OwnerID(), requestID, decision)
}

func (m *memResearchStore) AddAttachment(_ context.Context, a *models.ResearchAttachment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.researches[a.ResearchID]
	if !ok {
		return apperrors.ErrResearchNotFound
	}
	a.CreatedAt = time.Now().UTC()
	cp := *a
	m.attachments[a.ID] = &cp
	r.Attachments = append(r.Attachments, a.ToDomain())
	return nil
}

func (m *memResearchStore) DeleteAttachment(_ context.Context, researchID, attachmentID string) (*models.ResearchAttachment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.attachments[attachmentID]
	if !ok || a.ResearchID != researchID {
		return nil, apperrors.ErrAttachmentNotFound
	}
	delete(m.attachments, attachmentID)
	r := m.researches[researchID]
	r.Attachments = slices.DeleteFunc(r.Attachments, func(at domain.Attachment) bool {
		return at.ID == attachmentID
	})
	return a, nil
}
