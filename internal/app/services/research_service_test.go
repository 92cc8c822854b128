package services

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	authz "github.com/yigit/atcampus/internal/app/auth"
	"github.com/yigit/atcampus/internal/app/models"
	"github.com/yigit/atcampus/internal/app/models/dto"
	"github.com/yigit/atcampus/internal/domain"
	"github.com/yigit/atcampus/internal/pkg/apperrors"
	"github.com/yigit/atcampus/internal/pkg/filestorage"
	"github.com/yigit/atcampus/internal/pkg/realtime"
)

const campusDoc = `{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"Graph neural networks for campus data"}]}]}`

type researchFixture struct {
	svc        ResearchService
	store      *memResearchStore
	publisher  *recordingPublisher
	storageDir string

	owner, requester, collaborator, stranger domain.Viewer
}

func strPtr(s string) *string { return &s }

func newResearchFixture(t *testing.T) *researchFixture {
	t.Helper()

	users := newFakeUsers(
		&models.User{ID: "u-ada", Name: "Ada Lovelace", Username: "ada", DisplayUsername: "Ada", Image: strPtr("https://img.test/ada.png")},
		&models.User{ID: "u-alan", Name: "Alan Turing", Username: "alan", DisplayUsername: "Alan"},
		&models.User{ID: "u-grace", Name: "", Username: "grace", DisplayUsername: "grace"},
		&models.User{ID: "u-linus", Name: "Linus", Username: "linus", DisplayUsername: "Linus"},
	)
	store := newMemResearchStore(users)

	ada, _ := users.GetByID(context.Background(), "u-ada")
	alan, _ := users.GetByID(context.Background(), "u-alan")
	grace, _ := users.GetByID(context.Background(), "u-grace")
	linus, _ := users.GetByID(context.Background(), "u-linus")

	store.add(&domain.Research{
		ID:            "r1",
		User:          ada.ToDomain(),
		Description:   campusDoc,
		Collaborators: []domain.User{grace.ToDomain()},
		CollaborationRequests: []*domain.CollaborationRequest{
			{ID: "q1", ResearchID: "r1", Requester: alan.ToDomain(), Status: domain.RequestStatusPending, CreatedAt: time.Now()},
			{ID: "q2", ResearchID: "r1", Requester: linus.ToDomain(), Status: domain.RequestStatusDeclined, CreatedAt: time.Now()},
		},
		CreatedAt: time.Now(),
	})

	dir := t.TempDir()
	storage, err := filestorage.NewLocalStorage(dir, "http://files.test/uploads", zerolog.Nop())
	require.NoError(t, err)

	pub := &recordingPublisher{}
	authzSvc := authz.NewAuthorizationService(users, store)

	return &researchFixture{
		svc:          NewResearchService(store, users, storage, authzSvc, pub, zerolog.Nop()),
		store:        store,
		publisher:    pub,
		storageDir:   dir,
		owner:        domain.Viewer{UserID: "u-ada"},
		requester:    domain.Viewer{UserID: "u-alan"},
		collaborator: domain.Viewer{UserID: "u-grace"},
		stranger:     domain.Viewer{UserID: "u-linus"},
	}
}

func uploadHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func TestGetResearchViewForOwner(t *testing.T) {
	f := newResearchFixture(t)

	view, err := f.svc.GetResearchView(context.Background(), "r1", f.owner)
	require.NoError(t, err)

	assert.True(t, view.CanViewRequests)
	require.Len(t, view.PendingRequests, 1)
	assert.Equal(t, "q1", view.PendingRequests[0].ID)
	assert.Equal(t, "alan", view.PendingRequests[0].Requester.Username)
	assert.False(t, view.IsCollaborator)
	assert.False(t, view.HasPendingRequest)

	assert.Equal(t, "Ada: Graph neural networks for campus data...", view.MetadataTitle)
	assert.Contains(t, view.DescriptionHTML, "<p>Graph neural networks for campus data</p>")
	assert.JSONEq(t, campusDoc, string(view.Description))

	assert.Equal(t, "https://img.test/ada.png", view.Owner.Avatar.URL)
	require.Len(t, view.Collaborators, 1)
	assert.Equal(t, dto.FallbackAvatarURL, view.Collaborators[0].Avatar.URL)
	assert.Equal(t, "grace", view.Collaborators[0].Avatar.Alt)
}

func TestGetResearchViewHidesRequestsFromOthers(t *testing.T) {
	f := newResearchFixture(t)
	ctx := context.Background()

	tests := []struct {
		name           string
		viewer         domain.Viewer
		isCollaborator bool
		hasPending     bool
	}{
		{"requester", f.requester, false, true},
		{"collaborator", f.collaborator, true, false},
		{"declined stranger", f.stranger, false, false},
		{"anonymous", domain.Viewer{}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := f.svc.GetResearchView(ctx, "r1", tt.viewer)
			require.NoError(t, err)

			assert.False(t, view.CanViewRequests)
			assert.Nil(t, view.PendingRequests)
			assert.Equal(t, tt.isCollaborator, view.IsCollaborator)
			assert.Equal(t, tt.hasPending, view.HasPendingRequest)

			raw, err := json.Marshal(view)
			require.NoError(t, err)
			assert.Contains(t, string(raw), `"pendingRequests":null`)
		})
	}
}

func TestGetResearchViewNotFound(t *testing.T) {
	f := newResearchFixture(t)

	_, err := f.svc.GetResearchView(context.Background(), "missing", f.owner)
	assert.ErrorIs(t, err, apperrors.ErrResearchNotFound)
}

func TestCreateResearch(t *testing.T) {
	f := newResearchFixture(t)
	ctx := context.Background()

	view, err := f.svc.CreateResearch(ctx, f.requester, &dto.CreateResearchRequest{Description: json.RawMessage(campusDoc)})
	require.NoError(t, err)
	assert.NotEmpty(t, view.ID)
	assert.Equal(t, "alan", view.Owner.Username)
	assert.True(t, view.CanViewRequests)
	assert.Empty(t, view.PendingRequests)

	_, err = f.svc.CreateResearch(ctx, f.requester, &dto.CreateResearchRequest{Description: json.RawMessage(`"just a string"`)})
	assert.ErrorIs(t, err, apperrors.ErrInvalidDescription)

	_, err = f.svc.CreateResearch(ctx, domain.Viewer{}, &dto.CreateResearchRequest{Description: json.RawMessage(campusDoc)})
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}

func TestListMyResearches(t *testing.T) {
	f := newResearchFixture(t)

	list, err := f.svc.ListMyResearches(context.Background(), f.owner, 1, 10)
	require.NoError(t, err)

	require.Len(t, list.Researches, 1)
	assert.Equal(t, "Graph neural networks for campus data", list.Researches[0].Excerpt)
	assert.Equal(t, 1, list.Researches[0].CollaboratorCount)
	assert.Equal(t, 1, list.Researches[0].PendingCount)
	assert.Equal(t, int64(1), list.TotalItems)

	empty, err := f.svc.ListMyResearches(context.Background(), f.stranger, 1, 10)
	require.NoError(t, err)
	assert.NotNil(t, empty.Researches)
	assert.Empty(t, empty.Researches)
}

func TestRequestCollaboration(t *testing.T) {
	f := newResearchFixture(t)
	ctx := context.Background()

	resp, err := f.svc.RequestCollaboration(ctx, "r1", f.stranger)
	require.NoError(t, err)
	assert.Equal(t, string(domain.RequestStatusPending), resp.Status)
	assert.Equal(t, "linus", resp.Requester.Username)

	events := f.publisher.sent()
	require.Len(t, events, 1)
	assert.Equal(t, "u-ada", events[0].userID)
	assert.Equal(t, realtime.EventCollaborationRequested, events[0].event.Type)

	view, err := f.svc.GetResearchView(ctx, "r1", f.stranger)
	require.NoError(t, err)
	assert.True(t, view.HasPendingRequest)
}

func TestRequestCollaborationRejected(t *testing.T) {
	f := newResearchFixture(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		researchID string
		viewer     domain.Viewer
		wantErr    error
	}{
		{"owner", "r1", f.owner, domain.ErrSelfRequest},
		{"collaborator", "r1", f.collaborator, domain.ErrAlreadyCollaborator},
		{"pending requester", "r1", f.requester, domain.ErrDuplicateRequest},
		{"missing research", "nope", f.stranger, apperrors.ErrResearchNotFound},
		{"anonymous", "r1", domain.Viewer{}, apperrors.ErrTokenNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.RequestCollaboration(ctx, tt.researchID, tt.viewer)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Empty(t, f.publisher.sent())
}

func TestListPendingRequests(t *testing.T) {
	f := newResearchFixture(t)
	ctx := context.Background()

	reqs, err := f.svc.ListPendingRequests(ctx, "r1", f.owner)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "q1", reqs[0].ID)

	_, err = f.svc.ListPendingRequests(ctx, "r1", f.requester)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestResolveRequestAccept(t *testing.T) {
	f := newResearchFixture(t)
	ctx := context.Background()

	res, err := f.svc.ResolveRequest(ctx, "r1", "q1", f.owner, "accept")
	require.NoError(t, err)

	assert.Equal(t, string(domain.RequestStatusAccepted), res.Request.Status)
	require.NotNil(t, res.Request.ResolvedAt)
	usernames := make([]string, 0, len(res.Collaborators))
	for _, c := range res.Collaborators {
		usernames = append(usernames, c.Username)
	}
	assert.ElementsMatch(t, []string{"grace", "alan"}, usernames)

	events := f.publisher.sent()
	require.Len(t, events, 1)
	assert.Equal(t, "u-alan", events[0].userID)
	assert.Equal(t, realtime.EventCollaborationResolved, events[0].event.Type)

	view, err := f.svc.GetResearchView(ctx, "r1", f.requester)
	require.NoError(t, err)
	assert.True(t, view.IsCollaborator)
	assert.False(t, view.HasPendingRequest)

	_, err = f.svc.ResolveRequest(ctx, "r1", "q1", f.owner, "DECLINE")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestResolveRequestDecline(t *testing.T) {
	f := newResearchFixture(t)

	res, err := f.svc.ResolveRequest(context.Background(), "r1", "q1", f.owner, "DECLINE")
	require.NoError(t, err)
	assert.Equal(t, string(domain.RequestStatusDeclined), res.Request.Status)
	assert.Nil(t, res.Collaborators)

	view, err := f.svc.GetResearchView(context.Background(), "r1", f.owner)
	require.NoError(t, err)
	assert.Empty(t, view.PendingRequests)
	assert.Len(t, view.Collaborators, 1)
}

func TestResolveRequestErrors(t *testing.T) {
	f := newResearchFixture(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		researchID string
		requestID  string
		viewer     domain.Viewer
		decision   string
		wantErr    error
	}{
		{"unknown decision checked first", "missing", "q1", f.stranger, "MAYBE", domain.ErrInvalidDecision},
		{"missing research", "missing", "q1", f.owner, "ACCEPT", apperrors.ErrResearchNotFound},
		{"requester cannot self-accept", "r1", "q1", f.requester, "ACCEPT", domain.ErrUnauthorized},
		{"collaborator cannot resolve", "r1", "q1", f.collaborator, "DECLINE", domain.ErrUnauthorized},
		{"anonymous", "r1", "q1", domain.Viewer{}, "ACCEPT", domain.ErrUnauthorized},
		{"unknown request", "r1", "q9", f.owner, "ACCEPT", domain.ErrNotFound},
		{"already declined", "r1", "q2", f.owner, "ACCEPT", domain.ErrInvalidState},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.ResolveRequest(ctx, tt.researchID, tt.requestID, tt.viewer, tt.decision)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Empty(t, f.publisher.sent())
	view, err := f.svc.GetResearchView(ctx, "r1", f.owner)
	require.NoError(t, err)
	require.Len(t, view.PendingRequests, 1)
	assert.Len(t, view.Collaborators, 1)
}

func TestResolveRequestConcurrentResolutionsHaveOneWinner(t *testing.T) {
	f := newResearchFixture(t)
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	start := make(chan struct{})
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			decision := "ACCEPT"
			if i%2 == 1 {
				decision = "DECLINE"
			}
			_, errs[i] = f.svc.ResolveRequest(ctx, "r1", "q1", f.owner, decision)
		}()
	}
	close(start)
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, domain.ErrInvalidState):
			conflicts++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, conflicts)
	assert.Len(t, f.publisher.sent(), 1)
}

func TestAddAttachment(t *testing.T) {
	f := newResearchFixture(t)
	ctx := context.Background()
	pdf := []byte("%PDF-1.7\n1 0 obj\n<<>>\nendobj\n")

	att, err := f.svc.AddAttachment(ctx, "r1", f.owner, uploadHeader(t, "paper.pdf", pdf))
	require.NoError(t, err)
	assert.Equal(t, PDFMimeType, att.Type)
	assert.Contains(t, att.URL, "http://files.test/uploads/research/r1/")

	view, err := f.svc.GetResearchView(ctx, "r1", f.stranger)
	require.NoError(t, err)
	require.Len(t, view.Attachments, 1)
	assert.Equal(t, att.ID, view.Attachments[0].ID)

	require.NoError(t, f.svc.DeleteAttachment(ctx, "r1", att.ID, f.owner))
	entries, err := os.ReadDir(filepath.Join(f.storageDir, "research", "r1"))
	require.NoError(t, err)
	assert.Empty(t, entries)

	err = f.svc.DeleteAttachment(ctx, "r1", att.ID, f.owner)
	assert.ErrorIs(t, err, apperrors.ErrAttachmentNotFound)
}

func TestAddAttachmentRejectsNonPDF(t *testing.T) {
	f := newResearchFixture(t)

	_, err := f.svc.AddAttachment(context.Background(), "r1", f.owner, uploadHeader(t, "paper.pdf", []byte("plain text pretending")))
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	entries, err := os.ReadDir(filepath.Join(f.storageDir, "research", "r1"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAttachmentsAreOwnerOnly(t *testing.T) {
	f := newResearchFixture(t)
	ctx := context.Background()
	pdf := []byte("%PDF-1.4\n")

	_, err := f.svc.AddAttachment(ctx, "r1", f.collaborator, uploadHeader(t, "paper.pdf", pdf))
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = f.svc.AddAttachment(ctx, "missing", f.owner, uploadHeader(t, "paper.pdf", pdf))
	assert.ErrorIs(t, err, apperrors.ErrResearchNotFound)

	err = f.svc.DeleteAttachment(ctx, "r1", "any", f.requester)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestMetadataTitleAlwaysEndsWithEllipsis(t *testing.T) {
	ada := domain.User{ID: "u-ada", Username: "ada", DisplayUsername: "Ada"}

	tests := []struct {
		name  string
		owner domain.User
		plain string
		want  string
	}{
		{"empty description", ada, "", "Ada: ..."},
		{"short description", ada, "Graph  neural\nnetworks", "Ada: Graph neural networks..."},
		{"long description", ada, strings.Repeat("x", 80), "Ada: " + strings.Repeat("x", 50) + "..."},
		{"username fallback", domain.User{Username: "ada"}, "Notes", "ada: Notes..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, metadataTitle(tt.owner, tt.plain))
		})
	}
}
