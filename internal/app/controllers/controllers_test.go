package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/atcampus/internal/app/models"
	"github.com/yigit/atcampus/internal/app/models/dto"
	"github.com/yigit/atcampus/internal/domain"
	"github.com/yigit/atcampus/internal/middleware"
	"github.com/yigit/atcampus/internal/pkg/apperrors"
	"github.com/yigit/atcampus/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const (
	researchID = "0b7e2f48-2c55-4d8f-9d2e-3a5c1c6f9a10"
	requestID  = "5d1e7a3c-9b2f-4c8e-a6d4-1f0b3e7c2a95"
)

var owner = &models.User{
	ID: "u-ada", Email: "ada@campus.edu", Username: "ada",
	RoleType: models.RoleInstructor, AccountStatus: models.AccountApproved,
}

type stubResearchService struct {
	viewer     domain.Viewer
	researchID string
	requestID  string
	decision   string
	filename   string
	err        error
}

func (s *stubResearchService) GetResearchView(_ context.Context, researchID string, viewer domain.Viewer) (*dto.ResearchViewResponse, error) {
	s.researchID, s.viewer = researchID, viewer
	if s.err != nil {
		return nil, s.err
	}
	return &dto.ResearchViewResponse{ID: researchID, CanViewRequests: true, PendingRequests: []dto.CollaborationRequestResponse{}}, nil
}

func (s *stubResearchService) CreateResearch(_ context.Context, viewer domain.Viewer, req *dto.CreateResearchRequest) (*dto.ResearchViewResponse, error) {
	s.viewer = viewer
	if s.err != nil {
		return nil, s.err
	}
	return &dto.ResearchViewResponse{ID: researchID, Description: req.Description}, nil
}

func (s *stubResearchService) ListMyResearches(_ context.Context, viewer domain.Viewer, page, size int) (*dto.ResearchListResponse, error) {
	s.viewer = viewer
	return &dto.ResearchListResponse{
		Researches:     []dto.ResearchSummary{},
		PaginationInfo: dto.PaginationInfo{CurrentPage: page, PageSize: size},
	}, s.err
}

func (s *stubResearchService) RequestCollaboration(_ context.Context, researchID string, viewer domain.Viewer) (*dto.CollaborationRequestResponse, error) {
	s.researchID, s.viewer = researchID, viewer
	if s.err != nil {
		return nil, s.err
	}
	return &dto.CollaborationRequestResponse{ID: requestID, ResearchID: researchID, Status: "PENDING"}, nil
}

func (s *stubResearchService) ListPendingRequests(_ context.Context, researchID string, viewer domain.Viewer) ([]dto.CollaborationRequestResponse, error) {
	s.researchID, s.viewer = researchID, viewer
	if s.err != nil {
		return nil, s.err
	}
	return []dto.CollaborationRequestResponse{}, nil
}

func (s *stubResearchService) ResolveRequest(_ context.Context, researchID, requestID string, viewer domain.Viewer, decision string) (*dto.ResolutionResponse, error) {
	s.researchID, s.requestID, s.viewer, s.decision = researchID, requestID, viewer, decision
	if s.err != nil {
		return nil, s.err
	}
	return &dto.ResolutionResponse{Request: dto.CollaborationRequestResponse{ID: requestID, Status: "ACCEPTED"}}, nil
}

func (s *stubResearchService) AddAttachment(_ context.Context, researchID string, viewer domain.Viewer, fh *multipart.FileHeader) (*dto.AttachmentResponse, error) {
	s.researchID, s.viewer, s.filename = researchID, viewer, fh.Filename
	if s.err != nil {
		return nil, s.err
	}
	return &dto.AttachmentResponse{ID: "att-1", Type: "application/pdf"}, nil
}

func (s *stubResearchService) DeleteAttachment(_ context.Context, researchID, _ string, viewer domain.Viewer) error {
	s.researchID, s.viewer = researchID, viewer
	return s.err
}

type stubAccountService struct {
	err       error
	lastPage  int
	lastState string
}

func (s *stubAccountService) Register(_ context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.RegisterResponse{
		User:    &dto.UserResponse{ID: "u-new", Email: req.Email, AccountStatus: "PENDING"},
		Message: "Registration received. Your account is waiting for approval.",
	}, nil
}

func (s *stubAccountService) Login(context.Context, *dto.LoginRequest) (*dto.AuthResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.AuthResponse{Token: dto.TokenResponse{AccessToken: "access", TokenType: "Bearer"}}, nil
}

func (s *stubAccountService) RefreshToken(context.Context, string) (*dto.TokenResponse, error) {
	return &dto.TokenResponse{AccessToken: "access"}, s.err
}

func (s *stubAccountService) Logout(context.Context, string) error { return s.err }

func (s *stubAccountService) GetProfile(_ context.Context, userID string) (*dto.UserResponse, error) {
	return &dto.UserResponse{ID: userID}, s.err
}

func (s *stubAccountService) ListAccounts(_ context.Context, status string, page, _ int) (*dto.AccountListResponse, error) {
	s.lastState, s.lastPage = status, page
	return &dto.AccountListResponse{Accounts: []dto.UserResponse{}}, s.err
}

func (s *stubAccountService) ReviewAccount(_ context.Context, _ domain.Viewer, userID string, req *dto.ReviewAccountRequest) (*dto.UserResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.UserResponse{ID: userID, AccountStatus: req.Status}, nil
}

func newJWT() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "controller-test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "atcampus-test",
	})
}

func bearer(t *testing.T, jwtService *auth.JWTService, u *models.User) string {
	t.Helper()
	pair, err := jwtService.GenerateTokenPair(u)
	require.NoError(t, err)
	return "Bearer " + pair.AccessToken
}

func newResearchRouter(svc *stubResearchService, jwtService *auth.JWTService) *gin.Engine {
	ctrl := NewResearchController(svc, zerolog.Nop())
	authMiddleware := middleware.NewAuthMiddleware(jwtService, nil)

	router := gin.New()
	r := router.Group("/researches", authMiddleware.JWTAuth())
	r.POST("", ctrl.CreateResearch)
	r.GET("/mine", ctrl.ListMyResearches)
	r.GET("/:id", ctrl.GetResearch)
	r.POST("/:id/requests", ctrl.RequestCollaboration)
	r.GET("/:id/requests", ctrl.ListPendingRequests)
	r.PUT("/:id/requests/:requestId", ctrl.ResolveRequest)
	r.POST("/:id/attachments", middleware.MaxBodySize(1<<20), ctrl.AddAttachment)
	r.DELETE("/:id/attachments/:attachmentId", ctrl.DeleteAttachment)
	return router
}

func do(router http.Handler, method, target, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode(t, rec)
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok, rec.Body.String())
	return errObj["code"].(string)
}

func TestGetResearchPassesViewer(t *testing.T) {
	jwtService := newJWT()
	svc := &stubResearchService{}
	router := newResearchRouter(svc, jwtService)

	rec := do(router, http.MethodGet, "/researches/"+researchID, bearer(t, jwtService, owner), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, researchID, svc.researchID)
	assert.Equal(t, domain.Viewer{UserID: "u-ada", Role: "INSTRUCTOR"}, svc.viewer)

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["canViewRequests"])
}

func TestResearchRoutesRequireSession(t *testing.T) {
	svc := &stubResearchService{}
	router := newResearchRouter(svc, newJWT())

	rec := do(router, http.MethodGet, "/researches/"+researchID, "", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, svc.researchID, "the service must not be reached without a session")
}

func TestResolveRequestStatusMapping(t *testing.T) {
	jwtService := newJWT()
	token := bearer(t, jwtService, owner)

	tests := []struct {
		name     string
		body     string
		err      error
		wantCode int
		wantErr  string
	}{
		{"accepted", `{"decision":"ACCEPT"}`, nil, http.StatusOK, ""},
		{"not owner", `{"decision":"ACCEPT"}`, domain.ErrUnauthorized, http.StatusForbidden, "FORBIDDEN"},
		{"unknown request", `{"decision":"DECLINE"}`, domain.ErrNotFound, http.StatusNotFound, "RES_001"},
		{"research missing", `{"decision":"DECLINE"}`, apperrors.ErrResearchNotFound, http.StatusNotFound, "RES_001"},
		{"already handled", `{"decision":"ACCEPT"}`, domain.ErrInvalidState, http.StatusConflict, "RES_004"},
		{"bad decision", `{"decision":"MAYBE"}`, domain.ErrInvalidDecision, http.StatusBadRequest, "BAD_REQUEST"},
		{"missing decision", `{}`, nil, http.StatusBadRequest, "VAL_001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubResearchService{err: tt.err}
			router := newResearchRouter(svc, jwtService)

			rec := do(router, http.MethodPut, "/researches/"+researchID+"/requests/"+requestID,
				token, strings.NewReader(tt.body), "application/json")

			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			if tt.wantErr != "" {
				assert.Equal(t, tt.wantErr, errorCode(t, rec))
				return
			}
			assert.Equal(t, "ACCEPT", svc.decision)
			assert.Equal(t, requestID, svc.requestID)
			assert.Equal(t, "u-ada", svc.viewer.UserID)
		})
	}
}

func TestRequestCollaborationCreated(t *testing.T) {
	jwtService := newJWT()
	svc := &stubResearchService{}
	router := newResearchRouter(svc, jwtService)
	alan := &models.User{ID: "u-alan", Email: "alan@campus.edu", RoleType: models.RoleStudent}

	rec := do(router, http.MethodPost, "/researches/"+researchID+"/requests", bearer(t, jwtService, alan), nil, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "u-alan", svc.viewer.UserID)

	svc.err = domain.ErrDuplicateRequest
	rec = do(router, http.MethodPost, "/researches/"+researchID+"/requests", bearer(t, jwtService, alan), nil, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateResearchAndList(t *testing.T) {
	jwtService := newJWT()
	svc := &stubResearchService{}
	router := newResearchRouter(svc, jwtService)
	token := bearer(t, jwtService, owner)

	doc := `{"description":{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"Graphs"}]}]}}`
	rec := do(router, http.MethodPost, "/researches", token, strings.NewReader(doc), "application/json")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(router, http.MethodPost, "/researches", token, strings.NewReader(`{}`), "application/json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(router, http.MethodGet, "/researches/mine?page=2&size=5", token, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].(map[string]any)
	assert.EqualValues(t, 2, data["currentPage"])
	assert.EqualValues(t, 5, data["pageSize"])
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if field != "" {
		part, err := w.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestAddAttachment(t *testing.T) {
	jwtService := newJWT()
	svc := &stubResearchService{}
	router := newResearchRouter(svc, jwtService)
	token := bearer(t, jwtService, owner)

	body, contentType := multipartBody(t, "file", "paper.pdf", []byte("%PDF-1.7\n"))
	rec := do(router, http.MethodPost, "/researches/"+researchID+"/attachments", token, body, contentType)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "paper.pdf", svc.filename)

	body, contentType = multipartBody(t, "", "", nil)
	rec = do(router, http.MethodPost, "/researches/"+researchID+"/attachments", token, body, contentType)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body, contentType = multipartBody(t, "file", "huge.pdf", bytes.Repeat([]byte("x"), 2<<20))
	rec = do(router, http.MethodPost, "/researches/"+researchID+"/attachments", token, body, contentType)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestDeleteAttachmentForbidden(t *testing.T) {
	jwtService := newJWT()
	svc := &stubResearchService{err: apperrors.NewForbiddenError("only the owner can manage attachments")}
	router := newResearchRouter(svc, jwtService)

	rec := do(router, http.MethodDelete, "/researches/"+researchID+"/attachments/att-1", bearer(t, jwtService, owner), nil, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func newAuthRouter(svc *stubAccountService, jwtService *auth.JWTService) *gin.Engine {
	ctrl := NewAuthController(svc, zerolog.Nop())
	authMiddleware := middleware.NewAuthMiddleware(jwtService, nil)

	router := gin.New()
	router.POST("/auth/register", ctrl.Register)
	router.POST("/auth/login", ctrl.Login)
	router.POST("/auth/refresh", ctrl.RefreshToken)
	router.POST("/auth/logout", ctrl.Logout)
	authed := router.Group("", authMiddleware.JWTAuth())
	authed.GET("/auth/profile", ctrl.GetProfile)
	authed.GET("/admin/accounts", ctrl.ListAccounts)
	authed.PUT("/admin/accounts/:id/review", ctrl.ReviewAccount)
	return router
}

func TestRegisterAndLogin(t *testing.T) {
	svc := &stubAccountService{}
	router := newAuthRouter(svc, newJWT())

	register := `{"email":"alan@campus.edu","password":"password1","name":"Alan Turing","username":"alan","roleType":"STUDENT"}`
	rec := do(router, http.MethodPost, "/auth/register", "", strings.NewReader(register), "application/json")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(router, http.MethodPost, "/auth/register", "",
		strings.NewReader(`{"email":"alan@campus.edu","password":"password1","name":"Alan","username":"alan","roleType":"ADMIN"}`),
		"application/json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	login := `{"email":"alan@campus.edu","password":"password1"}`
	rec = do(router, http.MethodPost, "/auth/login", "", strings.NewReader(login), "application/json")
	require.Equal(t, http.StatusOK, rec.Code)

	svc.err = apperrors.ErrAccountRejected
	rec = do(router, http.MethodPost, "/auth/login", "", strings.NewReader(login), "application/json")
	require.Equal(t, http.StatusForbidden, rec.Code)
	errObj := decode(t, rec)["error"].(map[string]any)
	assert.Equal(t, "ACC_001", errObj["code"])
	assert.Equal(t, middleware.AccountRejectedMessage, errObj["message"])

	svc.err = apperrors.ErrInvalidCredentials
	rec = do(router, http.MethodPost, "/auth/login", "", strings.NewReader(login), "application/json")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfileAndAdminRoutes(t *testing.T) {
	jwtService := newJWT()
	svc := &stubAccountService{}
	router := newAuthRouter(svc, jwtService)
	token := bearer(t, jwtService, owner)

	rec := do(router, http.MethodGet, "/auth/profile", token, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u-ada", decode(t, rec)["data"].(map[string]any)["id"])

	rec = do(router, http.MethodGet, "/admin/accounts?status=PENDING&page=3", token, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "PENDING", svc.lastState)
	assert.Equal(t, 3, svc.lastPage)

	rec = do(router, http.MethodPut, "/admin/accounts/u-alan/review", token,
		strings.NewReader(`{"status":"REJECTED"}`), "application/json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "REJECTED", decode(t, rec)["data"].(map[string]any)["accountStatus"])

	rec = do(router, http.MethodPut, "/admin/accounts/u-alan/review", token,
		strings.NewReader(`{"status":"PENDING"}`), "application/json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshAndLogout(t *testing.T) {
	svc := &stubAccountService{}
	router := newAuthRouter(svc, newJWT())

	rec := do(router, http.MethodPost, "/auth/refresh", "", strings.NewReader(`{"refreshToken":"r1"}`), "application/json")
	require.Equal(t, http.StatusOK, rec.Code)

	svc.err = apperrors.ErrTokenRevoked
	rec = do(router, http.MethodPost, "/auth/refresh", "", strings.NewReader(`{"refreshToken":"r1"}`), "application/json")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	svc.err = nil
	rec = do(router, http.MethodPost, "/auth/logout", "", strings.NewReader(`{"refreshToken":"r1"}`), "application/json")
	assert.Equal(t, http.StatusOK, rec.Code)
}
