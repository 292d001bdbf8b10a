package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apihttp "projecthub-backend/internal/api/http"
	"projecthub-backend/internal/domain"
	"projecthub-backend/internal/security"
	"projecthub-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Func-based fakes keep each test declaring only the call it expects; an
// unexpected call panics on the nil function.

type fakeInvitationService struct {
	invite       func(ctx context.Context, requester domain.Identity, projectID, email string, role domain.MemberRole, message string) (*domain.Invitation, bool, error)
	accept       func(ctx context.Context, requester domain.Identity, invitationID, token string) (*domain.Invitation, error)
	reject       func(ctx context.Context, requester domain.Identity, invitationID string) (*domain.Invitation, error)
	cancel       func(ctx context.Context, requester domain.Identity, invitationID string) error
	resend       func(ctx context.Context, requester domain.Identity, invitationID string) (*domain.Invitation, bool, error)
	validate     func(ctx context.Context, invitationID, token string) (*domain.Invitation, error)
	listProject  func(ctx context.Context, requester domain.Identity, projectID string) ([]domain.Invitation, error)
	listMine     func(ctx context.Context, requester domain.Identity) ([]domain.Invitation, error)
}

func (f *fakeInvitationService) Invite(ctx context.Context, requester domain.Identity, projectID, email string, role domain.MemberRole, message string) (*domain.Invitation, bool, error) {
	return f.invite(ctx, requester, projectID, email, role, message)
}
func (f *fakeInvitationService) Accept(ctx context.Context, requester domain.Identity, invitationID, token string) (*domain.Invitation, error) {
	return f.accept(ctx, requester, invitationID, token)
}
func (f *fakeInvitationService) Reject(ctx context.Context, requester domain.Identity, invitationID string) (*domain.Invitation, error) {
	return f.reject(ctx, requester, invitationID)
}
func (f *fakeInvitationService) Cancel(ctx context.Context, requester domain.Identity, invitationID string) error {
	return f.cancel(ctx, requester, invitationID)
}
func (f *fakeInvitationService) Resend(ctx context.Context, requester domain.Identity, invitationID string) (*domain.Invitation, bool, error) {
	return f.resend(ctx, requester, invitationID)
}
func (f *fakeInvitationService) Validate(ctx context.Context, invitationID, token string) (*domain.Invitation, error) {
	return f.validate(ctx, invitationID, token)
}
func (f *fakeInvitationService) ListProjectInvitations(ctx context.Context, requester domain.Identity, projectID string) ([]domain.Invitation, error) {
	return f.listProject(ctx, requester, projectID)
}
func (f *fakeInvitationService) ListMyInvitations(ctx context.Context, requester domain.Identity) ([]domain.Invitation, error) {
	return f.listMine(ctx, requester)
}

type fakeAuthService struct{}

func (f *fakeAuthService) Signup(ctx context.Context, name, email, password string) (*domain.User, string, string, error) {
	return nil, "", "", service.ErrInvalidInput
}
func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, string, error) {
	return "", "", service.ErrInvalidCredentials
}
func (f *fakeAuthService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	return "", "", service.ErrForbidden
}

type fakeProjectService struct{}

func (f *fakeProjectService) CreateProject(ctx context.Context, requester domain.Identity, name, description string) (*domain.Project, error) {
	return nil, service.ErrInvalidInput
}
func (f *fakeProjectService) GetProject(ctx context.Context, requester domain.Identity, projectID string) (*domain.Project, error) {
	return nil, service.ErrNotFound
}
func (f *fakeProjectService) ListMyProjects(ctx context.Context, requester domain.Identity) ([]domain.Project, error) {
	return nil, nil
}
func (f *fakeProjectService) UpdateProject(ctx context.Context, requester domain.Identity, projectID string, upd service.ProjectUpdate) (*domain.Project, error) {
	return nil, service.ErrNotFound
}
func (f *fakeProjectService) DeleteProject(ctx context.Context, requester domain.Identity, projectID string) error {
	return service.ErrNotFound
}

type fakeMembershipService struct{}

func (f *fakeMembershipService) ListMembers(ctx context.Context, requester domain.Identity, projectID string) ([]domain.Member, error) {
	return nil, service.ErrForbidden
}
func (f *fakeMembershipService) RemoveMember(ctx context.Context, requester domain.Identity, projectID, targetUserID string) error {
	return service.ErrOwnerImmutable
}
func (f *fakeMembershipService) ChangeRole(ctx context.Context, requester domain.Identity, projectID, targetUserID string, role domain.MemberRole) error {
	return service.ErrForbidden
}
func (f *fakeMembershipService) AddMember(ctx context.Context, projectID, userID string, role domain.MemberRole) error {
	return nil
}

type fakeTaskService struct{}

func (f *fakeTaskService) CreateTask(ctx context.Context, requester domain.Identity, projectID string, req service.TaskCreate) (*domain.Task, error) {
	return nil, service.ErrForbidden
}
func (f *fakeTaskService) GetTask(ctx context.Context, requester domain.Identity, projectID, taskID string) (*domain.Task, error) {
	return nil, service.ErrNotFound
}
func (f *fakeTaskService) ListTasks(ctx context.Context, requester domain.Identity, projectID string) ([]domain.Task, error) {
	return nil, nil
}
func (f *fakeTaskService) UpdateTask(ctx context.Context, requester domain.Identity, projectID, taskID string, upd service.TaskUpdate) (*domain.Task, error) {
	return nil, service.ErrNotFound
}
func (f *fakeTaskService) DeleteTask(ctx context.Context, requester domain.Identity, projectID, taskID string) error {
	return service.ErrNotFound
}

func newTestRouter(t *testing.T, inviteSvc service.InvitationService) (http.Handler, string) {
	t.Helper()
	tokens := security.NewTokenManager("router-test-secret", 60, 10080)
	access, err := tokens.GenerateAccessToken("user-b", "b@x.com", "Bob")
	require.NoError(t, err)

	router := apihttp.NewRouter(
		tokens,
		apihttp.NewAuthHandler(&fakeAuthService{}),
		apihttp.NewProjectHandler(&fakeProjectService{}, &fakeMembershipService{}),
		apihttp.NewInvitationHandler(inviteSvc),
		apihttp.NewTaskHandler(&fakeTaskService{}),
	)
	return router, access
}

func TestRouter_AuthenticationGate(t *testing.T) {
	router, _ := newTestRouter(t, &fakeInvitationService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/my-invitations", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_AcceptInvitation(t *testing.T) {
	t.Run("passes identity, id and token through", func(t *testing.T) {
		inviteSvc := &fakeInvitationService{
			accept: func(ctx context.Context, requester domain.Identity, invitationID, token string) (*domain.Invitation, error) {
				assert.Equal(t, "user-b", requester.ID)
				assert.Equal(t, "inv-1", invitationID)
				assert.Equal(t, "tok", token)
				return &domain.Invitation{ID: invitationID, Status: domain.InvitationStatusAccepted}, nil
			},
		}
		router, access := newTestRouter(t, inviteSvc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/invitations/inv-1/accept", strings.NewReader(`{"token":"tok"}`))
		req.Header.Set("Authorization", "Bearer "+access)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("body is optional", func(t *testing.T) {
		inviteSvc := &fakeInvitationService{
			accept: func(ctx context.Context, requester domain.Identity, invitationID, token string) (*domain.Invitation, error) {
				assert.Empty(t, token)
				return &domain.Invitation{ID: invitationID, Status: domain.InvitationStatusAccepted}, nil
			},
		}
		router, access := newTestRouter(t, inviteSvc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/invitations/inv-1/accept", nil)
		req.Header.Set("Authorization", "Bearer "+access)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRouter_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not found", service.ErrNotFound, http.StatusNotFound},
		{"forbidden", service.ErrForbidden, http.StatusForbidden},
		{"already resolved", service.ErrInvitationResolved, http.StatusBadRequest},
		{"expired", service.ErrInvitationExpired, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inviteSvc := &fakeInvitationService{
				accept: func(ctx context.Context, requester domain.Identity, invitationID, token string) (*domain.Invitation, error) {
					return nil, tc.err
				},
			}
			router, access := newTestRouter(t, inviteSvc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/invitations/inv-1/accept", nil)
			req.Header.Set("Authorization", "Bearer "+access)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.code, rec.Code)
		})
	}
}

func TestRouter_ValidateIsPublic(t *testing.T) {
	expiresAt := time.Now().Add(24 * time.Hour)
	inviteSvc := &fakeInvitationService{
		validate: func(ctx context.Context, invitationID, token string) (*domain.Invitation, error) {
			assert.Equal(t, "inv-1", invitationID)
			assert.Equal(t, "tok", token)
			return &domain.Invitation{
				ID: "inv-1", ProjectID: "proj-1", InvitedEmail: "b@x.com",
				Role: domain.MemberRoleEditor, Token: "tok",
				Status: domain.InvitationStatusPending, ExpiresAt: expiresAt,
			}, nil
		},
	}
	router, _ := newTestRouter(t, inviteSvc)

	// No Authorization header at all.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/invitations/inv-1/validate/tok", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "inv-1", body["invitation_id"])
	assert.Equal(t, "b@x.com", body["invited_email"])
	// The secret itself is never echoed back.
	assert.NotContains(t, body, "token")
}
