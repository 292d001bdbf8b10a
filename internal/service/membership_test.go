package service_test

import (
	"context"
	"testing"

	"projecthub-backend/internal/domain"
	"projecthub-backend/internal/repository"
	"projecthub-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMembershipService_RemoveMember(t *testing.T) {
	ctx := context.Background()

	t.Run("owner removes a member", func(t *testing.T) {
		projectRepo := new(MockProjectRepo)
		svc := service.NewMembershipService(projectRepo)
		projectRepo.On("GetByID", ctx, "proj-1").Return(testProject(), nil)
		projectRepo.On("GetMember", ctx, "proj-1", owner.ID).Return(nil, repository.ErrNotFound)
		projectRepo.On("RemoveMember", ctx, "proj-1", invitee.ID).Return(nil)

		err := svc.RemoveMember(ctx, owner, "proj-1", invitee.ID)
		assert.NoError(t, err)
		projectRepo.AssertExpectations(t)
	})

	t.Run("owner cannot be removed", func(t *testing.T) {
		projectRepo := new(MockProjectRepo)
		svc := service.NewMembershipService(projectRepo)
		projectRepo.On("GetByID", ctx, "proj-1").Return(testProject(), nil)
		projectRepo.On("GetMember", ctx, "proj-1", owner.ID).Return(nil, repository.ErrNotFound)

		err := svc.RemoveMember(ctx, owner, "proj-1", owner.ID)
		assert.ErrorIs(t, err, service.ErrOwnerImmutable)
		projectRepo.AssertNotCalled(t, "RemoveMember", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("editor cannot remove members", func(t *testing.T) {
		projectRepo := new(MockProjectRepo)
		svc := service.NewMembershipService(projectRepo)
		projectRepo.On("GetByID", ctx, "proj-1").Return(testProject(), nil)
		projectRepo.On("GetMember", ctx, "proj-1", stranger.ID).
			Return(&domain.Member{ProjectID: "proj-1", UserID: stranger.ID, Role: domain.MemberRoleEditor}, nil)

		err := svc.RemoveMember(ctx, stranger, "proj-1", invitee.ID)
		assert.ErrorIs(t, err, service.ErrForbidden)
	})
}

func TestMembershipService_ChangeRole(t *testing.T) {
	ctx := context.Background()

	t.Run("admin promotes a member", func(t *testing.T) {
		projectRepo := new(MockProjectRepo)
		svc := service.NewMembershipService(projectRepo)
		admin := domain.Identity{ID: "user-d", Email: "d@x.com"}
		projectRepo.On("GetByID", ctx, "proj-1").Return(testProject(), nil)
		projectRepo.On("GetMember", ctx, "proj-1", admin.ID).
			Return(&domain.Member{ProjectID: "proj-1", UserID: admin.ID, Role: domain.MemberRoleAdmin}, nil)
		projectRepo.On("UpdateMemberRole", ctx, "proj-1", invitee.ID, domain.MemberRoleAdmin).Return(nil)

		err := svc.ChangeRole(ctx, admin, "proj-1", invitee.ID, domain.MemberRoleAdmin)
		assert.NoError(t, err)
	})

	t.Run("role is validated before any lookup", func(t *testing.T) {
		projectRepo := new(MockProjectRepo)
		svc := service.NewMembershipService(projectRepo)

		err := svc.ChangeRole(ctx, owner, "proj-1", invitee.ID, "root")
		assert.ErrorIs(t, err, service.ErrInvalidRole)
		projectRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("owner role cannot be changed", func(t *testing.T) {
		projectRepo := new(MockProjectRepo)
		svc := service.NewMembershipService(projectRepo)
		projectRepo.On("GetByID", ctx, "proj-1").Return(testProject(), nil)
		projectRepo.On("GetMember", ctx, "proj-1", owner.ID).Return(nil, repository.ErrNotFound)

		err := svc.ChangeRole(ctx, owner, "proj-1", owner.ID, domain.MemberRoleViewer)
		assert.ErrorIs(t, err, service.ErrOwnerImmutable)
	})
}

func TestMembershipService_ListMembers(t *testing.T) {
	ctx := context.Background()

	t.Run("manager lists members", func(t *testing.T) {
		projectRepo := new(MockProjectRepo)
		svc := service.NewMembershipService(projectRepo)
		projectRepo.On("GetByID", ctx, "proj-1").Return(testProject(), nil)
		projectRepo.On("GetMember", ctx, "proj-1", owner.ID).Return(nil, repository.ErrNotFound)
		projectRepo.On("ListMembers", ctx, "proj-1").
			Return([]domain.Member{{ProjectID: "proj-1", UserID: invitee.ID, Role: domain.MemberRoleEditor}}, nil)

		members, err := svc.ListMembers(ctx, owner, "proj-1")
		require.NoError(t, err)
		assert.Len(t, members, 1)
	})

	t.Run("viewer cannot list members", func(t *testing.T) {
		projectRepo := new(MockProjectRepo)
		svc := service.NewMembershipService(projectRepo)
		projectRepo.On("GetByID", ctx, "proj-1").Return(testProject(), nil)
		projectRepo.On("GetMember", ctx, "proj-1", stranger.ID).
			Return(&domain.Member{ProjectID: "proj-1", UserID: stranger.ID, Role: domain.MemberRoleViewer}, nil)

		_, err := svc.ListMembers(ctx, stranger, "proj-1")
		assert.ErrorIs(t, err, service.ErrForbidden)
	})
}

func TestMembershipService_AddMember(t *testing.T) {
	ctx := context.Background()

	projectRepo := new(MockProjectRepo)
	svc := service.NewMembershipService(projectRepo)
	projectRepo.On("AddMember", ctx, mock.MatchedBy(func(m *domain.Member) bool {
		return m.ProjectID == "proj-1" && m.UserID == invitee.ID && m.Role == domain.MemberRoleEditor
	})).Return(nil)

	err := svc.AddMember(ctx, "proj-1", invitee.ID, domain.MemberRoleEditor)
	assert.NoError(t, err)
	projectRepo.AssertExpectations(t)
}
