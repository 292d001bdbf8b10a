package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"projecthub-backend/internal/domain"
	"projecthub-backend/internal/repository"
)

type membershipService struct {
	projectRepo repository.ProjectRepository
}

func NewMembershipService(projectRepo repository.ProjectRepository) MembershipService {
	return &membershipService{projectRepo: projectRepo}
}

func (s *membershipService) ListMembers(ctx context.Context, requester domain.Identity, projectID string) ([]domain.Member, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, mapRepoErr(err, "project")
	}
	if err := s.requireCanManage(ctx, project, requester); err != nil {
		return nil, err
	}
	return s.projectRepo.ListMembers(ctx, projectID)
}

func (s *membershipService) RemoveMember(ctx context.Context, requester domain.Identity, projectID, targetUserID string) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return mapRepoErr(err, "project")
	}
	if err := s.requireCanManage(ctx, project, requester); err != nil {
		return err
	}
	if project.IsOwner(targetUserID) {
		return ErrOwnerImmutable
	}
	// Removing a non-member is a no-op.
	return s.projectRepo.RemoveMember(ctx, projectID, targetUserID)
}

func (s *membershipService) ChangeRole(ctx context.Context, requester domain.Identity, projectID, targetUserID string, role domain.MemberRole) error {
	if !domain.ValidMemberRole(role) {
		return ErrInvalidRole
	}
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return mapRepoErr(err, "project")
	}
	if err := s.requireCanManage(ctx, project, requester); err != nil {
		return err
	}
	if project.IsOwner(targetUserID) {
		return ErrOwnerImmutable
	}
	// Updating a non-member is a no-op.
	return s.projectRepo.UpdateMemberRole(ctx, projectID, targetUserID, role)
}

func (s *membershipService) AddMember(ctx context.Context, projectID, userID string, role domain.MemberRole) error {
	member := &domain.Member{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
		JoinedAt:  time.Now(),
	}
	return s.projectRepo.AddMember(ctx, member)
}

func (s *membershipService) requireCanManage(ctx context.Context, project *domain.Project, requester domain.Identity) error {
	membership, err := s.projectRepo.GetMember(ctx, project.ID, requester.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if !project.CanManageMembers(requester.ID, membership) {
		return fmt.Errorf("%w: only the project owner or an admin can manage members", ErrForbidden)
	}
	return nil
}
