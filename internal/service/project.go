package service

import (
	"context"
	"errors"
	"fmt"

	"projecthub-backend/internal/domain"
	"projecthub-backend/internal/repository"
	"projecthub-backend/internal/security"
)

type projectService struct {
	projectRepo repository.ProjectRepository
	idGen       security.IDGenerator
}

func NewProjectService(projectRepo repository.ProjectRepository, idGen security.IDGenerator) ProjectService {
	return &projectService{projectRepo: projectRepo, idGen: idGen}
}

func (s *projectService) CreateProject(ctx context.Context, requester domain.Identity, name, description string) (*domain.Project, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	// The creator becomes the owner and is never duplicated into the
	// member list.
	project := &domain.Project{
		ID:          s.idGen.NewID(),
		Name:        name,
		Description: description,
		OwnerID:     requester.ID,
		Status:      domain.ProjectStatusActive,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) GetProject(ctx context.Context, requester domain.Identity, projectID string) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, mapRepoErr(err, "project")
	}
	if err := s.requireAccess(ctx, project, requester); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) ListMyProjects(ctx context.Context, requester domain.Identity) ([]domain.Project, error) {
	return s.projectRepo.ListForUser(ctx, requester.ID)
}

func (s *projectService) UpdateProject(ctx context.Context, requester domain.Identity, projectID string, upd ProjectUpdate) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, mapRepoErr(err, "project")
	}

	membership, err := s.membership(ctx, projectID, requester.ID)
	if err != nil {
		return nil, err
	}
	if !project.CanManageMembers(requester.ID, membership) {
		return nil, fmt.Errorf("%w: only the project owner or an admin can update the project", ErrForbidden)
	}

	// Only whitelisted fields are merged; client payloads never patch the
	// entity wholesale.
	if upd.Name != nil {
		if *upd.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		project.Name = *upd.Name
	}
	if upd.Description != nil {
		project.Description = *upd.Description
	}
	if upd.Status != nil {
		switch *upd.Status {
		case domain.ProjectStatusActive, domain.ProjectStatusArchived, domain.ProjectStatusCompleted:
			project.Status = *upd.Status
		default:
			return nil, fmt.Errorf("%w: unknown project status %q", ErrInvalidInput, *upd.Status)
		}
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) DeleteProject(ctx context.Context, requester domain.Identity, projectID string) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return mapRepoErr(err, "project")
	}
	if !project.IsOwner(requester.ID) {
		return fmt.Errorf("%w: only the project owner can delete the project", ErrForbidden)
	}
	return s.projectRepo.Delete(ctx, projectID)
}

// requireAccess admits the owner and any member, regardless of role.
func (s *projectService) requireAccess(ctx context.Context, project *domain.Project, requester domain.Identity) error {
	if project.IsOwner(requester.ID) {
		return nil
	}
	membership, err := s.membership(ctx, project.ID, requester.ID)
	if err != nil {
		return err
	}
	if membership == nil {
		return fmt.Errorf("%w: not a member of this project", ErrForbidden)
	}
	return nil
}

func (s *projectService) membership(ctx context.Context, projectID, userID string) (*domain.Member, error) {
	membership, err := s.projectRepo.GetMember(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return membership, nil
}
