package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"projecthub-backend/internal/domain"
	"projecthub-backend/internal/repository"
	"projecthub-backend/internal/security"
)

type taskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	idGen       security.IDGenerator
}

func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, idGen security.IDGenerator) TaskService {
	return &taskService{taskRepo: taskRepo, projectRepo: projectRepo, idGen: idGen}
}

func (s *taskService) CreateTask(ctx context.Context, requester domain.Identity, projectID string, req TaskCreate) (*domain.Task, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if err := s.requireMember(ctx, projectID, requester); err != nil {
		return nil, err
	}

	task := &domain.Task{
		ID:          s.idGen.NewID(),
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatusTodo,
		AssigneeID:  req.AssigneeID,
		CreatedBy:   requester.ID,
	}
	if req.DueDate != nil {
		due, err := parseDueDate(*req.DueDate)
		if err != nil {
			return nil, err
		}
		task.DueDate = due
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) GetTask(ctx context.Context, requester domain.Identity, projectID, taskID string) (*domain.Task, error) {
	if err := s.requireMember(ctx, projectID, requester); err != nil {
		return nil, err
	}
	return s.getProjectTask(ctx, projectID, taskID)
}

func (s *taskService) ListTasks(ctx context.Context, requester domain.Identity, projectID string) ([]domain.Task, error) {
	if err := s.requireMember(ctx, projectID, requester); err != nil {
		return nil, err
	}
	return s.taskRepo.ListByProject(ctx, projectID)
}

func (s *taskService) UpdateTask(ctx context.Context, requester domain.Identity, projectID, taskID string, upd TaskUpdate) (*domain.Task, error) {
	if err := s.requireMember(ctx, projectID, requester); err != nil {
		return nil, err
	}
	task, err := s.getProjectTask(ctx, projectID, taskID)
	if err != nil {
		return nil, err
	}

	// Only whitelisted fields are merged.
	if upd.Title != nil {
		if *upd.Title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
		}
		task.Title = *upd.Title
	}
	if upd.Description != nil {
		task.Description = *upd.Description
	}
	if upd.Status != nil {
		switch *upd.Status {
		case domain.TaskStatusTodo, domain.TaskStatusInProgress, domain.TaskStatusDone:
			task.Status = *upd.Status
		default:
			return nil, fmt.Errorf("%w: unknown task status %q", ErrInvalidInput, *upd.Status)
		}
	}
	if upd.AssigneeID != nil {
		task.AssigneeID = *upd.AssigneeID
	}
	if upd.DueDate != nil {
		due, err := parseDueDate(*upd.DueDate)
		if err != nil {
			return nil, err
		}
		task.DueDate = due
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, requester domain.Identity, projectID, taskID string) error {
	if err := s.requireMember(ctx, projectID, requester); err != nil {
		return err
	}
	task, err := s.getProjectTask(ctx, projectID, taskID)
	if err != nil {
		return err
	}
	return s.taskRepo.Delete(ctx, task.ID)
}

func (s *taskService) getProjectTask(ctx context.Context, projectID, taskID string) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, mapRepoErr(err, "task")
	}
	if task.ProjectID != projectID {
		return nil, fmt.Errorf("%w: task", ErrNotFound)
	}
	return task, nil
}

func (s *taskService) requireMember(ctx context.Context, projectID string, requester domain.Identity) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return mapRepoErr(err, "project")
	}
	if project.IsOwner(requester.ID) {
		return nil
	}
	if _, err := s.projectRepo.GetMember(ctx, projectID, requester.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: not a member of this project", ErrForbidden)
		}
		return err
	}
	return nil
}

func parseDueDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	due, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: due_date must be RFC 3339", ErrInvalidInput)
	}
	return &due, nil
}
