package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"projecthub-backend/internal/domain"
	"projecthub-backend/internal/repository"
)

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	query := `INSERT INTO tasks (id, project_id, title, description, status, assignee_id, due_date, created_by, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.ProjectID, task.Title, task.Description, task.Status,
		nullString(task.AssigneeID), task.DueDate, task.CreatedBy, now)
	return err
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT id, project_id, title, description, status, assignee_id, due_date, created_by, created_at, updated_at
	          FROM tasks WHERE id = $1`
	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return task, err
}

func (r *taskRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	query := `SELECT id, project_id, title, description, status, assignee_id, due_date, created_by, created_at, updated_at
	          FROM tasks WHERE project_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	query := `UPDATE tasks SET title = $1, description = $2, status = $3, assignee_id = $4, due_date = $5, updated_at = $6 WHERE id = $7`
	_, err := r.db.ExecContext(ctx, query,
		task.Title, task.Description, task.Status, nullString(task.AssigneeID), task.DueDate, time.Now(), task.ID)
	return err
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}

func scanTask(row rowScanner) (*domain.Task, error) {
	task := &domain.Task{}
	var assigneeID sql.NullString
	var dueDate sql.NullTime
	err := row.Scan(
		&task.ID, &task.ProjectID, &task.Title, &task.Description, &task.Status,
		&assigneeID, &dueDate, &task.CreatedBy, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if assigneeID.Valid {
		task.AssigneeID = assigneeID.String
	}
	if dueDate.Valid {
		t := dueDate.Time
		task.DueDate = &t
	}
	return task, nil
}
