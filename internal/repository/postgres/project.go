package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"projecthub-backend/internal/domain"
	"projecthub-backend/internal/repository"
)

type projectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) repository.ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	query := `INSERT INTO projects (id, name, description, owner_id, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $6)`
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, query, project.ID, project.Name, project.Description, project.OwnerID, project.Status, now)
	return err
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	project := &domain.Project{}
	query := `SELECT id, name, description, owner_id, status, created_at, updated_at FROM projects WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&project.ID, &project.Name, &project.Description, &project.OwnerID, &project.Status, &project.CreatedAt, &project.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (r *projectRepository) ListForUser(ctx context.Context, userID string) ([]domain.Project, error) {
	query := `SELECT DISTINCT p.id, p.name, p.description, p.owner_id, p.status, p.created_at, p.updated_at
	          FROM projects p
	          LEFT JOIN project_members m ON m.project_id = p.id
	          WHERE p.owner_id = $1 OR m.user_id = $1
	          ORDER BY p.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.OwnerID, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	query := `UPDATE projects SET name = $1, description = $2, status = $3, updated_at = $4 WHERE id = $5`
	_, err := r.db.ExecContext(ctx, query, project.Name, project.Description, project.Status, time.Now(), project.ID)
	return err
}

func (r *projectRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}

func (r *projectRepository) GetMember(ctx context.Context, projectID, userID string) (*domain.Member, error) {
	member := &domain.Member{}
	query := `SELECT project_id, user_id, role, joined_at FROM project_members WHERE project_id = $1 AND user_id = $2`
	err := r.db.QueryRowContext(ctx, query, projectID, userID).Scan(
		&member.ProjectID, &member.UserID, &member.Role, &member.JoinedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (r *projectRepository) ListMembers(ctx context.Context, projectID string) ([]domain.Member, error) {
	query := `SELECT project_id, user_id, role, joined_at FROM project_members WHERE project_id = $1 ORDER BY joined_at`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.ProjectID, &m.UserID, &m.Role, &m.JoinedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// AddMember inserts a membership entry. The primary key on
// (project_id, user_id) plus ON CONFLICT DO NOTHING makes the add idempotent
// under concurrent writers.
func (r *projectRepository) AddMember(ctx context.Context, member *domain.Member) error {
	query := `INSERT INTO project_members (project_id, user_id, role, joined_at)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (project_id, user_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, member.ProjectID, member.UserID, member.Role, member.JoinedAt)
	return err
}

func (r *projectRepository) RemoveMember(ctx context.Context, projectID, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM project_members WHERE project_id = $1 AND user_id = $2`, projectID, userID)
	return err
}

func (r *projectRepository) UpdateMemberRole(ctx context.Context, projectID, userID string, role domain.MemberRole) error {
	query := `UPDATE project_members SET role = $1 WHERE project_id = $2 AND user_id = $3`
	_, err := r.db.ExecContext(ctx, query, role, projectID, userID)
	return err
}
