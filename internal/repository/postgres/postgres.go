package postgres

import (
	"database/sql"

	"projecthub-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ProjectRepository
	repository.InvitationRepository
	repository.TaskRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                   db,
		UserRepository:       NewUserRepository(db),
		ProjectRepository:    NewProjectRepository(db),
		InvitationRepository: NewInvitationRepository(db),
		TaskRepository:       NewTaskRepository(db),
	}
}
