package postgres_test

import (
	"context"
	"testing"
	"time"

	"projecthub-backend/internal/domain"
	"projecthub-backend/internal/repository"
	"projecthub-backend/internal/repository/postgres"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepository_AddMember(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := postgres.NewProjectRepository(db)

	member := &domain.Member{
		ProjectID: "proj-1", UserID: "user-b",
		Role: domain.MemberRoleEditor, JoinedAt: time.Now(),
	}

	// First insert lands, the replay hits ON CONFLICT DO NOTHING. Both succeed.
	mock.ExpectExec(`INSERT INTO project_members .+ON CONFLICT \(project_id, user_id\) DO NOTHING`).
		WithArgs("proj-1", "user-b", "editor", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO project_members .+ON CONFLICT \(project_id, user_id\) DO NOTHING`).
		WithArgs("proj-1", "user-b", "editor", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.AddMember(ctx, member))
	require.NoError(t, repo.AddMember(ctx, member))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_GetMember(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := postgres.NewProjectRepository(db)

		mock.ExpectQuery(`SELECT project_id, user_id, role, joined_at FROM project_members`).
			WithArgs("proj-1", "user-b").
			WillReturnRows(sqlmock.NewRows([]string{"project_id", "user_id", "role", "joined_at"}).
				AddRow("proj-1", "user-b", "editor", time.Now()))

		member, err := repo.GetMember(ctx, "proj-1", "user-b")
		require.NoError(t, err)
		assert.Equal(t, domain.MemberRoleEditor, member.Role)
	})

	t.Run("missing maps to ErrNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := postgres.NewProjectRepository(db)

		mock.ExpectQuery(`SELECT project_id, user_id, role, joined_at FROM project_members`).
			WithArgs("proj-1", "user-c").
			WillReturnRows(sqlmock.NewRows([]string{"project_id", "user_id", "role", "joined_at"}))

		_, err = repo.GetMember(ctx, "proj-1", "user-c")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestProjectRepository_ListForUser(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := postgres.NewProjectRepository(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT DISTINCT p\.id, .+ FROM projects p\s+LEFT JOIN project_members m`).
		WithArgs("user-b").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "owner_id", "status", "created_at", "updated_at"}).
			AddRow("proj-2", "Borealis", "", "user-z", "ACTIVE", now, now).
			AddRow("proj-1", "Apollo", "moon stuff", "user-a", "ACTIVE", now.Add(-time.Hour), now))

	projects, err := repo.ListForUser(ctx, "user-b")
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Borealis", projects[0].Name)
}
