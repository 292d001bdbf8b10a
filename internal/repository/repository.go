package repository

import (
	"context"
	"errors"
	"time"

	"projecthub-backend/internal/domain"
)

// ErrNotFound is returned by lookups when no matching row exists.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert violates a uniqueness constraint,
// e.g. a second pending invitation for the same (project, email) pair.
var ErrDuplicate = errors.New("record already exists")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id string) error

	// Membership. AddMember is idempotent: inserting an existing
	// (project, user) pair is a no-op. Remove and UpdateMemberRole are
	// no-ops when the target is not a member.
	GetMember(ctx context.Context, projectID, userID string) (*domain.Member, error)
	ListMembers(ctx context.Context, projectID string) ([]domain.Member, error)
	AddMember(ctx context.Context, member *domain.Member) error
	RemoveMember(ctx context.Context, projectID, userID string) error
	UpdateMemberRole(ctx context.Context, projectID, userID string, role domain.MemberRole) error
}

type InvitationRepository interface {
	Create(ctx context.Context, inv *domain.Invitation) error
	GetByID(ctx context.Context, id string) (*domain.Invitation, error)
	GetPendingByProjectEmail(ctx context.Context, projectID, email string) (*domain.Invitation, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Invitation, error)
	ListForInvitee(ctx context.Context, userID, email string) ([]domain.Invitation, error)
	ListPendingExpiringBefore(ctx context.Context, cutoff time.Time) ([]domain.Invitation, error)
	// Update rewrites the mutable fields unconditionally.
	Update(ctx context.Context, inv *domain.Invitation) error
	// MarkResolved flips a pending invitation into a terminal status. It
	// reports false when the row was no longer pending, which callers use
	// as a lost compare-and-set under concurrent resolution.
	MarkResolved(ctx context.Context, id string, status domain.InvitationStatus, invitedUserID string, respondedAt time.Time) (bool, error)
	// RotateToken installs a fresh token and expiry on a pending
	// invitation, reporting false when the row was no longer pending.
	RotateToken(ctx context.Context, id, token string, expiresAt time.Time) (bool, error)
	Delete(ctx context.Context, id string) error
}

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
}
