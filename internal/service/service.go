package service

import (
	"context"

	"projecthub-backend/internal/domain"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (string, string, error)                      // access, refresh
	RefreshToken(ctx context.Context, refresh string) (string, string, error)
}

type ProjectService interface {
	CreateProject(ctx context.Context, requester domain.Identity, name, description string) (*domain.Project, error)
	GetProject(ctx context.Context, requester domain.Identity, projectID string) (*domain.Project, error)
	ListMyProjects(ctx context.Context, requester domain.Identity) ([]domain.Project, error)
	UpdateProject(ctx context.Context, requester domain.Identity, projectID string, upd ProjectUpdate) (*domain.Project, error)
	DeleteProject(ctx context.Context, requester domain.Identity, projectID string) error
}

// ProjectUpdate is the explicit whitelist of project fields a client may
// change. Nil fields are left untouched.
type ProjectUpdate struct {
	Name        *string
	Description *string
	Status      *domain.ProjectStatus
}

// InvitationService orchestrates the invitation lifecycle:
// pending -> accepted | rejected | expired, with cancel deleting the record.
type InvitationService interface {
	Invite(ctx context.Context, requester domain.Identity, projectID, email string, role domain.MemberRole, message string) (*domain.Invitation, bool, error) // invitation, emailSent
	Accept(ctx context.Context, requester domain.Identity, invitationID, token string) (*domain.Invitation, error)
	Reject(ctx context.Context, requester domain.Identity, invitationID string) (*domain.Invitation, error)
	Cancel(ctx context.Context, requester domain.Identity, invitationID string) error
	Resend(ctx context.Context, requester domain.Identity, invitationID string) (*domain.Invitation, bool, error) // invitation, emailSent
	Validate(ctx context.Context, invitationID, token string) (*domain.Invitation, error)
	ListProjectInvitations(ctx context.Context, requester domain.Identity, projectID string) ([]domain.Invitation, error)
	ListMyInvitations(ctx context.Context, requester domain.Identity) ([]domain.Invitation, error)
}

// MembershipService owns mutation of a project's membership list, whatever
// triggered it.
type MembershipService interface {
	ListMembers(ctx context.Context, requester domain.Identity, projectID string) ([]domain.Member, error)
	RemoveMember(ctx context.Context, requester domain.Identity, projectID, targetUserID string) error
	ChangeRole(ctx context.Context, requester domain.Identity, projectID, targetUserID string, role domain.MemberRole) error
	// AddMember appends a {user, role} entry, silently skipping when the
	// user is already a member. Callers gate authorization themselves;
	// the accept path reaches here after the identity-match check, where
	// the invitee is by definition not yet a member.
	AddMember(ctx context.Context, projectID, userID string, role domain.MemberRole) error
}

type TaskService interface {
	CreateTask(ctx context.Context, requester domain.Identity, projectID string, req TaskCreate) (*domain.Task, error)
	GetTask(ctx context.Context, requester domain.Identity, projectID, taskID string) (*domain.Task, error)
	ListTasks(ctx context.Context, requester domain.Identity, projectID string) ([]domain.Task, error)
	UpdateTask(ctx context.Context, requester domain.Identity, projectID, taskID string, upd TaskUpdate) (*domain.Task, error)
	DeleteTask(ctx context.Context, requester domain.Identity, projectID, taskID string) error
}

type TaskCreate struct {
	Title       string
	Description string
	AssigneeID  string
	DueDate     *string // RFC 3339
}

// TaskUpdate is the explicit whitelist of task fields a client may change.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	AssigneeID  *string
	DueDate     *string // RFC 3339
}

// EmailService delivers outbound notifications. All sends are best-effort
// from the caller's perspective: a failure surfaces as a flag, never as a
// request failure.
type EmailService interface {
	SendProjectInvitation(ctx context.Context, toEmail, projectName, inviterName, link, message string) error
	SendInvitationReminder(ctx context.Context, toEmail, projectName, link string) error
}
