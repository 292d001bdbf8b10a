package domain

import "time"

type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "ACTIVE"
	ProjectStatusArchived  ProjectStatus = "ARCHIVED"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
)

type MemberRole string

const (
	MemberRoleAdmin  MemberRole = "admin"
	MemberRoleEditor MemberRole = "editor"
	MemberRoleViewer MemberRole = "viewer"
)

// ValidMemberRole reports whether r is one of the assignable membership roles.
func ValidMemberRole(r MemberRole) bool {
	switch r {
	case MemberRoleAdmin, MemberRoleEditor, MemberRoleViewer:
		return true
	}
	return false
}

type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	OwnerID     string        `json:"owner_id"`
	Status      ProjectStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Member is a {user, role} entry on a project's membership list. The owner
// is never recorded here; ownership is a column on the project itself.
type Member struct {
	ProjectID string     `json:"project_id"`
	UserID    string     `json:"user_id"`
	Role      MemberRole `json:"role"`
	JoinedAt  time.Time  `json:"joined_at"`
}

// IsOwner reports whether userID owns the project.
func (p *Project) IsOwner(userID string) bool {
	return p.OwnerID == userID
}

// CanManageMembers reports whether the given user may mutate the project's
// membership list or its invitations. membership is the user's entry in the
// member list, or nil if they have none; the owner needs no entry.
func (p *Project) CanManageMembers(userID string, membership *Member) bool {
	if p.IsOwner(userID) {
		return true
	}
	return membership != nil && membership.Role == MemberRoleAdmin
}
