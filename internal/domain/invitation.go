package domain

import "time"

type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusRejected InvitationStatus = "rejected"
	InvitationStatusExpired  InvitationStatus = "expired"
)

// InvitationTTL is the validity window granted at creation and again at
// every resend.
const InvitationTTL = 7 * 24 * time.Hour

// Invitation is a time-limited grant allowing a specific email (or the user
// account holding it) to join a project with a given role. Cancellation
// deletes the record outright, so there is no cancelled status value.
type Invitation struct {
	ID            string           `json:"id"`
	ProjectID     string           `json:"project_id"`
	InviterID     string           `json:"inviter_id"`
	InvitedEmail  string           `json:"invited_email"`
	InvitedUserID string           `json:"invited_user_id,omitempty"`
	Role          MemberRole       `json:"role"`
	Message       string           `json:"message,omitempty"`
	Token         string           `json:"token"`
	Status        InvitationStatus `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
	ExpiresAt     time.Time        `json:"expires_at"`
	RespondedAt   *time.Time       `json:"responded_at,omitempty"`
}

// IsExpired reports whether the invitation's validity window has passed at
// the given instant. Expiry is only ever evaluated at use; nothing sweeps
// stale rows in the background.
func (i *Invitation) IsExpired(now time.Time) bool {
	return i.ExpiresAt.Before(now)
}

// IsFor reports whether the invitation belongs to the given identity: a
// match on the bound user id when one is set, or on the normalized email.
func (i *Invitation) IsFor(identity Identity) bool {
	if i.InvitedUserID != "" && i.InvitedUserID == identity.ID {
		return true
	}
	return NormalizeEmail(identity.Email) == i.InvitedEmail
}
