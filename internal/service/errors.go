package service

import "errors"

// Error taxonomy. Handlers map these to HTTP statuses with errors.Is; any
// error not in this family is treated as internal and its message withheld
// from the client.
var (
	// ErrInvalidInput marks missing or malformed request fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound marks an absent project, invitation, user or task.
	ErrNotFound = errors.New("not found")
	// ErrForbidden marks an authorization or identity-mismatch failure.
	ErrForbidden = errors.New("forbidden")
	// ErrAlreadyMember: the invited email already belongs to a member.
	ErrAlreadyMember = errors.New("user is already a project member")
	// ErrAlreadyInvited: a pending invitation for that email exists.
	ErrAlreadyInvited = errors.New("an invitation for this email is already pending")
	// ErrInvitationResolved: the invitation left the pending state.
	ErrInvitationResolved = errors.New("invitation is no longer valid")
	// ErrInvitationExpired: the validity window has passed. Detecting it
	// also flips the stored status to expired.
	ErrInvitationExpired = errors.New("invitation has expired")
	// ErrNotPending: only pending invitations can be resent.
	ErrNotPending = errors.New("can only resend pending invitations")
	// ErrOwnerImmutable: the owner cannot be removed or reassigned
	// through the membership operations.
	ErrOwnerImmutable = errors.New("project owner cannot be removed or have their role changed")
	// ErrInvalidRole: the role is not one of admin, editor, viewer.
	ErrInvalidRole = errors.New("invalid member role")
	// ErrInvalidCredentials: login failure.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
