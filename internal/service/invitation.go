package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"projecthub-backend/internal/domain"
	"projecthub-backend/internal/logger"
	"projecthub-backend/internal/repository"
	"projecthub-backend/internal/security"
)

type invitationService struct {
	inviteRepo      repository.InvitationRepository
	projectRepo     repository.ProjectRepository
	userRepo        repository.UserRepository
	membershipSvc   MembershipService
	emailSvc        EmailService
	tokenGen        security.InviteTokenGenerator
	idGen           security.IDGenerator
	frontendBaseURL string
}

func NewInvitationService(
	inviteRepo repository.InvitationRepository,
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	membershipSvc MembershipService,
	emailSvc EmailService,
	tokenGen security.InviteTokenGenerator,
	idGen security.IDGenerator,
	frontendBaseURL string,
) InvitationService {
	return &invitationService{
		inviteRepo:      inviteRepo,
		projectRepo:     projectRepo,
		userRepo:        userRepo,
		membershipSvc:   membershipSvc,
		emailSvc:        emailSvc,
		tokenGen:        tokenGen,
		idGen:           idGen,
		frontendBaseURL: frontendBaseURL,
	}
}

func (s *invitationService) Invite(ctx context.Context, requester domain.Identity, projectID, email string, role domain.MemberRole, message string) (*domain.Invitation, bool, error) {
	if email == "" {
		return nil, false, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if role == "" {
		return nil, false, fmt.Errorf("%w: role is required", ErrInvalidInput)
	}
	if !domain.ValidMemberRole(role) {
		return nil, false, ErrInvalidRole
	}

	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, false, mapRepoErr(err, "project")
	}
	if err := s.requireCanManage(ctx, project, requester); err != nil {
		return nil, false, err
	}

	normalized := domain.NormalizeEmail(email)

	// Resolve the invitee up front so acceptance can match on the stable
	// user id even before that account ever logs in with this exact
	// email casing.
	var invitedUserID string
	invitee, err := s.userRepo.GetByEmail(ctx, normalized)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}
	if invitee != nil {
		if project.IsOwner(invitee.ID) {
			return nil, false, ErrAlreadyMember
		}
		if _, err := s.projectRepo.GetMember(ctx, projectID, invitee.ID); err == nil {
			return nil, false, ErrAlreadyMember
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, false, err
		}
		invitedUserID = invitee.ID
	}

	if _, err := s.inviteRepo.GetPendingByProjectEmail(ctx, projectID, normalized); err == nil {
		return nil, false, ErrAlreadyInvited
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}

	token, err := s.tokenGen.Generate()
	if err != nil {
		return nil, false, err
	}

	now := time.Now()
	inv := &domain.Invitation{
		ID:            s.idGen.NewID(),
		ProjectID:     projectID,
		InviterID:     requester.ID,
		InvitedEmail:  normalized,
		InvitedUserID: invitedUserID,
		Role:          role,
		Message:       message,
		Token:         token,
		Status:        domain.InvitationStatusPending,
		CreatedAt:     now,
		ExpiresAt:     now.Add(domain.InvitationTTL),
	}

	if err := s.inviteRepo.Create(ctx, inv); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, false, ErrAlreadyInvited
		}
		return nil, false, err
	}

	emailSent := s.sendInviteEmail(ctx, inv, project.Name, requester.Name)
	return inv, emailSent, nil
}

func (s *invitationService) Accept(ctx context.Context, requester domain.Identity, invitationID, token string) (*domain.Invitation, error) {
	inv, err := s.inviteRepo.GetByID(ctx, invitationID)
	if err != nil {
		return nil, mapRepoErr(err, "invitation")
	}

	if inv.Status != domain.InvitationStatusPending {
		return nil, ErrInvitationResolved
	}

	// A stale link must not validate: after a resend only the current
	// token proves possession of the invitation.
	if token != "" && token != inv.Token {
		return nil, fmt.Errorf("%w: invitation link is no longer valid", ErrForbidden)
	}

	now := time.Now()
	if inv.IsExpired(now) {
		// Lazy expiry: flip the stored status at the moment of use.
		if _, err := s.inviteRepo.MarkResolved(ctx, inv.ID, domain.InvitationStatusExpired, "", now); err != nil {
			return nil, err
		}
		return nil, ErrInvitationExpired
	}

	if !inv.IsFor(requester) {
		return nil, fmt.Errorf("%w: this invitation is not for you", ErrForbidden)
	}

	// Membership first, status flip second. The add is idempotent, so a
	// crash between the two writes leaves a pending invitation whose
	// member already exists; retrying the accept converges.
	if err := s.membershipSvc.AddMember(ctx, inv.ProjectID, requester.ID, inv.Role); err != nil {
		return nil, err
	}

	ok, err := s.inviteRepo.MarkResolved(ctx, inv.ID, domain.InvitationStatusAccepted, requester.ID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		// A concurrent accept or cancel won the compare-and-set.
		return nil, ErrInvitationResolved
	}

	inv.Status = domain.InvitationStatusAccepted
	inv.InvitedUserID = requester.ID
	inv.RespondedAt = &now
	return inv, nil
}

// Reject declines an invitation. Unlike Accept it does not gate on the
// pending status: a resolved invitation can be rejected again, matching the
// long-standing behavior clients depend on.
func (s *invitationService) Reject(ctx context.Context, requester domain.Identity, invitationID string) (*domain.Invitation, error) {
	inv, err := s.inviteRepo.GetByID(ctx, invitationID)
	if err != nil {
		return nil, mapRepoErr(err, "invitation")
	}

	if !inv.IsFor(requester) {
		return nil, fmt.Errorf("%w: this invitation is not for you", ErrForbidden)
	}

	now := time.Now()
	inv.Status = domain.InvitationStatusRejected
	inv.RespondedAt = &now
	if err := s.inviteRepo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *invitationService) Cancel(ctx context.Context, requester domain.Identity, invitationID string) error {
	inv, err := s.inviteRepo.GetByID(ctx, invitationID)
	if err != nil {
		return mapRepoErr(err, "invitation")
	}

	project, err := s.projectRepo.GetByID(ctx, inv.ProjectID)
	if err != nil {
		return mapRepoErr(err, "project")
	}
	if err := s.requireCanManage(ctx, project, requester); err != nil {
		return err
	}

	// Cancellation deletes the record outright; no terminal row remains.
	return s.inviteRepo.Delete(ctx, inv.ID)
}

func (s *invitationService) Resend(ctx context.Context, requester domain.Identity, invitationID string) (*domain.Invitation, bool, error) {
	inv, err := s.inviteRepo.GetByID(ctx, invitationID)
	if err != nil {
		return nil, false, mapRepoErr(err, "invitation")
	}

	project, err := s.projectRepo.GetByID(ctx, inv.ProjectID)
	if err != nil {
		return nil, false, mapRepoErr(err, "project")
	}
	if err := s.requireCanManage(ctx, project, requester); err != nil {
		return nil, false, err
	}

	if inv.Status != domain.InvitationStatusPending {
		return nil, false, ErrNotPending
	}

	token, err := s.tokenGen.Generate()
	if err != nil {
		return nil, false, err
	}

	expiresAt := time.Now().Add(domain.InvitationTTL)
	ok, err := s.inviteRepo.RotateToken(ctx, inv.ID, token, expiresAt)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, ErrNotPending
	}

	// The previous token is now permanently invalid.
	inv.Token = token
	inv.ExpiresAt = expiresAt

	emailSent := s.sendInviteEmail(ctx, inv, project.Name, requester.Name)
	return inv, emailSent, nil
}

// Validate checks an invitation link before the frontend renders the accept
// screen. It is the one unauthenticated read on invitations, so it requires
// the token.
func (s *invitationService) Validate(ctx context.Context, invitationID, token string) (*domain.Invitation, error) {
	inv, err := s.inviteRepo.GetByID(ctx, invitationID)
	if err != nil {
		return nil, mapRepoErr(err, "invitation")
	}
	if token == "" || token != inv.Token {
		return nil, fmt.Errorf("%w: invitation link is no longer valid", ErrForbidden)
	}
	if inv.Status != domain.InvitationStatusPending {
		return nil, ErrInvitationResolved
	}
	if inv.IsExpired(time.Now()) {
		return nil, ErrInvitationExpired
	}
	return inv, nil
}

func (s *invitationService) ListProjectInvitations(ctx context.Context, requester domain.Identity, projectID string) ([]domain.Invitation, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, mapRepoErr(err, "project")
	}
	if err := s.requireCanManage(ctx, project, requester); err != nil {
		return nil, err
	}
	return s.inviteRepo.ListByProject(ctx, projectID)
}

func (s *invitationService) ListMyInvitations(ctx context.Context, requester domain.Identity) ([]domain.Invitation, error) {
	return s.inviteRepo.ListForInvitee(ctx, requester.ID, domain.NormalizeEmail(requester.Email))
}

// requireCanManage gates the operations reserved for the owner or an admin
// member: invite, cancel, resend and the project's invitation listing.
func (s *invitationService) requireCanManage(ctx context.Context, project *domain.Project, requester domain.Identity) error {
	membership, err := s.projectRepo.GetMember(ctx, project.ID, requester.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if !project.CanManageMembers(requester.ID, membership) {
		return fmt.Errorf("%w: only the project owner or an admin can manage invitations", ErrForbidden)
	}
	return nil
}

// sendInviteEmail delivers the invitation link. Delivery failures are logged
// and reported as a flag; they never fail or roll back the operation.
func (s *invitationService) sendInviteEmail(ctx context.Context, inv *domain.Invitation, projectName, inviterName string) bool {
	link := fmt.Sprintf("%s/invitations/%s/%s", s.frontendBaseURL, inv.ID, inv.Token)
	if err := s.emailSvc.SendProjectInvitation(ctx, inv.InvitedEmail, projectName, inviterName, link, inv.Message); err != nil {
		logger.Warn("Failed to send invitation email", "invitation_id", inv.ID, "email", inv.InvitedEmail, "error", err)
		return false
	}
	return true
}

// mapRepoErr converts a repository lookup failure into the service taxonomy.
func mapRepoErr(err error, entity string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, entity)
	}
	return err
}
