package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"projecthub-backend/internal/domain"
	"projecthub-backend/internal/repository"
)

type invitationRepository struct {
	db *sql.DB
}

func NewInvitationRepository(db *sql.DB) repository.InvitationRepository {
	return &invitationRepository{db: db}
}

const invitationColumns = `id, project_id, inviter_id, invited_email, invited_user_id, role, message, token, status, created_at, expires_at, responded_at`

// Create inserts a new pending invitation. A partial unique index on
// (project_id, invited_email) WHERE status = 'pending' backs the
// one-pending-per-pair invariant; a violation surfaces as ErrDuplicate.
func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	query := `INSERT INTO invitations (id, project_id, inviter_id, invited_email, invited_user_id, role, message, token, status, created_at, expires_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.ExecContext(ctx, query,
		inv.ID, inv.ProjectID, inv.InviterID, inv.InvitedEmail, nullString(inv.InvitedUserID),
		inv.Role, inv.Message, inv.Token, inv.Status, inv.CreatedAt, inv.ExpiresAt)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}

func (r *invitationRepository) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE id = $1`
	return scanInvitation(r.db.QueryRowContext(ctx, query, id))
}

func (r *invitationRepository) GetPendingByProjectEmail(ctx context.Context, projectID, email string) (*domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations
	          WHERE project_id = $1 AND invited_email = $2 AND status = 'pending'`
	return scanInvitation(r.db.QueryRowContext(ctx, query, projectID, email))
}

func (r *invitationRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE project_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, projectID)
}

func (r *invitationRepository) ListForInvitee(ctx context.Context, userID, email string) ([]domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations
	          WHERE (invited_user_id = $1 OR invited_email = $2)
	          AND status IN ('pending', 'accepted', 'rejected')
	          ORDER BY created_at DESC`
	return r.list(ctx, query, userID, email)
}

func (r *invitationRepository) ListPendingExpiringBefore(ctx context.Context, cutoff time.Time) ([]domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations
	          WHERE status = 'pending' AND expires_at <= $1 AND expires_at > now()
	          ORDER BY expires_at`
	return r.list(ctx, query, cutoff)
}

func (r *invitationRepository) Update(ctx context.Context, inv *domain.Invitation) error {
	query := `UPDATE invitations SET invited_user_id = $1, token = $2, status = $3, expires_at = $4, responded_at = $5 WHERE id = $6`
	_, err := r.db.ExecContext(ctx, query,
		nullString(inv.InvitedUserID), inv.Token, inv.Status, inv.ExpiresAt, inv.RespondedAt, inv.ID)
	return err
}

// MarkResolved is the compare-and-set used to leave the pending state. Two
// concurrent accepts both read status=pending, but only one UPDATE matches
// the WHERE clause; the loser sees zero rows affected.
func (r *invitationRepository) MarkResolved(ctx context.Context, id string, status domain.InvitationStatus, invitedUserID string, respondedAt time.Time) (bool, error) {
	query := `UPDATE invitations SET status = $1, invited_user_id = COALESCE($2, invited_user_id), responded_at = $3
	          WHERE id = $4 AND status = 'pending'`
	res, err := r.db.ExecContext(ctx, query, status, nullString(invitedUserID), respondedAt, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *invitationRepository) RotateToken(ctx context.Context, id, token string, expiresAt time.Time) (bool, error) {
	query := `UPDATE invitations SET token = $1, expires_at = $2 WHERE id = $3 AND status = 'pending'`
	res, err := r.db.ExecContext(ctx, query, token, expiresAt, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *invitationRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM invitations WHERE id = $1`, id)
	return err
}

func (r *invitationRepository) list(ctx context.Context, query string, args ...any) ([]domain.Invitation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invs []domain.Invitation
	for rows.Next() {
		inv, err := scanInvitationRow(rows)
		if err != nil {
			return nil, err
		}
		invs = append(invs, *inv)
	}
	return invs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvitation(row *sql.Row) (*domain.Invitation, error) {
	inv, err := scanInvitationRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return inv, err
}

func scanInvitationRow(row rowScanner) (*domain.Invitation, error) {
	inv := &domain.Invitation{}
	var invitedUserID sql.NullString
	var respondedAt sql.NullTime
	err := row.Scan(
		&inv.ID, &inv.ProjectID, &inv.InviterID, &inv.InvitedEmail, &invitedUserID,
		&inv.Role, &inv.Message, &inv.Token, &inv.Status, &inv.CreatedAt, &inv.ExpiresAt, &respondedAt)
	if err != nil {
		return nil, err
	}
	if invitedUserID.Valid {
		inv.InvitedUserID = invitedUserID.String
	}
	if respondedAt.Valid {
		t := respondedAt.Time
		inv.RespondedAt = &t
	}
	return inv, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
