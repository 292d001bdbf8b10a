package jobs

import (
	"context"
	"fmt"
	"time"

	"projecthub-backend/internal/logger"
)

// SendInvitationReminders emails invitees whose pending invitation expires
// within the next 24 hours. It only sends mail; invitation status is never
// touched here, expiry stays a lazy check on the accept path.
func (jr *JobRunner) SendInvitationReminders() {
	jr.runWithRecovery("SendInvitationReminders", func() {
		ctx := context.Background()
		cutoff := time.Now().Add(24 * time.Hour)

		invs, err := jr.inviteRepo.ListPendingExpiringBefore(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list expiring invitations", "error", err)
			return
		}

		sent := 0
		for _, inv := range invs {
			project, err := jr.projectRepo.GetByID(ctx, inv.ProjectID)
			if err != nil {
				logger.Error("Failed to load project for reminder", "invitation_id", inv.ID, "error", err)
				continue
			}

			link := fmt.Sprintf("%s/invitations/%s/%s", jr.cfg.Frontend.BaseURL, inv.ID, inv.Token)
			if err := jr.emailSvc.SendInvitationReminder(ctx, inv.InvitedEmail, project.Name, link); err != nil {
				logger.Warn("Failed to send invitation reminder", "invitation_id", inv.ID, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Invitation reminders sent", "count", sent, "expiring", len(invs))
	})
}
