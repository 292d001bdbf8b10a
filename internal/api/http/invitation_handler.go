package http

import (
	"net/http"

	"projecthub-backend/internal/domain"
	"projecthub-backend/internal/service"

	"github.com/gorilla/mux"
)

type InvitationHandler struct {
	inviteSvc service.InvitationService
}

func NewInvitationHandler(inviteSvc service.InvitationService) *InvitationHandler {
	return &InvitationHandler{inviteSvc: inviteSvc}
}

type inviteRequest struct {
	Email   string            `json:"email"`
	Role    domain.MemberRole `json:"role"`
	Message string            `json:"message,omitempty"`
}

type acceptRequest struct {
	Token string `json:"token,omitempty"`
}

type invitationResponse struct {
	Invitation *domain.Invitation `json:"invitation"`
	EmailSent  bool               `json:"email_sent"`
}

func (h *InvitationHandler) Invite(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	projectID := mux.Vars(r)["projectId"]

	var req inviteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	inv, emailSent, err := h.inviteSvc.Invite(r.Context(), identity, projectID, req.Email, req.Role, req.Message)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, invitationResponse{Invitation: inv, EmailSent: emailSent})
}

func (h *InvitationHandler) ListProjectInvitations(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	projectID := mux.Vars(r)["projectId"]

	invs, err := h.inviteSvc.ListProjectInvitations(r.Context(), identity, projectID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"invitations": invs})
}

func (h *InvitationHandler) ListMyInvitations(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	invs, err := h.inviteSvc.ListMyInvitations(r.Context(), identity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"invitations": invs})
}

func (h *InvitationHandler) Accept(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	invitationID := mux.Vars(r)["invitationId"]

	// The token from the emailed link is optional in the body; when
	// present it must match the invitation's current token.
	var req acceptRequest
	if r.Body != nil && r.ContentLength != 0 {
		if !decodeBody(w, r, &req) {
			return
		}
	}

	inv, err := h.inviteSvc.Accept(r.Context(), identity, invitationID, req.Token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"invitation": inv})
}

func (h *InvitationHandler) Reject(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	invitationID := mux.Vars(r)["invitationId"]

	inv, err := h.inviteSvc.Reject(r.Context(), identity, invitationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"invitation": inv})
}

func (h *InvitationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	invitationID := mux.Vars(r)["invitationId"]

	if err := h.inviteSvc.Cancel(r.Context(), identity, invitationID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "invitation cancelled"})
}

func (h *InvitationHandler) Resend(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	invitationID := mux.Vars(r)["invitationId"]

	inv, emailSent, err := h.inviteSvc.Resend(r.Context(), identity, invitationID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invitationResponse{Invitation: inv, EmailSent: emailSent})
}

// Validate is the unauthenticated link check used by the frontend before it
// renders the accept screen.
func (h *InvitationHandler) Validate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	inv, err := h.inviteSvc.Validate(r.Context(), vars["invitationId"], vars["token"])
	if err != nil {
		writeError(w, err)
		return
	}
	// The invitee is not authenticated yet; expose only what the accept
	// screen needs.
	writeJSON(w, http.StatusOK, map[string]any{
		"invitation_id": inv.ID,
		"project_id":    inv.ProjectID,
		"invited_email": inv.InvitedEmail,
		"role":          inv.Role,
		"expires_at":    inv.ExpiresAt,
	})
}
