package http

import (
	"net/http"

	"projecthub-backend/internal/security"

	"github.com/gorilla/mux"
)

// NewRouter wires all endpoints. Everything under /api/v1 requires a Bearer
// access token except signup, login, refresh and the invitation link check.
func NewRouter(
	tokens security.TokenManager,
	authHandler *AuthHandler,
	projectHandler *ProjectHandler,
	invitationHandler *InvitationHandler,
	taskHandler *TaskHandler,
) *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()

	// Public endpoints
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/invitations/{invitationId}/validate/{token}", invitationHandler.Validate).Methods(http.MethodGet)

	// Authenticated endpoints
	authed := api.NewRoute().Subrouter()
	authed.Use(Authenticate(tokens))

	authed.HandleFunc("/projects", projectHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/projects", projectHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/project/{projectId}", projectHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/project/{projectId}", projectHandler.Update).Methods(http.MethodPut)
	authed.HandleFunc("/project/{projectId}", projectHandler.Delete).Methods(http.MethodDelete)

	// Membership
	authed.HandleFunc("/project/{projectId}/members", projectHandler.ListMembers).Methods(http.MethodGet)
	authed.HandleFunc("/project/{projectId}/members/{userId}/remove", projectHandler.RemoveMember).Methods(http.MethodPost)
	authed.HandleFunc("/project/{projectId}/members/{userId}/role", projectHandler.ChangeRole).Methods(http.MethodPut)

	// Invitations
	authed.HandleFunc("/project/{projectId}/invite", invitationHandler.Invite).Methods(http.MethodPost)
	authed.HandleFunc("/project/{projectId}/invitations", invitationHandler.ListProjectInvitations).Methods(http.MethodGet)
	authed.HandleFunc("/my-invitations", invitationHandler.ListMyInvitations).Methods(http.MethodGet)
	authed.HandleFunc("/invitations/{invitationId}/accept", invitationHandler.Accept).Methods(http.MethodPost)
	authed.HandleFunc("/invitations/{invitationId}/reject", invitationHandler.Reject).Methods(http.MethodPost)
	authed.HandleFunc("/invitations/{invitationId}/cancel", invitationHandler.Cancel).Methods(http.MethodPost)
	authed.HandleFunc("/invitations/{invitationId}/resend", invitationHandler.Resend).Methods(http.MethodPost)

	// Tasks
	authed.HandleFunc("/project/{projectId}/tasks", taskHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/project/{projectId}/tasks", taskHandler.List).Methods(http.MethodGet)
	authed.HandleFunc("/project/{projectId}/tasks/{taskId}", taskHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/project/{projectId}/tasks/{taskId}", taskHandler.Update).Methods(http.MethodPut)
	authed.HandleFunc("/project/{projectId}/tasks/{taskId}", taskHandler.Delete).Methods(http.MethodDelete)

	return router
}
