package http

import (
	"net/http"

	"projecthub-backend/internal/domain"
	"projecthub-backend/internal/service"

	"github.com/gorilla/mux"
)

type ProjectHandler struct {
	projectSvc    service.ProjectService
	membershipSvc service.MembershipService
}

func NewProjectHandler(projectSvc service.ProjectService, membershipSvc service.MembershipService) *ProjectHandler {
	return &ProjectHandler{projectSvc: projectSvc, membershipSvc: membershipSvc}
}

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type updateProjectRequest struct {
	Name        *string               `json:"name"`
	Description *string               `json:"description"`
	Status      *domain.ProjectStatus `json:"status"`
}

type changeRoleRequest struct {
	Role domain.MemberRole `json:"role"`
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req createProjectRequest
	if !decodeBody(w, r, &req) {
		return
	}

	project, err := h.projectSvc.CreateProject(r.Context(), identity, req.Name, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"project": project})
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	projects, err := h.projectSvc.ListMyProjects(r.Context(), identity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": projects})
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	project, err := h.projectSvc.GetProject(r.Context(), identity, mux.Vars(r)["projectId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"project": project})
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req updateProjectRequest
	if !decodeBody(w, r, &req) {
		return
	}

	project, err := h.projectSvc.UpdateProject(r.Context(), identity, mux.Vars(r)["projectId"], service.ProjectUpdate{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"project": project})
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	if err := h.projectSvc.DeleteProject(r.Context(), identity, mux.Vars(r)["projectId"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "project deleted"})
}

func (h *ProjectHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	members, err := h.membershipSvc.ListMembers(r.Context(), identity, mux.Vars(r)["projectId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"members": members})
}

func (h *ProjectHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	if err := h.membershipSvc.RemoveMember(r.Context(), identity, vars["projectId"], vars["userId"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "member removed"})
}

func (h *ProjectHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)

	var req changeRoleRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.membershipSvc.ChangeRole(r.Context(), identity, vars["projectId"], vars["userId"], req.Role); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "role updated"})
}
