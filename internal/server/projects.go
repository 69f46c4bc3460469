package server

import (
	"net/http"
	"strings"

	dbpkg "github.com/akkharat/folioserv/internal/db"
)

type projectCreateRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	IsFeatured  bool    `json:"is_featured"`
	DemoURL     *string `json:"demo_url"`
	GithubURL   *string `json:"github_url"`
	AdminNotes  *string `json:"admin_notes"`
	SortOrder   int     `json:"sort_order"`
}

type projectUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	IsFeatured  *bool   `json:"is_featured"`
	SortOrder   *int    `json:"sort_order"`
	DemoURL     *string `json:"demo_url"`
	GithubURL   *string `json:"github_url"`
	AdminNotes  *string `json:"admin_notes"`
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	projects, err := s.queries().ListProjectsWithImages(r.Context())
	if err != nil {
		s.writeInternalAPIError(w, r, "list projects failed", err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	var req projectCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeAPIError(w, http.StatusBadRequest, "name is required")
		return
	}

	id, err := s.queries().InsertProject(r.Context(), dbpkg.Project{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		IsFeatured:  req.IsFeatured,
		DemoURL:     req.DemoURL,
		GithubURL:   req.GithubURL,
		AdminNotes:  req.AdminNotes,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		s.writeInternalAPIError(w, r, "create project failed", err)
		return
	}

	created, err := s.queries().GetProjectByID(r.Context(), id)
	if err != nil {
		s.writeInternalAPIError(w, r, "create project failed", err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req projectUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.queries().UpdateProject(r.Context(), id, dbpkg.ProjectUpdate{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		IsFeatured:  req.IsFeatured,
		SortOrder:   req.SortOrder,
		DemoURL:     req.DemoURL,
		GithubURL:   req.GithubURL,
		AdminNotes:  req.AdminNotes,
	})
	if err != nil {
		s.writeInternalAPIError(w, r, "update project failed", err)
		return
	}
	if !updated {
		writeAPIError(w, http.StatusNotFound, "not found")
		return
	}

	row, err := s.queries().GetProjectByID(r.Context(), id)
	if err != nil {
		s.writeInternalAPIError(w, r, "update project failed", err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

// Project deletion cascades to project_images at the schema level; the
// stored blobs stay behind (only explicit image deletes reclaim them).
func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.queries().DeleteProject(r.Context(), id); err != nil {
		s.writeInternalAPIError(w, r, "delete project failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Deleted successfully"})
}
