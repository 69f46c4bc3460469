package server

import (
	"net/http"
	"strings"

	dbpkg "github.com/akkharat/folioserv/internal/db"
)

type techStackCreateRequest struct {
	Name      string  `json:"name"`
	Icon      *string `json:"icon"`
	SortOrder int     `json:"sort_order"`
}

type techStackUpdateRequest struct {
	Name      *string `json:"name"`
	Icon      *string `json:"icon"`
	SortOrder *int    `json:"sort_order"`
}

func (s *Server) handleListTechStack(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	entries, err := s.queries().ListTechStack(r.Context())
	if err != nil {
		s.writeInternalAPIError(w, r, "list tech stack failed", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleCreateTechStack(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	var req techStackCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeAPIError(w, http.StatusBadRequest, "name is required")
		return
	}

	id, err := s.queries().InsertTechStack(r.Context(), dbpkg.TechStackEntry{
		Name:      req.Name,
		Icon:      req.Icon,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		s.writeInternalAPIError(w, r, "create tech stack entry failed", err)
		return
	}

	created, err := s.queries().GetTechStackByID(r.Context(), id)
	if err != nil {
		s.writeInternalAPIError(w, r, "create tech stack entry failed", err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleUpdateTechStack(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req techStackUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.queries().UpdateTechStack(r.Context(), id, dbpkg.TechStackUpdate{
		Name:      req.Name,
		Icon:      req.Icon,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		s.writeInternalAPIError(w, r, "update tech stack entry failed", err)
		return
	}
	if !updated {
		writeAPIError(w, http.StatusNotFound, "not found")
		return
	}

	row, err := s.queries().GetTechStackByID(r.Context(), id)
	if err != nil {
		s.writeInternalAPIError(w, r, "update tech stack entry failed", err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (s *Server) handleDeleteTechStack(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.queries().DeleteTechStack(r.Context(), id); err != nil {
		s.writeInternalAPIError(w, r, "delete tech stack entry failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Deleted successfully"})
}
