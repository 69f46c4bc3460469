package server

import (
	"net/http"
	"strings"

	dbpkg "github.com/akkharat/folioserv/internal/db"
)

type skillCreateRequest struct {
	Name      string  `json:"name"`
	Percent   int     `json:"percent"`
	Category  *string `json:"category"`
	SortOrder int     `json:"sort_order"`
}

type skillUpdateRequest struct {
	Name      *string `json:"name"`
	Percent   *int    `json:"percent"`
	Category  *string `json:"category"`
	SortOrder *int    `json:"sort_order"`
}

func (s *Server) handleListSkills(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	skills, err := s.queries().ListSkills(r.Context())
	if err != nil {
		s.writeInternalAPIError(w, r, "list skills failed", err)
		return
	}
	writeJSON(w, http.StatusOK, skills)
}

func (s *Server) handleCreateSkill(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	var req skillCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeAPIError(w, http.StatusBadRequest, "name is required")
		return
	}

	id, err := s.queries().InsertSkill(r.Context(), dbpkg.Skill{
		Name:      req.Name,
		Percent:   req.Percent,
		Category:  req.Category,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		s.writeInternalAPIError(w, r, "create skill failed", err)
		return
	}

	created, err := s.queries().GetSkillByID(r.Context(), id)
	if err != nil {
		s.writeInternalAPIError(w, r, "create skill failed", err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleUpdateSkill(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req skillUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.queries().UpdateSkill(r.Context(), id, dbpkg.SkillUpdate{
		Name:      req.Name,
		Percent:   req.Percent,
		Category:  req.Category,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		s.writeInternalAPIError(w, r, "update skill failed", err)
		return
	}
	if !updated {
		writeAPIError(w, http.StatusNotFound, "not found")
		return
	}

	row, err := s.queries().GetSkillByID(r.Context(), id)
	if err != nil {
		s.writeInternalAPIError(w, r, "update skill failed", err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (s *Server) handleDeleteSkill(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.queries().DeleteSkill(r.Context(), id); err != nil {
		s.writeInternalAPIError(w, r, "delete skill failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Deleted successfully"})
}
