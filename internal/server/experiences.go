package server

import (
	"net/http"
	"strings"

	dbpkg "github.com/akkharat/folioserv/internal/db"
)

type experienceCreateRequest struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	StartDate   *string  `json:"start_date"`
	EndDate     *string  `json:"end_date"`
	IsCurrent   bool     `json:"is_current"`
	Description *string  `json:"description"`
	Highlights  []string `json:"highlights"`
	TechStack   []string `json:"tech_stack"`
	SortOrder   int      `json:"sort_order"`
}

type experienceUpdateRequest struct {
	Title       *string  `json:"title"`
	Company     *string  `json:"company"`
	StartDate   *string  `json:"start_date"`
	EndDate     *string  `json:"end_date"`
	IsCurrent   *bool    `json:"is_current"`
	Description *string  `json:"description"`
	Highlights  []string `json:"highlights"`
	TechStack   []string `json:"tech_stack"`
	SortOrder   *int     `json:"sort_order"`
}

func (s *Server) handleListExperiences(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	experiences, err := s.queries().ListExperiences(r.Context())
	if err != nil {
		s.writeInternalAPIError(w, r, "list experiences failed", err)
		return
	}
	writeJSON(w, http.StatusOK, experiences)
}

func (s *Server) handleCreateExperience(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	var req experienceCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Company) == "" {
		writeAPIError(w, http.StatusBadRequest, "title and company are required")
		return
	}

	id, err := s.queries().InsertExperience(r.Context(), dbpkg.Experience{
		Title:       req.Title,
		Company:     req.Company,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsCurrent:   req.IsCurrent,
		Description: req.Description,
		Highlights:  req.Highlights,
		TechStack:   req.TechStack,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		s.writeInternalAPIError(w, r, "create experience failed", err)
		return
	}

	created, err := s.queries().GetExperienceByID(r.Context(), id)
	if err != nil {
		s.writeInternalAPIError(w, r, "create experience failed", err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleUpdateExperience(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req experienceUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.queries().UpdateExperience(r.Context(), id, dbpkg.ExperienceUpdate{
		Title:       req.Title,
		Company:     req.Company,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsCurrent:   req.IsCurrent,
		Description: req.Description,
		Highlights:  req.Highlights,
		TechStack:   req.TechStack,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		s.writeInternalAPIError(w, r, "update experience failed", err)
		return
	}
	if !updated {
		writeAPIError(w, http.StatusNotFound, "not found")
		return
	}

	row, err := s.queries().GetExperienceByID(r.Context(), id)
	if err != nil {
		s.writeInternalAPIError(w, r, "update experience failed", err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (s *Server) handleDeleteExperience(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.queries().DeleteExperience(r.Context(), id); err != nil {
		s.writeInternalAPIError(w, r, "delete experience failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Deleted successfully"})
}
