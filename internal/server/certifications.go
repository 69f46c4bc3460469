package server

import (
	"net/http"
	"strings"

	dbpkg "github.com/akkharat/folioserv/internal/db"
)

type certificationCreateRequest struct {
	Name      string  `json:"name"`
	Issuer    *string `json:"issuer"`
	Year      *string `json:"year"`
	CertURL   *string `json:"cert_url"`
	SortOrder int     `json:"sort_order"`
}

type certificationUpdateRequest struct {
	Name      *string `json:"name"`
	Issuer    *string `json:"issuer"`
	Year      *string `json:"year"`
	CertURL   *string `json:"cert_url"`
	SortOrder *int    `json:"sort_order"`
}

func (s *Server) handleListCertifications(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	certs, err := s.queries().ListCertifications(r.Context())
	if err != nil {
		s.writeInternalAPIError(w, r, "list certifications failed", err)
		return
	}
	writeJSON(w, http.StatusOK, certs)
}

func (s *Server) handleCreateCertification(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	var req certificationCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeAPIError(w, http.StatusBadRequest, "name is required")
		return
	}

	id, err := s.queries().InsertCertification(r.Context(), dbpkg.Certification{
		Name:      req.Name,
		Issuer:    req.Issuer,
		Year:      req.Year,
		CertURL:   req.CertURL,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		s.writeInternalAPIError(w, r, "create certification failed", err)
		return
	}

	created, err := s.queries().GetCertificationByID(r.Context(), id)
	if err != nil {
		s.writeInternalAPIError(w, r, "create certification failed", err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleUpdateCertification(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req certificationUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.queries().UpdateCertification(r.Context(), id, dbpkg.CertificationUpdate{
		Name:      req.Name,
		Issuer:    req.Issuer,
		Year:      req.Year,
		CertURL:   req.CertURL,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		s.writeInternalAPIError(w, r, "update certification failed", err)
		return
	}
	if !updated {
		writeAPIError(w, http.StatusNotFound, "not found")
		return
	}

	row, err := s.queries().GetCertificationByID(r.Context(), id)
	if err != nil {
		s.writeInternalAPIError(w, r, "update certification failed", err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (s *Server) handleDeleteCertification(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.queries().DeleteCertification(r.Context(), id); err != nil {
		s.writeInternalAPIError(w, r, "delete certification failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Deleted successfully"})
}
