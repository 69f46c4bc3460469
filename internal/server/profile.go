package server

import (
	"errors"
	"net/http"

	"github.com/akkharat/folioserv/internal/activity"
	dbpkg "github.com/akkharat/folioserv/internal/db"
)

type profileUpdateRequest struct {
	Name        *string `json:"name"`
	NameTH      *string `json:"name_th"`
	Role        *string `json:"role"`
	Location    *string `json:"location"`
	Experience  *string `json:"experience"`
	Company     *string `json:"company"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Bio         *string `json:"bio"`
	GithubURL   *string `json:"github_url"`
	LinkedinURL *string `json:"linkedin_url"`
	ResumeURL   *string `json:"resume_url"`
	AvatarURL   *string `json:"avatar_url"`
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	profile, err := s.queries().GetProfile(r.Context())
	if errors.Is(err, dbpkg.ErrNotFound) {
		writeJSON(w, http.StatusOK, map[string]any{})
		return
	}
	if err != nil {
		s.writeInternalAPIError(w, r, "read profile failed", err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	var req profileUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := s.queries().UpdateProfile(r.Context(), dbpkg.ProfileUpdate{
		Name:        req.Name,
		NameTH:      req.NameTH,
		Role:        req.Role,
		Location:    req.Location,
		Experience:  req.Experience,
		Company:     req.Company,
		Email:       req.Email,
		Phone:       req.Phone,
		Bio:         req.Bio,
		GithubURL:   req.GithubURL,
		LinkedinURL: req.LinkedinURL,
		ResumeURL:   req.ResumeURL,
		AvatarURL:   req.AvatarURL,
	})
	if errors.Is(err, dbpkg.ErrNotFound) {
		writeAPIError(w, http.StatusNotFound, "profile not found")
		return
	}
	if err != nil {
		s.writeInternalAPIError(w, r, "update profile failed", err)
		return
	}

	s.recordActivity(r.Context(), activity.ActionUpdateProfile, "Profile updated")
	writeJSON(w, http.StatusOK, profile)
}
