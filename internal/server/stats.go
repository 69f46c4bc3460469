package server

import "net/http"

type statsResponse struct {
	Projects       int `json:"projects"`
	Skills         int `json:"skills"`
	Certifications int `json:"certifications"`
	Images         int `json:"images"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	q := s.queries()
	ctx := r.Context()

	var (
		stats statsResponse
		err   error
	)
	if stats.Projects, err = q.CountProjects(ctx); err != nil {
		s.writeInternalAPIError(w, r, "read stats failed", err)
		return
	}
	if stats.Skills, err = q.CountSkills(ctx); err != nil {
		s.writeInternalAPIError(w, r, "read stats failed", err)
		return
	}
	if stats.Certifications, err = q.CountCertifications(ctx); err != nil {
		s.writeInternalAPIError(w, r, "read stats failed", err)
		return
	}
	if stats.Images, err = q.CountProjectImages(ctx); err != nil {
		s.writeInternalAPIError(w, r, "read stats failed", err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
