package server

import (
	"net/http"

	"github.com/akkharat/folioserv/internal/activity"
)

func (s *Server) handleActivityLog(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	entries, err := s.activityLogger.Recent(r.Context(), activity.RecentLimit)
	if err != nil {
		s.writeInternalAPIError(w, r, "read activity log failed", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
