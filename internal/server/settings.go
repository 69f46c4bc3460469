package server

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/akkharat/folioserv/internal/activity"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	settings, err := s.queries().ListSettings(r.Context())
	if err != nil {
		s.writeInternalAPIError(w, r, "read settings failed", err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// handleUpdateSettings upserts every key in the request body. Values arrive
// as arbitrary JSON scalars and are stored as their string form.
func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	var req map[string]any
	if err := decodeJSON(r, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req) == 0 {
		writeAPIError(w, http.StatusBadRequest, "no settings provided")
		return
	}

	keys := make([]string, 0, len(req))
	for key := range req {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := s.queries().UpsertSetting(r.Context(), key, settingValue(req[key])); err != nil {
			s.writeInternalAPIError(w, r, "update settings failed", err)
			return
		}
	}

	s.recordActivity(r.Context(), activity.ActionUpdateSettings, "Updated settings: "+strings.Join(keys, ", "))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Settings updated successfully"})
}

func settingValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}
