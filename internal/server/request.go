package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/akkharat/folioserv/internal/activity"
	dbpkg "github.com/akkharat/folioserv/internal/db"
)

func (s *Server) queries() *dbpkg.Queries {
	return dbpkg.NewQueries(s.db)
}

// notReady answers 503 when a request arrives before Start finished wiring
// the database.
func (s *Server) notReady(w http.ResponseWriter) bool {
	if s.db == nil {
		writeAPIError(w, http.StatusServiceUnavailable, "server is not ready")
		return true
	}
	return false
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("parse request body: %w", err)
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// recordActivity enqueues an audit entry for the authenticated principal.
// Audit writes never fail the request; a full queue is logged and dropped.
func (s *Server) recordActivity(ctx context.Context, action, details string) {
	if s.activityLogger == nil {
		return
	}
	var userID *int64
	if p, ok := principalFromContext(ctx); ok {
		id := p.UserID
		userID = &id
	}
	if err := s.activityLogger.Log(ctx, activity.Entry{Action: action, Details: details, UserID: userID}); err != nil {
		s.logger.Warn("activity entry dropped", "action", action, "error", err)
	}
}
