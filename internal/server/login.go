package server

import (
	"errors"
	"net/http"

	"github.com/akkharat/folioserv/internal/activity"
	"github.com/akkharat/folioserv/internal/auth"
	dbpkg "github.com/akkharat/folioserv/internal/db"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

type loginUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.queries().GetUserByUsername(r.Context(), req.Username)
	if errors.Is(err, dbpkg.ErrNotFound) {
		writeAPIError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		s.writeInternalAPIError(w, r, "login failed", err)
		return
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		writeAPIError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := s.tokens.Issue(auth.Principal{UserID: user.ID, Username: user.Username, Role: user.Role})
	if err != nil {
		s.writeInternalAPIError(w, r, "login failed", err)
		return
	}

	userID := user.ID
	if err := s.activityLogger.Log(r.Context(), activity.Entry{
		Action:  activity.ActionLogin,
		Details: "User logged in",
		UserID:  &userID,
	}); err != nil {
		s.logger.Warn("activity entry dropped", "action", activity.ActionLogin, "error", err)
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token: token,
		User:  loginUser{ID: user.ID, Username: user.Username, Role: user.Role},
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	if s.notReady(w) {
		return
	}
	principal, ok := principalFromContext(r.Context())
	if !ok {
		writeAPIError(w, http.StatusUnauthorized, "access denied")
		return
	}
	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.NewPassword == "" {
		writeAPIError(w, http.StatusBadRequest, "new password is required")
		return
	}

	user, err := s.queries().GetUserByID(r.Context(), principal.UserID)
	if errors.Is(err, dbpkg.ErrNotFound) {
		writeAPIError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		s.writeInternalAPIError(w, r, "change password failed", err)
		return
	}
	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		writeAPIError(w, http.StatusUnauthorized, "current password is incorrect")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		s.writeInternalAPIError(w, r, "change password failed", err)
		return
	}
	if err := s.queries().UpdateUserPassword(r.Context(), user.ID, hash); err != nil {
		s.writeInternalAPIError(w, r, "change password failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}
