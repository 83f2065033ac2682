package http

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/taskdeck/taskdeck/internal/domain"
)

type loginRequest struct {
	UserID   int    `json:"user_id"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "login", err)
		return
	}

	user, ok := h.data.GetUser(req.UserID)
	if !ok {
		// Same response as a bad password so account ids cannot be probed.
		writeMappedError(r.Context(), w, "login", domain.ErrInvalidCredentials)
		return
	}

	if h.auth.IsLockedOut(user.Email) {
		writeMappedError(r.Context(), w, "login", domain.ErrLockedOut)
		return
	}
	if !h.auth.Authenticate(&user, req.Password) {
		writeMappedError(r.Context(), w, "login", domain.ErrInvalidCredentials)
		return
	}

	// Authenticate touched LastLogin on our copy; persist it.
	h.data.SaveUser(user)

	token := h.auth.CreateSession(user)
	session, _ := h.auth.ValidateSession(token)
	writeSuccess(w, http.StatusOK, map[string]any{
		"token":   token,
		"session": session.Snapshot(),
	})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r)
	if !ok {
		writeMissingBearerError(r.Context(), w, "logout")
		return
	}
	h.auth.InvalidateSession(session.Token)
	writeMessage(w, http.StatusOK, "Session invalidated successfully")
}

func (h *Handler) extendSession(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r)
	if !ok {
		writeMissingBearerError(r.Context(), w, "extend_session")
		return
	}
	if !h.auth.ExtendSession(session.Token) {
		writeMappedError(r.Context(), w, "extend_session", fmt.Errorf("%w: session", domain.ErrNotFound))
		return
	}
	extended, _ := h.auth.ValidateSession(session.Token)
	writeSuccess(w, http.StatusOK, map[string]any{"session": extended.Snapshot()})
}

func (h *Handler) currentSession(w http.ResponseWriter, r *http.Request) {
	session, ok := sessionFromContext(r)
	if !ok {
		writeMissingBearerError(r.Context(), w, "current_session")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"session": session.Snapshot()})
}

func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	sessions := h.auth.ActiveSessions()
	views := make([]map[string]any, 0, len(sessions))
	for _, session := range sessions {
		views = append(views, session.Snapshot())
	}
	writeSuccess(w, http.StatusOK, map[string]any{"sessions": views})
}

func (h *Handler) listUserSessions(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeValidationError(r.Context(), w, "list_user_sessions", err)
		return
	}
	sessions := h.auth.UserSessions(userID)
	views := make([]map[string]any, 0, len(sessions))
	for _, session := range sessions {
		views = append(views, session.Snapshot())
	}
	writeSuccess(w, http.StatusOK, map[string]any{"sessions": views})
}

func (h *Handler) invalidateUserSessions(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeValidationError(r.Context(), w, "invalidate_user_sessions", err)
		return
	}
	count := h.auth.InvalidateUserSessions(userID)
	writeSuccess(w, http.StatusOK, map[string]any{"invalidated": count})
}

func (h *Handler) failedAttempts(w http.ResponseWriter, r *http.Request) {
	email, err := url.PathUnescape(chi.URLParam(r, "email"))
	if err != nil || email == "" {
		writeValidationError(r.Context(), w, "failed_attempts", fmt.Errorf("invalid email"))
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{
		"email":      email,
		"attempts":   h.auth.FailedAttempts(email),
		"locked_out": h.auth.IsLockedOut(email),
	})
}

func (h *Handler) resetFailedAttempts(w http.ResponseWriter, r *http.Request) {
	email, err := url.PathUnescape(chi.URLParam(r, "email"))
	if err != nil || email == "" {
		writeValidationError(r.Context(), w, "reset_failed_attempts", fmt.Errorf("invalid email"))
		return
	}
	h.auth.ResetFailedAttempts(email)
	writeMessage(w, http.StatusOK, "Failed attempts reset successfully")
}
