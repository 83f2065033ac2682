package http

import (
	"fmt"
	"net/http"

	"github.com/taskdeck/taskdeck/internal/domain"
)

type createUserRequest struct {
	UserID      int            `json:"user_id"`
	Username    string         `json:"username"`
	Email       string         `json:"email"`
	ProfileData map[string]any `json:"profile_data"`
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "create_user", err)
		return
	}

	user, err := domain.NewUser(req.UserID, req.Username, req.Email)
	if err != nil {
		writeMappedError(r.Context(), w, "create_user", err)
		return
	}
	if len(req.ProfileData) > 0 {
		user.UpdateProfile(req.ProfileData)
	}

	persisted := h.data.SaveUser(user)
	writeSuccess(w, http.StatusCreated, map[string]any{
		"user":      user.Snapshot(),
		"persisted": persisted,
	})
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeValidationError(r.Context(), w, "get_user", err)
		return
	}
	user, ok := h.data.GetUser(userID)
	if !ok {
		writeMappedError(r.Context(), w, "get_user", fmt.Errorf("%w: user %d", domain.ErrNotFound, userID))
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"user": user.Snapshot()})
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	var users []domain.User
	switch {
	case r.URL.Query().Get("email") != "":
		users = h.data.FindUsersByEmail(r.URL.Query().Get("email"))
	case r.URL.Query().Get("active") == "true":
		users = h.data.GetActiveUsers()
	default:
		users = h.data.GetAllUsers()
	}

	views := make([]map[string]any, 0, len(users))
	for _, user := range users {
		views = append(views, user.Snapshot())
	}
	writeSuccess(w, http.StatusOK, map[string]any{"users": views})
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeValidationError(r.Context(), w, "delete_user", err)
		return
	}
	if !h.data.DeleteUser(userID) {
		writeMappedError(r.Context(), w, "delete_user", fmt.Errorf("%w: user %d", domain.ErrNotFound, userID))
		return
	}
	writeMessage(w, http.StatusOK, "User deleted successfully")
}

func (h *Handler) listUserTasks(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeValidationError(r.Context(), w, "list_user_tasks", err)
		return
	}
	tasks := h.data.GetTasksByUser(userID)
	views := make([]map[string]any, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, task.Snapshot())
	}
	writeSuccess(w, http.StatusOK, map[string]any{"tasks": views})
}
