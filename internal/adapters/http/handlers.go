package http

import (
	"net/http"
)

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	byStatus := map[string]int{}
	for status, count := range h.data.TaskStatistics() {
		byStatus[string(status)] = count
	}
	writeSuccess(w, http.StatusOK, map[string]any{
		"user_count":        h.data.UserCount(),
		"active_user_count": h.data.ActiveUserCount(),
		"task_count":        h.data.TaskCount(),
		"tasks_by_status":   byStatus,
	})
}
