// Package http exposes the data and auth services over a small JSON API.
// The core services are transport-agnostic; everything HTTP-specific lives
// here.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taskdeck/taskdeck/internal/application"
)

// Handler is the HTTP adapter entrypoint. It depends only on the two
// application services.
type Handler struct {
	data *application.DataService
	auth *application.AuthService
}

// NewHandler constructs an HTTP handler bound to the application services.
func NewHandler(data *application.DataService, auth *application.AuthService) *Handler {
	return &Handler{data: data, auth: auth}
}

// NewRouter registers routes and the shared middleware stack. Centralizing
// routes here keeps error and logging behavior consistent across endpoints.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.healthz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", handler.createUser)
			r.Get("/", handler.listUsers)
			r.Get("/{user_id}", handler.getUser)
			r.Delete("/{user_id}", handler.deleteUser)
			r.Get("/{user_id}/tasks", handler.listUserTasks)
		})
		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", handler.createTask)
			r.Get("/", handler.listTasks)
			r.Get("/{task_id}", handler.getTask)
			r.Delete("/{task_id}", handler.deleteTask)
			r.Post("/{task_id}/status", handler.updateTaskStatus)
			r.Post("/{task_id}/priority", handler.updateTaskPriority)
		})
		r.Get("/stats", handler.stats)
	})

	r.Route("/auth/v1", func(r chi.Router) {
		r.Post("/login", handler.login)
		r.Get("/attempts/{email}", handler.failedAttempts)
		r.Delete("/attempts/{email}", handler.resetFailedAttempts)

		r.Group(func(r chi.Router) {
			r.Use(handler.sessionMiddleware)
			r.Post("/logout", handler.logout)
			r.Post("/extend", handler.extendSession)
			r.Get("/session", handler.currentSession)
			r.Get("/sessions", handler.listSessions)
			r.Get("/users/{user_id}/sessions", handler.listUserSessions)
			r.Delete("/users/{user_id}/sessions", handler.invalidateUserSessions)
		})
	})

	return r
}
