package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/taskdeck/taskdeck/internal/domain"
)

type createTaskRequest struct {
	TaskID      int            `json:"task_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	AssignedTo  int            `json:"assigned_to"`
	Priority    string         `json:"priority"`
	DueDate     *string        `json:"due_date"`
	Tags        []string       `json:"tags"`
	Metadata    map[string]any `json:"metadata"`
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "create_task", err)
		return
	}

	task, err := domain.NewTask(req.TaskID, req.Title, req.Description, req.AssignedTo, domain.TaskPriority(req.Priority))
	if err != nil {
		writeMappedError(r.Context(), w, "create_task", err)
		return
	}
	if req.DueDate != nil {
		due, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			writeValidationError(r.Context(), w, "create_task", fmt.Errorf("invalid due_date: %w", err))
			return
		}
		task.SetDueDate(due)
	}
	for _, tag := range req.Tags {
		task.AddTag(tag)
	}
	if len(req.Metadata) > 0 {
		for k, v := range req.Metadata {
			task.Metadata[k] = v
		}
	}

	persisted := h.data.SaveTask(task)
	writeSuccess(w, http.StatusCreated, map[string]any{
		"task":      task.Snapshot(),
		"persisted": persisted,
	})
}

func (h *Handler) getTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "task_id")
	if err != nil {
		writeValidationError(r.Context(), w, "get_task", err)
		return
	}
	task, ok := h.data.GetTask(taskID)
	if !ok {
		writeMappedError(r.Context(), w, "get_task", fmt.Errorf("%w: task %d", domain.ErrNotFound, taskID))
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"task": task.Snapshot()})
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var tasks []domain.Task
	switch {
	case query.Get("status") != "":
		status := domain.TaskStatus(query.Get("status"))
		if !status.Valid() {
			writeValidationError(r.Context(), w, "list_tasks", fmt.Errorf("invalid status %q", query.Get("status")))
			return
		}
		tasks = h.data.GetTasksByStatus(status)
	case query.Get("priority") != "":
		priority := domain.TaskPriority(query.Get("priority"))
		if !priority.Valid() {
			writeValidationError(r.Context(), w, "list_tasks", fmt.Errorf("invalid priority %q", query.Get("priority")))
			return
		}
		tasks = h.data.GetTasksByPriority(priority)
	case query.Get("overdue") == "true":
		tasks = h.data.GetOverdueTasks()
	default:
		tasks = h.data.GetAllTasks()
	}

	views := make([]map[string]any, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, task.Snapshot())
	}
	writeSuccess(w, http.StatusOK, map[string]any{"tasks": views})
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "task_id")
	if err != nil {
		writeValidationError(r.Context(), w, "delete_task", err)
		return
	}
	if !h.data.DeleteTask(taskID) {
		writeMappedError(r.Context(), w, "delete_task", fmt.Errorf("%w: task %d", domain.ErrNotFound, taskID))
		return
	}
	writeMessage(w, http.StatusOK, "Task deleted successfully")
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateTaskStatus(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "task_id")
	if err != nil {
		writeValidationError(r.Context(), w, "update_task_status", err)
		return
	}
	var req updateStatusRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "update_task_status", err)
		return
	}

	task, ok := h.data.GetTask(taskID)
	if !ok {
		writeMappedError(r.Context(), w, "update_task_status", fmt.Errorf("%w: task %d", domain.ErrNotFound, taskID))
		return
	}
	if err := task.UpdateStatus(domain.TaskStatus(req.Status)); err != nil {
		writeMappedError(r.Context(), w, "update_task_status", err)
		return
	}
	persisted := h.data.SaveTask(task)
	writeSuccess(w, http.StatusOK, map[string]any{
		"task":      task.Snapshot(),
		"persisted": persisted,
	})
}

type updatePriorityRequest struct {
	Priority string `json:"priority"`
}

func (h *Handler) updateTaskPriority(w http.ResponseWriter, r *http.Request) {
	taskID, err := pathID(r, "task_id")
	if err != nil {
		writeValidationError(r.Context(), w, "update_task_priority", err)
		return
	}
	var req updatePriorityRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "update_task_priority", err)
		return
	}

	task, ok := h.data.GetTask(taskID)
	if !ok {
		writeMappedError(r.Context(), w, "update_task_priority", fmt.Errorf("%w: task %d", domain.ErrNotFound, taskID))
		return
	}
	if err := task.UpdatePriority(domain.TaskPriority(req.Priority)); err != nil {
		writeMappedError(r.Context(), w, "update_task_priority", err)
		return
	}
	persisted := h.data.SaveTask(task)
	writeSuccess(w, http.StatusOK, map[string]any{
		"task":      task.Snapshot(),
		"persisted": persisted,
	})
}
