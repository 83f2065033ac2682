package application

import (
	"time"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// SaveTask inserts or replaces a task by id, then persists the whole state.
// It returns false when the write failed; the in-memory store is updated
// either way.
func (s *DataService) SaveTask(task domain.Task) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[task.TaskID]; !exists {
		s.taskOrder = append(s.taskOrder, task.TaskID)
	}
	s.tasks[task.TaskID] = task.Clone()
	return s.persistLocked("save_task")
}

// GetTask retrieves a task by id.
func (s *DataService) GetTask(taskID int) (domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[taskID]
	if !ok {
		return domain.Task{}, false
	}
	return task.Clone(), true
}

// GetAllTasks returns a snapshot of all tasks in insertion order.
func (s *DataService) GetAllTasks() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Task, 0, len(s.taskOrder))
	for _, id := range s.taskOrder {
		out = append(out, s.tasks[id].Clone())
	}
	return out
}

// DeleteTask removes a task by id and persists. It reports whether the task
// existed.
func (s *DataService) DeleteTask(taskID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[taskID]; !ok {
		return false
	}
	delete(s.tasks, taskID)
	for i, id := range s.taskOrder {
		if id == taskID {
			s.taskOrder = append(s.taskOrder[:i], s.taskOrder[i+1:]...)
			break
		}
	}
	s.persistLocked("delete_task")
	return true
}

// GetTasksByUser returns all tasks assigned to the given user id.
func (s *DataService) GetTasksByUser(userID int) []domain.Task {
	return s.filterTasks(func(t domain.Task) bool { return t.AssignedTo == userID })
}

// GetTasksByStatus returns all tasks in the given status.
func (s *DataService) GetTasksByStatus(status domain.TaskStatus) []domain.Task {
	return s.filterTasks(func(t domain.Task) bool { return t.Status == status })
}

// GetTasksByPriority returns all tasks with the given priority.
func (s *DataService) GetTasksByPriority(priority domain.TaskPriority) []domain.Task {
	return s.filterTasks(func(t domain.Task) bool { return t.Priority == priority })
}

// GetOverdueTasks returns all tasks past their due date and not completed.
func (s *DataService) GetOverdueTasks() []domain.Task {
	now := time.Now().UTC()
	return s.filterTasks(func(t domain.Task) bool { return t.IsOverdue(now) })
}

// filterTasks scans the collection in insertion order. There is no indexing;
// the store is sized for fixture workloads.
func (s *DataService) filterTasks(keep func(domain.Task) bool) []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Task
	for _, id := range s.taskOrder {
		if task := s.tasks[id]; keep(task) {
			out = append(out, task.Clone())
		}
	}
	return out
}

// TaskCount returns the total number of tasks.
func (s *DataService) TaskCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// TaskStatistics returns task counts grouped by status. Statuses with no
// tasks are absent from the result.
func (s *DataService) TaskStatistics() map[domain.TaskStatus]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := make(map[domain.TaskStatus]int)
	for _, task := range s.tasks {
		stats[task.Status]++
	}
	return stats
}
