package domain

import (
	"fmt"
	"time"
)

// TaskStatus enumerates the task lifecycle states.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

// TaskStatuses returns all valid statuses in declaration order.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}
}

// Valid reports whether the status is a member of the enumeration.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// TaskPriority enumerates scheduling priorities.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// TaskPriorities returns all valid priorities in declaration order.
func TaskPriorities() []TaskPriority {
	return []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
}

// Valid reports whether the priority is a member of the enumeration.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Task is the work-item entity owned by the data service. AssignedTo names a
// user id but is not enforced as a foreign key.
type Task struct {
	TaskID      int
	Title       string
	Description string
	AssignedTo  int
	Priority    TaskPriority
	Status      TaskStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DueDate     *time.Time
	CompletedAt *time.Time
	Tags        []string
	Metadata    map[string]any
}

// NewTask validates and constructs a Task. An empty priority defaults to
// medium; the status always starts at pending.
func NewTask(taskID int, title, description string, assignedTo int, priority TaskPriority) (Task, error) {
	if priority == "" {
		priority = PriorityMedium
	}
	now := time.Now().UTC()
	t := Task{
		TaskID:      taskID,
		Title:       title,
		Description: description,
		AssignedTo:  assignedTo,
		Priority:    priority,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
		Metadata:    map[string]any{},
	}
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	return t, nil
}

// Validate enforces the construction invariants, including enum membership.
func (t Task) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("%w: title cannot be empty", ErrValidation)
	}
	if t.Description == "" {
		return fmt.Errorf("%w: description cannot be empty", ErrValidation)
	}
	if t.TaskID < 0 {
		return fmt.Errorf("%w: task id must not be negative", ErrValidation)
	}
	if t.AssignedTo < 0 {
		return fmt.Errorf("%w: assigned user id must not be negative", ErrValidation)
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("%w: priority must be one of %v", ErrValidation, TaskPriorities())
	}
	if !t.Status.Valid() {
		return fmt.Errorf("%w: status must be one of %v", ErrValidation, TaskStatuses())
	}
	return nil
}

// UpdateStatus transitions the task to a new status. Completing a task stamps
// CompletedAt; every transition bumps UpdatedAt.
func (t *Task) UpdateStatus(status TaskStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: status must be one of %v", ErrValidation, TaskStatuses())
	}
	now := time.Now().UTC()
	t.Status = status
	t.UpdatedAt = now
	if status == StatusCompleted {
		done := now
		t.CompletedAt = &done
	}
	return nil
}

// UpdatePriority changes the scheduling priority.
func (t *Task) UpdatePriority(priority TaskPriority) error {
	if !priority.Valid() {
		return fmt.Errorf("%w: priority must be one of %v", ErrValidation, TaskPriorities())
	}
	t.Priority = priority
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// AddTag appends a tag, suppressing duplicates while keeping insertion order.
func (t *Task) AddTag(tag string) {
	for _, existing := range t.Tags {
		if existing == tag {
			return
		}
	}
	t.Tags = append(t.Tags, tag)
	t.UpdatedAt = time.Now().UTC()
}

// RemoveTag removes a tag if present.
func (t *Task) RemoveTag(tag string) {
	for i, existing := range t.Tags {
		if existing == tag {
			t.Tags = append(t.Tags[:i], t.Tags[i+1:]...)
			t.UpdatedAt = time.Now().UTC()
			return
		}
	}
}

// SetDueDate sets or replaces the due date.
func (t *Task) SetDueDate(due time.Time) {
	d := due
	t.DueDate = &d
	t.UpdatedAt = time.Now().UTC()
}

// IsOverdue reports whether the task has a due date strictly before now and
// is not completed.
func (t Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(now) && t.Status != StatusCompleted
}

// Clone returns a deep copy, including tags and metadata.
func (t Task) Clone() Task {
	out := t
	if t.DueDate != nil {
		d := *t.DueDate
		out.DueDate = &d
	}
	if t.CompletedAt != nil {
		d := *t.CompletedAt
		out.CompletedAt = &d
	}
	if t.Tags != nil {
		out.Tags = append([]string(nil), t.Tags...)
	}
	if t.Metadata != nil {
		out.Metadata = make(map[string]any, len(t.Metadata))
		for k, v := range t.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// Snapshot returns the wire-shaped mapping of the task, with RFC 3339
// timestamps and nil for absent optionals.
func (t Task) Snapshot() map[string]any {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return map[string]any{
		"task_id":      t.TaskID,
		"title":        t.Title,
		"description":  t.Description,
		"assigned_to":  t.AssignedTo,
		"priority":     string(t.Priority),
		"status":       string(t.Status),
		"created_at":   formatTime(t.CreatedAt),
		"updated_at":   formatTime(t.UpdatedAt),
		"due_date":     formatTimePtr(t.DueDate),
		"completed_at": formatTimePtr(t.CompletedAt),
		"tags":         tags,
		"metadata":     t.Metadata,
	}
}

func (t Task) String() string {
	return fmt.Sprintf("Task(%d: %s, %s, %s)", t.TaskID, t.Title, t.Status, t.Priority)
}
