package jsonfile

import (
	"fmt"
	"time"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// document mirrors the on-disk JSON schema. It is intentionally separate
// from the domain types so the wire layout can stay stable independently of
// in-memory representation.
type document struct {
	Users []userRecord `json:"users"`
	Tasks []taskRecord `json:"tasks"`
}

type userRecord struct {
	UserID      int            `json:"user_id"`
	Username    string         `json:"username"`
	Email       string         `json:"email"`
	IsActive    bool           `json:"is_active"`
	CreatedAt   *string        `json:"created_at"`
	LastLogin   *string        `json:"last_login"`
	ProfileData map[string]any `json:"profile_data"`
}

type taskRecord struct {
	TaskID      int            `json:"task_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	AssignedTo  int            `json:"assigned_to"`
	Priority    string         `json:"priority"`
	Status      string         `json:"status"`
	CreatedAt   *string        `json:"created_at"`
	UpdatedAt   *string        `json:"updated_at"`
	DueDate     *string        `json:"due_date"`
	CompletedAt *string        `json:"completed_at"`
	Tags        []string       `json:"tags"`
	Metadata    map[string]any `json:"metadata"`
}

func userRecordFrom(u domain.User) userRecord {
	return userRecord{
		UserID:      u.UserID,
		Username:    u.Username,
		Email:       u.Email,
		IsActive:    u.IsActive,
		CreatedAt:   encodeTime(u.CreatedAt),
		LastLogin:   encodeTimePtr(u.LastLogin),
		ProfileData: u.ProfileData,
	}
}

func (r userRecord) toDomain() (domain.User, error) {
	createdAt, err := decodeTime(r.CreatedAt)
	if err != nil {
		return domain.User{}, fmt.Errorf("created_at: %w", err)
	}
	lastLogin, err := decodeTimePtr(r.LastLogin)
	if err != nil {
		return domain.User{}, fmt.Errorf("last_login: %w", err)
	}
	user := domain.User{
		UserID:      r.UserID,
		Username:    r.Username,
		Email:       r.Email,
		IsActive:    r.IsActive,
		CreatedAt:   createdAt,
		LastLogin:   lastLogin,
		ProfileData: r.ProfileData,
	}
	if user.ProfileData == nil {
		user.ProfileData = map[string]any{}
	}
	if err := user.Validate(); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func taskRecordFrom(t domain.Task) taskRecord {
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	return taskRecord{
		TaskID:      t.TaskID,
		Title:       t.Title,
		Description: t.Description,
		AssignedTo:  t.AssignedTo,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		CreatedAt:   encodeTime(t.CreatedAt),
		UpdatedAt:   encodeTime(t.UpdatedAt),
		DueDate:     encodeTimePtr(t.DueDate),
		CompletedAt: encodeTimePtr(t.CompletedAt),
		Tags:        tags,
		Metadata:    t.Metadata,
	}
}

func (r taskRecord) toDomain() (domain.Task, error) {
	createdAt, err := decodeTime(r.CreatedAt)
	if err != nil {
		return domain.Task{}, fmt.Errorf("created_at: %w", err)
	}
	updatedAt, err := decodeTime(r.UpdatedAt)
	if err != nil {
		return domain.Task{}, fmt.Errorf("updated_at: %w", err)
	}
	dueDate, err := decodeTimePtr(r.DueDate)
	if err != nil {
		return domain.Task{}, fmt.Errorf("due_date: %w", err)
	}
	completedAt, err := decodeTimePtr(r.CompletedAt)
	if err != nil {
		return domain.Task{}, fmt.Errorf("completed_at: %w", err)
	}
	task := domain.Task{
		TaskID:      r.TaskID,
		Title:       r.Title,
		Description: r.Description,
		AssignedTo:  r.AssignedTo,
		Priority:    domain.TaskPriority(r.Priority),
		Status:      domain.TaskStatus(r.Status),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
		DueDate:     dueDate,
		CompletedAt: completedAt,
		Tags:        r.Tags,
		Metadata:    r.Metadata,
	}
	if task.Metadata == nil {
		task.Metadata = map[string]any{}
	}
	if err := task.Validate(); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

// timeLayouts lists accepted timestamp forms, most specific first. The
// second entry tolerates documents written without a zone offset.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

func encodeTime(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.UTC().Truncate(time.Second).Format(time.RFC3339)
	return &s
}

func encodeTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	return encodeTime(*t)
}

func decodeTime(raw *string) (time.Time, error) {
	if raw == nil || *raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, *raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", *raw)
}

func decodeTimePtr(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := decodeTime(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
