// Package jsonfile persists the full entity state as one JSON document,
// rewritten in whole on every save.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// Store owns a single backing file for its lifetime. Writes go through a
// temp file and rename so a crash mid-write cannot leave a torn document.
type Store struct {
	path string
}

// New constructs a store over the given file path. The file is created on
// first save; a missing file is a valid empty store.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load decodes the backing file into domain entities. Every record passes
// entity validation, so invalid fields surface as errors rather than invalid
// in-memory state.
func (s *Store) Load() ([]domain.User, []domain.Task, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", s.path, err)
	}

	users := make([]domain.User, 0, len(doc.Users))
	for _, record := range doc.Users {
		user, err := record.toDomain()
		if err != nil {
			return nil, nil, fmt.Errorf("user %d: %w", record.UserID, err)
		}
		users = append(users, user)
	}

	tasks := make([]domain.Task, 0, len(doc.Tasks))
	for _, record := range doc.Tasks {
		task, err := record.toDomain()
		if err != nil {
			return nil, nil, fmt.Errorf("task %d: %w", record.TaskID, err)
		}
		tasks = append(tasks, task)
	}

	return users, tasks, nil
}

// Save replaces the persisted state atomically.
func (s *Store) Save(users []domain.User, tasks []domain.Task) error {
	doc := document{
		Users: make([]userRecord, 0, len(users)),
		Tasks: make([]taskRecord, 0, len(tasks)),
	}
	for _, user := range users {
		doc.Users = append(doc.Users, userRecordFrom(user))
	}
	for _, task := range tasks {
		doc.Tasks = append(doc.Tasks, taskRecordFrom(task))
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
