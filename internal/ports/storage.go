package ports

import "github.com/taskdeck/taskdeck/internal/domain"

// StateStore persists the complete entity state as a single document. The
// data service always writes the whole state; there is no partial update.
type StateStore interface {
	// Load reads the current state. A missing backing file is not an error
	// and yields empty slices; a malformed one returns an error so the
	// caller can fall back to an empty store.
	Load() (users []domain.User, tasks []domain.Task, err error)
	// Save replaces the persisted state with the given collections.
	Save(users []domain.User, tasks []domain.Task) error
	// Path identifies the backing location for log messages.
	Path() string
}
