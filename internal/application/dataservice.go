package application

import (
	"sync"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/ports"
)

// DataService owns the in-memory user and task collections and their single
// backing document. Every mutation rewrites the whole persisted state; a
// failed write is reported, never raised, and the in-memory state stands.
//
// The order slices exist because Go maps do not iterate in insertion order
// and snapshot listings must.
type DataService struct {
	mu        sync.RWMutex
	store     ports.StateStore
	users     map[int]domain.User
	tasks     map[int]domain.Task
	userOrder []int
	taskOrder []int
}

// NewDataService constructs the service and loads existing state from the
// backing store. A malformed backing file is logged as a warning and the
// service starts empty; this is deliberate best-effort recovery, not an error.
func NewDataService(store ports.StateStore) *DataService {
	s := &DataService{
		store: store,
		users: make(map[int]domain.User),
		tasks: make(map[int]domain.Task),
	}

	users, tasks, err := store.Load()
	if err != nil {
		appLogger().Warn("could not load data file, starting empty",
			"operation", "load",
			"outcome", "warning",
			"path", store.Path(),
			"error", err,
		)
		return s
	}
	for _, user := range users {
		if _, exists := s.users[user.UserID]; !exists {
			s.userOrder = append(s.userOrder, user.UserID)
		}
		s.users[user.UserID] = user
	}
	for _, task := range tasks {
		if _, exists := s.tasks[task.TaskID]; !exists {
			s.taskOrder = append(s.taskOrder, task.TaskID)
		}
		s.tasks[task.TaskID] = task
	}
	return s
}

// persistLocked rewrites the full state. Callers must hold mu. The in-memory
// mutation that preceded this call is kept regardless of the outcome.
func (s *DataService) persistLocked(operation string) bool {
	users := make([]domain.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		users = append(users, s.users[id])
	}
	tasks := make([]domain.Task, 0, len(s.taskOrder))
	for _, id := range s.taskOrder {
		tasks = append(tasks, s.tasks[id])
	}

	if err := s.store.Save(users, tasks); err != nil {
		appLogger().Warn("could not save data file",
			"operation", operation,
			"outcome", "warning",
			"path", s.store.Path(),
			"error", err,
		)
		return false
	}
	return true
}

// SaveUser inserts or replaces a user by id, then persists the whole state.
// It returns false when the write failed; the in-memory store is updated
// either way.
func (s *DataService) SaveUser(user domain.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.UserID]; !exists {
		s.userOrder = append(s.userOrder, user.UserID)
	}
	s.users[user.UserID] = user.Clone()
	return s.persistLocked("save_user")
}

// GetUser retrieves a user by id.
func (s *DataService) GetUser(userID int) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return domain.User{}, false
	}
	return user.Clone(), true
}

// GetAllUsers returns a snapshot of all users in insertion order.
func (s *DataService) GetAllUsers() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		out = append(out, s.users[id].Clone())
	}
	return out
}

// DeleteUser removes a user by id and persists. It reports whether the user
// existed.
func (s *DataService) DeleteUser(userID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return false
	}
	delete(s.users, userID)
	for i, id := range s.userOrder {
		if id == userID {
			s.userOrder = append(s.userOrder[:i], s.userOrder[i+1:]...)
			break
		}
	}
	s.persistLocked("delete_user")
	return true
}

// FindUsersByEmail returns users whose email matches exactly.
func (s *DataService) FindUsersByEmail(email string) []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.User
	for _, id := range s.userOrder {
		if user := s.users[id]; user.Email == email {
			out = append(out, user.Clone())
		}
	}
	return out
}

// GetActiveUsers returns all users with active accounts.
func (s *DataService) GetActiveUsers() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.User
	for _, id := range s.userOrder {
		if user := s.users[id]; user.IsActive {
			out = append(out, user.Clone())
		}
	}
	return out
}

// UserCount returns the total number of users.
func (s *DataService) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// ActiveUserCount returns the number of users with active accounts.
func (s *DataService) ActiveUserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, user := range s.users {
		if user.IsActive {
			count++
		}
	}
	return count
}
