package stub

import (
	"errors"
	"strings"
	"sync"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/session"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrBadCredentials = errors.New("bad credentials")
	ErrValidation     = errors.New("validation error")
)

type account struct {
	id       int64
	password string
}

// Store is the in-memory state behind the reference backend. Tasks are
// kept newest-first per user, the order the real backend returns.
type Store struct {
	mu         sync.Mutex
	accounts   map[string]account
	tasks      map[int64][]model.Task
	nextUserID int64
	nextTaskID int64
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[string]account),
		tasks:    make(map[int64][]model.Task),
	}
}

func (s *Store) Signup(username, password string) (session.Session, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return session.Session{}, ErrValidation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.accounts[username]; taken {
		return session.Session{}, ErrConflict
	}
	s.nextUserID++
	s.accounts[username] = account{id: s.nextUserID, password: password}
	return session.Session{UserID: s.nextUserID, Username: username}, nil
}

func (s *Store) Login(username, password string) (session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[username]
	if !ok || acc.password != password {
		return session.Session{}, ErrBadCredentials
	}
	return session.Session{UserID: acc.id, Username: username}, nil
}

func (s *Store) ListTasks(userID int64) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.userExists(userID) {
		return nil, ErrNotFound
	}
	out := make([]model.Task, len(s.tasks[userID]))
	copy(out, s.tasks[userID])
	return out, nil
}

func (s *Store) CreateTask(userID int64, draft model.Draft) (model.Task, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return model.Task{}, ErrValidation
	}
	draft.ApplyDefaults()
	// Unknown enum values are coerced to the defaults, not rejected.
	if !draft.Status.Valid() {
		draft.Status = model.StatusPending
	}
	if !draft.Priority.Valid() {
		draft.Priority = model.PriorityLow
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.userExists(userID) {
		return model.Task{}, ErrNotFound
	}

	s.nextTaskID++
	now := time.Now().UTC()
	task := model.Task{
		ID:          s.nextTaskID,
		Title:       draft.Title,
		Description: draft.Description,
		Status:      draft.Status,
		Priority:    draft.Priority,
		DueDate:     draft.DueDate,
		UpdatedAt:   &now,
	}
	s.tasks[userID] = append([]model.Task{task}, s.tasks[userID]...)
	return task, nil
}

func (s *Store) UpdateTask(userID, taskID int64, patch model.Patch) (model.Task, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return model.Task{}, ErrValidation
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return model.Task{}, ErrValidation
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return model.Task{}, ErrValidation
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.tasks[userID]
	for i := range list {
		if list[i].ID != taskID {
			continue
		}
		t := list[i]
		if patch.Title != nil {
			t.Title = *patch.Title
		}
		if patch.Description != nil {
			t.Description = patch.Description
		}
		if patch.Status != nil {
			t.Status = *patch.Status
		}
		if patch.Priority != nil {
			t.Priority = *patch.Priority
		}
		if patch.DueDate != nil {
			t.DueDate = patch.DueDate
		}
		now := time.Now().UTC()
		t.UpdatedAt = &now
		list[i] = t
		return t, nil
	}
	return model.Task{}, ErrNotFound
}

func (s *Store) DeleteTask(userID, taskID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.tasks[userID]
	for i := range list {
		if list[i].ID == taskID {
			s.tasks[userID] = append(list[:i:i], list[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// userExists must be called with s.mu held.
func (s *Store) userExists(userID int64) bool {
	for _, acc := range s.accounts {
		if acc.id == userID {
			return true
		}
	}
	return false
}
