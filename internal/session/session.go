package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrNoSession = errors.New("no active session")

// Session identifies the signed-in user. All task requests are scoped by
// it, and task commands refuse to run without one.
type Session struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

// Store persists the session to a JSON file between runs.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Load() (Session, error) {
	var sess Session

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return sess, ErrNoSession
		}
		return sess, err
	}

	if err := json.Unmarshal(raw, &sess); err != nil {
		return sess, fmt.Errorf("corrupt session file: %w", err)
	}
	if sess.UserID == 0 {
		return sess, ErrNoSession
	}
	return sess, nil
}

func (s *Store) Save(sess Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}

func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
