package stub

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"taskboard/internal/model"
	"taskboard/pkg/respond"
)

// Server is an in-memory reference backend exposing the same REST surface
// the real task service does. It backs local development and the e2e
// tests.
type Server struct {
	store  *Store
	logger *zap.Logger
}

func NewServer(store *Store, logger *zap.Logger) *Server {
	return &Server{store: store, logger: logger}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", s.handleSignup)
		r.Post("/auth/login", s.handleLogin)
		r.Route("/users/{userId}/tasks", func(r chi.Router) {
			r.Get("/", s.handleList)
			r.Post("/", s.handleCreate)
			r.Put("/{taskId}", s.handleUpdate)
			r.Delete("/{taskId}", s.handleDelete)
		})
	})

	return r
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	sess, err := s.store.Signup(creds.Username, creds.Password)
	if err != nil {
		s.handleErrors(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusCreated, map[string]interface{}{
		"message": "Account created",
		"user":    sess,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	sess, err := s.store.Login(creds.Username, creds.Password)
	if err != nil {
		s.handleErrors(w, r, err)
		return
	}

	respond.JSON(w, r, http.StatusOK, map[string]interface{}{
		"message": "Signed in",
		"user":    sess,
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)

	tasks, err := s.store.ListTasks(userID)
	if err != nil {
		s.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, tasks)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)

	if r.ContentLength == 0 {
		respond.Error(w, r, http.StatusBadRequest, "empty request body")
		return
	}

	var draft model.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		s.logger.Error("failed to decode json", zap.Error(err))
		respond.Error(w, r, http.StatusBadRequest, fmt.Sprintf("invalid json: %v", err))
		return
	}

	task, err := s.store.CreateTask(userID, draft)
	if err != nil {
		s.handleErrors(w, r, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/users/%d/tasks/%d", userID, task.ID))
	respond.JSON(w, r, http.StatusCreated, task)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, _ := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	taskID, _ := strconv.ParseInt(chi.URLParam(r, "taskId"), 10, 64)

	var patch model.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	task, err := s.store.UpdateTask(userID, taskID, patch)
	if err != nil {
		s.handleErrors(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	taskID, _ := strconv.ParseInt(chi.URLParam(r, "taskId"), 10, 64)

	if err := s.store.DeleteTask(userID, taskID); err != nil {
		s.handleErrors(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleErrors(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, ErrConflict):
		respond.Error(w, r, http.StatusConflict, "username already taken")
	case errors.Is(err, ErrBadCredentials):
		respond.Error(w, r, http.StatusUnauthorized, "invalid username or password")
	case errors.Is(err, ErrValidation):
		respond.Error(w, r, http.StatusBadRequest, "validation error")
	default:
		s.logger.Error("internal error", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
