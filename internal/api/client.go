package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"taskboard/internal/model"
	"taskboard/internal/session"
)

// Client translates task operations into HTTP requests against the
// backend. It holds no mutable state between calls.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  logger,
	}
}

type AuthResult struct {
	Message string          `json:"message"`
	User    session.Session `json:"user"`
}

func (c *Client) Login(ctx context.Context, username, password string) (AuthResult, error) {
	var res AuthResult
	err := c.do(ctx, http.MethodPost, "/auth/login", credentials{username, password}, &res)
	return res, err
}

func (c *Client) Signup(ctx context.Context, username, password string) (AuthResult, error) {
	var res AuthResult
	err := c.do(ctx, http.MethodPost, "/auth/signup", credentials{username, password}, &res)
	return res, err
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *Client) ListTasks(ctx context.Context, userID int64) ([]model.Task, error) {
	var tasks []model.Task
	path := fmt.Sprintf("/users/%d/tasks", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, userID int64, draft model.Draft) (model.Task, error) {
	draft.ApplyDefaults()

	var task model.Task
	path := fmt.Sprintf("/users/%d/tasks", userID)
	err := c.do(ctx, http.MethodPost, path, draft, &task)
	return task, err
}

func (c *Client) UpdateTask(ctx context.Context, userID, taskID int64, patch model.Patch) (model.Task, error) {
	var task model.Task
	path := fmt.Sprintf("/users/%d/tasks/%d", userID, taskID)
	err := c.do(ctx, http.MethodPut, path, patch, &task)
	return task, err
}

func (c *Client) DeleteTask(ctx context.Context, userID, taskID int64) error {
	path := fmt.Sprintf("/users/%d/tasks/%d", userID, taskID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// do sends one request and decodes the response into out (when non-nil).
// Errors are classified, never swallowed.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classify(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func classify(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)
	msg := serverMessage(raw)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return &NotFoundError{Resource: "resource"}
	case http.StatusBadRequest:
		return &ValidationError{Message: msg}
	default:
		return &ServerError{Status: resp.StatusCode, Body: msg}
	}
}

// serverMessage extracts a user-displayable message from an error body.
// The backend wraps messages as {"error": "..."} but plain text happens too.
func serverMessage(raw []byte) string {
	var wrapped struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		if wrapped.Error != "" {
			return wrapped.Error
		}
		if wrapped.Message != "" {
			return wrapped.Message
		}
	}
	return strings.TrimSpace(string(raw))
}
