package stub

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"taskboard/internal/model"
	"taskboard/internal/session"
)

func setupServer(t *testing.T) http.Handler {
	t.Helper()
	return NewServer(NewStore(), zap.NewNop()).Router()
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func signupUser(t *testing.T, router http.Handler, username string) session.Session {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": username, "password": "secret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var res struct {
		User session.Session `json:"user"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	return res.User
}

func TestAuth(t *testing.T) {
	router := setupServer(t)

	t.Run("signup then login", func(t *testing.T) {
		user := signupUser(t, router, "alice")
		assert.NotZero(t, user.UserID)

		w := doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]string{
			"username": "alice", "password": "secret",
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/auth/signup", map[string]string{
			"username": "alice", "password": "other",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("blank credentials rejected", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/auth/signup", map[string]string{
			"username": " ", "password": "",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("wrong password unauthorized", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/auth/login", map[string]string{
			"username": "alice", "password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestTasks_CRUD(t *testing.T) {
	router := setupServer(t)
	user := signupUser(t, router, "bob")
	base := fmt.Sprintf("/api/users/%d/tasks", user.UserID)

	t.Run("create applies defaults", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, base, map[string]string{"title": "First"})
		require.Equal(t, http.StatusCreated, w.Code)

		var task model.Task
		require.NoError(t, json.NewDecoder(w.Body).Decode(&task))
		assert.NotZero(t, task.ID)
		assert.Equal(t, model.StatusPending, task.Status)
		assert.Equal(t, model.PriorityLow, task.Priority)
		assert.NotNil(t, task.UpdatedAt)
	})

	t.Run("create rejects blank title", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, base, map[string]string{"title": "  "})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("list returns newest first", func(t *testing.T) {
		doJSON(t, router, http.MethodPost, base, map[string]string{"title": "Second"})

		w := doJSON(t, router, http.MethodGet, base, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var tasks []model.Task
		require.NoError(t, json.NewDecoder(w.Body).Decode(&tasks))
		require.Len(t, tasks, 2)
		assert.Equal(t, "Second", tasks[0].Title)
	})

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, base, map[string]string{
			"title": "Keep me", "description": "original", "priority": "HIGH",
		})
		var created model.Task
		require.NoError(t, json.NewDecoder(w.Body).Decode(&created))

		w = doJSON(t, router, http.MethodPut, fmt.Sprintf("%s/%d", base, created.ID),
			map[string]string{"status": "COMPLETED"})
		require.Equal(t, http.StatusOK, w.Code)

		var updated model.Task
		require.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
		assert.Equal(t, model.StatusCompleted, updated.Status)
		assert.Equal(t, "Keep me", updated.Title)
		require.NotNil(t, updated.Description)
		assert.Equal(t, "original", *updated.Description)
		assert.Equal(t, model.PriorityHigh, updated.Priority)
	})

	t.Run("update unknown enum rejected", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut, base+"/1", map[string]string{"status": "ARCHIVED"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("update missing task 404s", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPut, base+"/9999", map[string]string{"status": "COMPLETED"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete then delete again", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, base, map[string]string{"title": "Doomed"})
		var created model.Task
		require.NoError(t, json.NewDecoder(w.Body).Decode(&created))

		path := fmt.Sprintf("%s/%d", base, created.ID)
		w = doJSON(t, router, http.MethodDelete, path, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(t, router, http.MethodDelete, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("list for unknown user 404s", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/users/9999/tasks", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
