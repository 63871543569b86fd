package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"taskboard/internal/model"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL+"/api", zap.NewNop()), server
}

func TestClient_ListTasks(t *testing.T) {
	var gotPath string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[{"taskId":2,"title":"B","status":"COMPLETED","priority":"HIGH"},
			{"taskId":1,"title":"A","status":"PENDING","priority":"LOW"}]`)
	})
	defer server.Close()

	tasks, err := client.ListTasks(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "/api/users/42/tasks", gotPath)
	require.Len(t, tasks, 2)
	// Server order is preserved as-is.
	assert.Equal(t, int64(2), tasks[0].ID)
	assert.Equal(t, int64(1), tasks[1].ID)
}

func TestClient_CreateTask_AppliesDefaults(t *testing.T) {
	var gotBody map[string]interface{}
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"taskId":10,"title":"New","status":"PENDING","priority":"LOW"}`)
	})
	defer server.Close()

	created, err := client.CreateTask(context.Background(), 1, model.Draft{Title: "New"})
	require.NoError(t, err)
	assert.Equal(t, int64(10), created.ID)

	assert.Equal(t, "PENDING", gotBody["status"])
	assert.Equal(t, "LOW", gotBody["priority"])
	assert.Nil(t, gotBody["description"])
	assert.Nil(t, gotBody["dueDate"])
}

func TestClient_UpdateTask_SendsOnlyPatchedFields(t *testing.T) {
	var gotBody map[string]interface{}
	var gotMethod, gotPath string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		io.WriteString(w, `{"taskId":5,"title":"Kept title","status":"COMPLETED","priority":"HIGH"}`)
	})
	defer server.Close()

	updated, err := client.UpdateTask(context.Background(), 1, 5, model.StatusPatch(model.StatusCompleted))
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/users/1/tasks/5", gotPath)
	// A status-only patch carries nothing but the status key.
	assert.Equal(t, map[string]interface{}{"status": "COMPLETED"}, gotBody)
	assert.Equal(t, "Kept title", updated.Title)
}

func TestClient_DeleteTask(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})
	defer server.Close()

	assert.NoError(t, client.DeleteTask(context.Background(), 1, 5))
}

func TestClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(*testing.T, error)
	}{
		{
			name:   "404 becomes NotFoundError",
			status: http.StatusNotFound,
			body:   `{"error":"not found"}`,
			check: func(t *testing.T, err error) {
				var nf *NotFoundError
				assert.ErrorAs(t, err, &nf)
			},
		},
		{
			name:   "400 becomes ValidationError with server message",
			status: http.StatusBadRequest,
			body:   `{"error":"Title is required"}`,
			check: func(t *testing.T, err error) {
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, "Title is required", ve.Message)
			},
		},
		{
			name:   "500 becomes ServerError",
			status: http.StatusInternalServerError,
			body:   `boom`,
			check: func(t *testing.T, err error) {
				var se *ServerError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, http.StatusInternalServerError, se.Status)
				assert.Equal(t, "boom", se.Body)
			},
		},
		{
			name:   "409 becomes ServerError",
			status: http.StatusConflict,
			body:   `{"error":"username already taken"}`,
			check: func(t *testing.T, err error) {
				var se *ServerError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, http.StatusConflict, se.Status)
				assert.Equal(t, "username already taken", se.Body)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})
			defer server.Close()

			_, err := client.ListTasks(context.Background(), 1)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	client := NewClient(server.URL+"/api", zap.NewNop())
	server.Close() // nothing listening anymore

	_, err := client.ListTasks(context.Background(), 1)
	require.Error(t, err)

	var ne *NetworkError
	assert.ErrorAs(t, err, &ne, "transport failure must be distinguishable from HTTP errors")
}

func TestClient_Login(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		if creds["password"] != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"error":"invalid username or password"}`)
			return
		}
		io.WriteString(w, `{"message":"Signed in","user":{"userId":42,"username":"sam"}}`)
	})
	defer server.Close()

	res, err := client.Login(context.Background(), "sam", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, int64(42), res.User.UserID)
	assert.Equal(t, "sam", res.User.Username)

	_, err = client.Login(context.Background(), "sam", "wrong")
	var se *ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.Status)
}
