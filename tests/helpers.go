package tests

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"taskboard/internal/api"
	"taskboard/internal/model"
	"taskboard/internal/session"
	"taskboard/internal/stub"
)

// SetupStubServer starts the in-memory reference backend on a test
// listener and returns an API client pointed at it.
func SetupStubServer(t *testing.T) (*api.Client, func()) {
	t.Helper()

	server := stub.NewServer(stub.NewStore(), zap.NewNop())
	ts := httptest.NewServer(server.Router())

	client := api.NewClient(ts.URL+"/api", zap.NewNop())
	return client, ts.Close
}

// SignupUser registers a fresh account and returns its session.
func SignupUser(t *testing.T, client *api.Client, username string) session.Session {
	t.Helper()

	res, err := client.Signup(context.Background(), username, "secret")
	if err != nil {
		t.Fatalf("Failed to sign up %s: %v", username, err)
	}
	return res.User
}

// SeedTasks creates count tasks for the user and returns their IDs in
// creation order.
func SeedTasks(t *testing.T, client *api.Client, userID int64, count int) []int64 {
	t.Helper()

	ids := make([]int64, 0, count)
	for i := 0; i < count; i++ {
		task, err := client.CreateTask(context.Background(), userID, model.Draft{
			Title: fmt.Sprintf("Task %d", i+1),
		})
		if err != nil {
			t.Fatalf("Failed to seed task: %v", err)
		}
		ids = append(ids, task.ID)
	}
	return ids
}

// WaitForCondition polls until the condition holds or the timeout expires.
func WaitForCondition(t *testing.T, timeout time.Duration, condition func() bool) bool {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}
