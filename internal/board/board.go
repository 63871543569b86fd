package board

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"taskboard/internal/api"
	"taskboard/internal/model"
	"taskboard/internal/notify"
)

// RemoteStore is the slice of the API client the board needs.
type RemoteStore interface {
	ListTasks(ctx context.Context, userID int64) ([]model.Task, error)
	CreateTask(ctx context.Context, userID int64, draft model.Draft) (model.Task, error)
	UpdateTask(ctx context.Context, userID, taskID int64, patch model.Patch) (model.Task, error)
	DeleteTask(ctx context.Context, userID, taskID int64) error
}

type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseLoading
	PhaseReady
)

// graceDelay is how long a task stays marked pending-removal before the
// actual delete request fires, so a removal animation can finish.
const graceDelay = 150 * time.Millisecond

// Board owns the authoritative in-memory task collection for one user and
// keeps it consistent with the remote store. All mutations are serialized
// by one mutex; when two mutations race on the same task the later
// response wins (accepted, matches the remote store's behavior).
//
// Removal runs a small per-item state machine: Active -> PendingRemoval
// on Delete, PendingRemoval -> Removed once the server confirms,
// PendingRemoval -> Active when the server call fails.
type Board struct {
	store    RemoteStore
	notifier *notify.Center
	logger   *zap.Logger
	userID   int64

	mu      sync.Mutex
	phase   Phase
	tasks   []model.Task
	pending map[int64]struct{}

	grace time.Duration
}

func New(store RemoteStore, notifier *notify.Center, userID int64, logger *zap.Logger) *Board {
	return &Board{
		store:    store,
		notifier: notifier,
		logger:   logger,
		userID:   userID,
		pending:  make(map[int64]struct{}),
		grace:    graceDelay,
	}
}

func (b *Board) Phase() Phase {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.phase
}

// Tasks returns a copy of the full authoritative collection, including
// items marked pending-removal.
func (b *Board) Tasks() []model.Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.Task, len(b.tasks))
	copy(out, b.tasks)
	return out
}

func (b *Board) PendingRemoval(id int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.pending[id]
	return ok
}

// Refresh replaces the collection with the server's list. A failed fetch
// preserves whatever was loaded before; it never clears the view.
func (b *Board) Refresh(ctx context.Context) error {
	b.mu.Lock()
	b.phase = PhaseLoading
	b.mu.Unlock()

	tasks, err := b.store.ListTasks(ctx, b.userID)

	b.mu.Lock()
	b.phase = PhaseReady
	if err == nil {
		b.tasks = tasks
	}
	b.mu.Unlock()

	if err != nil {
		b.logger.Error("refresh failed", zap.Int64("user_id", b.userID), zap.Error(err))
		b.notifier.Error("Failed to load tasks", userMessage(err))
		return err
	}
	return nil
}

// Create sends the draft to the server and inserts the returned task at
// the front on success. Nothing changes locally on failure, so the caller
// can retry with the same draft.
func (b *Board) Create(ctx context.Context, draft model.Draft) (model.Task, error) {
	if err := draft.Validate(); err != nil {
		b.notifier.Error("Save failed", "title is required")
		return model.Task{}, err
	}

	created, err := b.store.CreateTask(ctx, b.userID, draft)
	if err != nil {
		b.notifier.Error("Save failed", userMessage(err))
		return model.Task{}, err
	}

	b.mu.Lock()
	b.tasks = append([]model.Task{created}, b.tasks...)
	b.mu.Unlock()

	b.notifier.Success("Task created", "")
	return created, nil
}

// Update is remote-first: no local field changes before the server
// confirms, and on success the local task is replaced wholesale with the
// server's representation.
func (b *Board) Update(ctx context.Context, id int64, patch model.Patch) (model.Task, error) {
	updated, err := b.applyUpdate(ctx, id, patch)
	if err != nil {
		b.notifier.Error("Save failed", userMessage(err))
		return model.Task{}, err
	}
	b.notifier.Success("Task updated", "")
	return updated, nil
}

// ToggleComplete flips status between COMPLETED and PENDING with a
// status-only partial update.
func (b *Board) ToggleComplete(ctx context.Context, id int64) (model.Task, error) {
	b.mu.Lock()
	current, ok := b.lookup(id)
	b.mu.Unlock()
	if !ok {
		return model.Task{}, &api.NotFoundError{Resource: "task"}
	}

	next := model.StatusCompleted
	if current.Status == model.StatusCompleted {
		next = model.StatusPending
	}

	updated, err := b.applyUpdate(ctx, id, model.StatusPatch(next))
	if err != nil {
		b.notifier.Error("Update failed", userMessage(err))
		return model.Task{}, err
	}

	if next == model.StatusCompleted {
		b.notifier.Success("Completed", "")
	} else {
		b.notifier.Success("Reopened", "")
	}
	return updated, nil
}

func (b *Board) applyUpdate(ctx context.Context, id int64, patch model.Patch) (model.Task, error) {
	updated, err := b.store.UpdateTask(ctx, b.userID, id, patch)
	if err != nil {
		return model.Task{}, err
	}

	b.mu.Lock()
	for i := range b.tasks {
		if b.tasks[i].ID == id {
			b.tasks[i] = updated
			break
		}
	}
	// A task that vanished mid-flight stays gone; the response is dropped.
	b.mu.Unlock()

	return updated, nil
}

// Delete marks the task pending-removal immediately and fires the actual
// delete request after the grace delay. The task stays in the collection
// until the server confirms; on failure the mark is rolled back and the
// task is fully interactive again.
func (b *Board) Delete(ctx context.Context, id int64) {
	b.mu.Lock()
	if _, ok := b.lookup(id); !ok {
		b.mu.Unlock()
		return
	}
	b.pending[id] = struct{}{}
	b.mu.Unlock()

	// The caller's context may be gone by the time the timer fires.
	dctx := context.WithoutCancel(ctx)
	time.AfterFunc(b.grace, func() {
		b.finishDelete(dctx, id)
	})
}

func (b *Board) finishDelete(ctx context.Context, id int64) {
	if err := b.store.DeleteTask(ctx, b.userID, id); err != nil {
		b.mu.Lock()
		delete(b.pending, id)
		b.mu.Unlock()

		b.logger.Error("delete failed", zap.Int64("task_id", id), zap.Error(err))
		b.notifier.Error("Delete failed", userMessage(err))
		return
	}

	b.mu.Lock()
	delete(b.pending, id)
	for i := range b.tasks {
		if b.tasks[i].ID == id {
			b.tasks = append(b.tasks[:i:i], b.tasks[i+1:]...)
			break
		}
	}
	b.mu.Unlock()

	b.notifier.Success("Task deleted", "")
}

// lookup must be called with b.mu held.
func (b *Board) lookup(id int64) (model.Task, bool) {
	for _, t := range b.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// userMessage picks the text shown in an error notification.
func userMessage(err error) string {
	var nerr *api.NetworkError
	if errors.As(err, &nerr) {
		return "Cannot connect to server. Check backend and proxy configuration."
	}
	var verr *api.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	var ferr *api.NotFoundError
	if errors.As(err, &ferr) {
		return ferr.Error()
	}
	return err.Error()
}
