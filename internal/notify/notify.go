package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// DefaultTimeout is how long a notification stays up unless the caller
// asks otherwise. Zero or negative means it persists until dismissed.
const DefaultTimeout = 3200 * time.Millisecond

type Notification struct {
	ID       string
	Title    string
	Message  string
	Severity Severity
	Timeout  time.Duration
}

// Center is a process-wide queue of ephemeral notifications, newest
// first. Each timed notification owns an independent dismissal timer.
type Center struct {
	mu     sync.Mutex
	items  []Notification
	timers map[string]*time.Timer
	logger *zap.Logger
}

func NewCenter(logger *zap.Logger) *Center {
	return &Center{
		timers: make(map[string]*time.Timer),
		logger: logger,
	}
}

// Post assigns a fresh identifier, inserts the notification at the front
// of the queue and schedules auto-dismissal when Timeout is positive.
func (c *Center) Post(n Notification) string {
	n.ID = uuid.NewString()
	if n.Severity == "" {
		n.Severity = SeverityInfo
	}

	c.mu.Lock()
	c.items = append([]Notification{n}, c.items...)
	if n.Timeout > 0 {
		id := n.ID
		c.timers[id] = time.AfterFunc(n.Timeout, func() {
			c.Dismiss(id)
		})
	}
	c.mu.Unlock()

	c.logger.Debug("notification posted",
		zap.String("id", n.ID),
		zap.String("severity", string(n.Severity)),
		zap.String("title", n.Title),
	)
	return n.ID
}

// Dismiss removes the notification if present. Unknown identifiers are a
// no-op, so a timer firing after a manual dismissal is harmless.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}
	for i, n := range c.items {
		if n.ID == id {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			return
		}
	}
}

// Items returns a snapshot of live notifications, most recent first.
func (c *Center) Items() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Center) Info(title, message string) string {
	return c.Post(Notification{Title: title, Message: message, Severity: SeverityInfo, Timeout: DefaultTimeout})
}

func (c *Center) Success(title, message string) string {
	return c.Post(Notification{Title: title, Message: message, Severity: SeveritySuccess, Timeout: DefaultTimeout})
}

func (c *Center) Error(title, message string) string {
	return c.Post(Notification{Title: title, Message: message, Severity: SeverityError, Timeout: DefaultTimeout})
}
