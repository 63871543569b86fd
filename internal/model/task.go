package model

import (
	"errors"
	"strings"
	"time"
)

var ErrValidation = errors.New("validation error")

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Weight orders statuses by workflow stage. Unknown values sort last.
func (s Status) Weight() int {
	switch s {
	case StatusPending:
		return 1
	case StatusInProgress:
		return 2
	case StatusCompleted:
		return 3
	}
	return 9
}

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Weight ranks priorities for sorting. Unknown values rank below LOW.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

type Task struct {
	ID          int64      `json:"taskId"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	DueDate     *Date      `json:"dueDate"`
	UpdatedAt   *time.Time `json:"updatedAt"`
}

// Draft is the payload for creating a task. Status and Priority fall back
// to PENDING/LOW when left empty.
type Draft struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
	DueDate     *Date    `json:"dueDate"`
}

func (d *Draft) ApplyDefaults() {
	if d.Status == "" {
		d.Status = StatusPending
	}
	if d.Priority == "" {
		d.Priority = PriorityLow
	}
}

func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrValidation
	}
	if d.Status != "" && !d.Status.Valid() {
		return ErrValidation
	}
	if d.Priority != "" && !d.Priority.Valid() {
		return ErrValidation
	}
	return nil
}

// Patch carries a partial update. Only non-nil fields are marshalled, so
// the server leaves everything else untouched.
type Patch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	DueDate     *Date     `json:"dueDate,omitempty"`
}

func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.DueDate == nil
}

func StatusPatch(s Status) Patch {
	return Patch{Status: &s}
}
