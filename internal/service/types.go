// Package service defines the backend-agnostic interface for task operations.
package service

import "strings"

// Status is the completion state of a task.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
)

// Toggled returns the opposite status.
// Anything that is not COMPLETED is treated as PENDING.
func (s Status) Toggled() Status {
	if s == StatusCompleted {
		return StatusPending
	}
	return StatusCompleted
}

// Task represents a single task item.
// ID is assigned by the server; zero means the task has not been created yet.
type Task struct {
	ID          int64  `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      Status `json:"status"`
}

// NewTask returns an empty pending task, the shape of a fresh form draft.
func NewTask() Task {
	return Task{Status: StatusPending}
}

// HasID reports whether the server has assigned an id.
func (t Task) HasID() bool {
	return t.ID != 0
}

// Done reports whether the task is completed.
func (t Task) Done() bool {
	return t.Status == StatusCompleted
}

// TitleKey returns the key used to compare titles: trimmed and lower-cased.
func TitleKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
