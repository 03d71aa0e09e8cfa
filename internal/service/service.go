// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// All task backend calls go through this interface.
// Commands and the task list controller never import the HTTP backend directly.
type Service interface {
	// ListTasks returns every task of the logged-in user in server order.
	ListTasks(ctx context.Context) ([]Task, error)

	// GetTask returns one task.
	// Returns ErrNotFound if the id does not exist.
	GetTask(ctx context.Context, id int64) (Task, error)

	// CreateTask creates a task. The server assigns the id.
	CreateTask(ctx context.Context, task Task) (Task, error)

	// UpdateTask replaces title, description and status of a task
	// and returns the server's copy.
	UpdateTask(ctx context.Context, id int64, task Task) (Task, error)

	// DeleteTask deletes a task.
	// Returns ErrNotFound if the id does not exist.
	DeleteTask(ctx context.Context, id int64) error
}
