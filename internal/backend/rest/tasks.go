package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"taskman/internal/service"
)

// ListTasks returns every task of the logged-in user.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var tasks []service.Task
	if err := c.do(ctx, http.MethodGet, tasksPath, nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	return tasks, nil
}

// GetTask returns a single task.
func (c *Client) GetTask(ctx context.Context, id int64) (service.Task, error) {
	var task service.Task
	if err := c.do(ctx, http.MethodGet, taskPath(id), nil, &task); err != nil {
		return service.Task{}, wrapNotFound(err)
	}
	return task, nil
}

// CreateTask creates a task; the id in task is ignored.
func (c *Client) CreateTask(ctx context.Context, task service.Task) (service.Task, error) {
	task.ID = 0
	var created service.Task
	if err := c.do(ctx, http.MethodPost, tasksPath, task, &created); err != nil {
		return service.Task{}, err
	}
	return created, nil
}

// UpdateTask replaces a task with the full payload.
func (c *Client) UpdateTask(ctx context.Context, id int64, task service.Task) (service.Task, error) {
	var updated service.Task
	if err := c.do(ctx, http.MethodPut, taskPath(id), task, &updated); err != nil {
		return service.Task{}, wrapNotFound(err)
	}
	return updated, nil
}

// DeleteTask deletes a task. Both 200 and 204 count as success.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, taskPath(id), nil, nil); err != nil {
		return wrapNotFound(err)
	}
	return nil
}

func taskPath(id int64) string {
	return fmt.Sprintf("%s/%d", tasksPath, id)
}

// wrapNotFound maps a 404 response to service.ErrNotFound.
func wrapNotFound(err error) error {
	var serverErr *service.ServerError
	if errors.As(err, &serverErr) && serverErr.Status == http.StatusNotFound {
		return fmt.Errorf("%w: %s", service.ErrNotFound, serverErr.Error())
	}
	return err
}
