package commands

import (
	"context"

	"taskman/internal/service"
	"taskman/internal/tasklist"
)

// loadController creates a controller over env.Service and loads the
// collection, so duplicate checks and lookups see the server's state.
// On failure the returned state carries the error.
func loadController(ctx context.Context, env *Env) (*tasklist.Controller, tasklist.State) {
	ctl := tasklist.NewController(ctx, env.Service, nil)
	return ctl, ctl.Load(ctx)
}

// findLoaded returns the loaded task with id, or a not-found error.
func findLoaded(state tasklist.State, id int64) (service.Task, error) {
	task, ok := state.Find(id)
	if !ok {
		return service.Task{}, &notFoundError{id: id}
	}
	return task, nil
}

type notFoundError struct {
	id int64
}

func (e *notFoundError) Error() string {
	return service.NotFoundMessage
}

func (e *notFoundError) Unwrap() error {
	return service.ErrNotFound
}
