package tasklist

import (
	"context"

	"taskman/internal/logging"
	"taskman/internal/service"
)

// Runner executes backend effects against a service.Service.
type Runner struct {
	svc service.Service
}

// NewRunner creates a Runner backed by svc.
func NewRunner(svc service.Service) *Runner {
	return &Runner{svc: svc}
}

// Run performs eff and returns the event reporting its outcome. Effects that
// are not backend calls return nil.
func (r *Runner) Run(ctx context.Context, eff Effect) Event {
	logger := logging.FromContext(ctx)

	switch eff := eff.(type) {
	case ListTasks:
		tasks, err := r.svc.ListTasks(ctx)
		if err != nil {
			logger.Debug("Error fetching tasks", "err", err)
			return LoadFailed{Err: err}
		}
		return TasksLoaded{Tasks: tasks}

	case CreateTask:
		created, err := r.svc.CreateTask(ctx, eff.Task)
		if err != nil {
			logger.Debug("Error creating task", "title", eff.Task.Title, "err", err)
			return CreateFailed{Err: err}
		}
		logger.Debug("task created", "id", created.ID)
		return TaskCreated{Task: created}

	case UpdateTask:
		updated, err := r.svc.UpdateTask(ctx, eff.ID, eff.Task)
		if updated.ID == 0 {
			updated.ID = eff.ID
		}
		if eff.Purpose == UpdateToggle {
			if err != nil {
				logger.Debug("Error toggling task status", "id", eff.ID, "err", err)
				return ToggleFailed{ID: eff.ID, Err: err}
			}
			logger.Debug("task status toggled", "id", eff.ID, "status", updated.Status)
			return StatusToggled{Task: updated}
		}
		if err != nil {
			logger.Debug("Error updating task", "id", eff.ID, "err", err)
			return UpdateFailed{ID: eff.ID, Err: err}
		}
		logger.Debug("task updated", "id", eff.ID)
		return TaskUpdated{Task: updated}

	case DeleteTask:
		if err := r.svc.DeleteTask(ctx, eff.ID); err != nil {
			logger.Debug("Error deleting task", "id", eff.ID, "err", err)
			return DeleteFailed{ID: eff.ID, Err: err}
		}
		logger.Debug("task deleted", "id", eff.ID)
		return TaskDeleted{ID: eff.ID}
	}

	return nil
}
