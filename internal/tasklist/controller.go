package tasklist

import (
	"context"
	"sync"
	"time"

	"taskman/internal/service"
)

// Timer is a pending message timer.
type Timer interface {
	Stop() bool
}

// Clock schedules message timers. The real clock wraps time.AfterFunc.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock returns the wall clock.
func RealClock() Clock {
	return realClock{}
}

// Controller drives Reduce synchronously: each call runs the resulting
// backend effects to completion before returning. At most one message timer
// is pending at a time.
type Controller struct {
	mu     sync.Mutex
	state  State
	runner *Runner
	clock  Clock
	timer  Timer
	closed bool

	// ctx is used for events delivered by timers.
	ctx context.Context
}

// NewController creates a Controller over svc. A nil clock means RealClock.
func NewController(ctx context.Context, svc service.Service, clock Clock) *Controller {
	if clock == nil {
		clock = RealClock()
	}
	return &Controller{
		state:  New(),
		runner: NewRunner(svc),
		clock:  clock,
		ctx:    ctx,
	}
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Dispatch applies ev and every event produced by the effects it triggers,
// then returns the resulting state.
func (c *Controller) Dispatch(ctx context.Context, ev Event) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	queue := []Event{ev}
	for len(queue) > 0 {
		next, effects := Reduce(c.state, queue[0])
		queue = queue[1:]
		c.state = next

		for _, eff := range effects {
			if sched, ok := eff.(ScheduleMessageClear); ok {
				c.schedule(sched)
				continue
			}
			if done := c.runner.Run(ctx, eff); done != nil {
				queue = append(queue, done)
			}
		}
	}
	return c.state.clone()
}

// schedule replaces the pending timer. Caller holds mu. A closed controller
// arms no timers, so a callback that raced with Close ends the chain.
func (c *Controller) schedule(eff ScheduleMessageClear) {
	if c.closed {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	fired := MessageTimerFired{Seq: eff.Seq, Phase: eff.Phase}
	c.timer = c.clock.AfterFunc(eff.After, func() {
		c.Dispatch(c.ctx, fired)
	})
}

// Close stops the pending message timer and prevents new ones.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// Load fetches the collection.
func (c *Controller) Load(ctx context.Context) State {
	return c.Dispatch(ctx, LoadRequested{})
}

// OpenAddForm opens the form with an empty draft.
func (c *Controller) OpenAddForm(ctx context.Context) State {
	state := c.State()
	if state.FormOpen && !state.IsEditing() {
		return state
	}
	if state.FormOpen {
		c.Dispatch(ctx, FormCancelled{})
	}
	return c.Dispatch(ctx, AddFormToggled{})
}

// StartEditing opens the form on a copy of task.
func (c *Controller) StartEditing(ctx context.Context, task service.Task) State {
	return c.Dispatch(ctx, EditStarted{Task: task})
}

// CancelForm closes the form.
func (c *Controller) CancelForm(ctx context.Context) State {
	return c.Dispatch(ctx, FormCancelled{})
}

// SetTitle replaces the draft title.
func (c *Controller) SetTitle(ctx context.Context, title string) State {
	return c.Dispatch(ctx, DraftEdited{Field: FieldTitle, Value: title})
}

// SetDescription replaces the draft description.
func (c *Controller) SetDescription(ctx context.Context, description string) State {
	return c.Dispatch(ctx, DraftEdited{Field: FieldDescription, Value: description})
}

// Paste inserts text into field over the rune selection [start, end).
func (c *Controller) Paste(ctx context.Context, field Field, start, end int, text string) State {
	return c.Dispatch(ctx, Pasted{Field: field, Start: start, End: end, Text: text})
}

// Submit validates the draft and creates or updates the task.
func (c *Controller) Submit(ctx context.Context) State {
	return c.Dispatch(ctx, Submitted{})
}

// RequestDelete asks for confirmation to delete task.
func (c *Controller) RequestDelete(ctx context.Context, task service.Task) State {
	return c.Dispatch(ctx, DeleteRequested{Task: task})
}

// CancelDelete dismisses the delete confirmation.
func (c *Controller) CancelDelete(ctx context.Context) State {
	return c.Dispatch(ctx, DeleteCancelled{})
}

// ConfirmDelete deletes the pending target.
func (c *Controller) ConfirmDelete(ctx context.Context) State {
	return c.Dispatch(ctx, DeleteConfirmed{})
}

// ToggleStatus flips the status of the loaded task with id.
func (c *Controller) ToggleStatus(ctx context.Context, id int64) State {
	return c.Dispatch(ctx, ToggleRequested{ID: id})
}
