package tasklist

import (
	"time"

	"taskman/internal/service"
)

// Event is an input to Reduce: a user action or a completed effect.
type Event interface {
	isEvent()
}

// LoadRequested asks for a full reload of the collection.
type LoadRequested struct{}

// TasksLoaded carries the server's collection.
type TasksLoaded struct {
	Tasks []service.Task
}

// LoadFailed reports a failed ListTasks.
type LoadFailed struct {
	Err error
}

// AddFormToggled opens the form with a fresh draft, or closes it.
type AddFormToggled struct{}

// EditStarted opens the form on a copy of Task.
type EditStarted struct {
	Task service.Task
}

// FormCancelled closes the form and discards the draft.
type FormCancelled struct{}

// DraftEdited replaces one field of the draft, e.g. on each keystroke.
type DraftEdited struct {
	Field Field
	Value string
}

// Pasted inserts Text into Field over the selection [Start, End), in runes.
type Pasted struct {
	Field Field
	Start int
	End   int
	Text  string
}

// Submitted validates the draft and creates or updates it.
type Submitted struct{}

// TaskCreated is the server's copy of a created task.
type TaskCreated struct {
	Task service.Task
}

// CreateFailed reports a failed CreateTask.
type CreateFailed struct {
	Err error
}

// TaskUpdated is the server's copy of an edited task.
type TaskUpdated struct {
	Task service.Task
}

// UpdateFailed reports a failed edit.
type UpdateFailed struct {
	ID  int64
	Err error
}

// DeleteRequested opens the confirmation for Task. Task need not be loaded.
type DeleteRequested struct {
	Task service.Task
}

// DeleteCancelled closes the confirmation.
type DeleteCancelled struct{}

// DeleteConfirmed deletes the pending target.
type DeleteConfirmed struct{}

// TaskDeleted reports a successful delete.
type TaskDeleted struct {
	ID int64
}

// DeleteFailed reports a failed delete.
type DeleteFailed struct {
	ID  int64
	Err error
}

// ToggleRequested flips the status of the loaded task with ID.
type ToggleRequested struct {
	ID int64
}

// StatusToggled is the server's copy after a toggle.
type StatusToggled struct {
	Task service.Task
}

// ToggleFailed reports a failed toggle.
type ToggleFailed struct {
	ID  int64
	Err error
}

// MessageTimerFired is delivered when a ScheduleMessageClear elapses.
type MessageTimerFired struct {
	Seq   uint64
	Phase TimerPhase
}

func (LoadRequested) isEvent()     {}
func (TasksLoaded) isEvent()       {}
func (LoadFailed) isEvent()        {}
func (AddFormToggled) isEvent()    {}
func (EditStarted) isEvent()       {}
func (FormCancelled) isEvent()     {}
func (DraftEdited) isEvent()       {}
func (Pasted) isEvent()            {}
func (Submitted) isEvent()         {}
func (TaskCreated) isEvent()       {}
func (CreateFailed) isEvent()      {}
func (TaskUpdated) isEvent()       {}
func (UpdateFailed) isEvent()      {}
func (DeleteRequested) isEvent()   {}
func (DeleteCancelled) isEvent()   {}
func (DeleteConfirmed) isEvent()   {}
func (TaskDeleted) isEvent()       {}
func (DeleteFailed) isEvent()      {}
func (ToggleRequested) isEvent()   {}
func (StatusToggled) isEvent()     {}
func (ToggleFailed) isEvent()      {}
func (MessageTimerFired) isEvent() {}

// Effect is work requested by Reduce.
type Effect interface {
	isEffect()
}

// ListTasks fetches the whole collection.
type ListTasks struct{}

// CreateTask creates Task.
type CreateTask struct {
	Task service.Task
}

// UpdatePurpose tells which flow an UpdateTask belongs to.
type UpdatePurpose int

const (
	UpdateEdit UpdatePurpose = iota
	UpdateToggle
)

// UpdateTask sends the full payload for ID.
type UpdateTask struct {
	ID      int64
	Task    service.Task
	Purpose UpdatePurpose
}

// DeleteTask deletes ID.
type DeleteTask struct {
	ID int64
}

// TimerPhase is the stage of a transient message.
type TimerPhase int

const (
	// TimerFade starts the fade-out of a visible message.
	TimerFade TimerPhase = iota
	// TimerClear removes the faded message.
	TimerClear
)

// ScheduleMessageClear asks for MessageTimerFired{Seq, Phase} after After.
// Scheduling replaces any pending message timer.
type ScheduleMessageClear struct {
	Seq   uint64
	Phase TimerPhase
	After time.Duration
}

func (ListTasks) isEffect()            {}
func (CreateTask) isEffect()           {}
func (UpdateTask) isEffect()           {}
func (DeleteTask) isEffect()           {}
func (ScheduleMessageClear) isEffect() {}
