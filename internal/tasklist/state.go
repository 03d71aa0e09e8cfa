// Package tasklist holds the task list's client-side state machine.
//
// Reduce is a pure function over (State, Event) returning the next state and
// the effects to run: backend calls and message timers. The CLI drives it
// synchronously through Controller; the TUI drives it through bubbletea
// commands. Either way the server's full-list response is the single source of
// truth and overwrites any provisional local change.
package tasklist

import (
	"time"

	"taskman/internal/service"
)

// Field limits.
const (
	TitleMaxLength       = 200
	DescriptionMaxLength = 1000
)

// Transient message timing: visible for MessageVisible, then fading for
// MessageFade, then cleared.
const (
	MessageVisible = 3 * time.Second
	MessageFade    = 300 * time.Millisecond
)

// User-facing messages.
const (
	MsgLoadFailed     = "Failed to load tasks. Please try again."
	MsgTitleRequired  = "Task title is required"
	MsgTitleTooLong   = "Task title cannot exceed 200 characters"
	MsgDuplicateTitle = "A task with this title already exists"
	MsgCreateFailed   = "Failed to create task. Please try again."
	MsgUpdateFailed   = "Failed to update task. Please try again."
	MsgDeleteFailed   = "Failed to delete task. Please try again."
	MsgToggleFailed   = "Failed to update task status. Please try again."

	MsgCreated         = "Task created successfully"
	MsgUpdated         = "Task updated successfully"
	MsgDeleted         = "Task deleted successfully"
	MsgMarkedCompleted = "Task marked as completed"
	MsgMarkedPending   = "Task marked as pending"
)

// Phase is the load status of the collection.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoaded
	PhaseLoadError
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseLoaded:
		return "loaded"
	case PhaseLoadError:
		return "load-error"
	default:
		return "idle"
	}
}

// Field names a bounded text field of the form.
type Field int

const (
	FieldTitle Field = iota
	FieldDescription
)

// MaxLength returns the field's character limit.
func (f Field) MaxLength() int {
	if f == FieldDescription {
		return DescriptionMaxLength
	}
	return TitleMaxLength
}

func (f Field) String() string {
	if f == FieldDescription {
		return "description"
	}
	return "title"
}

// State is the whole view state of the task list. It is a value: Reduce
// returns a new State and never mutates the one it was given.
type State struct {
	Phase   Phase
	Loading bool
	Tasks   []service.Task

	// ErrorMessage is the visible error or warning. Transient messages clear
	// themselves; others stay until the next load.
	ErrorMessage string
	Transient    bool
	Fading       bool

	// MessageSeq identifies the current message. Timers carry the sequence
	// they were started for and are ignored once it moves on.
	MessageSeq uint64

	// LastErr is the error behind the first failure since the last user
	// action, for callers that need to classify it (exit codes). A failed
	// resync does not replace the mutation error that caused it.
	LastErr error

	SuccessMessage string

	// Form state.
	FormOpen bool
	Draft    service.Task
	Editing  *service.Task

	// FormSeq identifies the current opening of the form. SubmittedForm is
	// the FormSeq of the last submit; a save result only closes the form it
	// was submitted from.
	FormSeq       uint64
	SubmittedForm uint64

	// Cursor is where the cursor goes after the last paste, in runes.
	Cursor int

	// Delete confirmation state.
	DeleteTarget *service.Task
}

// New returns the initial state.
func New() State {
	return State{Draft: service.NewTask()}
}

// DeleteModalOpen reports whether a delete confirmation is pending.
func (s State) DeleteModalOpen() bool {
	return s.DeleteTarget != nil
}

// ScrollLocked reports whether a modal covers the list.
func (s State) ScrollLocked() bool {
	return s.FormOpen || s.DeleteTarget != nil
}

// IsEditing reports whether the form edits an existing task.
func (s State) IsEditing() bool {
	return s.Editing != nil
}

// Find returns the loaded task with id.
func (s State) Find(id int64) (service.Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// IsTitleDuplicate reports whether another loaded task has the same trimmed,
// case-insensitive title. excludeID skips the task being edited; zero skips
// nothing.
func (s State) IsTitleDuplicate(title string, excludeID int64) bool {
	key := service.TitleKey(title)
	for _, t := range s.Tasks {
		if excludeID != 0 && t.ID == excludeID {
			continue
		}
		if service.TitleKey(t.Title) == key {
			return true
		}
	}
	return false
}

// clone copies the slices and pointers so the returned state shares nothing
// mutable with s.
func (s State) clone() State {
	if s.Tasks != nil {
		tasks := make([]service.Task, len(s.Tasks))
		copy(tasks, s.Tasks)
		s.Tasks = tasks
	}
	if s.Editing != nil {
		editing := *s.Editing
		s.Editing = &editing
	}
	if s.DeleteTarget != nil {
		target := *s.DeleteTarget
		s.DeleteTarget = &target
	}
	return s
}
