package tasklist

import (
	"fmt"

	"taskman/internal/service"
)

// Reduce applies ev to s and returns the next state plus the effects the
// caller must run. Completed effects come back as events.
func Reduce(s State, ev Event) (State, []Effect) {
	s = s.clone()

	switch ev := ev.(type) {
	case LoadRequested:
		s.LastErr = nil
		return s, []Effect{s.beginLoad()}

	case TasksLoaded:
		s.Tasks = make([]service.Task, len(ev.Tasks))
		copy(s.Tasks, ev.Tasks)
		s.Loading = false
		s.Phase = PhaseLoaded
		return s, nil

	case LoadFailed:
		s.Loading = false
		s.Phase = PhaseLoadError
		if s.LastErr == nil {
			s.LastErr = ev.Err
		}
		s.setMessage(MsgLoadFailed)
		return s, nil

	case AddFormToggled:
		if s.FormOpen {
			s.closeForm()
			return s, nil
		}
		s.FormOpen = true
		s.FormSeq++
		s.Editing = nil
		s.Draft = service.NewTask()
		s.Cursor = 0
		return s, nil

	case EditStarted:
		task := ev.Task
		s.Editing = &task
		s.Draft = task
		s.FormOpen = true
		s.FormSeq++
		s.Cursor = len([]rune(task.Title))
		return s, nil

	case FormCancelled:
		s.closeForm()
		return s, nil

	case DraftEdited:
		s.setField(ev.Field, ev.Value)
		return s, nil

	case Pasted:
		max := ev.Field.MaxLength()
		result := Paste(s.field(ev.Field), ev.Start, ev.End, ev.Text, max)
		s.setField(ev.Field, result.Value)
		s.Cursor = result.Cursor
		if result.Truncated {
			return s, s.showTransient(fmt.Sprintf("Pasted text was trimmed to %d characters", max))
		}
		return s, nil

	case Submitted:
		return s.submit()

	case TaskCreated:
		s.Loading = false
		s.closeSubmittedForm()
		s.SuccessMessage = MsgCreated
		return s, []Effect{s.beginLoad()}

	case CreateFailed:
		s.Loading = false
		s.LastErr = ev.Err
		return s, append(s.showTransient(MsgCreateFailed), s.beginLoad())

	case TaskUpdated:
		id := ev.Task.ID
		if id == 0 && s.Editing != nil {
			id = s.Editing.ID
		}
		s.replace(id, ev.Task)
		s.Loading = false
		s.closeSubmittedForm()
		s.SuccessMessage = MsgUpdated
		return s, []Effect{s.beginLoad()}

	case UpdateFailed:
		s.Loading = false
		s.LastErr = ev.Err
		return s, append(s.showTransient(MsgUpdateFailed), s.beginLoad())

	case DeleteRequested:
		task := ev.Task
		s.DeleteTarget = &task
		return s, nil

	case DeleteCancelled:
		s.DeleteTarget = nil
		return s, nil

	case DeleteConfirmed:
		if s.DeleteTarget == nil || !s.DeleteTarget.HasID() {
			return s, nil
		}
		s.startAction()
		return s, []Effect{DeleteTask{ID: s.DeleteTarget.ID}}

	case TaskDeleted:
		s.remove(ev.ID)
		s.Loading = false
		s.DeleteTarget = nil
		s.SuccessMessage = MsgDeleted
		return s, []Effect{s.beginLoad()}

	case DeleteFailed:
		s.Loading = false
		s.DeleteTarget = nil
		s.LastErr = ev.Err
		msg := service.UserMessage(ev.Err, MsgDeleteFailed)
		return s, append(s.showTransient(msg), s.beginLoad())

	case ToggleRequested:
		idx := s.index(ev.ID)
		if idx < 0 || ev.ID == 0 {
			return s, nil
		}
		s.LastErr = nil
		s.SuccessMessage = ""
		updated := s.Tasks[idx]
		updated.Status = updated.Status.Toggled()
		s.Tasks[idx] = updated
		return s, []Effect{UpdateTask{ID: ev.ID, Task: updated, Purpose: UpdateToggle}}

	case StatusToggled:
		s.replace(ev.Task.ID, ev.Task)
		s.SuccessMessage = MsgMarkedPending
		if ev.Task.Done() {
			s.SuccessMessage = MsgMarkedCompleted
		}
		return s, []Effect{s.beginLoad()}

	case ToggleFailed:
		s.LastErr = ev.Err
		return s, append(s.showTransient(MsgToggleFailed), s.beginLoad())

	case MessageTimerFired:
		if ev.Seq != s.MessageSeq || s.ErrorMessage == "" {
			return s, nil
		}
		if ev.Phase == TimerFade {
			s.Fading = true
			return s, []Effect{ScheduleMessageClear{Seq: s.MessageSeq, Phase: TimerClear, After: MessageFade}}
		}
		s.ErrorMessage = ""
		s.Transient = false
		s.Fading = false
		return s, nil
	}

	return s, nil
}

func (s *State) submit() (State, []Effect) {
	draft, err := normalizeDraft(s.Draft)
	if err != nil {
		s.LastErr = err
		return *s, s.showTransient(err.Error())
	}
	s.Draft = draft

	var excludeID int64
	if s.Editing != nil {
		excludeID = s.Editing.ID
	}
	if s.IsTitleDuplicate(draft.Title, excludeID) {
		s.LastErr = &service.ValidationError{Field: "title", Message: MsgDuplicateTitle}
		return *s, s.showTransient(MsgDuplicateTitle)
	}

	s.startAction()
	s.SubmittedForm = s.FormSeq
	if s.Editing != nil {
		draft.ID = s.Editing.ID
		return *s, []Effect{UpdateTask{ID: s.Editing.ID, Task: draft, Purpose: UpdateEdit}}
	}
	return *s, []Effect{CreateTask{Task: draft}}
}

// beginLoad enters the loading phase and returns the ListTasks effect.
// A persistent message is dropped; a transient one runs out its timer.
func (s *State) beginLoad() Effect {
	s.Loading = true
	s.Phase = PhaseLoading
	if !s.Transient {
		s.ErrorMessage = ""
	}
	return ListTasks{}
}

// startAction marks the start of a mutating network call.
func (s *State) startAction() {
	s.Loading = true
	s.LastErr = nil
	s.SuccessMessage = ""
	s.clearMessage()
}

// setMessage shows a persistent message and invalidates pending timers.
func (s *State) setMessage(msg string) {
	s.MessageSeq++
	s.ErrorMessage = msg
	s.Transient = false
	s.Fading = false
}

// showTransient shows msg in place of any success message and schedules its
// removal. Any pending timer is superseded because the sequence moves on.
func (s *State) showTransient(msg string) []Effect {
	s.MessageSeq++
	s.SuccessMessage = ""
	s.ErrorMessage = msg
	s.Transient = true
	s.Fading = false
	return []Effect{ScheduleMessageClear{Seq: s.MessageSeq, Phase: TimerFade, After: MessageVisible}}
}

func (s *State) clearMessage() {
	s.MessageSeq++
	s.ErrorMessage = ""
	s.Transient = false
	s.Fading = false
}

func (s *State) closeForm() {
	s.FormOpen = false
	s.Editing = nil
	s.Draft = service.NewTask()
	s.Cursor = 0
}

// closeSubmittedForm closes the form only if it is still the one that was
// submitted. A form reopened while the save was in flight keeps its draft.
func (s *State) closeSubmittedForm() {
	if s.FormOpen && s.FormSeq == s.SubmittedForm {
		s.closeForm()
	}
}

func (s *State) field(f Field) string {
	if f == FieldDescription {
		return s.Draft.Description
	}
	return s.Draft.Title
}

func (s *State) setField(f Field, value string) {
	if f == FieldDescription {
		s.Draft.Description = value
		return
	}
	s.Draft.Title = value
}

func (s *State) index(id int64) int {
	for i, t := range s.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *State) replace(id int64, task service.Task) {
	if idx := s.index(id); idx >= 0 {
		s.Tasks[idx] = task
	}
}

func (s *State) remove(id int64) {
	kept := s.Tasks[:0]
	for _, t := range s.Tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.Tasks = kept
}
