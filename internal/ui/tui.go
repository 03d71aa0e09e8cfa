// Package ui provides the interactive terminal interface.
//
// The model drives the same tasklist reducer the CLI uses. Backend effects run
// as bubbletea commands and come back as tasklist events tagged with the login
// session; message timers are tea.Tick commands that deliver
// tasklist.MessageTimerFired.
package ui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"taskman/internal/auth"
	"taskman/internal/logging"
	"taskman/internal/service"
	"taskman/internal/tasklist"
)

// SessionExpiredMessage is shown on the login view after a 401.
const SessionExpiredMessage = "Session expired. Please log in again."

// RegisteredMessage is shown when the server sends no message of its own.
const RegisteredMessage = "Registration successful. Please log in."

// Run starts the TUI and blocks until the user quits or ctx is done.
func Run(ctx context.Context, svc service.Service, authClient *auth.Client) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newModel(ctx, svc, authClient)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

type screen int

const (
	screenLogin screen = iota
	screenTasks
)

// loginResultMsg carries the outcome of a login attempt.
type loginResultMsg struct {
	err error
}

// registerResultMsg carries the outcome of a registration.
type registerResultMsg struct {
	message string
	err     error
}

// sessionEvent is a backend result tagged with the session that asked for
// it. Results from an earlier session are dropped.
type sessionEvent struct {
	session uint64
	ev      tasklist.Event
}

// clipboardMsg carries clipboard text read for a ctrl+v paste.
type clipboardMsg struct {
	field tasklist.Field
	text  string
	err   error
}

type model struct {
	ctx    context.Context
	auth   *auth.Client
	runner *tasklist.Runner

	screen   screen
	session  uint64
	state    tasklist.State
	selected int

	title       textinput.Model
	description textinput.Model
	focus       tasklist.Field

	login loginForm

	width int

	// after schedules msg after d. Tests replace it to observe timers.
	after func(d time.Duration, msg tea.Msg) tea.Cmd
	// readClipboard backs ctrl+v.
	readClipboard func() (string, error)
}

func newModel(ctx context.Context, svc service.Service, authClient *auth.Client) *model {
	m := &model{
		ctx:           ctx,
		auth:          authClient,
		runner:        tasklist.NewRunner(svc),
		state:         tasklist.New(),
		title:         newInput("Title", tasklist.TitleMaxLength),
		description:   newInput("Description (optional)", tasklist.DescriptionMaxLength),
		login:         newLoginForm(),
		after:         tick,
		readClipboard: clipboard.ReadAll,
	}
	if authClient.Guard().Allow() {
		m.screen = screenTasks
	} else {
		m.screen = screenLogin
		m.login.focusField(0)
	}
	return m
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Prompt = ""
	in.Cursor.SetMode(cursor.CursorStatic)
	return in
}

func tick(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

func (m *model) Init() tea.Cmd {
	if m.screen == screenTasks {
		return m.dispatch(tasklist.LoadRequested{})
	}
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.title.Width = inputWidth(msg.Width)
		m.description.Width = inputWidth(msg.Width)
		return m, nil

	case tasklist.MessageTimerFired:
		return m, m.dispatch(msg)

	case sessionEvent:
		if msg.session != m.session || m.screen != screenTasks {
			return m, nil
		}
		return m, m.dispatch(msg.ev)

	case loginResultMsg:
		return m, m.loginFinished(msg)

	case registerResultMsg:
		m.registerFinished(msg)
		return m, nil

	case clipboardMsg:
		if msg.err != nil {
			logging.FromContext(m.ctx).Debug("clipboard read failed", "err", msg.err)
			return m, nil
		}
		if m.screen != screenTasks || !m.state.FormOpen || msg.field != m.focus {
			return m, nil
		}
		return m, m.paste(msg.text)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.screen == screenLogin {
			return m, m.updateLogin(msg)
		}
		return m, m.updateTasks(msg)
	}
	return m, nil
}

// dispatch runs ev through the reducer and turns the effects into commands.
func (m *model) dispatch(ev tasklist.Event) tea.Cmd {
	wasOpen := m.state.FormOpen
	next, effects := tasklist.Reduce(m.state, ev)
	m.state = next

	if failed, ok := ev.(tasklist.LoadFailed); ok && unauthorized(failed.Err) {
		m.logout()
		m.login.err = SessionExpiredMessage
		return nil
	}

	m.syncForm(wasOpen)
	m.clampSelection()

	cmds := make([]tea.Cmd, 0, len(effects))
	for _, eff := range effects {
		cmds = append(cmds, m.command(eff))
	}
	return tea.Batch(cmds...)
}

func (m *model) command(eff tasklist.Effect) tea.Cmd {
	if sched, ok := eff.(tasklist.ScheduleMessageClear); ok {
		return m.after(sched.After, tasklist.MessageTimerFired{Seq: sched.Seq, Phase: sched.Phase})
	}
	ctx, runner, session := m.ctx, m.runner, m.session
	return func() tea.Msg {
		if ev := runner.Run(ctx, eff); ev != nil {
			return sessionEvent{session: session, ev: ev}
		}
		return nil
	}
}

// syncForm copies the draft into the inputs after a reducer step.
func (m *model) syncForm(wasOpen bool) {
	if !m.state.FormOpen {
		m.title.Blur()
		m.description.Blur()
		m.title.SetValue("")
		m.description.SetValue("")
		return
	}
	if m.title.Value() != m.state.Draft.Title {
		m.title.SetValue(m.state.Draft.Title)
	}
	if m.description.Value() != m.state.Draft.Description {
		m.description.SetValue(m.state.Draft.Description)
	}
	if !wasOpen {
		m.setFocus(tasklist.FieldTitle)
		m.title.CursorEnd()
	}
}

func (m *model) setFocus(f tasklist.Field) {
	m.focus = f
	if f == tasklist.FieldDescription {
		m.title.Blur()
		m.description.Focus()
		return
	}
	m.description.Blur()
	m.title.Focus()
}

func (m *model) input(f tasklist.Field) *textinput.Model {
	if f == tasklist.FieldDescription {
		return &m.description
	}
	return &m.title
}

func (m *model) clampSelection() {
	if m.selected >= len(m.state.Tasks) {
		m.selected = len(m.state.Tasks) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *model) current() (service.Task, bool) {
	if m.selected < 0 || m.selected >= len(m.state.Tasks) {
		return service.Task{}, false
	}
	return m.state.Tasks[m.selected], true
}

func (m *model) updateTasks(msg tea.KeyMsg) tea.Cmd {
	switch {
	case m.state.DeleteModalOpen():
		switch msg.String() {
		case "y", "enter":
			return m.dispatch(tasklist.DeleteConfirmed{})
		case "n", "esc":
			return m.dispatch(tasklist.DeleteCancelled{})
		}
		return nil
	case m.state.FormOpen:
		return m.updateForm(msg)
	}

	switch msg.String() {
	case "q":
		return tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.state.Tasks)-1 {
			m.selected++
		}
	case "a":
		return m.dispatch(tasklist.AddFormToggled{})
	case "e", "enter":
		if task, ok := m.current(); ok {
			return m.dispatch(tasklist.EditStarted{Task: task})
		}
	case " ", "x":
		if task, ok := m.current(); ok {
			return m.dispatch(tasklist.ToggleRequested{ID: task.ID})
		}
	case "d":
		if task, ok := m.current(); ok {
			return m.dispatch(tasklist.DeleteRequested{Task: task})
		}
	case "r":
		return m.dispatch(tasklist.LoadRequested{})
	case "L":
		m.logout()
	}
	return nil
}

func (m *model) updateForm(msg tea.KeyMsg) tea.Cmd {
	if msg.Paste {
		return m.paste(string(msg.Runes))
	}

	switch msg.String() {
	case "esc":
		return m.dispatch(tasklist.FormCancelled{})
	case "enter":
		if m.state.Loading {
			return nil
		}
		return m.dispatch(tasklist.Submitted{})
	case "tab", "shift+tab":
		if m.focus == tasklist.FieldTitle {
			m.setFocus(tasklist.FieldDescription)
		} else {
			m.setFocus(tasklist.FieldTitle)
		}
		return nil
	case "ctrl+v":
		read, field := m.readClipboard, m.focus
		return func() tea.Msg {
			text, err := read()
			return clipboardMsg{field: field, text: text, err: err}
		}
	}

	in := m.input(m.focus)
	before := in.Value()
	updated, cmd := in.Update(msg)
	*in = updated
	if in.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, m.dispatch(tasklist.DraftEdited{Field: m.focus, Value: in.Value()}))
}

// paste inserts text at the focused input's cursor. The inputs are single
// line, so line breaks become spaces.
func (m *model) paste(text string) tea.Cmd {
	text = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(text)
	field := m.focus
	pos := m.input(field).Position()
	cmd := m.dispatch(tasklist.Pasted{Field: field, Start: pos, End: pos, Text: text})
	m.input(field).SetCursor(m.state.Cursor)
	return cmd
}

// logout drops the credential and the session's state. Requests still in
// flight are orphaned by the new session number. The message sequence carries
// over so timers from the old session stay stale.
func (m *model) logout() {
	if err := m.auth.Logout(); err != nil {
		logging.FromContext(m.ctx).Warn("failed to clear token", "err", err)
	}
	m.session++
	seq := m.state.MessageSeq
	m.state = tasklist.New()
	m.state.MessageSeq = seq
	m.selected = 0
	m.syncForm(false)
	m.screen = screenLogin
	m.login.reset()
}

func (m *model) loginFinished(msg loginResultMsg) tea.Cmd {
	m.login.busy = false
	if msg.err != nil {
		m.login.err = service.UserMessage(msg.err, auth.LoginFailedMessage)
		return nil
	}
	m.login.reset()
	m.screen = screenTasks
	return m.dispatch(tasklist.LoadRequested{})
}

func (m *model) registerFinished(msg registerResultMsg) {
	m.login.busy = false
	if msg.err != nil {
		m.login.err = service.UserMessage(msg.err, auth.RegisterFailedMessage)
		return
	}
	m.login.register = false
	m.login.err = ""
	m.login.info = msg.message
	if m.login.info == "" {
		m.login.info = RegisteredMessage
	}
	m.login.password.SetValue("")
	m.login.focusField(1)
}

func unauthorized(err error) bool {
	var serverErr *service.ServerError
	if errors.As(err, &serverErr) {
		return serverErr.Status == http.StatusUnauthorized
	}
	var authErr *service.AuthError
	return errors.As(err, &authErr)
}

func inputWidth(termWidth int) int {
	w := termWidth - 8
	if w < 20 {
		return 20
	}
	return w
}
