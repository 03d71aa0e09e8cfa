package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// loginForm is the login and registration screen.
type loginForm struct {
	username textinput.Model
	password textinput.Model
	focus    int

	// register switches the form to account creation.
	register bool
	busy     bool
	err      string
	info     string
}

func newLoginForm() loginForm {
	f := loginForm{
		username: newInput("Username", 20),
		password: newInput("Password", 40),
	}
	f.password.EchoMode = textinput.EchoPassword
	f.password.EchoCharacter = '•'
	return f
}

func (f *loginForm) focusField(i int) {
	f.focus = i
	if i == 1 {
		f.username.Blur()
		f.password.Focus()
		return
	}
	f.password.Blur()
	f.username.Focus()
}

func (f *loginForm) reset() {
	f.username.SetValue("")
	f.password.SetValue("")
	f.register = false
	f.busy = false
	f.err = ""
	f.info = ""
	f.focusField(0)
}

func (m *model) updateLogin(msg tea.KeyMsg) tea.Cmd {
	f := &m.login
	if f.busy {
		return nil
	}

	switch msg.String() {
	case "esc":
		return tea.Quit
	case "tab", "shift+tab", "up", "down":
		f.focusField(1 - f.focus)
		return nil
	case "ctrl+r":
		f.register = !f.register
		f.err = ""
		f.info = ""
		return nil
	case "enter":
		if f.focus == 0 && f.password.Value() == "" {
			f.focusField(1)
			return nil
		}
		return m.submitLogin()
	}

	var cmd tea.Cmd
	if f.focus == 1 {
		f.password, cmd = f.password.Update(msg)
	} else {
		f.username, cmd = f.username.Update(msg)
	}
	return cmd
}

func (m *model) submitLogin() tea.Cmd {
	f := &m.login
	f.busy = true
	f.err = ""
	f.info = ""

	ctx, client := m.ctx, m.auth
	username, password := f.username.Value(), f.password.Value()
	if f.register {
		return func() tea.Msg {
			msg, err := client.Register(ctx, username, password)
			return registerResultMsg{message: msg, err: err}
		}
	}
	return func() tea.Msg {
		_, err := client.Login(ctx, username, password)
		return loginResultMsg{err: err}
	}
}
