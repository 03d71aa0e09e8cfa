package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskman/internal/output"
	"taskman/internal/service"
	"taskman/internal/tasklist"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	fadingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("52"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	infoStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	boxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
	dangerBoxStyle = boxStyle.BorderForeground(lipgloss.Color("196"))
)

func (m *model) View() string {
	if m.screen == screenLogin {
		return m.viewLogin()
	}
	return m.viewTasks()
}

func (m *model) viewLogin() string {
	f := m.login
	var b strings.Builder

	heading := "Log in"
	if f.register {
		heading = "Create account"
	}
	b.WriteString(headerStyle.Render("taskman · "+heading) + "\n\n")
	b.WriteString(labelStyle.Render("Username") + "\n" + f.username.View() + "\n\n")
	b.WriteString(labelStyle.Render("Password") + "\n" + f.password.View() + "\n\n")

	switch {
	case f.busy:
		b.WriteString(mutedStyle.Render("Please wait...") + "\n")
	case f.err != "":
		b.WriteString(errorStyle.Render(f.err) + "\n")
	case f.info != "":
		b.WriteString(infoStyle.Render(f.info) + "\n")
	}

	toggle := "ctrl+r create account"
	if f.register {
		toggle = "ctrl+r back to login"
	}
	b.WriteString("\n" + mutedStyle.Render("enter submit · tab switch field · "+toggle+" · esc quit"))
	return boxStyle.Render(b.String())
}

func (m *model) viewTasks() string {
	s := m.state
	var b strings.Builder

	b.WriteString(headerStyle.Render("Tasks"))
	if s.Phase == tasklist.PhaseLoaded || len(s.Tasks) > 0 {
		b.WriteString(" " + mutedStyle.Render(summary(s.Tasks)))
	}
	if s.Loading {
		b.WriteString(" " + mutedStyle.Render("(loading...)"))
	}
	b.WriteString("\n")
	b.WriteString(m.viewStatus() + "\n")

	switch {
	case s.FormOpen:
		b.WriteString(m.viewForm())
	case s.DeleteModalOpen():
		b.WriteString(m.viewList() + "\n" + viewDelete(*s.DeleteTarget))
	default:
		b.WriteString(m.viewList())
	}

	b.WriteString("\n" + mutedStyle.Render(m.help()))
	return b.String()
}

func (m *model) viewStatus() string {
	s := m.state
	switch {
	case s.ErrorMessage != "" && s.Fading:
		return fadingStyle.Render(s.ErrorMessage)
	case s.ErrorMessage != "":
		return errorStyle.Render(s.ErrorMessage)
	case s.SuccessMessage != "":
		return successStyle.Render(s.SuccessMessage)
	}
	return ""
}

func (m *model) viewList() string {
	s := m.state
	if len(s.Tasks) == 0 {
		if s.Phase == tasklist.PhaseLoading || s.Phase == tasklist.PhaseIdle {
			return mutedStyle.Render("Loading tasks...") + "\n"
		}
		if s.Phase == tasklist.PhaseLoadError {
			return mutedStyle.Render("Press r to retry.") + "\n"
		}
		return mutedStyle.Render("No tasks yet. Press a to add one.") + "\n"
	}

	var b strings.Builder
	for i, task := range s.Tasks {
		marker := "  "
		if i == m.selected {
			marker = "> "
		}
		box := "[ ]"
		if task.Done() {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s", box, task.Title)
		switch {
		case i == m.selected:
			line = selectedStyle.Render(line)
		case task.Done():
			line = doneStyle.Render(line)
		}
		b.WriteString(marker + line + "\n")
		if task.Description != "" {
			b.WriteString("      " + mutedStyle.Render(task.Description) + "\n")
		}
	}
	return b.String()
}

func (m *model) viewForm() string {
	s := m.state
	heading := "New task"
	action := "add"
	if s.IsEditing() {
		heading = "Edit task"
		action = "save"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(heading) + "\n\n")
	b.WriteString(labelStyle.Render("Title") + " " + counter(s.Draft.Title, tasklist.TitleMaxLength) + "\n")
	b.WriteString(m.title.View() + "\n\n")
	b.WriteString(labelStyle.Render("Description") + " " + counter(s.Draft.Description, tasklist.DescriptionMaxLength) + "\n")
	b.WriteString(m.description.View() + "\n\n")
	hint := "enter " + action
	if s.Loading {
		hint = "saving..."
	}
	b.WriteString(mutedStyle.Render(hint + " · tab switch field · ctrl+v paste · esc cancel"))
	return boxStyle.Render(b.String()) + "\n"
}

func viewDelete(task service.Task) string {
	title := task.Title
	if title == "" {
		title = fmt.Sprintf("task %d", task.ID)
	}
	body := fmt.Sprintf("Delete %q?\nThis cannot be undone.\n\n%s", title, mutedStyle.Render("y delete · n cancel"))
	return dangerBoxStyle.Render(body) + "\n"
}

func (m *model) help() string {
	switch {
	case m.state.DeleteModalOpen(), m.state.FormOpen:
		return ""
	}
	return "↑/k ↓/j move · a add · e edit · space toggle · d delete · r reload · L logout · q quit"
}

func summary(tasks []service.Task) string {
	var buf strings.Builder
	output.FormatSummary(&buf, tasks)
	return strings.TrimSpace(buf.String())
}

func counter(value string, limit int) string {
	return mutedStyle.Render(fmt.Sprintf("%d/%d", len([]rune(value)), limit))
}
