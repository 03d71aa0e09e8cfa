// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskman/internal/service"
)

// descriptionIndent lines a description up under the title column.
const descriptionIndent = "          "

// FormatTask formats a task line.
// Format: "{ID:>4}  [ ] {TITLE}\n", with [x] for completed tasks, followed by
// the description on an indented line when there is one.
func FormatTask(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "%4d  %s %s\n", task.ID, checkbox(task), normalizeTitle(task.Title))
	if desc := normalizeText(task.Description); desc != "" {
		fmt.Fprintf(w, "%s%s\n", descriptionIndent, desc)
	}
}

// FormatTaskDetail prints every field of a task, one per line.
func FormatTaskDetail(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "id:          %d\n", task.ID)
	fmt.Fprintf(w, "title:       %s\n", normalizeTitle(task.Title))
	fmt.Fprintf(w, "status:      %s\n", StatusLabel(task.Status))
	if desc := normalizeText(task.Description); desc != "" {
		fmt.Fprintf(w, "description: %s\n", desc)
	}
}

// FormatSummary prints "N tasks, M completed".
func FormatSummary(w io.Writer, tasks []service.Task) {
	done := 0
	for _, t := range tasks {
		if t.Done() {
			done++
		}
	}
	noun := "tasks"
	if len(tasks) == 1 {
		noun = "task"
	}
	fmt.Fprintf(w, "%d %s, %d completed\n", len(tasks), noun, done)
}

// StatusLabel returns the lower-case status name shown to users.
func StatusLabel(status service.Status) string {
	if status == service.StatusCompleted {
		return "completed"
	}
	return "pending"
}

func checkbox(task service.Task) string {
	if task.Done() {
		return "[x]"
	}
	return "[ ]"
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = normalizeText(title)
	if title == "" {
		return "(untitled)"
	}
	return title
}

// normalizeText flattens newlines and trims.
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
