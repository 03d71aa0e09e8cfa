package output

import (
	"bytes"
	"testing"

	"taskman/internal/service"
)

func TestFormatTask(t *testing.T) {
	var buf bytes.Buffer
	FormatTask(&buf, service.Task{ID: 3, Title: "Buy milk", Status: service.StatusPending})
	FormatTask(&buf, service.Task{ID: 12, Title: "Write\nreport", Description: "quarterly", Status: service.StatusCompleted})

	expected := "   3  [ ] Buy milk\n" +
		"  12  [x] Write report\n" +
		"          quarterly\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatTaskUntitled(t *testing.T) {
	var buf bytes.Buffer
	FormatTask(&buf, service.Task{ID: 1, Title: "   "})

	expected := "   1  [ ] (untitled)\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatTaskDetail(t *testing.T) {
	var buf bytes.Buffer
	FormatTaskDetail(&buf, service.Task{ID: 7, Title: "Buy milk", Description: "2 litres", Status: service.StatusCompleted})

	expected := "id:          7\n" +
		"title:       Buy milk\n" +
		"status:      completed\n" +
		"description: 2 litres\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatSummary(t *testing.T) {
	var buf bytes.Buffer
	FormatSummary(&buf, []service.Task{
		{ID: 1, Status: service.StatusCompleted},
		{ID: 2, Status: service.StatusPending},
	})
	if buf.String() != "2 tasks, 1 completed\n" {
		t.Errorf("unexpected summary %q", buf.String())
	}

	buf.Reset()
	FormatSummary(&buf, []service.Task{{ID: 1}})
	if buf.String() != "1 task, 0 completed\n" {
		t.Errorf("unexpected summary %q", buf.String())
	}
}
