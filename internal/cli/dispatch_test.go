package cli_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"taskman/internal/auth"
	"taskman/internal/cli"
	"taskman/internal/commands"
	"taskman/internal/config"
	"taskman/internal/exitcode"
	"taskman/internal/testutil"
)

// newDispatcher wires the dispatcher to a FakeBackend and an in-memory store.
func newDispatcher(t *testing.T) (*cli.Dispatcher, *auth.MemoryStore, *testutil.FakeBackend) {
	t.Helper()

	backend := testutil.NewFakeBackend()
	t.Cleanup(backend.Close)
	t.Setenv(config.EnvBaseURL, backend.URL())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	store := auth.NewMemoryStore()
	d := cli.NewDispatcher(commands.DefaultRegistry, nil, func(cfg *config.Config) auth.Store {
		return store
	})
	return d, store, backend
}

func run(d *cli.Dispatcher, args ...string) (stdout, stderr string, code int) {
	var outBuf, errBuf bytes.Buffer
	code = d.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	d, _, _ := newDispatcher(t)

	_, stderr, code := run(d, "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	d, _, _ := newDispatcher(t)

	_, stderr, code := run(d, "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	d, _, _ := newDispatcher(t)

	stdout, stderr, code := run(d, "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	d, _, _ := newDispatcher(t)

	stdout, stderr, code := run(d, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "taskman 0.1.0\n" {
		t.Errorf("expected 'taskman 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	d, _, _ := newDispatcher(t)

	_, stderr, code := run(d, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_ListHasNoStatusFilter(t *testing.T) {
	d, _, _ := newDispatcher(t)

	_, stderr, code := run(d, "list", "--open")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -open\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	d, _, _ := newDispatcher(t)

	_, stderr, code := run(d, "add", "-d")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -d\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_GuardRefusesWithoutToken(t *testing.T) {
	d, _, backend := newDispatcher(t)

	for _, args := range [][]string{nil, {"list"}, {"add", "Buy milk"}, {"rm", "1"}} {
		_, stderr, code := run(d, args...)
		if code != exitcode.AuthError {
			t.Errorf("%v: expected exit code %d, got %d", args, exitcode.AuthError, code)
		}
		expected := "error: not logged in (run: taskman login)\n"
		if stderr != expected {
			t.Errorf("%v: expected %q, got %q", args, expected, stderr)
		}
	}
	if n := backend.RequestCount("GET /api/tasks/"); n != 0 {
		t.Errorf("guarded commands must not reach the backend, got %d list calls", n)
	}
}

func TestDispatcher_EndToEnd(t *testing.T) {
	d, store, _ := newDispatcher(t)

	if _, stderr, code := run(d, "register", "alice", "secret123"); code != exitcode.Success {
		t.Fatalf("register: code %d, stderr %q", code, stderr)
	}
	if _, stderr, code := run(d, "login", "alice", "secret123"); code != exitcode.Success {
		t.Fatalf("login: code %d, stderr %q", code, stderr)
	}
	if credential, ok := store.Get(); !ok || !strings.HasPrefix(credential, "Bearer ") {
		t.Fatalf("expected a stored Bearer credential, got %q", credential)
	}

	if _, stderr, code := run(d, "add", "-d", "2 litres", "Buy", "milk"); code != exitcode.Success {
		t.Fatalf("add: code %d, stderr %q", code, stderr)
	}
	if _, stderr, code := run(d, "add", "buy MILK"); code != exitcode.UserError || stderr != "error: A task with this title already exists\n" {
		t.Errorf("duplicate add: code %d, stderr %q", code, stderr)
	}
	if _, stderr, code := run(d, "done", "#1"); code != exitcode.Success {
		t.Fatalf("done: code %d, stderr %q", code, stderr)
	}

	stdout, stderr, code := run(d, "ls")
	if code != exitcode.Success {
		t.Fatalf("list: code %d, stderr %q", code, stderr)
	}
	expected := "   1  [x] Buy milk\n" +
		"          2 litres\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}

	if _, stderr, code := run(d, "rm", "1"); code != exitcode.Success {
		t.Fatalf("rm: code %d, stderr %q", code, stderr)
	}
	if _, stderr, code := run(d, "rm", "1"); code != exitcode.UserError || stderr != "error: Task not found or already deleted\n" {
		t.Errorf("second rm: code %d, stderr %q", code, stderr)
	}

	if stdout, _, code := run(d, "logout"); code != exitcode.Success || stdout != "ok\n" {
		t.Errorf("logout: code %d, stdout %q", code, stdout)
	}
	if _, _, code := run(d, "list"); code != exitcode.AuthError {
		t.Errorf("list after logout: expected exit code %d, got %d", exitcode.AuthError, code)
	}
}

func TestDispatcher_URLFlagOverridesConfig(t *testing.T) {
	d, store, _ := newDispatcher(t)
	if err := store.Set("Bearer stale"); err != nil {
		t.Fatal(err)
	}

	// Nothing listens on this port; the request must fail as a network error.
	_, stderr, code := run(d, "list", "--url", "http://127.0.0.1:1/")

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.BackendError, code, stderr)
	}
}

func TestDispatcher_ExpiredTokenIsAuthError(t *testing.T) {
	d, store, _ := newDispatcher(t)
	if err := store.Set("Bearer not-a-real-token"); err != nil {
		t.Fatal(err)
	}

	_, _, code := run(d, "list")

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
}

func TestDispatcher_ConfigFlag(t *testing.T) {
	d, _, _ := newDispatcher(t)
	dir := filepath.Join(t.TempDir(), "custom")

	_, stderr, code := run(d, "logout", "--config", dir)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
}
