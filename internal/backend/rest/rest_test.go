package rest_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"taskman/internal/auth"
	"taskman/internal/backend/rest"
	"taskman/internal/config"
	"taskman/internal/service"
	"taskman/internal/testutil"
)

type fixture struct {
	backend *testutil.FakeBackend
	store   *auth.MemoryStore
	client  *rest.Client
	auth    *auth.Client
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	backend := testutil.NewFakeBackend()
	t.Cleanup(backend.Close)

	store := auth.NewMemoryStore()
	cfg := &config.Config{BaseURL: backend.URL(), Timeout: config.Duration{Duration: config.DefaultTimeout}}
	client, err := rest.New(cfg, store)
	if err != nil {
		t.Fatalf("rest.New: %v", err)
	}
	return &fixture{
		backend: backend,
		store:   store,
		client:  client,
		auth:    auth.NewClient(client, store),
	}
}

func (f *fixture) login(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	if _, err := f.auth.Register(ctx, "alice", "secret123"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := f.auth.Login(ctx, "alice", "secret123"); err != nil {
		t.Fatalf("login: %v", err)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	msg, err := f.auth.Register(ctx, "alice", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if msg != "User registered successfully!" {
		t.Errorf("unexpected register message %q", msg)
	}

	credential, err := f.auth.Login(ctx, "alice", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	stored, ok := f.store.Get()
	if !ok || stored != credential {
		t.Errorf("stored credential %q, returned %q", stored, credential)
	}
	if len(credential) < len("Bearer ")+1 || credential[:7] != "Bearer " {
		t.Errorf("expected a Bearer credential, got %q", credential)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.auth.Register(ctx, "alice", "secret123"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := f.auth.Register(ctx, "alice", "another1")

	var conflict *service.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %T: %v", err, err)
	}
	if conflict.Message != "Error: Username is already taken!" {
		t.Errorf("unexpected message %q", conflict.Message)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.auth.Register(ctx, "alice", "secret123"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := f.auth.Login(ctx, "alice", "wrong-password")

	var authErr *service.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %T: %v", err, err)
	}
	if authErr.Message != auth.LoginFailedMessage {
		t.Errorf("unexpected message %q", authErr.Message)
	}
	if f.auth.IsLoggedIn() {
		t.Error("failed login must not store a credential")
	}
}

func TestTasksRequireCredential(t *testing.T) {
	f := newFixture(t)

	_, err := f.client.ListTasks(context.Background())
	var serverErr *service.ServerError
	if !errors.As(err, &serverErr) || serverErr.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestTaskCRUD(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	ctx := context.Background()

	tasks, err := f.client.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", tasks)
	}

	created, err := f.client.CreateTask(ctx, service.Task{ID: 99, Title: "Buy milk", Status: service.StatusPending})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 || created.ID == 99 {
		t.Errorf("expected server-assigned id, got %d", created.ID)
	}

	got, err := f.client.GetTask(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Buy milk" || got.Status != service.StatusPending {
		t.Errorf("unexpected task %+v", got)
	}

	got.Status = service.StatusCompleted
	got.Description = "2 litres"
	updated, err := f.client.UpdateTask(ctx, got.ID, got)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != service.StatusCompleted || updated.Description != "2 litres" {
		t.Errorf("unexpected update %+v", updated)
	}

	if err := f.client.DeleteTask(ctx, got.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	tasks, err = f.client.ListTasks(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected empty list after delete, got %+v", tasks)
	}
}

func TestMissingTaskIsNotFound(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	ctx := context.Background()

	if _, err := f.client.GetTask(ctx, 42); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("get: expected ErrNotFound, got %v", err)
	}
	if _, err := f.client.UpdateTask(ctx, 42, service.Task{Title: "x"}); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("update: expected ErrNotFound, got %v", err)
	}
	if err := f.client.DeleteTask(ctx, 42); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("delete: expected ErrNotFound, got %v", err)
	}
	if got := service.UserMessage(f.client.DeleteTask(ctx, 42), "fallback"); got != service.NotFoundMessage {
		t.Errorf("user message = %q", got)
	}
}

func TestServerErrorMessage(t *testing.T) {
	f := newFixture(t)
	f.login(t)

	f.backend.FailNext(http.StatusInternalServerError)
	_, err := f.client.ListTasks(context.Background())

	var serverErr *service.ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("expected ServerError, got %T: %v", err, err)
	}
	if serverErr.Status != http.StatusInternalServerError || serverErr.Message != "Internal Server Error" {
		t.Errorf("unexpected error %+v", serverErr)
	}
	if f.backend.RequestCount("GET /api/tasks/") != 1 {
		t.Errorf("expected one list request, got %d", f.backend.RequestCount("GET /api/tasks/"))
	}
}

func TestUnreachableServerIsNetworkError(t *testing.T) {
	f := newFixture(t)
	f.backend.Close()

	_, err := f.client.ListTasks(context.Background())
	var netErr *service.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %T: %v", err, err)
	}
}
