package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"taskman/internal/service"
)

// FakeBackend is an httptest server speaking the task backend's REST
// contract: /auth/register, /auth/login and /api/tasks.
type FakeBackend struct {
	Server *httptest.Server

	mu     sync.Mutex
	users  map[string][]byte                 // username -> bcrypt hash
	tokens map[string]string                 // token -> username
	tasks  map[string]map[int64]service.Task // username -> id -> task
	nextID int64

	// failStatus makes the next /api/tasks request fail with this status.
	failStatus int

	// Requests counts requests by "METHOD path", with task ids folded into
	// "{id}", e.g. "DELETE /api/tasks/{id}".
	Requests map[string]int
}

// NewFakeBackend starts a fake backend. Close it with Server.Close.
func NewFakeBackend() *FakeBackend {
	b := &FakeBackend{
		users:    make(map[string][]byte),
		tokens:   make(map[string]string),
		tasks:    make(map[string]map[int64]service.Task),
		nextID:   1,
		Requests: make(map[string]int),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(b.count)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", b.register)
		r.Post("/login", b.login)
	})
	r.Route("/api/tasks", func(r chi.Router) {
		r.Use(b.authenticate)
		r.Use(b.failNext)
		r.Get("/", b.listTasks)
		r.Post("/", b.createTask)
		r.Get("/{id}", b.getTask)
		r.Put("/{id}", b.updateTask)
		r.Delete("/{id}", b.deleteTask)
	})

	b.Server = httptest.NewServer(r)
	return b
}

// URL returns the server root.
func (b *FakeBackend) URL() string {
	return b.Server.URL
}

// Close stops the server.
func (b *FakeBackend) Close() {
	b.Server.Close()
}

// FailNext makes the next task request answer with status.
func (b *FakeBackend) FailNext(status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failStatus = status
}

// RemoveTask deletes a task behind the client's back.
func (b *FakeBackend) RemoveTask(username string, id int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.tasks[username], id)
}

// RequestCount returns how many times a route was hit, e.g. "GET /api/tasks/"
// or "POST /auth/login".
func (b *FakeBackend) RequestCount(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.Requests[route]
}

type credentialsBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (b *FakeBackend) register(w http.ResponseWriter, r *http.Request) {
	var body credentialsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if len(body.Username) < 3 || len(body.Username) > 20 || len(body.Password) < 6 || len(body.Password) > 40 {
		http.Error(w, "Error: Invalid username or password length", http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.users[body.Username]; exists {
		http.Error(w, "Error: Username is already taken!", http.StatusBadRequest)
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.MinCost)
	if err != nil {
		http.Error(w, "Error: could not hash password", http.StatusInternalServerError)
		return
	}
	b.users[body.Username] = hash
	b.tasks[body.Username] = make(map[int64]service.Task)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("User registered successfully!"))
}

func (b *FakeBackend) login(w http.ResponseWriter, r *http.Request) {
	var body credentialsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	hash, ok := b.users[body.Username]
	if !ok || bcrypt.CompareHashAndPassword(hash, []byte(body.Password)) != nil {
		http.Error(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	token := uuid.New().String()
	b.tokens[token] = body.Username
	writeJSON(w, http.StatusOK, map[string]string{"token": token, "type": "Bearer"})
}

func (b *FakeBackend) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		b.mu.Lock()
		username, known := b.tokens[token]
		b.mu.Unlock()
		if !ok || !known {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		r.Header.Set("X-Fake-User", username)
		next.ServeHTTP(w, r)
	})
}

func (b *FakeBackend) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.Requests[routeKey(r)]++
		b.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func routeKey(r *http.Request) string {
	rest, ok := strings.CutPrefix(r.URL.Path, "/api/tasks")
	if !ok {
		return r.Method + " " + r.URL.Path
	}
	if strings.Trim(rest, "/") == "" {
		return r.Method + " /api/tasks/"
	}
	return r.Method + " /api/tasks/{id}"
}

func (b *FakeBackend) failNext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		status := b.failStatus
		b.failStatus = 0
		b.mu.Unlock()

		if status != 0 {
			writeJSON(w, status, map[string]string{"message": http.StatusText(status)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *FakeBackend) listTasks(w http.ResponseWriter, r *http.Request) {
	user := r.Header.Get("X-Fake-User")

	b.mu.Lock()
	tasks := make([]service.Task, 0, len(b.tasks[user]))
	for _, t := range b.tasks[user] {
		tasks = append(tasks, t)
	}
	b.mu.Unlock()

	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	writeJSON(w, http.StatusOK, tasks)
}

func (b *FakeBackend) createTask(w http.ResponseWriter, r *http.Request) {
	user := r.Header.Get("X-Fake-User")

	var task service.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil || strings.TrimSpace(task.Title) == "" {
		http.Error(w, "Error creating task", http.StatusBadRequest)
		return
	}
	if task.Status == "" {
		task.Status = service.StatusPending
	}

	b.mu.Lock()
	task.ID = b.nextID
	b.nextID++
	b.tasks[user][task.ID] = task
	b.mu.Unlock()

	writeJSON(w, http.StatusCreated, task)
}

func (b *FakeBackend) getTask(w http.ResponseWriter, r *http.Request) {
	task, ok := b.lookup(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (b *FakeBackend) updateTask(w http.ResponseWriter, r *http.Request) {
	existing, ok := b.lookup(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	var task service.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		http.Error(w, "Error updating task", http.StatusBadRequest)
		return
	}
	existing.Title = task.Title
	existing.Description = task.Description
	if task.Status != "" {
		existing.Status = task.Status
	}

	b.mu.Lock()
	b.tasks[r.Header.Get("X-Fake-User")][existing.ID] = existing
	b.mu.Unlock()

	writeJSON(w, http.StatusOK, existing)
}

func (b *FakeBackend) deleteTask(w http.ResponseWriter, r *http.Request) {
	task, ok := b.lookup(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	b.mu.Lock()
	delete(b.tasks[r.Header.Get("X-Fake-User")], task.ID)
	b.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (b *FakeBackend) lookup(r *http.Request) (service.Task, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return service.Task{}, false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	task, ok := b.tasks[r.Header.Get("X-Fake-User")][id]
	return task, ok
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
