package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"taskman/internal/service"
)

// Fallback messages shown when the backend gives nothing better.
const (
	LoginFailedMessage    = "Invalid username or password"
	RegisterFailedMessage = "Registration failed. Please try again."
)

// LoginResponse is the body of a successful POST /auth/login.
type LoginResponse struct {
	Token string `json:"token"`
	Type  string `json:"type"`
}

// API is the subset of the backend the auth client talks to.
type API interface {
	// Register creates an account and returns the server's message.
	Register(ctx context.Context, username, password string) (string, error)

	// Login exchanges credentials for a token.
	Login(ctx context.Context, username, password string) (LoginResponse, error)
}

type credentials struct {
	Username string `validate:"required,min=3,max=20"`
	Password string `validate:"required,min=6,max=40"`
}

type loginCredentials struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// Client performs register/login and keeps the token store current.
type Client struct {
	api      API
	store    Store
	validate *validator.Validate
}

// NewClient creates an auth client.
func NewClient(api API, store Store) *Client {
	return &Client{
		api:      api,
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Register validates the credentials locally, then creates the account.
// Returns the server's success message.
func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	if err := c.check(credentials{Username: username, Password: password}); err != nil {
		return "", err
	}

	msg, err := c.api.Register(ctx, username, password)
	if err != nil {
		return "", registerError(err)
	}
	return msg, nil
}

// Login authenticates and stores the composed credential before returning it.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	if err := c.check(loginCredentials{Username: username, Password: password}); err != nil {
		return "", err
	}

	resp, err := c.api.Login(ctx, username, password)
	if err != nil {
		return "", loginError(err)
	}
	if resp.Token == "" {
		return "", &service.AuthError{Message: LoginFailedMessage, Err: errors.New("empty token in login response")}
	}

	credential := Compose(resp.Type, resp.Token)
	if err := c.store.Set(credential); err != nil {
		return "", fmt.Errorf("failed to save token: %w", err)
	}
	return credential, nil
}

// Logout clears the stored credential. No network call is made.
func (c *Client) Logout() error {
	return c.store.Clear()
}

// IsLoggedIn reports whether a credential is stored.
func (c *Client) IsLoggedIn() bool {
	_, ok := c.store.Get()
	return ok
}

// Guard returns a guard over this client's store.
func (c *Client) Guard() Guard {
	return NewGuard(c.store)
}

// Credential returns the stored credential.
func (c *Client) Credential() (string, bool) {
	return c.store.Get()
}

func (c *Client) check(input any) error {
	err := c.validate.Struct(input)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &service.ValidationError{Message: err.Error()}
	}
	fe := fieldErrs[0]
	return &service.ValidationError{Field: strings.ToLower(fe.Field()), Message: fieldMessage(fe)}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() + "." + fe.Tag() {
	case "Username.required":
		return "Username is required"
	case "Password.required":
		return "Password is required"
	case "Username.min", "Username.max":
		return "Username must be between 3 and 20 characters"
	case "Password.min", "Password.max":
		return "Password must be between 6 and 40 characters"
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

// loginError turns any login failure into an AuthError carrying the server's
// message when one was sent.
func loginError(err error) error {
	var serverErr *service.ServerError
	if errors.As(err, &serverErr) && serverErr.Message != "" {
		return &service.AuthError{Message: serverErr.Message, Err: err}
	}
	return &service.AuthError{Message: LoginFailedMessage, Err: err}
}

func registerError(err error) error {
	var serverErr *service.ServerError
	if !errors.As(err, &serverErr) {
		return err
	}
	switch {
	case serverErr.Status == http.StatusConflict:
		return &service.ConflictError{Message: serverErr.Message}
	case serverErr.Status == http.StatusBadRequest && strings.Contains(strings.ToLower(serverErr.Message), "already"):
		return &service.ConflictError{Message: serverErr.Message}
	case serverErr.Status == http.StatusBadRequest:
		return &service.ValidationError{Message: serverErr.Message}
	}
	return err
}
