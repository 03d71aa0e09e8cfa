package rest

import (
	"context"
	"net/http"

	"taskman/internal/auth"
)

type credentialsBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates an account. The backend answers with a plain-text message.
func (c *Client) Register(ctx context.Context, username, password string) (string, error) {
	var msg string
	body := credentialsBody{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, authPath+"/register", body, &msg); err != nil {
		return "", err
	}
	return msg, nil
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, username, password string) (auth.LoginResponse, error) {
	var resp auth.LoginResponse
	body := credentialsBody{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, authPath+"/login", body, &resp); err != nil {
		return auth.LoginResponse{}, err
	}
	return resp, nil
}
