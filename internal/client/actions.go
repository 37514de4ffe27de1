// ABOUTME: Typed wrappers for the five named actions
// ABOUTME: One method per action, mirroring the server's wire contract

package client

import (
	"context"
	"net/http"

	"github.com/zenshell/zenshell/internal/document"
)

type passwordRequest struct {
	Password string `json:"password"`
}

type initCheckResponse struct {
	Status     string `json:"status"`
	NeedsSetup bool   `json:"needsSetup"`
}

type tokenResponse struct {
	Status string `json:"status"`
	Token  string `json:"token"`
}

// InitCheck reports whether the server still needs its one-time bootstrap.
func (c *Client) InitCheck(ctx context.Context) (bool, error) {
	var resp initCheckResponse
	if err := c.do(ctx, http.MethodGet, "init_check", nil, &resp); err != nil {
		return false, err
	}
	return resp.NeedsSetup, nil
}

// Setup runs the one-time bootstrap and returns the session token.
func (c *Client) Setup(ctx context.Context, password string) (string, error) {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "setup_password", passwordRequest{Password: password}, &resp); err != nil {
		return "", err
	}
	c.token = resp.Token
	return resp.Token, nil
}

// Login verifies the password and returns the session token.
func (c *Client) Login(ctx context.Context, password string) (string, error) {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "verify_password", passwordRequest{Password: password}, &resp); err != nil {
		return "", err
	}
	c.token = resp.Token
	return resp.Token, nil
}

// GetData fetches the full snippet collection. Share-link and search
// filtering are applied by the caller.
func (c *Client) GetData(ctx context.Context) ([]document.Snippet, error) {
	var scripts []document.Snippet
	if err := c.do(ctx, http.MethodGet, "get_data", nil, &scripts); err != nil {
		return nil, err
	}
	return scripts, nil
}

// SaveData replaces the whole collection with the given payload.
func (c *Client) SaveData(ctx context.Context, scripts []document.Snippet) error {
	if scripts == nil {
		scripts = []document.Snippet{}
	}
	return c.do(ctx, http.MethodPost, "save_data", scripts, nil)
}
