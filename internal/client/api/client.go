// Package api provides an HTTP client for the account service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/easylend/userservice/internal/common"
	"github.com/easylend/userservice/pkg/api"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string) *Client {
	return NewClientWithTimeout(baseURL, 10*time.Second)
}

func NewClientWithTimeout(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Register creates a new account. A 409 response maps to
// common.ErrUserAlreadyExists.
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error) {
	var resp api.RegisterResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login authenticates with email and password. A 401 response maps to
// common.ErrInvalidCredentials; a 403 means the account is still pending.
func (c *Client) Login(ctx context.Context, email, password string) (*api.LoginResponse, error) {
	var resp api.LoginResponse
	req := api.LoginRequest{Email: email, Password: password}
	if err := c.doRequest(ctx, http.MethodPost, "/api/v1/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Confirm activates an account with a confirmation token.
func (c *Client) Confirm(ctx context.Context, token string) (*api.ConfirmResponse, error) {
	var resp api.ConfirmResponse
	path := "/api/v1/auth/confirm?token=" + url.QueryEscape(token)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health checks whether the server is reachable.
func (c *Client) Health(ctx context.Context) error {
	var resp api.HealthResponse
	return c.doRequest(ctx, http.MethodGet, "/api/v1/health", nil, &resp)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.errorFromResponse(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// errorFromResponse maps a non-2xx response to a sentinel error where one
// fits, wrapping the server-provided message.
func (c *Client) errorFromResponse(resp *http.Response) error {
	var apiErr api.ErrorResponse
	message := resp.Status
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
		message = apiErr.Message
	}

	switch resp.StatusCode {
	case http.StatusConflict:
		return fmt.Errorf("%s: %w", message, common.ErrUserAlreadyExists)
	case http.StatusUnauthorized:
		return fmt.Errorf("%s: %w", message, common.ErrInvalidCredentials)
	case http.StatusForbidden:
		return fmt.Errorf("%s: %w", message, ErrAccountNotActivated)
	case http.StatusBadRequest:
		return fmt.Errorf("%s: %w", message, common.ErrInvalidToken)
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", message, common.ErrUserNotFound)
	default:
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, message)
	}
}
