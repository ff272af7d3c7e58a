// Package authapi is the outbound REST adapter for the remote
// authentication service. The portal treats the service as opaque: it only
// needs the three semantic operations login, register, and me.
package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/enterprisehub/portal/internal/core/domain"
	"github.com/enterprisehub/portal/internal/core/ports"
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 4 << 10
)

// Client talks to the authentication service over HTTP with a bounded
// timeout. Rejections become *domain.AuthError; connectivity failures and
// 5xx responses become *domain.TransportError.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

var _ ports.AuthClient = (*Client)(nil)

func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenResponse mirrors the service's login/register envelope.
type tokenResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	User        domain.Identity `json:"user"`
}

// errorResponse covers both error envelopes the service is known to emit.
type errorResponse struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

func (c *Client) Login(ctx context.Context, email, password string) (string, *domain.Identity, error) {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", credentials{Email: email, Password: password}, "", &resp); err != nil {
		return "", nil, err
	}
	user := resp.User
	return resp.AccessToken, &user, nil
}

func (c *Client) Register(ctx context.Context, input domain.Registration) (string, *domain.Identity, error) {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", input, "", &resp); err != nil {
		return "", nil, err
	}
	user := resp.User
	return resp.AccessToken, &user, nil
}

func (c *Client) Me(ctx context.Context, token string) (*domain.Identity, error) {
	var identity domain.Identity
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, token, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// do performs one request/response cycle against the service and maps the
// outcome onto the portal's error taxonomy.
func (c *Client) do(ctx context.Context, method, path string, body any, token string, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("authapi: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("authapi: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &domain.TransportError{Op: method + " " + path, Err: fmt.Errorf("decode response: %w", err)}
		}
		return nil

	case resp.StatusCode >= 500:
		c.log.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("auth service error")
		return &domain.TransportError{Op: method + " " + path, Err: fmt.Errorf("service returned %d", resp.StatusCode)}

	default:
		return &domain.AuthError{Reason: c.readReason(resp.Body)}
	}
}

// readReason extracts the user-displayable rejection reason, if the service
// provided one.
func (c *Client) readReason(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil {
		return ""
	}
	var er errorResponse
	if err := json.Unmarshal(raw, &er); err != nil {
		return ""
	}
	if er.Detail != "" {
		return er.Detail
	}
	return er.Error
}
