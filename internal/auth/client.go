package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrNotConfigured = errors.New("auth client not configured")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrUpstream      = errors.New("identity provider error")
)

// User is the identity resolved from a session credential. The core trusts
// the provider and never re-validates it.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Nome  string `json:"nome,omitempty"`
}

// Config for the external identity provider. BaseURL and APIKey come from
// env vars in main.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:  strings.TrimSpace(cfg.APIKey),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.baseURL != "" && c.apiKey != ""
}

// OAuthRedirectURL asks the provider for the URL the browser should be sent
// to for the given OAuth flow (e.g. "google").
func (c *Client) OAuthRedirectURL(ctx context.Context, provider string) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	endpoint := c.baseURL + "/oauth/redirect_url?provider=" + url.QueryEscape(provider)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	var out struct {
		RedirectURL string `json:"redirect_url"`
	}
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	if out.RedirectURL == "" {
		return "", fmt.Errorf("%w: empty redirect url", ErrUpstream)
	}
	return out.RedirectURL, nil
}

// ExchangeCode trades an authorization code for a session token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(code) == "" {
		return "", ErrUnauthorized
	}

	body, _ := json.Marshal(map[string]string{"code": code})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sessions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	var out struct {
		SessionToken string `json:"session_token"`
	}
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	if out.SessionToken == "" {
		return "", fmt.Errorf("%w: empty session token", ErrUpstream)
	}
	return out.SessionToken, nil
}

// GetUser resolves a session token into the current user.
func (c *Client) GetUser(ctx context.Context, sessionToken string) (User, error) {
	if !c.IsConfigured() {
		return User{}, ErrNotConfigured
	}
	sessionToken = strings.TrimSpace(sessionToken)
	if sessionToken == "" {
		return User{}, ErrUnauthorized
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users/me", nil)
	if err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+sessionToken)

	var out User
	if err := c.do(req, &out); err != nil {
		return User{}, err
	}

	out.ID = strings.TrimSpace(out.ID)
	if out.ID == "" {
		return User{}, fmt.Errorf("%w: response missing user id", ErrUpstream)
	}
	return out, nil
}

// DeleteSession invalidates the session at the provider.
func (c *Client) DeleteSession(ctx context.Context, sessionToken string) error {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}
	sessionToken = strings.TrimSpace(sessionToken)
	if sessionToken == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/sessions", nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+sessionToken)

	return c.do(req, nil)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		// ok
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	default:
		return fmt.Errorf("%w: status=%d", ErrUpstream, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: invalid json: %v", ErrUpstream, err)
	}
	return nil
}
