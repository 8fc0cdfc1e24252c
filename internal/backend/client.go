// Package backend is the typed client for the remote TillFlow REST API.
// It owns the wire contract (JSON envelopes, bearer attachment) and the
// error taxonomy; it holds no session state of its own.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tillflow/admin-api/internal/domain/auth"
	"github.com/tillflow/admin-api/internal/domain/model"
)

const defaultTimeout = 15 * time.Second

// Config captures the subset of backend behaviour the client needs.
type Config struct {
	// BaseURL is the backend root, e.g. "https://tillflow-backend.onrender.com/api".
	BaseURL string
	Timeout time.Duration
	Client  *http.Client
}

// Client calls the TillFlow backend. All methods return *Error on failure.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient builds a backend client. Callers should pass a validated config.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("backend base URL is required")
	}
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid backend base URL %q", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{baseURL: base, client: hc}, nil
}

// AuthResult is the credential pair issued by login/registration. Either both
// fields are set or the backend chose not to authenticate the caller.
type AuthResult struct {
	User  *auth.User
	Token string
}

// Complete reports whether the backend issued a full credential pair.
func (r AuthResult) Complete() bool { return r.User != nil && r.Token != "" }

// RegisterAdminInput carries the registration form fields. Validation happens
// in the form layer before the call; the client sends the fields as-is.
type RegisterAdminInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	AdminSecret string `json:"adminSecret"`
}

// envelope is the common response wrapper every backend endpoint uses.
type envelope struct {
	Success *bool            `json:"success,omitempty"`
	Message string           `json:"message,omitempty"`
	Token   string           `json:"token,omitempty"`
	User    json.RawMessage  `json:"user,omitempty"`
	Users   json.RawMessage  `json:"users,omitempty"`
	Stats   json.RawMessage  `json:"stats,omitempty"`
	Profile json.RawMessage  `json:"profile,omitempty"`
}

// authUserPayload tolerates both "id" and Mongo-style "_id" user identifiers.
type authUserPayload struct {
	ID               string    `json:"id"`
	MongoID          string    `json:"_id"`
	Email            string    `json:"email"`
	FullName         string    `json:"fullName"`
	Role             auth.Role `json:"role"`
	Verified         bool      `json:"verified"`
	ProfileCompleted bool      `json:"profileCompleted"`
}

func (p authUserPayload) toUser() *auth.User {
	id := p.ID
	if id == "" {
		id = p.MongoID
	}
	return &auth.User{
		ID:               id,
		Email:            p.Email,
		FullName:         p.FullName,
		Role:             p.Role,
		Verified:         p.Verified,
		ProfileCompleted: p.ProfileCompleted,
	}
}

// Login exchanges credentials for a bearer token and user record.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	env, err := c.do(ctx, callParams{Method: http.MethodPost, Path: "/users/login", Body: body, Fallback: "login failed"})
	if err != nil {
		return AuthResult{}, err
	}
	return authResultFrom(env)
}

// RegisterAdmin submits an admin registration. The backend may or may not
// issue credentials in the same response; callers inspect Complete().
func (c *Client) RegisterAdmin(ctx context.Context, in RegisterAdminInput) (AuthResult, error) {
	env, err := c.do(ctx, callParams{
		Method:   http.MethodPost,
		Path:     "/users/register-admin",
		Body:     in,
		Fallback: "failed to create admin account",
	})
	if err != nil {
		return AuthResult{}, err
	}
	return authResultFrom(env)
}

// ResetPassword asks the backend to start its out-of-band reset flow.
func (c *Client) ResetPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	_, err := c.do(ctx, callParams{
		Method:   http.MethodPost,
		Path:     "/users/reset-password",
		Body:     body,
		Fallback: "failed to request password reset",
	})
	return err
}

// ListUsers returns the full admin user directory.
func (c *Client) ListUsers(ctx context.Context, token string) ([]model.DirectoryUser, error) {
	env, err := c.do(ctx, callParams{
		Method:   http.MethodGet,
		Path:     "/users/admin/users",
		Token:    token,
		Fallback: "failed to fetch users",
	})
	if err != nil {
		return nil, err
	}
	var users []model.DirectoryUser
	if err := decodeField(env.Users, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UserStats returns the aggregate directory counts.
func (c *Client) UserStats(ctx context.Context, token string) (model.UserStats, error) {
	env, err := c.do(ctx, callParams{
		Method:   http.MethodGet,
		Path:     "/users/admin/users/stats",
		Token:    token,
		Fallback: "failed to fetch user stats",
	})
	if err != nil {
		return model.UserStats{}, err
	}
	var stats model.UserStats
	if err := decodeField(env.Stats, &stats); err != nil {
		return model.UserStats{}, err
	}
	return stats, nil
}

// GetUser returns one directory user with embedded businesses.
func (c *Client) GetUser(ctx context.Context, token, id string) (*model.DirectoryUser, error) {
	env, err := c.do(ctx, callParams{
		Method:   http.MethodGet,
		Path:     "/users/admin/users/" + url.PathEscape(id),
		Token:    token,
		Fallback: "failed to fetch user details",
	})
	if err != nil {
		return nil, err
	}
	var user model.DirectoryUser
	if err := decodeField(env.User, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserRole changes a user's role.
func (c *Client) UpdateUserRole(ctx context.Context, token, id string, role auth.Role) error {
	body := map[string]auth.Role{"role": role}
	_, err := c.do(ctx, callParams{
		Method:   http.MethodPut,
		Path:     "/users/" + url.PathEscape(id) + "/role",
		Token:    token,
		Body:     body,
		Fallback: "failed to update user role",
	})
	return err
}

// DeleteUser removes a user from the platform.
func (c *Client) DeleteUser(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, callParams{
		Method:   http.MethodDelete,
		Path:     "/users/admin/users/" + url.PathEscape(id),
		Token:    token,
		Fallback: "failed to delete user",
	})
	return err
}

// GetProfile returns the signed-in account's profile.
func (c *Client) GetProfile(ctx context.Context, token string) (*model.Profile, error) {
	env, err := c.do(ctx, callParams{
		Method:   http.MethodGet,
		Path:     "/users/profile",
		Token:    token,
		Fallback: "failed to fetch profile",
	})
	if err != nil {
		return nil, err
	}
	return profileFrom(env)
}

// UpdateProfile applies profile edits and returns the updated record.
func (c *Client) UpdateProfile(ctx context.Context, token string, req model.UpdateProfileRequest) (*model.Profile, error) {
	env, err := c.do(ctx, callParams{
		Method:   http.MethodPut,
		Path:     "/users/profile",
		Token:    token,
		Body:     req,
		Fallback: "failed to update profile",
	})
	if err != nil {
		return nil, err
	}
	return profileFrom(env)
}

// ChangePassword rotates the signed-in account's password.
func (c *Client) ChangePassword(ctx context.Context, token string, req model.ChangePasswordRequest) error {
	_, err := c.do(ctx, callParams{
		Method:   http.MethodPost,
		Path:     "/users/change-password",
		Token:    token,
		Body:     req,
		Fallback: "failed to change password",
	})
	return err
}

// callParams groups request parameters to keep do's signature small.
type callParams struct {
	Method   string
	Path     string
	Token    string // bearer credential; empty for public endpoints
	Body     any
	Fallback string // message used when the backend supplies none
}

// do performs one round-trip and normalizes every failure into *Error.
func (c *Client) do(ctx context.Context, p callParams) (*envelope, error) {
	var reqBody io.Reader
	if p.Body != nil {
		raw, err := json.Marshal(p.Body)
		if err != nil {
			return nil, transportErr(fmt.Errorf("encode request: %w", err))
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, p.Method, c.baseURL+p.Path, reqBody)
	if err != nil {
		return nil, transportErr(fmt.Errorf("build request: %w", err))
	}
	if p.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if p.Token != "" {
		req.Header.Set("Authorization", "Bearer "+p.Token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, transportErr(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, transportErr(fmt.Errorf("read response: %w", err))
	}

	var env envelope
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			// A non-2xx with an unreadable body is still a backend rejection.
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				return nil, backendErr(resp.StatusCode, "", p.Fallback)
			}
			return nil, transportErr(fmt.Errorf("decode response: %w", err))
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, backendErr(resp.StatusCode, env.Message, p.Fallback)
	}
	if env.Success != nil && !*env.Success {
		return nil, backendErr(resp.StatusCode, env.Message, p.Fallback)
	}
	return &env, nil
}

func authResultFrom(env *envelope) (AuthResult, error) {
	res := AuthResult{Token: env.Token}
	if len(env.User) > 0 {
		var payload authUserPayload
		if err := json.Unmarshal(env.User, &payload); err != nil {
			return AuthResult{}, transportErr(fmt.Errorf("decode user: %w", err))
		}
		res.User = payload.toUser()
	}
	return res, nil
}

func profileFrom(env *envelope) (*model.Profile, error) {
	raw := env.Profile
	if len(raw) == 0 {
		raw = env.User
	}
	var profile model.Profile
	if err := decodeField(raw, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func decodeField(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return transportErr(errors.New("response missing expected field"))
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return transportErr(fmt.Errorf("decode response field: %w", err))
	}
	return nil
}
