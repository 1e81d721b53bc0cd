// Package auth is a thin client for the backend's authentication REST
// endpoints under /auth/v1.
//
// Contract:
//   - SignInWithPassword / SignUp: obtain a Session from credentials.
//   - RefreshSession: exchange a refresh token for a fresh Session.
//   - Logout: invalidate sessions for the given access token.
//   - GetUser / UpdateUser: read and modify the authenticated user.
//
// The package holds no session state of its own; token storage and refresh
// policy live in the facade. All methods honor context cancellation.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/supago-community/supago/httpx"
	"github.com/supago-community/supago/logging"
)

// Client issues requests against the auth endpoints. Safe for concurrent use.
type Client struct {
	h   *httpx.Client
	now func() time.Time
}

// Option configures a Client.
type Option func(*options)

type options struct {
	httpc *http.Client
	log   logging.Logger
	now   func() time.Time
}

// WithHTTPClient sets the http.Client used for requests.
func WithHTTPClient(httpc *http.Client) Option {
	return func(o *options) { o.httpc = httpc }
}

// WithLogger sets the logger for request-level debug output.
func WithLogger(log logging.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithNow sets the clock used for expiry normalization (primarily for tests).
func WithNow(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New builds a Client for the project at baseURL (without the /auth/v1
// suffix), authenticating requests with apikey.
func New(baseURL, apikey string, opts ...Option) *Client {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &Client{
		h:   httpx.New(o.httpc, baseURL+"/auth/v1", apikey, nil, o.log),
		now: o.now,
	}
}

type credentials struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Data     map[string]any `json:"data,omitempty"`
}

// SignInWithPassword authenticates with an email/password pair.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	var s Session
	err := c.h.JSON(ctx, http.MethodPost, "/token?grant_type=password",
		credentials{Email: email, Password: password}, &s)
	if err != nil {
		return nil, err
	}
	s.normalize(c.now())
	return &s, nil
}

// RefreshSession exchanges refreshToken for a new session.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	var s Session
	err := c.h.JSON(ctx, http.MethodPost, "/token?grant_type=refresh_token",
		map[string]string{"refresh_token": refreshToken}, &s)
	if err != nil {
		return nil, err
	}
	s.normalize(c.now())
	return &s, nil
}

// SignUp registers a new user. When the project requires email confirmation
// the provider returns only the user; the result then carries an empty
// token pair with Session.User populated.
func (c *Client) SignUp(ctx context.Context, email, password string, data map[string]any) (*Session, error) {
	var raw json.RawMessage
	err := c.h.JSON(ctx, http.MethodPost, "/signup",
		credentials{Email: email, Password: password, Data: data}, &raw)
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, &httpx.DecodeError{Err: err, Body: raw}
	}
	if s.AccessToken == "" {
		var u User
		if err := json.Unmarshal(raw, &u); err != nil {
			return nil, &httpx.DecodeError{Err: err, Body: raw}
		}
		s.User = u
		return &s, nil
	}
	s.normalize(c.now())
	return &s, nil
}

// Logout invalidates sessions for accessToken according to scope. An empty
// scope leaves the choice to the provider (global).
func (c *Client) Logout(ctx context.Context, accessToken string, scope LogoutScope) error {
	path := "/logout"
	if scope != "" {
		path += "?scope=" + url.QueryEscape(string(scope))
	}
	req, err := c.h.NewRequest(ctx, http.MethodPost, path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	return c.h.Do(req, nil)
}

// GetUser fetches the user the access token belongs to.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*User, error) {
	req, err := c.h.NewRequest(ctx, http.MethodGet, "/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	var u User
	if err := c.h.Do(req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser starts an update of the user the access token belongs to.
// Call setters on the returned builder and finish with Send.
func (c *Client) UpdateUser(accessToken string) *UpdateUserBuilder {
	return &UpdateUserBuilder{c: c, token: accessToken}
}

type updateUserPayload struct {
	Email    *string        `json:"email,omitempty"`
	Password *string        `json:"password,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// UpdateUserBuilder accumulates the fields of a user update.
type UpdateUserBuilder struct {
	c       *Client
	token   string
	payload updateUserPayload
}

// Email sets the user's new email address.
func (b *UpdateUserBuilder) Email(email string) *UpdateUserBuilder {
	b.payload.Email = &email
	return b
}

// Password sets the user's new password.
func (b *UpdateUserBuilder) Password(password string) *UpdateUserBuilder {
	b.payload.Password = &password
	return b
}

// Data sets the user's custom metadata.
func (b *UpdateUserBuilder) Data(data map[string]any) *UpdateUserBuilder {
	b.payload.Data = data
	return b
}

// Send submits the update and returns the updated user.
func (b *UpdateUserBuilder) Send(ctx context.Context) (*User, error) {
	body, err := json.Marshal(b.payload)
	if err != nil {
		return nil, err
	}
	req, err := b.c.h.NewRequest(ctx, http.MethodPut, "/user", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+b.token)
	req.Header.Set("Content-Type", "application/json")
	var u User
	if err := b.c.h.Do(req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
