package supago

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/supabase-community/postgrest-go"
	"github.com/supago-community/supago/auth"
	"github.com/supago-community/supago/logging"
	"github.com/supago-community/supago/storage"
)

// Config is the facade's construction input, validated by New.
type Config struct {
	URL    string `validate:"required,url"`
	Key    string `validate:"required"`
	Schema string
}

var validate = validator.New()

// Client is the entry-point facade. It owns the current session and hands
// out authenticated sub-clients for tables and storage.
type Client struct {
	cfg   Config
	log   logging.Logger
	httpc *http.Client
	now   func() time.Time

	auth     *auth.Client
	storagec *storage.Client

	mu       sync.RWMutex
	session  *auth.Session
	rest     *postgrest.Client
	listener func(auth.Session)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the http.Client the auth and storage sub-clients use.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log logging.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithSchema sets the Postgrest schema queries run against. The default
// is the provider's default schema.
func WithSchema(schema string) Option {
	return func(c *Client) { c.cfg.Schema = schema }
}

// WithSession seeds the client with a previously obtained session, e.g.
// one persisted by the application. The listener is not notified for the
// seed session.
func WithSession(s auth.Session) Option {
	return func(c *Client) { c.session = &s }
}

// WithSessionListener registers a callback observing every session
// replacement. It is invoked once per change, outside the client's lock;
// no ordering is guaranteed across concurrent changes.
func WithSessionListener(fn func(auth.Session)) Option {
	return func(c *Client) { c.listener = fn }
}

// withNow overrides the clock (tests only).
func withNow(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New builds a Client for the project at url, authenticating with apikey.
func New(url, apikey string, opts ...Option) (*Client, error) {
	c := &Client{
		cfg: Config{URL: url, Key: apikey},
		log: logging.NewNopLogger(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := validate.Struct(c.cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	c.auth = auth.New(url, apikey,
		auth.WithHTTPClient(c.httpc),
		auth.WithLogger(c.log),
		auth.WithNow(c.now),
	)
	c.storagec = storage.New(url, apikey, c.accessToken,
		storage.WithHTTPClient(c.httpc),
		storage.WithLogger(c.log),
	)

	rest := postgrest.NewClient(url+"/rest/v1", c.cfg.Schema, map[string]string{
		"apikey": apikey,
	})
	if rest.ClientError != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, rest.ClientError)
	}
	c.rest = rest
	if c.session != nil {
		c.rest.SetAuthToken(c.session.AccessToken)
	} else {
		c.rest.SetAuthToken(apikey)
	}
	return c, nil
}

// LoginWithEmail authenticates with an email/password pair and replaces
// the held session. A failed login leaves the current session untouched.
func (c *Client) LoginWithEmail(ctx context.Context, email, password string) (auth.Session, error) {
	s, err := c.auth.SignInWithPassword(ctx, email, password)
	if err != nil {
		return auth.Session{}, err
	}
	c.setSession(*s)
	return *s, nil
}

// SignUp registers a new user. When the provider returns a ready session
// (email confirmation disabled) it replaces the held one.
func (c *Client) SignUp(ctx context.Context, email, password string, data map[string]any) (auth.Session, error) {
	s, err := c.auth.SignUp(ctx, email, password, data)
	if err != nil {
		return auth.Session{}, err
	}
	if s.AccessToken != "" {
		c.setSession(*s)
	}
	return *s, nil
}

// Logout invalidates the session server-side according to scope, then
// clears the held session.
func (c *Client) Logout(ctx context.Context, scope auth.LogoutScope) error {
	if err := c.ensureFreshToken(ctx); err != nil {
		return err
	}
	token := c.accessToken()
	if token == "" {
		return ErrMissingSession
	}
	if err := c.auth.Logout(ctx, token, scope); err != nil {
		return err
	}
	c.clearSession()
	return nil
}

// HasSession reports whether the client currently holds a session.
func (c *Client) HasSession() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session != nil
}

// Session returns a copy of the held session, if any.
func (c *Client) Session() (auth.Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return auth.Session{}, false
	}
	return *c.session, true
}

// CurrentUser returns the user recorded in the held session, if any.
// It does not hit the network; see GetUser for a fresh read.
func (c *Client) CurrentUser() (auth.User, bool) {
	s, ok := c.Session()
	if !ok {
		return auth.User{}, false
	}
	return s.User, true
}

// GetUser fetches the authenticated user from the provider.
func (c *Client) GetUser(ctx context.Context) (*auth.User, error) {
	if err := c.ensureFreshToken(ctx); err != nil {
		return nil, err
	}
	return c.auth.GetUser(ctx, c.accessToken())
}

// UpdateUser starts an update of the authenticated user. The returned
// builder is armed with a fresh access token; finish with Send.
func (c *Client) UpdateUser(ctx context.Context) (*auth.UpdateUserBuilder, error) {
	if err := c.ensureFreshToken(ctx); err != nil {
		return nil, err
	}
	return c.auth.UpdateUser(c.accessToken()), nil
}

// Storage returns the storage sub-client. When a session is held its
// token is refreshed first; without one, operations go out with the API
// key alone.
func (c *Client) Storage(ctx context.Context) (*storage.Client, error) {
	if c.HasSession() {
		if err := c.ensureFreshToken(ctx); err != nil {
			return nil, err
		}
	}
	return c.storagec, nil
}

// accessToken is the live token source shared with the storage sub-client.
func (c *Client) accessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return ""
	}
	return c.session.AccessToken
}
