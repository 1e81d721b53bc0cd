package supago

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/supago-community/supago/auth"
	"github.com/supago-community/supago/httpx"
	"github.com/supago-community/supago/logging"
)

// refreshLeeway is how long before expiry the access token is refreshed.
const refreshLeeway = time.Minute

// setSession replaces the held session, re-arms the Postgrest bearer token
// and notifies the listener.
func (c *Client) setSession(s auth.Session) {
	c.mu.Lock()
	c.session = &s
	c.rest.SetAuthToken(s.AccessToken)
	listener := c.listener
	c.mu.Unlock()

	if listener != nil {
		c.notify(listener, s)
	}
}

// clearSession drops the held session and resets the Postgrest bearer
// token to the API key.
func (c *Client) clearSession() {
	c.mu.Lock()
	c.session = nil
	c.rest.SetAuthToken(c.cfg.Key)
	c.mu.Unlock()
}

func (c *Client) notify(fn func(auth.Session), s auth.Session) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Warn(context.Background(), "session listener panicked", "panic", r)
		}
	}()
	fn(s)
}

// ensureFreshToken refreshes the held session when it expires within
// refreshLeeway. A refresh the provider rejects with HTTP 400 means the
// refresh token is dead; the session is cleared.
func (c *Client) ensureFreshToken(ctx context.Context) error {
	c.mu.RLock()
	var current *auth.Session
	if c.session != nil {
		s := *c.session
		current = &s
	}
	c.mu.RUnlock()

	if current == nil {
		return ErrMissingSession
	}
	if !current.ExpiresWithin(c.now(), refreshLeeway) {
		return nil
	}

	fresh, err := c.auth.RefreshSession(ctx, current.RefreshToken)
	if err != nil {
		var apiErr *httpx.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
			c.clearSession()
		}
		return fmt.Errorf("%w: %w", ErrSessionRefresh, err)
	}
	c.setSession(*fresh)
	return nil
}

// ChannelListener adapts ch to a session listener. Sends are non-blocking;
// when ch is full the update is dropped with a warning, so a stalled
// consumer cannot stall logins. log may be nil.
func ChannelListener(ch chan<- auth.Session, log logging.Logger) func(auth.Session) {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return func(s auth.Session) {
		select {
		case ch <- s:
		default:
			log.Warn(context.Background(), "failed to send session to listener")
		}
	}
}
