// Package httpx contains the shared HTTP plumbing for the auth and storage
// sub-clients: request shaping (API key, bearer token, request id), response
// status checking and typed JSON decoding.
//
// The package is deliberately non-resilient: one request per call, no
// retries, no backoff. Transport failures and non-2xx statuses are returned
// to the caller as-is or as *APIError.
package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/supago-community/supago/logging"
)

const (
	headerAPIKey        = "apikey"
	headerAuthorization = "Authorization"
	headerRequestID     = "X-Request-Id"
	headerClientInfo    = "X-Client-Info"

	clientInfo = "supago-go/0.1"
)

// TokenSource returns the bearer token to attach to a request, or "" when
// the call should go out with the API key alone.
type TokenSource func() string

// Client issues authenticated requests against a single endpoint base
// (e.g. "https://project.example.co/auth/v1"). It is safe for concurrent
// use as long as the underlying http.Client is.
type Client struct {
	http   *http.Client
	base   string
	apikey string
	token  TokenSource
	log    logging.Logger
}

// New builds a Client. token may be nil for endpoints that only ever use
// the API key. log may be nil; a no-op logger is substituted.
func New(httpc *http.Client, base, apikey string, token TokenSource, log logging.Logger) *Client {
	if httpc == nil {
		httpc = &http.Client{}
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Client{http: httpc, base: base, apikey: apikey, token: token, log: log}
}

// NewRequest builds a request for path (which must start with "/") relative
// to the client's base, with the API key, bearer token (if any) and a fresh
// request id attached.
func (c *Client) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(headerAPIKey, c.apikey)
	req.Header.Set(headerClientInfo, clientInfo)
	req.Header.Set(headerRequestID, uuid.NewString())
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set(headerAuthorization, "Bearer "+tok)
		}
	}
	return req, nil
}

// Do executes req and reads the full response body. Non-2xx statuses are
// mapped to *APIError. When out is non-nil the body is JSON-decoded into
// it; a malformed payload yields *DecodeError.
func (c *Client) Do(req *http.Request, out any) error {
	body, err := c.do(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeError{Err: err, Body: body}
	}
	return nil
}

// DoRaw executes req and returns the raw response body, mapping non-2xx
// statuses to *APIError.
func (c *Client) DoRaw(req *http.Request) ([]byte, error) {
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	c.log.Debug(req.Context(), "request",
		"method", req.Method,
		"url", req.URL.String(),
		"request_id", req.Header.Get(headerRequestID),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(resp.StatusCode, body)
		c.log.Debug(req.Context(), "request failed",
			"status", resp.StatusCode,
			"message", apiErr.Message,
			"request_id", req.Header.Get(headerRequestID),
		)
		return nil, apiErr
	}
	return body, nil
}

// JSON marshals in (when non-nil) as an application/json body, executes
// method against path and decodes the response into out (when non-nil).
func (c *Client) JSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		p, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(p)
	}
	req, err := c.NewRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.Do(req, out)
}
