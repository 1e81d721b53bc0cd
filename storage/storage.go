// Package storage is a thin client for the backend's object-storage REST
// endpoints under /storage/v1.
//
// Contract:
//   - Object operations: List, Download, Upload, Update, Delete, Move,
//     Copy, CreateSignedURL.
//   - Bucket operations: ListBuckets, GetBucket, CreateBucket, EmptyBucket,
//     DeleteBucket.
//
// Each operation is a single HTTP call; nothing is retried or cached.
// The bearer token is read through a TokenSource on every request, so a
// client built by the facade always sends the current session's token.
// All methods honor context cancellation.
package storage

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/supago-community/supago/httpx"
	"github.com/supago-community/supago/logging"
)

// Client issues requests against the storage endpoints. Safe for
// concurrent use.
type Client struct {
	h    *httpx.Client
	base string
}

// Option configures a Client.
type Option func(*options)

type options struct {
	httpc *http.Client
	log   logging.Logger
}

// WithHTTPClient sets the http.Client used for requests.
func WithHTTPClient(httpc *http.Client) Option {
	return func(o *options) { o.httpc = httpc }
}

// WithLogger sets the logger for request-level debug output.
func WithLogger(log logging.Logger) Option {
	return func(o *options) { o.log = log }
}

// New builds a Client for the project at baseURL (without the /storage/v1
// suffix). token may be nil for anonymous access with the API key alone.
func New(baseURL, apikey string, token httpx.TokenSource, opts ...Option) *Client {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	base := baseURL + "/storage/v1"
	return &Client{
		h:    httpx.New(o.httpc, base, apikey, token, o.log),
		base: base,
	}
}

// escapePath escapes each segment of an object key while keeping the
// segment separators, so keys like "folder/avatar 1.png" survive.
func escapePath(p string) string {
	segs := strings.Split(p, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}
