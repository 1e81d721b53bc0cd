package supago

import "errors"

var (
	// ErrInvalidConfig is returned by New for a malformed base URL or an
	// empty API key.
	ErrInvalidConfig = errors.New("invalid client configuration")

	// ErrMissingSession is returned by operations that need an
	// authenticated session when none is held.
	ErrMissingSession = errors.New("missing authentication information")

	// ErrSessionRefresh wraps failures to refresh an expiring session.
	ErrSessionRefresh = errors.New("session refresh failed")
)
