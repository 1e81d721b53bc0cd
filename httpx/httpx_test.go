package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRequestHeaders(t *testing.T) {
	c := New(nil, "http://example.invalid/auth/v1", "anon-key",
		func() string { return "token-123" }, nil)

	req, err := c.NewRequest(context.Background(), http.MethodGet, "/user", nil)
	require.NoError(t, err)

	require.Equal(t, "http://example.invalid/auth/v1/user", req.URL.String())
	require.Equal(t, "anon-key", req.Header.Get("apikey"))
	require.Equal(t, "Bearer token-123", req.Header.Get("Authorization"))
	require.NotEmpty(t, req.Header.Get("X-Request-Id"))
	require.NotEmpty(t, req.Header.Get("X-Client-Info"))
}

func TestNewRequestAnonymous(t *testing.T) {
	c := New(nil, "http://example.invalid/storage/v1", "anon-key",
		func() string { return "" }, nil)

	req, err := c.NewRequest(context.Background(), http.MethodGet, "/bucket", nil)
	require.NoError(t, err)
	require.Empty(t, req.Header.Get("Authorization"))
	require.Equal(t, "anon-key", req.Header.Get("apikey"))
}

func TestRequestIDsDiffer(t *testing.T) {
	c := New(nil, "http://example.invalid", "k", nil, nil)

	first, err := c.NewRequest(context.Background(), http.MethodGet, "/a", nil)
	require.NoError(t, err)
	second, err := c.NewRequest(context.Background(), http.MethodGet, "/a", nil)
	require.NoError(t, err)
	require.NotEqual(t, first.Header.Get("X-Request-Id"), second.Header.Get("X-Request-Id"))
}

func TestJSONDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"name":"value"}`))
	}))
	defer srv.Close()

	c := New(srv.Client(), srv.URL, "k", nil, nil)
	var out struct {
		Name string `json:"name"`
	}
	err := c.JSON(context.Background(), http.MethodPost, "/thing", map[string]string{"a": "b"}, &out)
	require.NoError(t, err)
	require.Equal(t, "value", out.Name)
}

func TestMalformedJSONYieldsDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":`))
	}))
	defer srv.Close()

	c := New(srv.Client(), srv.URL, "k", nil, nil)
	var out map[string]any
	err := c.JSON(context.Background(), http.MethodGet, "/thing", nil, &out)

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	require.Equal(t, []byte(`{"name":`), decodeErr.Body)
}

func TestNon2xxYieldsAPIError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantCode    string
	}{
		{
			name:        "auth error shape",
			status:      http.StatusBadRequest,
			body:        `{"error":"invalid_grant","error_description":"Invalid login credentials"}`,
			wantMessage: "Invalid login credentials",
			wantCode:    "invalid_grant",
		},
		{
			name:        "auth msg shape",
			status:      http.StatusUnprocessableEntity,
			body:        `{"code":422,"msg":"Signup requires a valid password"}`,
			wantMessage: "Signup requires a valid password",
			wantCode:    "422",
		},
		{
			name:        "storage shape",
			status:      http.StatusNotFound,
			body:        `{"statusCode":"404","error":"not_found","message":"Object not found"}`,
			wantMessage: "Object not found",
			wantCode:    "",
		},
		{
			name:        "non-json body",
			status:      http.StatusBadGateway,
			body:        "upstream unavailable",
			wantMessage: "upstream unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := New(srv.Client(), srv.URL, "k", nil, nil)
			err := c.JSON(context.Background(), http.MethodGet, "/thing", nil, nil)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, tt.status, apiErr.StatusCode)
			require.Equal(t, tt.wantMessage, apiErr.Message)
			if tt.wantCode != "" {
				require.Equal(t, tt.wantCode, apiErr.ErrorCode)
			}
			require.Equal(t, []byte(tt.body), apiErr.Body)
		})
	}
}

func TestAPIErrorHelpers(t *testing.T) {
	require.True(t, (&APIError{StatusCode: http.StatusNotFound}).IsNotFound())
	require.False(t, (&APIError{StatusCode: http.StatusBadRequest}).IsNotFound())
	require.True(t, (&APIError{StatusCode: http.StatusUnauthorized}).IsUnauthorized())
}
