package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"github.com/supago-community/supago/auth"
)

// ---- helpers ----

func useTempSessionFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	orig := sessionPath
	sessionPath = func() (string, error) { return path, nil }
	t.Cleanup(func() { sessionPath = orig })
	return path
}

func stubPassword(t *testing.T, password string) {
	t.Helper()
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() { readPassword = orig })
}

func pointBackend(t *testing.T, url string) {
	t.Helper()
	viper.Set("url", url)
	viper.Set("key", "anon-key")
	t.Cleanup(func() {
		viper.Set("url", "")
		viper.Set("key", "")
	})
}

func liveSession(access string) auth.Session {
	return auth.Session{
		AccessToken:  access,
		RefreshToken: "refresh-1",
		ExpiresAt:    time.Now().Add(time.Hour).Unix(),
		User:         auth.User{ID: "user-1", Email: "me@example.com"},
	}
}

// ---- tests ----

func TestSessionFileRoundtrip(t *testing.T) {
	useTempSessionFile(t)

	s := liveSession("access-1")
	require.NoError(t, saveSession(s))

	loaded, err := loadSession()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, s.AccessToken, loaded.AccessToken)
	require.Equal(t, s.User.Email, loaded.User.Email)

	require.NoError(t, removeSession())
	loaded, err = loadSession()
	require.NoError(t, err)
	require.Nil(t, loaded)

	// Removing twice is fine.
	require.NoError(t, removeSession())
}

func TestGetPassword(t *testing.T) {
	stubPassword(t, "secret")

	var out bytes.Buffer
	pw, err := getPassword(&out)
	require.NoError(t, err)
	require.Equal(t, "secret", pw)
	require.Contains(t, out.String(), "Enter password:")
}

func TestLoginCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/v1/token", r.URL.Path)
		require.Equal(t, "password", r.URL.Query().Get("grant_type"))
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "access-1",
			"expires_in":    3600,
			"refresh_token": "refresh-1",
			"user":          map[string]any{"id": "user-1", "email": "me@example.com"},
		})
	}))
	t.Cleanup(srv.Close)

	path := useTempSessionFile(t)
	stubPassword(t, "secret")
	pointBackend(t, srv.URL)

	cmd := newLoginCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"me@example.com"})
	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "logged in as me@example.com")

	// The listener keeps the session file current.
	require.FileExists(t, path)
	loaded, err := loadSession()
	require.NoError(t, err)
	require.Equal(t, "access-1", loaded.AccessToken)
}

func TestLoginCommandBadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
	}))
	t.Cleanup(srv.Close)

	useTempSessionFile(t)
	stubPassword(t, "wrong")
	pointBackend(t, srv.URL)

	cmd := newLoginCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"me@example.com"})
	require.Error(t, cmd.Execute())
}

func TestLsCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/storage/v1/object/list/avatars", r.URL.Path)
		require.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "public/", body["prefix"])
		require.EqualValues(t, 2, body["limit"])

		w.Write([]byte(`[
			{"name":"public/a.png","updated_at":"2025-05-01T00:00:00Z"},
			{"name":"public/b.png","updated_at":"2025-05-02T00:00:00Z"}
		]`))
	}))
	t.Cleanup(srv.Close)

	useTempSessionFile(t)
	pointBackend(t, srv.URL)
	require.NoError(t, saveSession(liveSession("access-1")))

	cmd := newLsCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"avatars", "public/", "--limit", "2"})
	require.NoError(t, cmd.Execute())

	require.Contains(t, out.String(), "public/a.png")
	require.Contains(t, out.String(), "public/b.png")
}
