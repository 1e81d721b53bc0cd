package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the access/refresh token pair representing an authenticated
// user, as returned by the token endpoints.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// ExpiresWithin reports whether the session's access token expires before
// now+d. Sessions without a known expiry never report as expiring.
func (s *Session) ExpiresWithin(now time.Time, d time.Duration) bool {
	if s.ExpiresAt == 0 {
		return false
	}
	return s.ExpiresAt < now.Add(d).Unix()
}

// normalize fills ExpiresAt when the provider omitted it: first from
// ExpiresIn, then from the (unverified) exp claim of the access token.
// Token signature validation is the provider's job, not this client's.
func (s *Session) normalize(now time.Time) {
	if s.ExpiresAt != 0 {
		return
	}
	if s.ExpiresIn > 0 {
		s.ExpiresAt = now.Unix() + s.ExpiresIn
		return
	}
	if exp, ok := tokenExpiry(s.AccessToken); ok {
		s.ExpiresAt = exp
	}
}

func tokenExpiry(token string) (int64, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return 0, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0, false
	}
	return exp.Unix(), true
}

// User is the provider's representation of an authenticated user.
// Timestamps are kept as the provider's RFC 3339 strings.
type User struct {
	ID               string         `json:"id"`
	Aud              string         `json:"aud"`
	Role             string         `json:"role"`
	Email            string         `json:"email"`
	EmailConfirmedAt string         `json:"email_confirmed_at"`
	Phone            string         `json:"phone"`
	LastSignInAt     string         `json:"last_sign_in_at"`
	AppMetadata      map[string]any `json:"app_metadata"`
	UserMetadata     map[string]any `json:"user_metadata"`
	CreatedAt        string         `json:"created_at"`
	UpdatedAt        string         `json:"updated_at"`
}

// LogoutScope selects which of the user's sessions a logout invalidates.
type LogoutScope string

const (
	// LogoutGlobal invalidates all of the user's sessions.
	LogoutGlobal LogoutScope = "global"
	// LogoutLocal invalidates only the session the token belongs to.
	LogoutLocal LogoutScope = "local"
	// LogoutOthers invalidates every session except the current one.
	LogoutOthers LogoutScope = "others"
)
