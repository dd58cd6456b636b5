// Package auth is the boundary to the sign-in collaborator. The rest of
// the client treats credentials as read-only: screens and the API client
// receive a TokenSource, never the storage behind it. Obtaining and
// refreshing tokens happens outside this application.
package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotSignedIn is returned when no credentials file exists or it holds
// no token.
var ErrNotSignedIn = errors.New("not signed in")

// TokenSource provides the bearer token for authenticated API calls.
type TokenSource interface {
	Token() (string, error)
}

// Profile is the minimal user record cached alongside the token, the
// only state this client keeps across runs.
type Profile struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// Credentials is the on-disk credential store written by the sign-in
// flow and read (only) by this client.
type Credentials struct {
	BearerToken string  `json:"token"`
	User        Profile `json:"user"`
}

var _ TokenSource = (*Credentials)(nil)

// Token implements TokenSource.
func (c *Credentials) Token() (string, error) {
	if c == nil || c.BearerToken == "" {
		return "", ErrNotSignedIn
	}
	return c.BearerToken, nil
}

// UserID returns the subject user ID, preferring the cached profile and
// falling back to the token's claim.
func (c *Credentials) UserID() (int, error) {
	if c.User.ID != 0 {
		return c.User.ID, nil
	}
	return UserIDFromToken(c.BearerToken)
}

// Load reads credentials from path, or from DefaultPath() when path is
// empty. A missing file yields ErrNotSignedIn.
func Load(path string) (*Credentials, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotSignedIn
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	if creds.BearerToken == "" {
		return nil, ErrNotSignedIn
	}
	return &creds, nil
}

// DefaultPath resolves the credentials file in priority order:
// 1. SKILLSASSESS_CREDENTIALS environment variable
// 2. $XDG_CONFIG_HOME/skillsassess/credentials.json
// 3. ~/.config/skillsassess/credentials.json
func DefaultPath() (string, error) {
	if p := os.Getenv("SKILLSASSESS_CREDENTIALS"); p != "" {
		return p, nil
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}

	return filepath.Join(configHome, "skillsassess", "credentials.json"), nil
}

// UserIDFromToken extracts the "id" claim from a JWT without verifying
// the signature. The client never validates tokens; the backend rejects
// bad ones with 401 and that surfaces as a sign-in notice.
func UserIDFromToken(token string) (int, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return 0, fmt.Errorf("malformed token")
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return 0, fmt.Errorf("decode token payload: %w", err)
	}

	var claims struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return 0, fmt.Errorf("parse token claims: %w", err)
	}
	if claims.ID == 0 {
		return 0, fmt.Errorf("token has no user id claim")
	}
	return claims.ID, nil
}

// StaticToken adapts a fixed token string into a TokenSource.
type StaticToken string

// Token implements TokenSource.
func (s StaticToken) Token() (string, error) {
	if s == "" {
		return "", ErrNotSignedIn
	}
	return string(s), nil
}
