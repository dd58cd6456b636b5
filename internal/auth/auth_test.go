package auth

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeToken builds an unsigned JWT-shaped token with the given payload.
func makeToken(payload string) string {
	enc := base64.RawURLEncoding.EncodeToString
	return enc([]byte(`{"alg":"HS256"}`)) + "." + enc([]byte(payload)) + ".sig"
}

func TestUserIDFromToken(t *testing.T) {
	id, err := UserIDFromToken(makeToken(`{"id":13,"email":"u@example.com"}`))
	require.NoError(t, err)
	assert.Equal(t, 13, id)
}

func TestUserIDFromToken_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"no dots", "abcdef"},
		{"bad base64", "a.!!!.c"},
		{"no id claim", makeToken(`{"sub":"x"}`)},
		{"not json", makeToken(`hello`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UserIDFromToken(tt.token)
			require.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"token":"tok123","user":{"id":7,"name":"Ada"}}`), 0o600))

	creds, err := Load(path)
	require.NoError(t, err)

	tok, err := creds.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok123", tok)

	id, err := creds.UserID()
	require.NoError(t, err)
	assert.Equal(t, 7, id)
	assert.Equal(t, "Ada", creds.User.Name)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.True(t, errors.Is(err, ErrNotSignedIn))
}

func TestLoad_EmptyToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"token":"","user":{"id":1}}`), 0o600))

	_, err := Load(path)
	assert.True(t, errors.Is(err, ErrNotSignedIn))
}

func TestCredentials_UserIDFallsBackToToken(t *testing.T) {
	creds := &Credentials{BearerToken: makeToken(`{"id":42}`)}
	id, err := creds.UserID()
	require.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestStaticToken(t *testing.T) {
	tok, err := StaticToken("abc").Token()
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	_, err = StaticToken("").Token()
	assert.True(t, errors.Is(err, ErrNotSignedIn))
}

func TestDefaultPath_EnvOverride(t *testing.T) {
	t.Setenv("SKILLSASSESS_CREDENTIALS", "/tmp/creds.json")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/creds.json", p)
}

func TestDefaultPath_XDG(t *testing.T) {
	t.Setenv("SKILLSASSESS_CREDENTIALS", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "skillsassess", "credentials.json"), p)
}
