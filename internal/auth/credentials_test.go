package auth

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestCredentials_TokenExpiry(t *testing.T) {
	issued := time.Date(2024, 9, 8, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		creds      Credentials
		wantNil    bool
		wantExpiry time.Time
	}{
		{
			name:    "no access token",
			creds:   Credentials{ConsumerKey: "key", ConsumerSecret: "secret"},
			wantNil: true,
		},
		{
			name:       "issued token expires after an hour",
			creds:      Credentials{AccessToken: "a", TokenTime: float64(issued.Unix())},
			wantExpiry: issued.Add(time.Hour),
		},
		{
			name:       "fractional issue time",
			creds:      Credentials{AccessToken: "a", TokenTime: float64(issued.Unix()) + 0.5},
			wantExpiry: issued.Add(time.Hour + 500*time.Millisecond),
		},
		{
			name:       "missing issue time is expired",
			creds:      Credentials{AccessToken: "a"},
			wantExpiry: time.Unix(1, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := tt.creds.Token()
			if tt.wantNil {
				assert.Nil(t, tok)
				return
			}
			require.NotNil(t, tok)
			assert.True(t, tt.wantExpiry.Equal(tok.Expiry), "expiry %v, want %v", tok.Expiry, tt.wantExpiry)
		})
	}
}

func TestCredentials_SetTokenKeepsRefreshToken(t *testing.T) {
	creds := Credentials{ConsumerKey: "key", ConsumerSecret: "secret", RefreshToken: "old-refresh"}
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)

	creds.SetToken(&oauth2.Token{AccessToken: "new-access", TokenType: "bearer", Expiry: expiry}, time.Now())

	assert.Equal(t, "new-access", creds.AccessToken)
	assert.Equal(t, "old-refresh", creds.RefreshToken)
	assert.True(t, expiry.Equal(creds.Token().Expiry))
}

func TestCredentials_SaveReplacesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "private.json")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	creds := Credentials{ConsumerKey: "key", ConsumerSecret: "secret", AccessToken: "a"}
	require.NoError(t, creds.Save(path))

	loaded, err := LoadCredentials(path)
	require.NoError(t, err)
	assert.Equal(t, creds, *loaded)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files should be cleaned up")
}

func TestSession_NilSafety(t *testing.T) {
	var s *Session
	assert.False(t, s.Valid())

	empty := NewSession(nil, nil, "")
	assert.False(t, empty.Valid())
	assert.False(t, empty.CanRefresh())
	assert.True(t, empty.Expiry().IsZero())
}

func TestTerminalPrompter(t *testing.T) {
	var out strings.Builder
	p := TerminalPrompter{In: strings.NewReader("  abc123 \n"), Out: &out}

	code, err := p.Prompt(context.Background(), "https://login.example.com/auth")
	require.NoError(t, err)

	assert.Equal(t, "abc123", code)
	assert.Contains(t, out.String(), "https://login.example.com/auth")
}

func TestTerminalPrompter_EmptyInput(t *testing.T) {
	var out strings.Builder
	p := TerminalPrompter{In: strings.NewReader(""), Out: &out}

	_, err := p.Prompt(context.Background(), "https://login.example.com/auth")
	assert.Error(t, err)
}
