package auth

import (
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// Session is an authenticated handle to the Yahoo API. Refreshes happen
// inside the oauth2 transport; nothing outside this package mutates it.
type Session struct {
	token  *oauth2.Token
	client *http.Client
	guid   string
}

func NewSession(client *http.Client, token *oauth2.Token, guid string) *Session {
	return &Session{token: token, client: client, guid: guid}
}

func (s *Session) Valid() bool {
	return s != nil && s.client != nil && s.token.Valid()
}

func (s *Session) Expiry() time.Time {
	if s.token == nil {
		return time.Time{}
	}
	return s.token.Expiry
}

func (s *Session) CanRefresh() bool {
	return s.token != nil && s.token.RefreshToken != ""
}

func (s *Session) GUID() string {
	return s.guid
}

func (s *Session) HTTPClient() *http.Client {
	return s.client
}
