package auth

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/omarshaarawi/fantasydash/internal/failure"
	"golang.org/x/oauth2"
)

const (
	oobRedirect    = "oob"
	lockRetryDelay = 50 * time.Millisecond
)

type GatewayConfig struct {
	CredentialsFile string
	AuthURL         string
	TokenURL        string
	Timeout         time.Duration
	// Prompter is nil in non-interactive modes, where a missing refresh
	// token is an authentication failure.
	Prompter Prompter
	Logger   *slog.Logger
}

// Gateway turns the credential file into a live Session. The read, refresh
// and write-back sequence is serialized in process by mu and across
// processes by a lock file next to the credentials.
type Gateway struct {
	cfg    GatewayConfig
	logger *slog.Logger
	mu     sync.Mutex
}

func NewGateway(cfg GatewayConfig) *Gateway {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{cfg: cfg, logger: logger}
}

func (g *Gateway) Authenticate(ctx context.Context) (*Session, error) {
	const op = "authenticate"

	if _, err := os.Stat(g.cfg.CredentialsFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			g.logger.Error("Credential file not found. Create it with your Yahoo app's consumer_key and consumer_secret",
				"path", g.cfg.CredentialsFile)
			return nil, failure.New(failure.KindCredentialsMissing, op, err)
		}
		return nil, g.fail(op, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	lock := flock.New(g.cfg.CredentialsFile + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, g.fail(op, fmt.Errorf("locking credentials file: %w", err))
	}
	if !locked {
		return nil, g.fail(op, errors.New("credentials file is locked"))
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			g.logger.Error("Failed to unlock credentials file", "error", err)
		}
	}()

	creds, err := LoadCredentials(g.cfg.CredentialsFile)
	if err != nil {
		return nil, g.fail(op, err)
	}

	conf := g.oauthConfig(creds)
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: g.cfg.Timeout})

	tok := creds.Token()
	if !tok.Valid() {
		g.logger.Info("Authentication token is not valid or expired, re-authenticating")

		tok, err = g.login(ctx, conf, tok)
		if err != nil {
			return nil, g.fail(op, err)
		}

		creds.SetToken(tok, time.Now())
		if err := creds.Save(g.cfg.CredentialsFile); err != nil {
			g.logger.Error("Failed to save refreshed credentials", "path", g.cfg.CredentialsFile, "error", err)
		}
	}

	client := conf.Client(context.WithoutCancel(ctx), tok)
	client.Timeout = g.cfg.Timeout

	g.logger.Info("Authentication successful", "expiry", tok.Expiry)
	return NewSession(client, tok, creds.GUID), nil
}

func (g *Gateway) login(ctx context.Context, conf *oauth2.Config, tok *oauth2.Token) (*oauth2.Token, error) {
	if tok != nil && tok.RefreshToken != "" {
		refreshed, err := conf.TokenSource(ctx, tok).Token()
		if err != nil {
			return nil, fmt.Errorf("refreshing token: %w", err)
		}
		return refreshed, nil
	}

	if g.cfg.Prompter == nil {
		return nil, errors.New("no refresh token stored and interactive login is unavailable")
	}

	code, err := g.cfg.Prompter.Prompt(ctx, conf.AuthCodeURL("fantasydash"))
	if err != nil {
		return nil, fmt.Errorf("prompting for verifier: %w", err)
	}

	exchanged, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging verifier: %w", err)
	}
	return exchanged, nil
}

func (g *Gateway) oauthConfig(creds *Credentials) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     creds.ConsumerKey,
		ClientSecret: creds.ConsumerSecret,
		RedirectURL:  oobRedirect,
		Endpoint: oauth2.Endpoint{
			AuthURL:   g.cfg.AuthURL,
			TokenURL:  g.cfg.TokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
}

func (g *Gateway) fail(op string, err error) error {
	g.logger.Error("An error occurred during authentication", "error", err)
	return failure.New(failure.KindAuthFailure, op, err)
}
