package auth

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
)

// Yahoo access tokens live for one hour; the credential file only records
// when the token was issued.
const tokenLifetime = time.Hour

// Credentials is the on-disk credential file, field compatible with the
// yahoo_oauth private.json layout.
type Credentials struct {
	ConsumerKey    string  `json:"consumer_key"`
	ConsumerSecret string  `json:"consumer_secret"`
	AccessToken    string  `json:"access_token,omitempty"`
	RefreshToken   string  `json:"refresh_token,omitempty"`
	TokenType      string  `json:"token_type,omitempty"`
	TokenTime      float64 `json:"token_time,omitempty"`
	GUID           string  `json:"guid,omitempty"`
}

func LoadCredentials(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading credentials file: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("decoding credentials file %s: %w", path, err)
	}

	if creds.ConsumerKey == "" || creds.ConsumerSecret == "" {
		return nil, fmt.Errorf("credentials file %s must contain consumer_key and consumer_secret", path)
	}

	return &creds, nil
}

// Save replaces the file at path atomically.
func (c *Credentials) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp credentials file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp credentials file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("setting credentials file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp credentials file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing credentials file: %w", err)
	}
	return nil
}

// Token returns the stored token, or nil if none was ever issued. A token
// without an issue time is treated as expired.
func (c *Credentials) Token() *oauth2.Token {
	if c.AccessToken == "" {
		return nil
	}

	expiry := time.Unix(1, 0)
	if c.TokenTime > 0 {
		sec, frac := math.Modf(c.TokenTime)
		expiry = time.Unix(int64(sec), int64(frac*1e9)).Add(tokenLifetime)
	}

	return &oauth2.Token{
		AccessToken:  c.AccessToken,
		RefreshToken: c.RefreshToken,
		TokenType:    c.TokenType,
		Expiry:       expiry,
	}
}

func (c *Credentials) SetToken(tok *oauth2.Token, now time.Time) {
	c.AccessToken = tok.AccessToken
	if tok.RefreshToken != "" {
		c.RefreshToken = tok.RefreshToken
	}
	if tok.TokenType != "" {
		c.TokenType = tok.TokenType
	}

	issued := now
	if !tok.Expiry.IsZero() {
		issued = tok.Expiry.Add(-tokenLifetime)
	}
	c.TokenTime = float64(issued.UnixNano()) / 1e9

	if guid, ok := tok.Extra("xoauth_yahoo_guid").(string); ok && guid != "" {
		c.GUID = guid
	}
}
