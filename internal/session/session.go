// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

// Package session keeps the per-user state of the OAuth and import flows in
// a signed and encrypted cookie
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"

	"github.com/mindersec/rdm-integrations/pkg/config/server"
)

const (
	// KeyState is the anti-CSRF state of a pending OAuth authorization
	KeyState = "state"
	// KeyNext is where to send the user once the OAuth flow completes
	KeyNext = "next"
	// KeyImportSourceTitle is shown to the user after an import redirect
	KeyImportSourceTitle = "import_source_title"
	// KeyImportFileName is the name of the staged import file
	KeyImportFileName = "import_file_name"

	tokenKeyPrefix = "token:"
)

// ErrInvalidSession is returned when the session cookie cannot be decoded,
// e.g. because it was tampered with or has expired
var ErrInvalidSession = errors.New("invalid session")

// TokenKey is the key of the access token obtained for a provider
func TokenKey(providerClass string) string {
	return tokenKeyPrefix + providerClass
}

// Values are the contents of a session
type Values map[string]string

// Get returns the value of key, or an empty string
func (v Values) Get(key string) string {
	return v[key]
}

// Pop returns the value of key and removes it from the session
func (v Values) Pop(key string) string {
	val := v[key]
	delete(v, key)
	return val
}

// Store reads and writes sessions from cookies
type Store struct {
	codec  *securecookie.SecureCookie
	name   string
	maxAge time.Duration
	secure bool
}

// NewStore creates a store from the session configuration
func NewStore(cfg *server.SessionConfig) (*Store, error) {
	hashKey, err := cfg.GetHashKey()
	if err != nil {
		return nil, err
	}
	blockKey, err := cfg.GetBlockKey()
	if err != nil {
		return nil, err
	}
	return New(cfg.CookieName, hashKey, blockKey, cfg.MaxAge, cfg.Secure), nil
}

// New creates a store signing cookies with hashKey and encrypting them with
// blockKey
func New(name string, hashKey, blockKey []byte, maxAge time.Duration, secure bool) *Store {
	codec := securecookie.New(hashKey, blockKey)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(int(maxAge.Seconds()))
	return &Store{
		codec:  codec,
		name:   name,
		maxAge: maxAge,
		secure: secure,
	}
}

// Load returns the session of the request. A request without a session
// cookie has an empty session.
func (s *Store) Load(r *http.Request) (Values, error) {
	cookie, err := r.Cookie(s.name)
	if errors.Is(err, http.ErrNoCookie) {
		return Values{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}

	values := Values{}
	if err := s.codec.Decode(s.name, cookie.Value, &values); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}
	return values, nil
}

// Save writes the session to the response
func (s *Store) Save(w http.ResponseWriter, values Values) error {
	encoded, err := s.codec.Encode(s.name, values)
	if err != nil {
		return fmt.Errorf("error encoding session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(s.maxAge.Seconds()),
		Secure:   s.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear removes the session cookie
func (s *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   s.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
