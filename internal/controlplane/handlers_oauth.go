// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package controlplane

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/mindersec/rdm-integrations/internal/crypto"
	"github.com/mindersec/rdm-integrations/internal/providers/oauth"
	"github.com/mindersec/rdm-integrations/internal/session"
	provifv1 "github.com/mindersec/rdm-integrations/pkg/providers/v1"
)

const (
	tokenStageAuthorize = "authorize"
	tokenStageCallback  = "callback"
)

// HandleAuthorize starts the authorization code flow. The state is kept in
// the session and the browser is redirected to the provider. The optional
// next query parameter is where the callback sends the user once done.
func (s *Server) HandleAuthorize(w http.ResponseWriter, r *http.Request) {
	if err := s.processAuthorize(w, r); err != nil {
		writeError(w, r, err)
	}
}

func (s *Server) processAuthorize(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	providerClass := chi.URLParam(r, "provider")

	p, err := s.providers.Get(providerClass)
	if err != nil {
		return newHttpError(http.StatusNotFound, "unknown provider").SetContents("unknown provider %q", providerClass)
	}

	state, err := crypto.GenerateNonce()
	if err != nil {
		return fmt.Errorf("error generating state: %w", err)
	}

	values := s.loadSession(r)
	values[session.KeyState] = state
	values[session.KeyNext] = safeNext(r.URL.Query().Get("next"))
	if err := s.sessions.Save(w, values); err != nil {
		return err
	}

	s.mt.AddTokenOpCount(ctx, providerClass, tokenStageAuthorize, true)

	driver := oauth.NewDriver(p, s.providers.HTTPClient(providerClass))
	http.Redirect(w, r, driver.AuthCodeURL(r, state), http.StatusFound)
	return nil
}

// HandleOAuthCallback handles the OAuth 2.0 authorization code callback from
// the provider. The state passed in is compared to the one kept in the
// session; if they match, the code is exchanged for a token which is stored
// in the session.
func (s *Server) HandleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	providerClass := chi.URLParam(r, "provider")
	if err := s.processOAuthCallback(w, r, providerClass); err != nil {
		s.mt.AddTokenOpCount(r.Context(), providerClass, tokenStageCallback, false)
		writeError(w, r, err)
		return
	}
	s.mt.AddTokenOpCount(r.Context(), providerClass, tokenStageCallback, true)
}

func (s *Server) processOAuthCallback(w http.ResponseWriter, r *http.Request, providerClass string) error {
	p, err := s.providers.Get(providerClass)
	if err != nil {
		return newHttpError(http.StatusNotFound, "unknown provider").SetContents("unknown provider %q", providerClass)
	}

	// the state is single use: it leaves the session whatever the outcome
	values := s.loadSession(r)
	expected := values.Pop(session.KeyState)
	next := safeNext(values.Pop(session.KeyNext))

	token, authErr := s.exchangeCallback(r, p, expected)
	if authErr == nil {
		values[session.TokenKey(providerClass)] = token.AccessToken
	}
	if err := s.sessions.Save(w, values); err != nil {
		return err
	}
	if authErr != nil {
		return authErr
	}

	zerolog.Ctx(r.Context()).Info().Str("provider", providerClass).Msg("provider token obtained")
	http.Redirect(w, r, next, http.StatusFound)
	return nil
}

func (s *Server) exchangeCallback(r *http.Request, p provifv1.Provider, expectedState string) (*oauth2.Token, error) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx).With().Str("provider", p.Class()).Logger()

	state := r.URL.Query().Get("state")
	if !crypto.NonceMatches(expectedState, state) {
		logger.Debug().Msg("state mismatch on callback")
		return nil, newHttpError(http.StatusForbidden, "invalid state").SetContents("invalid OAuth state")
	}
	valid, err := crypto.IsNonceValid(state, s.cfg.Auth.GetNoncePeriod())
	if err != nil || !valid {
		logger.Debug().Err(err).Msg("expired state on callback")
		return nil, newHttpError(http.StatusForbidden, "invalid state").SetContents("expired OAuth state")
	}

	if remoteErr := r.URL.Query().Get("error"); remoteErr != "" {
		logger.Info().Str("error", remoteErr).Msg("authorization denied by provider")
		return nil, newHttpError(http.StatusUnauthorized, "authorization denied").
			SetContents("authorization failed: %s", remoteErr)
	}

	driver := oauth.NewDriver(p, s.providers.HTTPClient(p.Class()))
	exchange, err := driver.CallbackParams(r)
	if errors.Is(err, provifv1.ErrMissingAuthorizationCode) {
		return nil, newHttpError(http.StatusBadRequest, "missing code").SetContents("authorization failed: %v", err)
	} else if err != nil {
		return nil, err
	}

	token, err := driver.Exchange(ctx, exchange)
	if err != nil {
		logger.Info().Err(err).Msg("token exchange failed")
		return nil, newHttpError(http.StatusUnauthorized, "exchange failed").SetContents("authorization failed")
	}
	return token, nil
}
