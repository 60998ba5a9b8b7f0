// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

// Package oauth drives the OAuth2 authorization code grant against a provider.
// The driver only builds the two requests of the flow and performs the code
// exchange; generating and checking the state is left to the caller.
package oauth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	v1 "github.com/mindersec/rdm-integrations/pkg/providers/v1"
)

const (
	// ResponseTypeCode is the only response type used by the flow
	ResponseTypeCode = "code"
	// GrantTypeAuthorizationCode is the grant type of the token exchange
	GrantTypeAuthorizationCode = "authorization_code"
)

// AuthorizationRequest are the query parameters the browser is redirected
// to the provider with
type AuthorizationRequest struct {
	ClientID     string
	RedirectURI  string
	ResponseType string
	Scope        string
	State        string
}

// TokenExchangeRequest are the parameters posted to the token endpoint
type TokenExchangeRequest struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Code         string
	GrantType    string
	RedirectURI  string
}

// JoinURL joins base and path with exactly one slash, whatever slashes
// surround either of them
func JoinURL(base, path string) string {
	return strings.Trim(base, "/") + "/" + strings.Trim(path, "/")
}

// CallbackPath is the path the provider redirects back to after authorization
func CallbackPath(providerClass string) string {
	return "/oauth/callback/" + providerClass
}

// Driver builds the requests of the authorization code grant for one provider
type Driver struct {
	provider   v1.Provider
	httpClient *http.Client
}

// NewDriver creates a driver for the provider. The HTTP client is used for
// the token exchange; a nil client means http.DefaultClient.
func NewDriver(provider v1.Provider, httpClient *http.Client) *Driver {
	return &Driver{
		provider:   provider,
		httpClient: httpClient,
	}
}

// RedirectURI returns the absolute callback URL for the host and scheme the
// request was made to. Forwarded headers are expected to be applied to the
// request before it gets here.
func (d *Driver) RedirectURI(r *http.Request) string {
	scheme := r.URL.Scheme
	if scheme == "" {
		scheme = "http"
		if r.TLS != nil {
			scheme = "https"
		}
	}
	return scheme + "://" + r.Host + CallbackPath(d.provider.Class())
}

// AuthorizeParams builds the authorization request for the state generated
// by the caller
func (d *Driver) AuthorizeParams(r *http.Request, state string) AuthorizationRequest {
	return AuthorizationRequest{
		ClientID:     d.provider.ClientID(),
		RedirectURI:  d.RedirectURI(r),
		ResponseType: ResponseTypeCode,
		Scope:        strings.Join(d.provider.Scopes(), " "),
		State:        state,
	}
}

// AuthCodeURL returns the provider URL the browser must be redirected to
func (d *Driver) AuthCodeURL(r *http.Request, state string) string {
	params := d.AuthorizeParams(r, state)
	cfg := d.oauthConfig(params.RedirectURI)
	return cfg.AuthCodeURL(params.State)
}

// CallbackParams builds the token exchange request out of the callback
// request. It fails with v1.ErrMissingAuthorizationCode when there is no code.
func (d *Driver) CallbackParams(r *http.Request) (*TokenExchangeRequest, error) {
	code := r.URL.Query().Get("code")
	if code == "" {
		return nil, v1.ErrMissingAuthorizationCode
	}

	return &TokenExchangeRequest{
		TokenURL:     d.provider.ResolveEndpoints().TokenURL,
		ClientID:     d.provider.ClientID(),
		ClientSecret: d.provider.ClientSecret(),
		Code:         code,
		GrantType:    GrantTypeAuthorizationCode,
		RedirectURI:  d.RedirectURI(r),
	}, nil
}

// Exchange posts the token exchange request and returns the token
func (d *Driver) Exchange(ctx context.Context, req *TokenExchangeRequest) (*oauth2.Token, error) {
	if req == nil || req.Code == "" {
		return nil, v1.ErrMissingAuthorizationCode
	}

	cfg := &oauth2.Config{
		ClientID:     req.ClientID,
		ClientSecret: req.ClientSecret,
		RedirectURL:  req.RedirectURI,
		Endpoint: oauth2.Endpoint{
			TokenURL:  req.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	if d.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, d.httpClient)
	}

	token, err := cfg.Exchange(ctx, req.Code)
	if err != nil {
		return nil, fmt.Errorf("error exchanging code for token: %w", err)
	}
	return token, nil
}

func (d *Driver) oauthConfig(redirectURI string) *oauth2.Config {
	endpoints := d.provider.ResolveEndpoints()
	return &oauth2.Config{
		ClientID:     d.provider.ClientID(),
		ClientSecret: d.provider.ClientSecret(),
		RedirectURL:  redirectURI,
		Scopes:       d.provider.Scopes(),
		Endpoint: oauth2.Endpoint{
			AuthURL:   endpoints.AuthorizeURL,
			TokenURL:  endpoints.TokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}
