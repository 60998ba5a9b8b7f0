// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

// Package credentials provides the implementations for the credentials
package credentials

import (
	"net/http"

	"golang.org/x/oauth2"

	provifv1 "github.com/mindersec/rdm-integrations/pkg/providers/v1"
)

// OAuth2TokenCredential is a credential that uses an OAuth2 access token
type OAuth2TokenCredential struct {
	token *oauth2.Token
}

// Ensure that the OAuth2TokenCredential implements the OAuth2TokenCredential interface
var _ provifv1.OAuth2TokenCredential = (*OAuth2TokenCredential)(nil)

// NewOAuth2TokenCredential creates a new OAuth2TokenCredential from an access token
func NewOAuth2TokenCredential(accessToken string) *OAuth2TokenCredential {
	return &OAuth2TokenCredential{
		token: &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"},
	}
}

// NewOAuth2TokenCredentialFromToken creates a new OAuth2TokenCredential from a
// token obtained through the authorization code exchange
func NewOAuth2TokenCredentialFromToken(token *oauth2.Token) *OAuth2TokenCredential {
	return &OAuth2TokenCredential{
		token: token,
	}
}

// SetAuthorizationHeader sets the authorization header on the request
func (o *OAuth2TokenCredential) SetAuthorizationHeader(req *http.Request) {
	o.token.SetAuthHeader(req)
}

// GetAsOAuth2TokenSource returns the token as an OAuth2 token source
func (o *OAuth2TokenCredential) GetAsOAuth2TokenSource() oauth2.TokenSource {
	return oauth2.StaticTokenSource(o.token)
}
