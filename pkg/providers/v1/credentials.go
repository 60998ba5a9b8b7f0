// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package v1

import (
	"net/http"

	"golang.org/x/oauth2"
)

// RestCredential is the interface for credentials used in REST requests
type RestCredential interface {
	SetAuthorizationHeader(req *http.Request)
}

// OAuth2TokenCredential is the interface for credentials that are OAuth2 tokens
type OAuth2TokenCredential interface {
	RestCredential
	GetAsOAuth2TokenSource() oauth2.TokenSource
}
