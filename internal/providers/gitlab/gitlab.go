// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

// Package gitlab provides the GitLab provider implementation
package gitlab

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/mindersec/rdm-integrations/internal/providers/oauth"
	"github.com/mindersec/rdm-integrations/pkg/config/server"
	provifv1 "github.com/mindersec/rdm-integrations/pkg/providers/v1"
)

// Class is the string that represents the GitLab provider class
const Class = "gitlab"

// Ensure that the GitLab provider implements the right interfaces
var _ provifv1.IssueTracker = (*Provider)(nil)
var _ provifv1.FileSource = (*Provider)(nil)
var _ provifv1.WebhookVerifier = (*Provider)(nil)

// Provider is the GitLab provider. It holds no per-request state and can be
// shared between requests.
type Provider struct {
	baseURL      string
	clientID     string
	clientSecret string
	scopes       []string
}

// New creates a new GitLab provider out of a validated configuration
func New(cfg *server.GitLabConfig) (*Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	clientID, err := cfg.GetClientID()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", provifv1.ErrConfiguration, err)
	}
	clientSecret, err := cfg.GetClientSecret()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", provifv1.ErrConfiguration, err)
	}

	return &Provider{
		baseURL:      cfg.GetBaseURL(),
		clientID:     clientID,
		clientSecret: clientSecret,
		scopes:       cfg.GetScopes(),
	}, nil
}

// ResolveEndpoints derives the OAuth and API endpoints from a GitLab base URL
func ResolveEndpoints(baseURL string) provifv1.Endpoints {
	return provifv1.Endpoints{
		AuthorizeURL: oauth.JoinURL(baseURL, "oauth/authorize"),
		TokenURL:     oauth.JoinURL(baseURL, "oauth/token"),
		APIURL:       oauth.JoinURL(baseURL, "api/v4"),
	}
}

// Class implements the Provider interface
func (*Provider) Class() string {
	return Class
}

// BaseURL implements the Provider interface
func (p *Provider) BaseURL() string {
	return p.baseURL
}

// ResolveEndpoints implements the Provider interface
func (p *Provider) ResolveEndpoints() provifv1.Endpoints {
	return ResolveEndpoints(p.baseURL)
}

// Scopes implements the Provider interface
func (p *Provider) Scopes() []string {
	return p.scopes
}

// ClientID implements the Provider interface
func (p *Provider) ClientID() string {
	return p.clientID
}

// ClientSecret implements the Provider interface
func (p *Provider) ClientSecret() string {
	return p.clientSecret
}

// escapeComponent percent-encodes s so it can be used as a single path
// segment or query value. Slashes become %2F, the way GitLab expects
// namespaced project paths and file paths.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
