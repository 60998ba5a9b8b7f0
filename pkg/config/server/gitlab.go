// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"net/url"
	"strings"
)

// DefaultGitLabScopes is requested when no scopes are configured. GitLab has
// no narrower scope that allows creating issues.
var DefaultGitLabScopes = []string{"api"}

// GitLabConfig is the configuration for the GitLab OAuth provider
type GitLabConfig struct {
	OAuthClientConfig `mapstructure:",squash"`

	// BaseURL is the URL of the GitLab instance, e.g. https://gitlab.com
	BaseURL string `mapstructure:"gitlab_url" default:"https://gitlab.com"`

	// Scopes is the list of scopes to request from the GitLab OAuth provider
	Scopes []string `mapstructure:"scopes"`
}

// GetBaseURL returns the GitLab URL without surrounding slashes
func (cfg *GitLabConfig) GetBaseURL() string {
	return strings.Trim(cfg.BaseURL, "/")
}

// GetScopes returns the configured scopes, or the default ones
func (cfg *GitLabConfig) GetScopes() []string {
	if len(cfg.Scopes) == 0 {
		return DefaultGitLabScopes
	}
	return cfg.Scopes
}

// Validate returns an error wrapping v1.ErrConfiguration when the
// GitLab provider cannot be used.
func (cfg *GitLabConfig) Validate() error {
	base := cfg.GetBaseURL()
	if base == "" {
		return configError("gitlab: gitlab_url is required")
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return configError("gitlab: gitlab_url %q is not an absolute URL", cfg.BaseURL)
	}

	clientID, err := cfg.GetClientID()
	if err != nil {
		return configError("gitlab: %v", err)
	}
	if clientID == "" {
		return configError("gitlab: client_id is required")
	}

	clientSecret, err := cfg.GetClientSecret()
	if err != nil {
		return configError("gitlab: %v", err)
	}
	if clientSecret == "" {
		return configError("gitlab: client_secret is required")
	}

	return nil
}
