// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package server

import "time"

// ProviderConfig contains the configuration of the forge providers
type ProviderConfig struct {
	// GitLab is the configuration of the GitLab provider
	GitLab GitLabConfig `mapstructure:"gitlab"`

	// HTTPTimeout bounds every outbound call to a provider API
	HTTPTimeout time.Duration `mapstructure:"http_timeout" default:"30s"`
}

// Validate validates the configuration of the enabled providers
func (p *ProviderConfig) Validate() error {
	return p.GitLab.Validate()
}
