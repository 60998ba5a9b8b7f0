// SPDX-FileCopyrightText: Copyright 2023 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package server

import "time"

// AuthConfig is the configuration of the OAuth flow
type AuthConfig struct {
	// NoncePeriod is the period in seconds for which an OAuth state is valid
	NoncePeriod int64 `mapstructure:"nonce_period" default:"3600"`
}

// GetNoncePeriod returns the nonce period as a duration
func (a *AuthConfig) GetNoncePeriod() time.Duration {
	return time.Duration(a.NoncePeriod) * time.Second
}

// ImportConfig is the configuration of file imports
type ImportConfig struct {
	// StagingDir is where fetched files wait for the import pipeline
	StagingDir string `mapstructure:"staging_dir" default:"./staging"`
}
