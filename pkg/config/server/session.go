// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"encoding/hex"
	"fmt"
	"time"
)

// SessionConfig is the configuration of the cookie-backed session
type SessionConfig struct {
	// CookieName is the name of the session cookie
	CookieName string `mapstructure:"cookie_name" default:"rdm_session"`
	// HashKey is the hex-encoded key used to authenticate the cookie
	HashKey string `mapstructure:"hash_key"`
	// HashKeyFile is the location of the file containing the hash key
	HashKeyFile string `mapstructure:"hash_key_file"`
	// BlockKey is the hex-encoded key used to encrypt the cookie
	BlockKey string `mapstructure:"block_key"`
	// BlockKeyFile is the location of the file containing the block key
	BlockKeyFile string `mapstructure:"block_key_file"`
	// MaxAge is the lifetime of the session cookie
	MaxAge time.Duration `mapstructure:"max_age" default:"24h"`
	// Secure marks the cookie as HTTPS-only
	Secure bool `mapstructure:"secure" default:"true"`
}

// GetHashKey returns the decoded hash key
func (s *SessionConfig) GetHashKey() ([]byte, error) {
	return decodeKey(s.HashKeyFile, s.HashKey, "session hash key")
}

// GetBlockKey returns the decoded block key
func (s *SessionConfig) GetBlockKey() ([]byte, error) {
	return decodeKey(s.BlockKeyFile, s.BlockKey, "session block key")
}

// Validate checks that the session keys are present and have usable sizes
func (s *SessionConfig) Validate() error {
	hashKey, err := s.GetHashKey()
	if err != nil {
		return configError("session: %v", err)
	}
	if len(hashKey) < 32 {
		return configError("session: hash key must be at least 32 bytes")
	}

	blockKey, err := s.GetBlockKey()
	if err != nil {
		return configError("session: %v", err)
	}
	switch len(blockKey) {
	case 16, 24, 32:
		return nil
	default:
		return configError("session: block key must be 16, 24 or 32 bytes")
	}
}

func decodeKey(file, arg, desc string) ([]byte, error) {
	raw, err := fileOrArg(file, arg, desc)
	if err != nil {
		return nil, err
	}
	key, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%s is not hex-encoded: %w", desc, err)
	}
	return key, nil
}
