// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

// Package crypto contains the random values used to protect the OAuth flow.
package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

// GenerateNonce generates the opaque state for the OAuth2 flow. The nonce is the
// base64 encoding of the current unix time followed by 32 random bytes.
func GenerateNonce() (string, error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", err
	}

	nonceBytes := make([]byte, 8, 8+len(randomBytes))
	timestamp := time.Now().Unix()
	if timestamp < 0 {
		return "", fmt.Errorf("invalid nonce timestamp: %d", timestamp)
	}
	binary.BigEndian.PutUint64(nonceBytes, uint64(timestamp))

	nonceBytes = append(nonceBytes, randomBytes...)
	return base64.RawURLEncoding.EncodeToString(nonceBytes), nil
}

// IsNonceValid checks that a nonce was produced by GenerateNonce no longer
// than period ago.
func IsNonceValid(nonce string, period time.Duration) (bool, error) {
	nonceBytes, err := base64.RawURLEncoding.DecodeString(nonce)
	if err != nil {
		return false, err
	}

	if len(nonceBytes) < 8 {
		return false, nil
	}

	storedTimestamp := binary.BigEndian.Uint64(nonceBytes[:8])
	if storedTimestamp > math.MaxInt64 {
		return false, nil
	}
	// nolint: gosec // checked for overflow above
	issued := time.Unix(int64(storedTimestamp), 0)

	return time.Since(issued) <= period, nil
}

// NonceMatches compares the nonce kept by the server with the one presented by
// the client in constant time. An empty expected nonce never matches.
func NonceMatches(expected, presented string) bool {
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(presented)) == 1
}
