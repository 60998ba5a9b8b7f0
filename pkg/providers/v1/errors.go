// SPDX-FileCopyrightText: Copyright 2023 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package v1

import "errors"

var (
	// ErrConfiguration is returned when the provider configuration is missing
	// a base URL or client credentials
	ErrConfiguration = errors.New("invalid provider configuration")
	// ErrMissingAuthorizationCode is returned when an OAuth callback carries no code
	ErrMissingAuthorizationCode = errors.New("missing authorization code")
	// ErrNotConfigured is returned when an integration lacks the options needed
	// for an operation. No request is sent to the provider in that case.
	ErrNotConfigured = errors.New("integration is not configured")
	// ErrUnknownProvider is returned when no provider is registered for a class
	ErrUnknownProvider = errors.New("unknown provider")
	// ErrInvalidOptions is returned when integration options do not match the
	// provider fields
	ErrInvalidOptions = errors.New("invalid integration options")
	// ErrUnsupported is returned when a provider lacks a capability
	ErrUnsupported = errors.New("operation not supported by provider")
)
