// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

// Package telemetry provides the metrics of outbound provider calls
package telemetry

import (
	"net/http"
)

// HttpClientMetrics provides the httpClient for recording metrics
type HttpClientMetrics interface {
	NewDurationRoundTripper(wrapped http.RoundTripper, providerClass string) (http.RoundTripper, error)
}

// ProviderMetrics provides the metrics for the providers
type ProviderMetrics interface {
	HttpClientMetrics
}
