// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

// Package metrics defines the primitives available for the controlplane metrics
package metrics

import (
	"context"
)

type noopMetrics struct{}

// NewNoopMetrics creates a new controlplane metrics instance.
func NewNoopMetrics() Metrics {
	return &noopMetrics{}
}

// Init implements Metrics.Init
func (*noopMetrics) Init() error {
	return nil
}

// AddWebhookEventTypeCount implements Metrics.AddWebhookEventTypeCount
func (*noopMetrics) AddWebhookEventTypeCount(_ context.Context, _ *WebhookEventState) {}

// AddTokenOpCount implements Metrics.AddTokenOpCount
func (*noopMetrics) AddTokenOpCount(_ context.Context, _, _ string, _ bool) {}

// AddProviderOpCount implements Metrics.AddProviderOpCount
func (*noopMetrics) AddProviderOpCount(_ context.Context, _, _ string, _ bool) {}
