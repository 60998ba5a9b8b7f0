// SPDX-FileCopyrightText: Copyright 2023 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// WebhookEventState is the outcome of one webhook delivery
type WebhookEventState struct {
	// Provider is the class of the provider that delivered the event
	Provider string
	// Typ is the type of the event, e.g. Issue Hook
	Typ string
	// StatusCode is the HTTP status the delivery was answered with
	StatusCode int
	// Accepted is whether the event changed a tracked issue
	Accepted bool
	// Error is whether there was an error processing the event
	Error bool
}

// Metrics is the interface of the controlplane metrics
type Metrics interface {
	// Init creates the instruments
	Init() error

	// AddWebhookEventTypeCount adds a count to the webhook event type counter
	AddWebhookEventTypeCount(context.Context, *WebhookEventState)

	// AddTokenOpCount records a step of the OAuth flow
	AddTokenOpCount(ctx context.Context, provider, stage string, success bool)

	// AddProviderOpCount records a call made on behalf of a user, e.g. an
	// issue creation or a file import
	AddProviderOpCount(ctx context.Context, provider, op string, success bool)
}

type metricsImpl struct {
	meter           metric.Meter
	instrumentsOnce sync.Once

	// webhook http codes by provider
	webhookStatusCodeCounter metric.Int64Counter
	// webhook event type counter
	webhookEventTypeCounter metric.Int64Counter
	// authorize and callback steps of the OAuth flow
	tokenOpCounter metric.Int64Counter
	// issue creations and file imports
	providerOpCounter metric.Int64Counter
}

// NewMetrics creates the metrics on the global meter provider
func NewMetrics() Metrics {
	return newMetricsWithMeter(otel.Meter("controlplane"))
}

func newMetricsWithMeter(meter metric.Meter) *metricsImpl {
	return &metricsImpl{
		meter: meter,
	}
}

func (m *metricsImpl) Init() error {
	var err error
	m.instrumentsOnce.Do(func() {
		err = m.initInstrumentsOnce()
	})
	return err
}

func (m *metricsImpl) initInstrumentsOnce() error {
	var err error
	m.webhookStatusCodeCounter, err = m.meter.Int64Counter("webhook.status_code",
		metric.WithDescription("Number of webhook requests by status code"),
		metric.WithUnit("requests"))
	if err != nil {
		return fmt.Errorf("failed to create webhook status code counter: %w", err)
	}

	m.webhookEventTypeCounter, err = m.meter.Int64Counter("webhook.event_type",
		metric.WithDescription("Number of webhook events by event type"),
		metric.WithUnit("events"))
	if err != nil {
		return fmt.Errorf("failed to create webhook event type counter: %w", err)
	}

	m.tokenOpCounter, err = m.meter.Int64Counter("token-checks",
		metric.WithDescription("Number of times authorization URLs are issued and codes exchanged"),
		metric.WithUnit("ops"))
	if err != nil {
		return fmt.Errorf("failed to create token operations counter: %w", err)
	}

	m.providerOpCounter, err = m.meter.Int64Counter("provider.operations",
		metric.WithDescription("Number of issue creations and file imports"),
		metric.WithUnit("ops"))
	if err != nil {
		return fmt.Errorf("failed to create provider operations counter: %w", err)
	}

	return nil
}

// AddWebhookEventTypeCount adds a count to the webhook event type counter
func (m *metricsImpl) AddWebhookEventTypeCount(ctx context.Context, state *WebhookEventState) {
	if m.webhookEventTypeCounter == nil || m.webhookStatusCodeCounter == nil {
		return
	}

	m.webhookStatusCodeCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", state.Provider),
		attribute.Int("status_code", state.StatusCode),
	))

	labels := []attribute.KeyValue{
		attribute.String("provider", state.Provider),
		attribute.String("webhook_event.type", state.Typ),
		attribute.Bool("webhook_event.accepted", state.Accepted),
		attribute.Bool("webhook_event.error", state.Error),
	}
	m.webhookEventTypeCounter.Add(ctx, 1, metric.WithAttributes(labels...))
}

// AddTokenOpCount records a step of the OAuth flow
func (m *metricsImpl) AddTokenOpCount(ctx context.Context, provider, stage string, success bool) {
	if m.tokenOpCounter == nil {
		return
	}

	m.tokenOpCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("stage", stage),
		attribute.Bool("success", success)))
}

// AddProviderOpCount records a call made on behalf of a user
func (m *metricsImpl) AddProviderOpCount(ctx context.Context, provider, op string, success bool) {
	if m.providerOpCounter == nil {
		return
	}

	m.providerOpCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("op", op),
		attribute.Bool("success", success)))
}
