// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"fmt"
	"net/http"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var _ http.RoundTripper = (*instrumentedRoundTripper)(nil)

type instrumentedRoundTripper struct {
	baseRoundTripper  http.RoundTripper
	durationHistogram metric.Int64Histogram
}

func (irt *instrumentedRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	startTime := time.Now()

	resp, err := irt.baseRoundTripper.RoundTrip(r)

	duration := time.Since(startTime).Milliseconds()
	labels := []attribute.KeyValue{
		attribute.String("http_method", r.Method),
		attribute.String("http_host", r.URL.Host),
	}

	if resp != nil {
		labels = append(labels, attribute.Int("http_status_code", resp.StatusCode))
	}

	irt.durationHistogram.Record(r.Context(), duration, metric.WithAttributes(labels...))

	return resp, err
}

var _ ProviderMetrics = (*providerMetrics)(nil)

type providerMetrics struct {
	httpClientMetrics
}

// NewProviderMetrics creates a new provider metrics instance on the global meter provider.
func NewProviderMetrics() ProviderMetrics {
	return newProviderMetricsWithMeter(otel.Meter("providers"))
}

func newProviderMetricsWithMeter(meter metric.Meter) *providerMetrics {
	return &providerMetrics{
		httpClientMetrics: httpClientMetrics{
			providersMeter:         meter,
			httpProviderHistograms: xsync.NewMapOf[string, metric.Int64Histogram](),
		},
	}
}

var _ HttpClientMetrics = (*httpClientMetrics)(nil)

type httpClientMetrics struct {
	providersMeter metric.Meter

	// keyed by provider class
	httpProviderHistograms *xsync.MapOf[string, metric.Int64Histogram]
}

func (m *httpClientMetrics) createProviderHistogram(providerClass string) (metric.Int64Histogram, error) {
	histogramName := fmt.Sprintf("%s.http.roundtrip.duration", providerClass)
	return m.providersMeter.Int64Histogram(histogramName,
		metric.WithDescription("HTTP roundtrip duration for provider"),
		metric.WithUnit("ms"),
	)
}

func (m *httpClientMetrics) getHistogramForProvider(providerClass string) metric.Int64Histogram {
	histogram, _ := m.httpProviderHistograms.LoadOrCompute(providerClass, func() metric.Int64Histogram {
		newHistogram, err := m.createProviderHistogram(providerClass)
		if err != nil {
			log.Printf("failed to create histogram for provider %s: %v", providerClass, err)
			return nil
		}
		return newHistogram
	})
	return histogram
}

// NewDurationRoundTripper wraps an HTTP client transport so that the
// roundtrip duration of every request is recorded, and the request is traced.
func (m *httpClientMetrics) NewDurationRoundTripper(
	wrapped http.RoundTripper,
	providerClass string,
) (http.RoundTripper, error) {
	histogram := m.getHistogramForProvider(providerClass)
	if histogram == nil {
		return nil, fmt.Errorf("failed to retrieve histogram for provider %s", providerClass)
	}
	if wrapped == nil {
		wrapped = http.DefaultTransport
	}

	return &instrumentedRoundTripper{
		baseRoundTripper:  otelhttp.NewTransport(wrapped),
		durationHistogram: histogram,
	}, nil
}

var _ ProviderMetrics = NoopProviderMetrics{}

// NoopProviderMetrics leaves transports untouched
type NoopProviderMetrics struct{}

// NewDurationRoundTripper returns the wrapped transport
func (NoopProviderMetrics) NewDurationRoundTripper(wrapped http.RoundTripper, _ string) (http.RoundTripper, error) {
	return wrapped, nil
}
