// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestDurationRoundTripperRecords(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(srv.Close)

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m := newProviderMetricsWithMeter(mp.Meter("test"))

	rt, err := m.NewDurationRoundTripper(http.DefaultTransport, "gitlab")
	require.NoError(t, err)

	client := &http.Client{Transport: rt}
	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var names []string
	for _, sm := range rm.ScopeMetrics {
		for _, metric := range sm.Metrics {
			names = append(names, metric.Name)
		}
	}
	assert.Contains(t, names, "gitlab.http.roundtrip.duration")
}

func TestHistogramIsCachedPerProvider(t *testing.T) {
	t.Parallel()

	mp := sdkmetric.NewMeterProvider()
	m := newProviderMetricsWithMeter(mp.Meter("test"))

	_, err := m.NewDurationRoundTripper(nil, "gitlab")
	require.NoError(t, err)
	_, err = m.NewDurationRoundTripper(nil, "gitlab")
	require.NoError(t, err)

	assert.Equal(t, 1, m.httpProviderHistograms.Size())
}

func TestNoopProviderMetrics(t *testing.T) {
	t.Parallel()

	rt, err := NoopProviderMetrics{}.NewDurationRoundTripper(http.DefaultTransport, "gitlab")
	require.NoError(t, err)
	assert.Equal(t, http.DefaultTransport, rt)
}
