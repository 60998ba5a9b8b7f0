// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

// Package providers contains the registry of configured providers and the
// HTTP clients used to reach them
package providers

import (
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/mindersec/rdm-integrations/internal/providers/gitlab"
	"github.com/mindersec/rdm-integrations/internal/providers/telemetry"
	"github.com/mindersec/rdm-integrations/pkg/config/server"
	provifv1 "github.com/mindersec/rdm-integrations/pkg/providers/v1"
)

// Registry maps a provider class to the configured provider
type Registry struct {
	providers map[string]provifv1.Provider
	clients   map[string]*http.Client
}

// NewRegistry creates a registry out of already built providers. Every
// provider gets the given HTTP client.
func NewRegistry(cli *http.Client, ps ...provifv1.Provider) *Registry {
	if cli == nil {
		cli = http.DefaultClient
	}
	r := &Registry{
		providers: make(map[string]provifv1.Provider, len(ps)),
		clients:   make(map[string]*http.Client, len(ps)),
	}
	for _, p := range ps {
		r.providers[p.Class()] = p
		r.clients[p.Class()] = cli
	}
	return r
}

// NewRegistryFromConfig builds every provider in the configuration. Each
// provider gets its own instrumented HTTP client.
func NewRegistryFromConfig(cfg *server.ProviderConfig, metrics telemetry.HttpClientMetrics) (*Registry, error) {
	gl, err := gitlab.New(&cfg.GitLab)
	if err != nil {
		return nil, fmt.Errorf("error creating %s provider: %w", gitlab.Class, err)
	}

	cli, err := NewHTTPClient(cfg.HTTPTimeout, metrics, gitlab.Class)
	if err != nil {
		return nil, err
	}

	r := NewRegistry(cli)
	r.providers[gl.Class()] = gl
	r.clients[gl.Class()] = cli
	return r, nil
}

// NewHTTPClient returns the client used for the calls to a provider. Calls
// are bounded by timeout; there are no retries.
func NewHTTPClient(timeout time.Duration, metrics telemetry.HttpClientMetrics, providerClass string) (*http.Client, error) {
	if metrics == nil {
		metrics = telemetry.NoopProviderMetrics{}
	}
	transport, err := metrics.NewDurationRoundTripper(http.DefaultTransport, providerClass)
	if err != nil {
		return nil, fmt.Errorf("error instrumenting %s client: %w", providerClass, err)
	}
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}, nil
}

// Get returns the provider of the class, or provifv1.ErrUnknownProvider
func (r *Registry) Get(class string) (provifv1.Provider, error) {
	p, ok := r.providers[class]
	if !ok {
		return nil, fmt.Errorf("%w: %q", provifv1.ErrUnknownProvider, class)
	}
	return p, nil
}

// HTTPClient returns the client to reach the provider of the class with
func (r *Registry) HTTPClient(class string) *http.Client {
	if cli, ok := r.clients[class]; ok {
		return cli
	}
	return http.DefaultClient
}

// WebhookVerifier returns the provider of the class if it delivers webhooks
func (r *Registry) WebhookVerifier(class string) (provifv1.WebhookVerifier, error) {
	p, err := r.Get(class)
	if err != nil {
		return nil, err
	}
	wv, ok := p.(provifv1.WebhookVerifier)
	if !ok {
		return nil, fmt.Errorf("%w: %s does not deliver webhooks", provifv1.ErrUnsupported, class)
	}
	return wv, nil
}

// FileSource returns the provider of the class if files can be imported from it
func (r *Registry) FileSource(class string) (provifv1.FileSource, error) {
	p, err := r.Get(class)
	if err != nil {
		return nil, err
	}
	fs, ok := p.(provifv1.FileSource)
	if !ok {
		return nil, fmt.Errorf("%w: %s cannot import files", provifv1.ErrUnsupported, class)
	}
	return fs, nil
}

// Classes returns the registered provider classes, sorted
func (r *Registry) Classes() []string {
	classes := make([]string, 0, len(r.providers))
	for class := range r.providers {
		classes = append(classes, class)
	}
	slices.Sort(classes)
	return classes
}
