// SPDX-FileCopyrightText: Copyright 2023 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mindersec/rdm-integrations/internal/config"
)

// HTTPServerConfig is the configuration for the HTTP server
type HTTPServerConfig struct {
	// Host is the host to bind to
	Host string `mapstructure:"host" default:"127.0.0.1"`
	// Port is the port to bind to
	Port int `mapstructure:"port" default:"8080"`
	// TrustProxyHeaders makes the server honour X-Forwarded-* headers when
	// building absolute OAuth redirect URIs
	TrustProxyHeaders bool `mapstructure:"trust_proxy_headers" default:"false"`

	// CORS is the configuration for CORS
	CORS CORSConfig `mapstructure:"cors"`
}

// CORSConfig is the configuration for the CORS middleware
// that can be used with the HTTP server.
type CORSConfig struct {
	// Enabled is the flag to enable CORS
	Enabled bool `mapstructure:"enabled" default:"false"`
	// AllowOrigins is the list of allowed origins
	AllowOrigins []string `mapstructure:"allow_origins"`
	// AllowMethods is the list of allowed methods
	AllowMethods []string `mapstructure:"allow_methods"`
	// AllowHeaders is the list of allowed headers
	AllowHeaders []string `mapstructure:"allow_headers"`
	// AllowCredentials is the flag to allow credentials
	AllowCredentials bool `mapstructure:"allow_credentials" default:"false"`
}

// GetAddress returns the address to bind to
func (s *HTTPServerConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// MetricServerConfig is the configuration for the metric server
type MetricServerConfig struct {
	// Host is the host to bind to
	Host string `mapstructure:"host" default:"127.0.0.1"`
	// Port is the port to bind to
	Port int `mapstructure:"port" default:"9090"`
}

// GetAddress returns the address to bind to
func (s *MetricServerConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// MetricsConfig is the configuration for the metrics
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" default:"true"`
}

// RegisterServerFlags registers the flags for the HTTP and metric servers
func RegisterServerFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	err := config.BindConfigFlag(v, flags, "http_server.host", "http-host", "",
		"The host to bind to for the HTTP server", flags.String)
	if err != nil {
		return err
	}

	err = config.BindConfigFlag(v, flags, "http_server.port", "http-port", 8080,
		"The port to bind to for the HTTP server", flags.Int)
	if err != nil {
		return err
	}

	err = config.BindConfigFlag(v, flags, "metric_server.host", "metric-host", "",
		"The host to bind to for the metric server", flags.String)
	if err != nil {
		return err
	}

	return config.BindConfigFlag(v, flags, "metric_server.port", "metric-port", 9090,
		"The port to bind to for the metric server", flags.Int)
}
