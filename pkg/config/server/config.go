// SPDX-FileCopyrightText: Copyright 2023 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

// Package server contains a centralized structure for all configuration
// options.
package server

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mindersec/rdm-integrations/internal/config"
	v1 "github.com/mindersec/rdm-integrations/pkg/providers/v1"
)

// Config is the top-level configuration structure.
type Config struct {
	HTTPServer    HTTPServerConfig   `mapstructure:"http_server"`
	MetricServer  MetricServerConfig `mapstructure:"metric_server"`
	LoggingConfig LoggingConfig      `mapstructure:"logging"`
	Metrics       MetricsConfig      `mapstructure:"metrics"`
	Database      DatabaseConfig     `mapstructure:"database"`
	Session       SessionConfig      `mapstructure:"session"`
	Provider      ProviderConfig     `mapstructure:"provider"`
	Auth          AuthConfig         `mapstructure:"auth"`
	Import        ImportConfig       `mapstructure:"import"`
}

// Validate checks that every section needed to serve requests is usable.
// Errors wrap v1.ErrConfiguration.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Provider.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Session.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// DefaultConfigForTest returns a configuration with all the struct defaults set,
// but no other changes.
func DefaultConfigForTest() *Config {
	v := viper.New()
	SetViperDefaults(v)
	c, err := config.ReadConfigFromViper[Config](v)
	if err != nil {
		panic(fmt.Sprintf("Failed to read default config: %v", err))
	}
	return c
}

// SetViperDefaults sets the default values for the configuration to be picked
// up by viper
func SetViperDefaults(v *viper.Viper) {
	v.SetEnvPrefix("rdm")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	config.SetViperStructDefaults(v, "", Config{})
}

func fileOrArg(file, arg, desc string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(filepath.Clean(file))
		if err != nil {
			return "", fmt.Errorf("failed to read %s from file: %w", desc, err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return arg, nil
}

func configError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", v1.ErrConfiguration, fmt.Sprintf(format, args...))
}
