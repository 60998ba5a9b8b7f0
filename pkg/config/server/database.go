// SPDX-FileCopyrightText: Copyright 2023 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/lib/pq" // postgres driver
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mindersec/rdm-integrations/internal/config"
)

// Memory is the database driver that keeps everything in process memory
const Memory = "memory"

// Postgres is the database driver backed by PostgreSQL
const Postgres = "postgres"

// DatabaseConfig is the configuration for the database
type DatabaseConfig struct {
	// Driver selects the store implementation: "postgres" or "memory"
	Driver string `mapstructure:"driver" default:"postgres"`
	Host   string `mapstructure:"dbhost" default:"localhost"`
	Port   int    `mapstructure:"dbport" default:"5432"`
	User   string `mapstructure:"dbuser" default:"postgres"`
	//nolint:gosec // prefer to load password via environment or .pgpass file
	Password        string `mapstructure:"dbpass" default:"postgres"`
	Name            string `mapstructure:"dbname" default:"rdm"`
	SSLMode         string `mapstructure:"sslmode" default:"disable"`
	IdleConnections int    `mapstructure:"idle_connections" default:"0"`
	// ConnectTimeout bounds how long start-up waits for the database
	ConnectTimeout time.Duration `mapstructure:"connect_timeout" default:"30s"`
}

// GetConnectionString returns the URI used by the driver and the migrations
func (c *DatabaseConfig) GetConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, url.QueryEscape(c.Password), c.Host, c.Port, c.Name, c.SSLMode)
}

// GetDBConnection returns a connection to the database
func (c *DatabaseConfig) GetDBConnection(ctx context.Context) (*sql.DB, string, error) {
	uri := c.GetConnectionString()
	zerolog.Ctx(ctx).Info().Str("host", c.Host).Int("port", c.Port).Str("user", c.User).
		Str("dbname", c.Name).Msg("Connecting to DB")

	conn, err := sql.Open("postgres", uri)
	if err != nil {
		return nil, "", err
	}

	if c.IdleConnections != 0 {
		conn.SetMaxIdleConns(c.IdleConnections)
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = c.ConnectTimeout
	err = backoff.RetryNotify(func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return conn.PingContext(pingCtx)
	}, backoff.WithContext(bo, ctx), func(err error, next time.Duration) {
		zerolog.Ctx(ctx).Warn().Err(err).Dur("retry_in", next).Msg("Unable to initialize connection to DB")
	})
	if err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			zerolog.Ctx(ctx).Error().Err(closeErr).Msg("Failed to close DB connection")
		}
		return nil, "", err
	}

	zerolog.Ctx(ctx).Info().Msg("Connected to DB")
	return conn, uri, nil
}

// RegisterDatabaseFlags registers the flags for the database configuration
func RegisterDatabaseFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	err := config.BindConfigFlag(
		v, flags, "database.driver", "db-driver", Postgres, "Database driver (postgres or memory)", flags.String)
	if err != nil {
		return err
	}

	err = config.BindConfigFlagWithShort(
		v, flags, "database.dbhost", "db-host", "H", "localhost", "Database host", flags.StringP)
	if err != nil {
		return err
	}

	err = config.BindConfigFlag(
		v, flags, "database.dbport", "db-port", 5432, "Database port", flags.Int)
	if err != nil {
		return err
	}

	err = config.BindConfigFlagWithShort(
		v, flags, "database.dbuser", "db-user", "u", "postgres", "Database user", flags.StringP)
	if err != nil {
		return err
	}

	err = config.BindConfigFlagWithShort(
		v, flags, "database.dbpass", "db-pass", "P", "postgres", "Database password", flags.StringP)
	if err != nil {
		return err
	}

	err = config.BindConfigFlagWithShort(
		v, flags, "database.dbname", "db-name", "d", "rdm", "Database name", flags.StringP)
	if err != nil {
		return err
	}

	return config.BindConfigFlagWithShort(
		v, flags, "database.sslmode", "db-sslmode", "s", "disable", "Database sslmode", flags.StringP)
}
