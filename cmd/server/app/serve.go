// SPDX-FileCopyrightText: Copyright 2023 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mindersec/rdm-integrations/internal/config"
	"github.com/mindersec/rdm-integrations/internal/controlplane"
	"github.com/mindersec/rdm-integrations/internal/controlplane/metrics"
	"github.com/mindersec/rdm-integrations/internal/db"
	"github.com/mindersec/rdm-integrations/internal/db/memory"
	"github.com/mindersec/rdm-integrations/internal/imports"
	"github.com/mindersec/rdm-integrations/internal/providers"
	"github.com/mindersec/rdm-integrations/internal/providers/telemetry"
	"github.com/mindersec/rdm-integrations/internal/session"
	serverconfig "github.com/mindersec/rdm-integrations/pkg/config/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the integration server",
	Long:  `Starts the HTTP server exposing the OAuth, issue, webhook, import and integration endpoints.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		cfg, err := config.ReadConfigFromViper[serverconfig.Config](viper.GetViper())
		if err != nil {
			return fmt.Errorf("unable to read config: %w", err)
		}

		ctx = serverconfig.LoggerFromConfigFlags(cfg.LoggingConfig).WithContext(ctx)

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		store, closeStore, err := openStore(ctx, &cfg.Database)
		if err != nil {
			return err
		}
		defer closeStore()

		registry, err := providers.NewRegistryFromConfig(&cfg.Provider, telemetry.NewProviderMetrics())
		if err != nil {
			return fmt.Errorf("unable to create provider registry: %w", err)
		}

		sessions, err := session.NewStore(&cfg.Session)
		if err != nil {
			return fmt.Errorf("unable to create session store: %w", err)
		}

		stager := imports.NewFileStager(afero.NewOsFs(), cfg.Import.StagingDir)

		var serverMetrics metrics.Metrics
		if cfg.Metrics.Enabled {
			serverMetrics = metrics.NewMetrics()
		}

		s := controlplane.NewServer(store, cfg, serverMetrics, registry, sessions, stager)
		return s.StartHTTPServer(ctx)
	},
}

// openStore returns the store selected by the database driver and the
// function releasing it
func openStore(ctx context.Context, cfg *serverconfig.DatabaseConfig) (db.Store, func(), error) {
	switch cfg.Driver {
	case serverconfig.Memory:
		zerolog.Ctx(ctx).Warn().Msg("using the in-memory store: data is lost on restart")
		return memory.NewStore(), func() {}, nil
	case serverconfig.Postgres:
		dbConn, _, err := cfg.GetDBConnection(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to connect to database: %w", err)
		}
		return db.NewStore(dbConn), func() {
			if err := dbConn.Close(); err != nil {
				zerolog.Ctx(ctx).Error().Err(err).Msg("error closing database connection")
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

func init() {
	RootCmd.AddCommand(serveCmd)

	if err := serverconfig.RegisterServerFlags(viper.GetViper(), serveCmd.Flags()); err != nil {
		log.Fatal().Err(err).Msg("Error registering server flags")
	}
}
