// SPDX-FileCopyrightText: Copyright 2023 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"fmt"

	_ "github.com/golang-migrate/migrate/v4/database/postgres" // nolint
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mindersec/rdm-integrations/database"
	"github.com/mindersec/rdm-integrations/internal/config"
	serverconfig "github.com/mindersec/rdm-integrations/pkg/config/server"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Database migration tool",
	Long:  `Use tool with a combination of up to down to migrate the database.`,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "migrate the database to the latest version",
	Long:  `Command to upgrade database`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		m, closeDB, err := newMigrator(cmd)
		if err != nil {
			return err
		}
		defer closeDB()

		usteps, err := cmd.Flags().GetUint("num-steps")
		if err != nil {
			return fmt.Errorf("error while getting num-steps flag: %w", err)
		}
		if usteps == 0 {
			err = m.Up()
		} else {
			err = m.Steps(int(usteps))
		}
		if err := database.IgnoreNoChange(err); err != nil {
			return err
		}

		printVersion(cmd, m)
		return nil
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "migrate the database down",
	Long:  `Command to downgrade database`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		yes, err := cmd.Flags().GetBool("yes")
		if err != nil {
			return fmt.Errorf("error while getting yes flag: %w", err)
		}
		if !yes {
			cmd.Print("WARNING: Running this command will drop tables and data. Do you want to continue? (y/n): ")
			var response string
			if _, err := fmt.Fscanln(cmd.InOrStdin(), &response); err != nil {
				return fmt.Errorf("error while reading user input: %w", err)
			}
			if response != "y" {
				cmd.Println("Exiting...")
				return nil
			}
		}

		m, closeDB, err := newMigrator(cmd)
		if err != nil {
			return err
		}
		defer closeDB()

		usteps, err := cmd.Flags().GetUint("num-steps")
		if err != nil {
			return fmt.Errorf("error while getting num-steps flag: %w", err)
		}
		if usteps == 0 {
			err = m.Down()
		} else {
			err = m.Steps(-int(usteps))
		}
		if err := database.IgnoreNoChange(err); err != nil {
			return err
		}

		printVersion(cmd, m)
		return nil
	},
}

func newMigrator(cmd *cobra.Command) (database.Migrator, func(), error) {
	cfg, err := config.ReadConfigFromViper[serverconfig.Config](viper.GetViper())
	if err != nil {
		return nil, nil, fmt.Errorf("unable to read config: %w", err)
	}
	if cfg.Database.Driver != serverconfig.Postgres {
		return nil, nil, fmt.Errorf("the %q database driver has no migrations", cfg.Database.Driver)
	}

	ctx := serverconfig.LoggerFromConfigFlags(cfg.LoggingConfig).WithContext(cmd.Context())

	dbConn, connString, err := cfg.Database.GetDBConnection(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	m, err := database.NewFromConnectionString(connString)
	if err != nil {
		_ = dbConn.Close()
		return nil, nil, fmt.Errorf("error while creating migration instance: %w", err)
	}
	return m, func() { _ = dbConn.Close() }, nil
}

func printVersion(cmd *cobra.Command, m database.Migrator) {
	cmd.Println("Database migration completed successfully")

	version, dirty, err := m.Version()
	if err != nil {
		// not fatal
		cmd.Printf("Error while getting migration version: %v\n", err)
		return
	}
	cmd.Printf("Version=%v dirty=%v\n", version, dirty)
}

func init() {
	RootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(upCmd)
	migrateCmd.AddCommand(downCmd)

	migrateCmd.PersistentFlags().Uint("num-steps", 0, "Number of steps to migrate")
	downCmd.Flags().BoolP("yes", "y", false, "Answer yes to all questions")
}
