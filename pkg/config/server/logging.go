// SPDX-FileCopyrightText: Copyright 2023 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mindersec/rdm-integrations/internal/util"
)

// Text is the constant for the text format
const Text = "text"

// LoggingConfig is the configuration for the logging package
type LoggingConfig struct {
	Level string `mapstructure:"level" default:"info"`
	// Format is either "json" or "text". Text output is meant for terminals.
	Format string `mapstructure:"format" default:"json"`
	// LogFile receives a copy of every line, next to stdout
	LogFile string `mapstructure:"logFile" default:""`

	// LogPayloads adds the body of unparseable webhook deliveries to the
	// logs. Payloads may contain issue titles and user names.
	LogPayloads bool `mapstructure:"logPayloads" default:"false"`
}

// LoggerFromConfigFlags builds the process logger out of cfg. zerolog keeps
// its level and field names in globals, so this also sets those, and makes
// the logger the fallback of zerolog.Ctx.
func LoggerFromConfigFlags(cfg LoggingConfig) zerolog.Logger {
	zerolog.SetGlobalLevel(util.ViperLogLevelToZerologLevel(cfg.Level))

	// field names of the OpenTelemetry log data model
	zerolog.ErrorFieldName = "exception.message"
	zerolog.TimestampFieldName = "Timestamp"
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixNano

	logger := zerolog.New(zerolog.MultiLevelWriter(logWriters(cfg)...)).With().
		Caller().
		Timestamp().
		Logger()

	zerolog.DefaultContextLogger = &logger
	log.Logger = logger

	return logger
}

func logWriters(cfg LoggingConfig) []io.Writer {
	var writers []io.Writer
	if cfg.LogFile != "" {
		// the file stays open for the life of the process
		file, err := os.OpenFile(filepath.Clean(cfg.LogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			log.Err(err).Str("file", cfg.LogFile).Msg("cannot open log file, logging to stdout only")
		} else {
			writers = append(writers, file)
		}
	}

	if cfg.Format == Text {
		return append(writers, zerolog.NewConsoleWriter())
	}
	return append(writers, os.Stdout)
}
