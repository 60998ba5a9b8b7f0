// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogWriters(t *testing.T) {
	t.Parallel()

	logFile := filepath.Join(t.TempDir(), "server.log")

	tests := []struct {
		name    string
		cfg     LoggingConfig
		wantLen int
		check   func(t *testing.T, last any)
	}{
		{
			name:    "json to stdout",
			cfg:     LoggingConfig{Format: "json"},
			wantLen: 1,
			check: func(t *testing.T, last any) {
				t.Helper()
				assert.Equal(t, os.Stdout, last)
			},
		},
		{
			name:    "text to console",
			cfg:     LoggingConfig{Format: Text},
			wantLen: 1,
			check: func(t *testing.T, last any) {
				t.Helper()
				assert.IsType(t, zerolog.ConsoleWriter{}, last)
			},
		},
		{
			name:    "file and stdout",
			cfg:     LoggingConfig{Format: "json", LogFile: logFile},
			wantLen: 2,
			check: func(t *testing.T, _ any) {
				t.Helper()
				assert.FileExists(t, logFile)
			},
		},
		{
			name:    "unwritable file falls back to stdout",
			cfg:     LoggingConfig{Format: "json", LogFile: filepath.Join(t.TempDir(), "missing", "server.log")},
			wantLen: 1,
			check: func(t *testing.T, last any) {
				t.Helper()
				assert.Equal(t, os.Stdout, last)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			writers := logWriters(tt.cfg)
			require.Len(t, writers, tt.wantLen)
			tt.check(t, writers[len(writers)-1])
			if f, ok := writers[0].(*os.File); ok && f != os.Stdout {
				require.NoError(t, f.Close())
			}
		})
	}
}
