// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

// Package embedded provides a test-only embedded Postgres database for testing queries.
package embedded

import (
	"database/sql"
	"fmt"
	"net"
	"os"
	"regexp"
	"strings"
	"sync"
	"testing"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // nolint
	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/mindersec/rdm-integrations/database"
	"github.com/mindersec/rdm-integrations/internal/db"
)

// CancelFunc is a function that can be called to clean up resources.
// Pass this to t.Cleanup.
type CancelFunc func()

type sharedPostgres struct {
	postgres *embeddedpostgres.EmbeddedPostgres
	cfg      embeddedpostgres.Config
	uses     int
	done     chan struct{}
}

var (
	instance *sharedPostgres
	lock     sync.Mutex

	unsafeDBNameChars = regexp.MustCompile(`[^a-z0-9_]+`)
)

// ensurePostgres starts the shared server unless it is already running, and
// creates a database for one caller in it. The server is stopped once every
// caller has cancelled.
func ensurePostgres(name string) (*embeddedpostgres.Config, CancelFunc, error) {
	lock.Lock()
	defer lock.Unlock()

	if instance != nil && instance.uses != 0 {
		return newDBFromShared(instance, name)
	}

	shared := &sharedPostgres{
		done: make(chan struct{}),
	}
	port, err := pickUnusedPort()
	if err != nil {
		return nil, nil, fmt.Errorf("unable to pick a port: %w", err)
	}
	runtimeDir, err := os.MkdirTemp("", "rdm-db-test")
	if err != nil {
		return nil, nil, fmt.Errorf("unable to create tmpdir: %w", err)
	}
	cleanupDir := func() {
		if err := os.RemoveAll(runtimeDir); err != nil {
			fmt.Printf("Unable to remove tmpdir %q: %v\n", runtimeDir, err)
		}
	}
	shared.cfg = embeddedpostgres.DefaultConfig().
		Port(port).
		RuntimePath(runtimeDir).
		StartParameters(map[string]string{"max_connections": "200"})

	shared.postgres = embeddedpostgres.NewDatabase(shared.cfg)
	if err := shared.postgres.Start(); err != nil {
		return nil, cleanupDir, fmt.Errorf("unable to start postgres: %w", err)
	}
	cfg, cancel, err := newDBFromShared(shared, name)
	instance = shared
	go func() {
		<-shared.done
		lock.Lock()
		instance = nil
		lock.Unlock()
		if err := shared.postgres.Stop(); err != nil {
			fmt.Printf("Unable to stop postgres: %v\n", err)
		}
		cleanupDir()
	}()

	return cfg, cancel, err
}

// newDBFromShared creates a database in the shared server. The caller holds
// the lock.
func newDBFromShared(sp *sharedPostgres, name string) (*embeddedpostgres.Config, CancelFunc, error) {
	sqlDB, err := sql.Open("postgres", sp.cfg.GetConnectionURL()+"?sslmode=disable")
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open database: %w", err)
	}
	defer sqlDB.Close()

	dbName := databaseName(name)
	if _, err := sqlDB.Exec(fmt.Sprintf("CREATE DATABASE %q", dbName)); err != nil {
		return nil, nil, fmt.Errorf("unable to create database: %w", err)
	}
	cfg := sp.cfg.Database(dbName)
	sp.uses++
	cancel := func() {
		lock.Lock()
		defer lock.Unlock()
		sp.uses--
		if sp.uses == 0 {
			close(sp.done)
		}
	}
	return &cfg, cancel, nil
}

// databaseName derives a unique database name from a test name
func databaseName(name string) string {
	prefix := unsafeDBNameChars.ReplaceAllString(strings.ToLower(name), "_")
	if len(prefix) > 20 {
		prefix = prefix[:20]
	}
	// postgres identifiers are limited to 63 bytes
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	return "rdm_" + prefix + "_" + suffix
}

// GetFakeStore returns a store backed by a new, migrated database in the
// shared embedded Postgres server, and a function to release it.
func GetFakeStore(name string) (db.Store, CancelFunc, error) {
	cfg, cancel, err := ensurePostgres(name)
	if err != nil {
		return nil, cancel, fmt.Errorf("unable to start postgres: %w", err)
	}

	connURL := cfg.GetConnectionURL() + "?sslmode=disable"
	sqlDB, err := sql.Open("postgres", connURL)
	if err != nil {
		return nil, cancel, fmt.Errorf("unable to open database: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, cancel, fmt.Errorf("unable to ping database: %w", err)
	}

	mig, err := database.NewFromConnectionString(connURL)
	if err != nil {
		return nil, cancel, fmt.Errorf("unable to create migration: %w", err)
	}
	if err := mig.Up(); err != nil {
		return nil, cancel, fmt.Errorf("unable to run migration: %w", err)
	}

	closeAndCancel := func() {
		_ = sqlDB.Close()
		cancel()
	}
	return db.NewStore(sqlDB), closeAndCancel, nil
}

// NewTestStore is GetFakeStore for a test: the database is released when the
// test ends, and the test is skipped in short mode.
func NewTestStore(t *testing.T) db.Store {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping embedded postgres test in short mode")
	}

	store, cancel, err := GetFakeStore(t.Name())
	if cancel != nil {
		t.Cleanup(cancel)
	}
	if err != nil {
		t.Fatalf("unable to create test store: %v", err)
	}
	return store
}

func pickUnusedPort() (uint32, error) {
	l, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	// largest TCP port is 2^16, overflow should not happen
	port := l.Addr().(*net.TCPAddr).Port
	if port < 0 {
		return 0, fmt.Errorf("invalid port %d", port)
	}
	// nolint: gosec
	return uint32(port), nil
}
