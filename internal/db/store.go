// SPDX-FileCopyrightText: Copyright 2023 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

// Package db contains the persistence layer of integrations, their options
// and the issues tracked through them. sql.ErrNoRows is the not found signal
// of every Store implementation.
package db

import (
	"database/sql"
)

// Store provides all functions to execute db queries and transactions
type Store interface {
	Querier
	CheckHealth() error
	BeginTransaction() (*sql.Tx, error)
	GetQuerierWithTransaction(tx *sql.Tx) Querier
	Commit(tx *sql.Tx) error
	Rollback(tx *sql.Tx) error
	WithTransactionErr(fn func(querier Querier) error) error
}

// SQLStore provides all functions to execute SQL queries and transactions
type SQLStore struct {
	db *sql.DB
	*Queries
}

// CheckHealth checks the health of the database
func (s *SQLStore) CheckHealth() error {
	return s.db.Ping()
}

// BeginTransaction begins a new transaction
func (s *SQLStore) BeginTransaction() (*sql.Tx, error) {
	return s.db.Begin()
}

// GetQuerierWithTransaction returns a new Querier with the provided transaction
func (*SQLStore) GetQuerierWithTransaction(tx *sql.Tx) Querier {
	return New(tx)
}

// Commit commits a transaction
func (*SQLStore) Commit(tx *sql.Tx) error {
	return tx.Commit()
}

// Rollback rolls back a transaction
func (*SQLStore) Rollback(tx *sql.Tx) error {
	return tx.Rollback()
}

// WithTransactionErr wraps an operation in a DB transaction.
// Compared with the `WithTransaction` function, this only returns errors and not
// values. Since this does not rely on generics, it can be modelled as a method
// and stubbed out more easily.
func (s *SQLStore) WithTransactionErr(fn func(querier Querier) error) error {
	tx, err := s.BeginTransaction()
	if err != nil {
		return err
	}
	qtx := s.GetQuerierWithTransaction(tx)

	defer func() {
		_ = s.Rollback(tx)
	}()

	err = fn(qtx)
	if err != nil {
		return err
	}
	return s.Commit(tx)
}

// NewStore creates a new store
func NewStore(db *sql.DB) Store {
	return &SQLStore{
		db:      db,
		Queries: New(db),
	}
}

// WithTransaction wraps an operation returning a value in a DB transaction
func WithTransaction[T any](store Store, fn func(querier Querier) (T, error)) (T, error) {
	var result T
	err := store.WithTransactionErr(func(querier Querier) error {
		var err error
		result, err = fn(querier)
		return err
	})
	return result, err
}
