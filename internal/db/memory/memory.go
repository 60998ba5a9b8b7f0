// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

// Package memory provides an in-process implementation of db.Store. It keeps
// nothing across restarts and is meant for development and tests.
package memory

import (
	"context"
	"database/sql"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/mindersec/rdm-integrations/internal/db"
)

type optionKey struct {
	integrationID uuid.UUID
	key           string
}

type resourceKey struct {
	integrationID uuid.UUID
	url           string
}

// Store is an in-memory db.Store. Every query is atomic on its own.
// Transactions are serialized, and the rows they wrote are restored when
// they fail. Queries made outside a transaction are not isolated from it.
type Store struct {
	integrations *xsync.MapOf[uuid.UUID, db.Integration]
	options      *xsync.MapOf[optionKey, db.IntegrationOption]
	issues       *xsync.MapOf[uuid.UUID, db.Issue]
	resources    *xsync.MapOf[resourceKey, db.IssueResource]

	txLock sync.Mutex
	now    func() time.Time
}

var _ db.Store = (*Store)(nil)

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		integrations: xsync.NewMapOf[uuid.UUID, db.Integration](),
		options:      xsync.NewMapOf[optionKey, db.IntegrationOption](),
		issues:       xsync.NewMapOf[uuid.UUID, db.Issue](),
		resources:    xsync.NewMapOf[resourceKey, db.IssueResource](),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// CheckHealth implements db.Store
func (*Store) CheckHealth() error {
	return nil
}

// BeginTransaction implements db.Store. There is no *sql.Tx to return;
// use WithTransactionErr to serialize a group of queries.
func (*Store) BeginTransaction() (*sql.Tx, error) {
	return nil, nil
}

// GetQuerierWithTransaction implements db.Store
func (s *Store) GetQuerierWithTransaction(_ *sql.Tx) db.Querier {
	return s
}

// Commit implements db.Store
func (*Store) Commit(_ *sql.Tx) error {
	return nil
}

// Rollback implements db.Store. Without a *sql.Tx there is nothing to undo;
// WithTransactionErr rolls back on its own.
func (*Store) Rollback(_ *sql.Tx) error {
	return nil
}

// WithTransactionErr implements db.Store
func (s *Store) WithTransactionErr(fn func(querier db.Querier) error) error {
	s.txLock.Lock()
	defer s.txLock.Unlock()

	t := &tx{Store: s}
	if err := fn(t); err != nil {
		t.rollback()
		return err
	}
	return nil
}

// CreateIntegration implements db.Querier
func (s *Store) CreateIntegration(_ context.Context, arg db.CreateIntegrationParams) (db.Integration, error) {
	now := s.now()
	i := db.Integration{
		ID:        uuid.New(),
		ProjectID: arg.ProjectID,
		Provider:  arg.Provider,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.integrations.Store(i.ID, i)
	return i, nil
}

// GetIntegrationByID implements db.Querier
func (s *Store) GetIntegrationByID(_ context.Context, id uuid.UUID) (db.Integration, error) {
	i, ok := s.integrations.Load(id)
	if !ok {
		return db.Integration{}, sql.ErrNoRows
	}
	return i, nil
}

// ListIntegrationsByProject implements db.Querier
func (s *Store) ListIntegrationsByProject(_ context.Context, projectID uuid.UUID) ([]db.Integration, error) {
	items := []db.Integration{}
	s.integrations.Range(func(_ uuid.UUID, i db.Integration) bool {
		if i.ProjectID == projectID {
			items = append(items, i)
		}
		return true
	})
	slices.SortFunc(items, func(a, b db.Integration) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return items, nil
}

// TouchIntegration implements db.Querier
func (s *Store) TouchIntegration(_ context.Context, id uuid.UUID) error {
	s.integrations.Compute(id, func(i db.Integration, loaded bool) (db.Integration, bool) {
		if !loaded {
			return i, true
		}
		i.UpdatedAt = s.now()
		return i, false
	})
	return nil
}

// DeleteIntegration implements db.Querier. Options and issue resources of
// the integration are deleted with it.
func (s *Store) DeleteIntegration(ctx context.Context, id uuid.UUID) error {
	s.integrations.Delete(id)
	_ = s.DeleteIntegrationOptions(ctx, id)
	s.resources.Range(func(k resourceKey, _ db.IssueResource) bool {
		if k.integrationID == id {
			s.resources.Delete(k)
		}
		return true
	})
	return nil
}

// UpsertIntegrationOption implements db.Querier
func (s *Store) UpsertIntegrationOption(
	_ context.Context, arg db.UpsertIntegrationOptionParams,
) (db.IntegrationOption, error) {
	if _, ok := s.integrations.Load(arg.IntegrationID); !ok {
		return db.IntegrationOption{}, errForeignKey("integration_options", "integration_id")
	}
	o := db.IntegrationOption{
		IntegrationID: arg.IntegrationID,
		Key:           arg.Key,
		Value:         arg.Value,
	}
	s.options.Store(optionKey{integrationID: arg.IntegrationID, key: arg.Key}, o)
	return o, nil
}

// GetIntegrationOption implements db.Querier
func (s *Store) GetIntegrationOption(
	_ context.Context, arg db.GetIntegrationOptionParams,
) (db.IntegrationOption, error) {
	o, ok := s.options.Load(optionKey{integrationID: arg.IntegrationID, key: arg.Key})
	if !ok {
		return db.IntegrationOption{}, sql.ErrNoRows
	}
	return o, nil
}

// ListIntegrationOptions implements db.Querier
func (s *Store) ListIntegrationOptions(_ context.Context, integrationID uuid.UUID) ([]db.IntegrationOption, error) {
	items := []db.IntegrationOption{}
	s.options.Range(func(k optionKey, o db.IntegrationOption) bool {
		if k.integrationID == integrationID {
			items = append(items, o)
		}
		return true
	})
	slices.SortFunc(items, func(a, b db.IntegrationOption) int {
		return strings.Compare(a.Key, b.Key)
	})
	return items, nil
}

// DeleteIntegrationOptions implements db.Querier
func (s *Store) DeleteIntegrationOptions(_ context.Context, integrationID uuid.UUID) error {
	s.options.Range(func(k optionKey, _ db.IntegrationOption) bool {
		if k.integrationID == integrationID {
			s.options.Delete(k)
		}
		return true
	})
	return nil
}

// EnsureIssue implements db.Querier
func (s *Store) EnsureIssue(_ context.Context, arg db.EnsureIssueParams) (db.Issue, error) {
	issue, _ := s.issues.LoadOrCompute(arg.ID, func() db.Issue {
		now := s.now()
		return db.Issue{
			ID:        arg.ID,
			ProjectID: arg.ProjectID,
			Status:    db.IssueStatusOpen,
			CreatedAt: now,
			UpdatedAt: now,
		}
	})
	return issue, nil
}

// GetIssueByID implements db.Querier
func (s *Store) GetIssueByID(_ context.Context, id uuid.UUID) (db.Issue, error) {
	issue, ok := s.issues.Load(id)
	if !ok {
		return db.Issue{}, sql.ErrNoRows
	}
	return issue, nil
}

// UpdateIssueStatus implements db.Querier. Concurrent updates of the same
// issue are applied one after the other; the last one wins.
func (s *Store) UpdateIssueStatus(_ context.Context, arg db.UpdateIssueStatusParams) (db.Issue, error) {
	updated, ok := s.issues.Compute(arg.ID, func(issue db.Issue, loaded bool) (db.Issue, bool) {
		if !loaded {
			return issue, true
		}
		issue.Status = arg.Status
		issue.UpdatedAt = s.now()
		return issue, false
	})
	if !ok {
		return db.Issue{}, sql.ErrNoRows
	}
	return updated, nil
}

// UpsertIssueResource implements db.Querier. A URL is tracked at most once
// per integration: upserting it again points it to the new issue.
func (s *Store) UpsertIssueResource(_ context.Context, arg db.UpsertIssueResourceParams) (db.IssueResource, error) {
	if _, ok := s.integrations.Load(arg.IntegrationID); !ok {
		return db.IssueResource{}, errForeignKey("issue_resources", "integration_id")
	}
	if _, ok := s.issues.Load(arg.IssueID); !ok {
		return db.IssueResource{}, errForeignKey("issue_resources", "issue_id")
	}

	res, _ := s.resources.Compute(
		resourceKey{integrationID: arg.IntegrationID, url: arg.Url},
		func(r db.IssueResource, loaded bool) (db.IssueResource, bool) {
			if !loaded {
				r = db.IssueResource{
					ID:            uuid.New(),
					IntegrationID: arg.IntegrationID,
					Url:           arg.Url,
					CreatedAt:     s.now(),
				}
			}
			r.IssueID = arg.IssueID
			return r, false
		})
	return res, nil
}

// GetIssueResourceByURL implements db.Querier
func (s *Store) GetIssueResourceByURL(
	_ context.Context, arg db.GetIssueResourceByURLParams,
) (db.IssueResource, error) {
	r, ok := s.resources.Load(resourceKey{integrationID: arg.IntegrationID, url: arg.Url})
	if !ok {
		return db.IssueResource{}, sql.ErrNoRows
	}
	return r, nil
}

// ListIssueResourcesByIssue implements db.Querier
func (s *Store) ListIssueResourcesByIssue(_ context.Context, issueID uuid.UUID) ([]db.IssueResource, error) {
	items := []db.IssueResource{}
	s.resources.Range(func(_ resourceKey, r db.IssueResource) bool {
		if r.IssueID == issueID {
			items = append(items, r)
		}
		return true
	})
	slices.SortFunc(items, func(a, b db.IssueResource) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return items, nil
}
