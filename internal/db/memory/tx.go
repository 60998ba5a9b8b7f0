// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package memory

import (
	"context"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/mindersec/rdm-integrations/internal/db"
)

// tx records the previous value of every row it writes, so that the writes
// can be undone when the transaction fails
type tx struct {
	*Store
	undo []func()
}

var _ db.Querier = (*tx)(nil)

func remember[K comparable, V any](t *tx, m *xsync.MapOf[K, V], key K) {
	prev, ok := m.Load(key)
	t.undo = append(t.undo, func() {
		if ok {
			m.Store(key, prev)
		} else {
			m.Delete(key)
		}
	})
}

// rollback undoes the writes, last first
func (t *tx) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

func (t *tx) CreateIntegration(ctx context.Context, arg db.CreateIntegrationParams) (db.Integration, error) {
	i, err := t.Store.CreateIntegration(ctx, arg)
	if err != nil {
		return i, err
	}
	t.undo = append(t.undo, func() { t.integrations.Delete(i.ID) })
	return i, nil
}

func (t *tx) TouchIntegration(ctx context.Context, id uuid.UUID) error {
	remember(t, t.integrations, id)
	return t.Store.TouchIntegration(ctx, id)
}

func (t *tx) DeleteIntegration(ctx context.Context, id uuid.UUID) error {
	remember(t, t.integrations, id)
	t.rememberOptions(id)
	t.resources.Range(func(k resourceKey, _ db.IssueResource) bool {
		if k.integrationID == id {
			remember(t, t.resources, k)
		}
		return true
	})
	return t.Store.DeleteIntegration(ctx, id)
}

func (t *tx) UpsertIntegrationOption(
	ctx context.Context, arg db.UpsertIntegrationOptionParams,
) (db.IntegrationOption, error) {
	remember(t, t.options, optionKey{integrationID: arg.IntegrationID, key: arg.Key})
	return t.Store.UpsertIntegrationOption(ctx, arg)
}

func (t *tx) DeleteIntegrationOptions(ctx context.Context, integrationID uuid.UUID) error {
	t.rememberOptions(integrationID)
	return t.Store.DeleteIntegrationOptions(ctx, integrationID)
}

func (t *tx) rememberOptions(integrationID uuid.UUID) {
	t.options.Range(func(k optionKey, _ db.IntegrationOption) bool {
		if k.integrationID == integrationID {
			remember(t, t.options, k)
		}
		return true
	})
}

func (t *tx) EnsureIssue(ctx context.Context, arg db.EnsureIssueParams) (db.Issue, error) {
	remember(t, t.issues, arg.ID)
	return t.Store.EnsureIssue(ctx, arg)
}

func (t *tx) UpdateIssueStatus(ctx context.Context, arg db.UpdateIssueStatusParams) (db.Issue, error) {
	remember(t, t.issues, arg.ID)
	return t.Store.UpdateIssueStatus(ctx, arg)
}

func (t *tx) UpsertIssueResource(ctx context.Context, arg db.UpsertIssueResourceParams) (db.IssueResource, error) {
	remember(t, t.resources, resourceKey{integrationID: arg.IntegrationID, url: arg.Url})
	return t.Store.UpsertIssueResource(ctx, arg)
}
