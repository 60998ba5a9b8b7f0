// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindersec/rdm-integrations/internal/db"
	"github.com/mindersec/rdm-integrations/internal/db/embedded"
	provifv1 "github.com/mindersec/rdm-integrations/pkg/providers/v1"
)

func createIntegration(ctx context.Context, t *testing.T, store db.Store) db.Integration {
	t.Helper()

	integration, err := store.CreateIntegration(ctx, db.CreateIntegrationParams{
		ProjectID: uuid.New(),
		Provider:  "gitlab",
	})
	require.NoError(t, err)
	return integration
}

func TestIntegrationOptions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := embedded.NewTestStore(t)
	integration := createIntegration(ctx, t, store)

	got, err := store.GetIntegrationByID(ctx, integration.ID)
	require.NoError(t, err)
	assert.Equal(t, integration.ProjectID, got.ProjectID)
	assert.Equal(t, "gitlab", got.Provider)

	listed, err := store.ListIntegrationsByProject(ctx, integration.ProjectID)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	err = store.WithTransactionErr(func(q db.Querier) error {
		return db.ReplaceIntegrationOptions(ctx, q, integration.ID, provifv1.Options{
			provifv1.OptionRepoURL: "https://gitlab.com/group/repo",
			provifv1.OptionSecret:  "s3cr3t",
		})
	})
	require.NoError(t, err)

	options, err := db.GetIntegrationOptions(ctx, store, integration.ID)
	require.NoError(t, err)
	assert.Equal(t, provifv1.Options{
		provifv1.OptionRepoURL: "https://gitlab.com/group/repo",
		provifv1.OptionSecret:  "s3cr3t",
	}, options)

	err = store.WithTransactionErr(func(q db.Querier) error {
		return db.ReplaceIntegrationOptions(ctx, q, integration.ID, provifv1.Options{
			provifv1.OptionRepoURL: "https://gitlab.com/group/other",
		})
	})
	require.NoError(t, err)

	secret, err := store.GetIntegrationOption(ctx, db.GetIntegrationOptionParams{
		IntegrationID: integration.ID,
		Key:           provifv1.OptionSecret,
	})
	require.ErrorIs(t, err, sql.ErrNoRows)
	assert.Empty(t, secret.Value)

	_, err = store.GetIntegrationByID(ctx, uuid.New())
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestIssueResources(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := embedded.NewTestStore(t)
	integration := createIntegration(ctx, t, store)

	issue, err := store.EnsureIssue(ctx, db.EnsureIssueParams{ID: uuid.New(), ProjectID: integration.ProjectID})
	require.NoError(t, err)
	assert.Equal(t, db.IssueStatusOpen, issue.Status)

	again, err := store.EnsureIssue(ctx, db.EnsureIssueParams{ID: issue.ID, ProjectID: uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, issue.ProjectID, again.ProjectID)

	const issueURL = "https://gitlab.com/group/repo/-/issues/1"
	res, err := store.UpsertIssueResource(ctx, db.UpsertIssueResourceParams{
		IntegrationID: integration.ID,
		IssueID:       issue.ID,
		Url:           issueURL,
	})
	require.NoError(t, err)

	// the same URL moves to another issue instead of being duplicated
	other, err := store.EnsureIssue(ctx, db.EnsureIssueParams{ID: uuid.New(), ProjectID: integration.ProjectID})
	require.NoError(t, err)
	moved, err := store.UpsertIssueResource(ctx, db.UpsertIssueResourceParams{
		IntegrationID: integration.ID,
		IssueID:       other.ID,
		Url:           issueURL,
	})
	require.NoError(t, err)
	assert.Equal(t, res.ID, moved.ID)
	assert.Equal(t, other.ID, moved.IssueID)

	found, err := store.GetIssueResourceByURL(ctx, db.GetIssueResourceByURLParams{
		IntegrationID: integration.ID,
		Url:           issueURL,
	})
	require.NoError(t, err)
	assert.Equal(t, other.ID, found.IssueID)

	_, err = store.GetIssueResourceByURL(ctx, db.GetIssueResourceByURLParams{
		IntegrationID: integration.ID,
		Url:           "https://gitlab.com/group/repo/-/issues/2",
	})
	require.ErrorIs(t, err, sql.ErrNoRows)

	byIssue, err := store.ListIssueResourcesByIssue(ctx, issue.ID)
	require.NoError(t, err)
	assert.Empty(t, byIssue)

	updated, err := store.UpdateIssueStatus(ctx, db.UpdateIssueStatusParams{
		ID:     other.ID,
		Status: db.IssueStatusClosed,
	})
	require.NoError(t, err)
	assert.Equal(t, db.IssueStatusClosed, updated.Status)

	_, err = store.UpdateIssueStatus(ctx, db.UpdateIssueStatusParams{ID: uuid.New(), Status: db.IssueStatusClosed})
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestWithTransactionErrRollsBack(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := embedded.NewTestStore(t)
	integration := createIntegration(ctx, t, store)

	errBoom := errors.New("boom")
	err := store.WithTransactionErr(func(q db.Querier) error {
		if _, err := q.UpsertIntegrationOption(ctx, db.UpsertIntegrationOptionParams{
			IntegrationID: integration.ID,
			Key:           provifv1.OptionRepoURL,
			Value:         "https://gitlab.com/group/repo",
		}); err != nil {
			return err
		}
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	options, err := db.GetIntegrationOptions(ctx, store, integration.ID)
	require.NoError(t, err)
	assert.Empty(t, options)

	require.NoError(t, store.CheckHealth())
}
