// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package memory

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindersec/rdm-integrations/internal/db"
	provifv1 "github.com/mindersec/rdm-integrations/pkg/providers/v1"
)

func TestIntegrations(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore()
	projectID := uuid.New()

	first, err := s.CreateIntegration(ctx, db.CreateIntegrationParams{ProjectID: projectID, Provider: "gitlab"})
	require.NoError(t, err)
	second, err := s.CreateIntegration(ctx, db.CreateIntegrationParams{ProjectID: projectID, Provider: "gitlab"})
	require.NoError(t, err)
	_, err = s.CreateIntegration(ctx, db.CreateIntegrationParams{ProjectID: uuid.New(), Provider: "gitlab"})
	require.NoError(t, err)

	got, err := s.GetIntegrationByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	listed, err := s.ListIntegrationsByProject(ctx, projectID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.ElementsMatch(t, []uuid.UUID{first.ID, second.ID}, []uuid.UUID{listed[0].ID, listed[1].ID})

	_, err = s.GetIntegrationByID(ctx, uuid.New())
	require.ErrorIs(t, err, sql.ErrNoRows)

	require.NoError(t, s.DeleteIntegration(ctx, second.ID))
	_, err = s.GetIntegrationByID(ctx, second.ID)
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestIntegrationOptions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore()
	integration, err := s.CreateIntegration(ctx, db.CreateIntegrationParams{ProjectID: uuid.New(), Provider: "gitlab"})
	require.NoError(t, err)

	err = s.WithTransactionErr(func(q db.Querier) error {
		return db.ReplaceIntegrationOptions(ctx, q, integration.ID, provifv1.Options{
			provifv1.OptionRepoURL: "https://gitlab.com/group/repo",
			provifv1.OptionSecret:  "s3cr3t",
		})
	})
	require.NoError(t, err)

	options, err := db.GetIntegrationOptions(ctx, s, integration.ID)
	require.NoError(t, err)
	assert.Equal(t, provifv1.Options{
		provifv1.OptionRepoURL: "https://gitlab.com/group/repo",
		provifv1.OptionSecret:  "s3cr3t",
	}, options)

	rows, err := s.ListIntegrationOptions(ctx, integration.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, provifv1.OptionRepoURL, rows[0].Key)
	assert.Equal(t, provifv1.OptionSecret, rows[1].Key)

	err = s.WithTransactionErr(func(q db.Querier) error {
		return db.ReplaceIntegrationOptions(ctx, q, integration.ID, provifv1.Options{
			provifv1.OptionRepoURL: "https://gitlab.com/group/other",
		})
	})
	require.NoError(t, err)

	_, err = s.GetIntegrationOption(ctx, db.GetIntegrationOptionParams{
		IntegrationID: integration.ID,
		Key:           provifv1.OptionSecret,
	})
	require.ErrorIs(t, err, sql.ErrNoRows)

	_, err = s.UpsertIntegrationOption(ctx, db.UpsertIntegrationOptionParams{
		IntegrationID: uuid.New(),
		Key:           provifv1.OptionRepoURL,
		Value:         "x",
	})
	var fkErr *ForeignKeyError
	require.True(t, errors.As(err, &fkErr))
}

func TestIssueResourceIsUniquePerIntegrationAndURL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore()
	integration, err := s.CreateIntegration(ctx, db.CreateIntegrationParams{ProjectID: uuid.New(), Provider: "gitlab"})
	require.NoError(t, err)
	otherIntegration, err := s.CreateIntegration(ctx, db.CreateIntegrationParams{ProjectID: uuid.New(), Provider: "gitlab"})
	require.NoError(t, err)

	issue, err := s.EnsureIssue(ctx, db.EnsureIssueParams{ID: uuid.New(), ProjectID: integration.ProjectID})
	require.NoError(t, err)
	other, err := s.EnsureIssue(ctx, db.EnsureIssueParams{ID: uuid.New(), ProjectID: integration.ProjectID})
	require.NoError(t, err)

	const issueURL = "https://x/issues/1"
	first, err := s.UpsertIssueResource(ctx, db.UpsertIssueResourceParams{
		IntegrationID: integration.ID, IssueID: issue.ID, Url: issueURL,
	})
	require.NoError(t, err)
	second, err := s.UpsertIssueResource(ctx, db.UpsertIssueResourceParams{
		IntegrationID: integration.ID, IssueID: other.ID, Url: issueURL,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, other.ID, second.IssueID)

	// another integration may track the same URL
	third, err := s.UpsertIssueResource(ctx, db.UpsertIssueResourceParams{
		IntegrationID: otherIntegration.ID, IssueID: issue.ID, Url: issueURL,
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)

	found, err := s.GetIssueResourceByURL(ctx, db.GetIssueResourceByURLParams{IntegrationID: integration.ID, Url: issueURL})
	require.NoError(t, err)
	assert.Equal(t, other.ID, found.IssueID)

	byIssue, err := s.ListIssueResourcesByIssue(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, byIssue, 1)

	_, err = s.GetIssueResourceByURL(ctx, db.GetIssueResourceByURLParams{IntegrationID: integration.ID, Url: "https://x/issues/2"})
	require.ErrorIs(t, err, sql.ErrNoRows)

	_, err = s.UpsertIssueResource(ctx, db.UpsertIssueResourceParams{
		IntegrationID: integration.ID, IssueID: uuid.New(), Url: "https://x/issues/3",
	})
	require.Error(t, err)
}

func TestIssues(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore()
	id := uuid.New()
	projectID := uuid.New()

	issue, err := s.EnsureIssue(ctx, db.EnsureIssueParams{ID: id, ProjectID: projectID})
	require.NoError(t, err)
	assert.Equal(t, db.IssueStatusOpen, issue.Status)

	updated, err := s.UpdateIssueStatus(ctx, db.UpdateIssueStatusParams{ID: id, Status: db.IssueStatusClosed})
	require.NoError(t, err)
	assert.Equal(t, db.IssueStatusClosed, updated.Status)

	// ensuring an existing issue keeps it untouched
	again, err := s.EnsureIssue(ctx, db.EnsureIssueParams{ID: id, ProjectID: uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, projectID, again.ProjectID)
	assert.Equal(t, db.IssueStatusClosed, again.Status)

	_, err = s.UpdateIssueStatus(ctx, db.UpdateIssueStatusParams{ID: uuid.New(), Status: db.IssueStatusClosed})
	require.ErrorIs(t, err, sql.ErrNoRows)
	_, err = s.GetIssueByID(ctx, uuid.New())
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestConcurrentStatusUpdates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore()
	id := uuid.New()
	_, err := s.EnsureIssue(ctx, db.EnsureIssueParams{ID: id, ProjectID: uuid.New()})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		status := db.IssueStatusInProgress
		if i%2 == 0 {
			status = db.IssueStatusClosed
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.WithTransactionErr(func(q db.Querier) error {
				_, err := q.UpdateIssueStatus(ctx, db.UpdateIssueStatusParams{ID: id, Status: status})
				return err
			})
		}()
	}
	wg.Wait()

	issue, err := s.GetIssueByID(ctx, id)
	require.NoError(t, err)
	assert.Contains(t, []db.IssueStatus{db.IssueStatusInProgress, db.IssueStatusClosed}, issue.Status)
}

func TestFailedTransactionIsRolledBack(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore()
	integration, err := s.CreateIntegration(ctx, db.CreateIntegrationParams{ProjectID: uuid.New(), Provider: "gitlab"})
	require.NoError(t, err)
	require.NoError(t, db.ReplaceIntegrationOptions(ctx, s, integration.ID, provifv1.Options{
		provifv1.OptionRepoURL: "https://gitlab.com/group/repo",
	}))
	closed, err := s.EnsureIssue(ctx, db.EnsureIssueParams{ID: uuid.New(), ProjectID: integration.ProjectID})
	require.NoError(t, err)
	_, err = s.UpdateIssueStatus(ctx, db.UpdateIssueStatusParams{ID: closed.ID, Status: db.IssueStatusClosed})
	require.NoError(t, err)

	newIssueID := uuid.New()
	var created db.Integration
	err = s.WithTransactionErr(func(q db.Querier) error {
		if _, err := q.EnsureIssue(ctx, db.EnsureIssueParams{ID: newIssueID, ProjectID: integration.ProjectID}); err != nil {
			return err
		}
		if _, err := q.UpdateIssueStatus(ctx, db.UpdateIssueStatusParams{
			ID: closed.ID, Status: db.IssueStatusInProgress,
		}); err != nil {
			return err
		}
		if err := db.ReplaceIntegrationOptions(ctx, q, integration.ID, provifv1.Options{
			provifv1.OptionSecret: "s3cr3t",
		}); err != nil {
			return err
		}
		if created, err = q.CreateIntegration(ctx, db.CreateIntegrationParams{
			ProjectID: uuid.New(), Provider: "gitlab",
		}); err != nil {
			return err
		}
		// fails on the missing issue
		_, err := q.UpsertIssueResource(ctx, db.UpsertIssueResourceParams{
			IntegrationID: integration.ID, IssueID: uuid.New(), Url: "https://x/issues/1",
		})
		return err
	})
	var fkErr *ForeignKeyError
	require.ErrorAs(t, err, &fkErr)

	_, err = s.GetIssueByID(ctx, newIssueID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	_, err = s.GetIntegrationByID(ctx, created.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	restored, err := s.GetIssueByID(ctx, closed.ID)
	require.NoError(t, err)
	assert.Equal(t, db.IssueStatusClosed, restored.Status)

	options, err := db.GetIntegrationOptions(ctx, s, integration.ID)
	require.NoError(t, err)
	assert.Equal(t, provifv1.Options{provifv1.OptionRepoURL: "https://gitlab.com/group/repo"}, options)

	_, err = s.GetIssueResourceByURL(ctx, db.GetIssueResourceByURLParams{
		IntegrationID: integration.ID, Url: "https://x/issues/1",
	})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
