// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

// Package issues creates issues on the provider of an integration and keeps
// track of them, so that webhooks can later update their status.
package issues

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mindersec/rdm-integrations/internal/controlplane/metrics"
	"github.com/mindersec/rdm-integrations/internal/db"
	"github.com/mindersec/rdm-integrations/internal/providers/credentials"
	"github.com/mindersec/rdm-integrations/internal/providers/rest"
	provifv1 "github.com/mindersec/rdm-integrations/pkg/providers/v1"
)

// OpCreateIssue is the provider operation recorded in the metrics
const OpCreateIssue = "create_issue"

var (
	// ErrIntegrationNotFound is returned when the integration does not exist
	ErrIntegrationNotFound = errors.New("integration not found")
	// ErrIssueNotFound is returned when the local issue belongs to another
	// project than the integration
	ErrIssueNotFound = errors.New("issue not found")
)

// ProviderLookup finds the provider of an integration and the client to reach it with
type ProviderLookup interface {
	Get(class string) (provifv1.Provider, error)
	HTTPClient(class string) *http.Client
}

// SendParams are the parameters of Send
type SendParams struct {
	IntegrationID uuid.UUID
	// IssueID is the local issue the remote one is created for. The local
	// issue is created, in the open status, if it does not exist yet.
	IssueID uuid.UUID
	Subject string
	Message string
	// Token is the OAuth2 access token of the user
	Token string
}

// Service creates issues on behalf of users
type Service struct {
	store     db.Store
	providers ProviderLookup
	metrics   metrics.Metrics
}

// NewService creates a service. A nil metrics records nothing.
func NewService(store db.Store, providers ProviderLookup, mt metrics.Metrics) *Service {
	if mt == nil {
		mt = metrics.NewNoopMetrics()
	}
	return &Service{
		store:     store,
		providers: providers,
		metrics:   mt,
	}
}

// Send creates the issue on the provider and returns its web URL. The URL is
// recorded against the local issue. provifv1.ErrNotConfigured is returned
// unchanged when the integration has no repository configured; nothing is
// sent nor stored in that case.
func (s *Service) Send(ctx context.Context, params SendParams) (string, error) {
	integration, err := s.store.GetIntegrationByID(ctx, params.IntegrationID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrIntegrationNotFound
	} else if err != nil {
		return "", fmt.Errorf("error getting integration: %w", err)
	}

	if err := checkIssueProject(ctx, s.store, params.IssueID, integration.ProjectID); err != nil {
		return "", err
	}

	options, err := db.GetIntegrationOptions(ctx, s.store, integration.ID)
	if err != nil {
		return "", fmt.Errorf("error getting integration options: %w", err)
	}

	provider, err := s.providers.Get(integration.Provider)
	if err != nil {
		return "", err
	}

	client := rest.NewClient(
		provider,
		credentials.NewOAuth2TokenCredential(params.Token),
		s.providers.HTTPClient(integration.Provider),
	)

	issueURL, err := client.CreateIssue(ctx, options, params.Subject, params.Message)
	if errors.Is(err, provifv1.ErrNotConfigured) {
		return "", err
	}
	s.metrics.AddProviderOpCount(ctx, integration.Provider, OpCreateIssue, err == nil)
	if err != nil {
		return "", fmt.Errorf("error creating issue: %w", err)
	}

	err = s.store.WithTransactionErr(func(q db.Querier) error {
		issue, err := q.EnsureIssue(ctx, db.EnsureIssueParams{
			ID:        params.IssueID,
			ProjectID: integration.ProjectID,
		})
		if err != nil {
			return fmt.Errorf("error storing issue: %w", err)
		}
		if issue.ProjectID != integration.ProjectID {
			return ErrIssueNotFound
		}
		if _, err := q.UpsertIssueResource(ctx, db.UpsertIssueResourceParams{
			IntegrationID: integration.ID,
			IssueID:       params.IssueID,
			Url:           issueURL,
		}); err != nil {
			return fmt.Errorf("error storing issue resource: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	zerolog.Ctx(ctx).Info().
		Str("integration_id", integration.ID.String()).
		Str("issue_id", params.IssueID.String()).
		Str("url", issueURL).
		Msg("issue created")

	return issueURL, nil
}

// checkIssueProject fails with ErrIssueNotFound when the issue exists in
// another project. An issue that does not exist yet passes.
func checkIssueProject(ctx context.Context, q db.Querier, issueID, projectID uuid.UUID) error {
	issue, err := q.GetIssueByID(ctx, issueID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	} else if err != nil {
		return fmt.Errorf("error getting issue: %w", err)
	}
	if issue.ProjectID != projectID {
		return ErrIssueNotFound
	}
	return nil
}
