// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

// Package webhook receives the issue webhooks of providers and applies the
// remote state changes to the locally tracked issues.
package webhook

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mindersec/rdm-integrations/internal/controlplane/metrics"
	"github.com/mindersec/rdm-integrations/internal/db"
	provifv1 "github.com/mindersec/rdm-integrations/pkg/providers/v1"
)

// MaxBytesLimit is the maximum size of a webhook body
const MaxBytesLimit int64 = 1 << 20

// VerifierLookup finds the provider a webhook was delivered for
type VerifierLookup interface {
	WebhookVerifier(class string) (provifv1.WebhookVerifier, error)
}

// EventTypeFunc returns the event type of a delivery, for logging and metrics
type EventTypeFunc func(r *http.Request) string

// Receiver handles webhook deliveries. It keeps no state between deliveries.
type Receiver struct {
	store     db.Store
	providers VerifierLookup
	metrics   metrics.Metrics
	eventType EventTypeFunc
	// logPayloads adds the body of rejected deliveries to the logs
	logPayloads bool
}

// Option configures a Receiver
type Option func(*Receiver)

// WithEventType sets how the event type of a delivery is read
func WithEventType(fn EventTypeFunc) Option {
	return func(rc *Receiver) {
		rc.eventType = fn
	}
}

// WithPayloadLogging logs the body of deliveries that cannot be parsed
func WithPayloadLogging(enabled bool) Option {
	return func(rc *Receiver) {
		rc.logPayloads = enabled
	}
}

// NewReceiver creates a receiver. A nil metrics records nothing.
func NewReceiver(store db.Store, providers VerifierLookup, mt metrics.Metrics, opts ...Option) *Receiver {
	if mt == nil {
		mt = metrics.NewNoopMetrics()
	}
	rc := &Receiver{
		store:     store,
		providers: providers,
		metrics:   mt,
		eventType: func(*http.Request) string { return "" },
	}
	for _, opt := range opts {
		opt(rc)
	}
	return rc
}

// Handle processes one delivery for the integration. Deliveries that fail
// the secret check are answered with 404 before the body is read. Deliveries
// that carry nothing to act upon, or reference an untracked issue, are
// answered with 200 so the provider does not retry them.
func (rc *Receiver) Handle(w http.ResponseWriter, r *http.Request, providerClass, integrationID string) {
	ctx := r.Context()
	state := &metrics.WebhookEventState{
		Provider: providerClass,
		Typ:      rc.eventType(r),
	}
	l := zerolog.Ctx(ctx).With().
		Str("webhook", providerClass).
		Str("integration_id", integrationID).
		Str("event", state.Typ).
		Str("remote", r.RemoteAddr).
		Logger()

	respond := func(status int, msg string) {
		state.StatusCode = status
		rc.metrics.AddWebhookEventTypeCount(ctx, state)
		if status == http.StatusOK {
			w.WriteHeader(status)
			return
		}
		http.Error(w, msg, status)
	}

	verifier, id, err := rc.authenticate(ctx, r, providerClass, integrationID)
	if err != nil {
		if errors.Is(err, errUnauthenticated) {
			l.Debug().Err(err).Msg("rejected webhook delivery")
			respond(http.StatusNotFound, http.StatusText(http.StatusNotFound))
			return
		}
		l.Error().Err(err).Msg("error authenticating webhook delivery")
		state.Error = true
		respond(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBytesLimit))
	if err != nil {
		l.Debug().Err(err).Msg("cannot read webhook body")
		respond(http.StatusBadRequest, fmt.Sprintf("cannot read body: %v", err))
		return
	}

	event, err := verifier.ParseIssueEvent(body)
	if err != nil {
		ev := l.Debug().Err(err)
		if rc.logPayloads {
			ev = ev.Bytes("payload", body)
		}
		ev.Msg("malformed webhook payload")
		respond(http.StatusBadRequest, err.Error())
		return
	}

	if event.State == "" || event.URL == "" {
		l.Debug().Msg("webhook carries no issue state or url")
		respond(http.StatusOK, "")
		return
	}

	status := db.IssueStatus(verifier.MapWebhookState(event.State))
	accepted, err := rc.applyStatus(ctx, id, event.URL, status)
	if err != nil {
		l.Error().Err(err).Str("url", event.URL).Msg("error updating issue status")
		state.Error = true
		respond(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	state.Accepted = accepted
	if accepted {
		l.Info().Str("url", event.URL).Str("status", string(status)).Msg("issue status updated")
	} else {
		l.Debug().Str("url", event.URL).Msg("webhook references an untracked issue")
	}
	respond(http.StatusOK, "")
}

var errUnauthenticated = errors.New("unauthenticated webhook")

// authenticate checks the shared secret of the delivery against the secret
// option of the integration. Any failure to match, including an unknown
// provider or integration, is errUnauthenticated.
func (rc *Receiver) authenticate(
	ctx context.Context, r *http.Request, providerClass, integrationID string,
) (provifv1.WebhookVerifier, uuid.UUID, error) {
	verifier, err := rc.providers.WebhookVerifier(providerClass)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%w: %w", errUnauthenticated, err)
	}

	id, err := uuid.Parse(integrationID)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%w: invalid integration id", errUnauthenticated)
	}

	integration, err := rc.store.GetIntegrationByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, uuid.Nil, fmt.Errorf("%w: unknown integration", errUnauthenticated)
	} else if err != nil {
		return nil, uuid.Nil, fmt.Errorf("error getting integration: %w", err)
	}
	if integration.Provider != providerClass {
		return nil, uuid.Nil, fmt.Errorf("%w: integration belongs to another provider", errUnauthenticated)
	}

	secret, err := rc.store.GetIntegrationOption(ctx, db.GetIntegrationOptionParams{
		IntegrationID: id,
		Key:           provifv1.OptionSecret,
	})
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, uuid.Nil, fmt.Errorf("error getting webhook secret: %w", err)
	}

	if !secretMatches(secret.Value, verifier.WebhookToken(r)) {
		return nil, uuid.Nil, fmt.Errorf("%w: secret mismatch", errUnauthenticated)
	}
	return verifier, id, nil
}

// applyStatus sets the status of the issue tracked under url. It reports
// false when no issue is tracked under url.
func (rc *Receiver) applyStatus(ctx context.Context, integrationID uuid.UUID, url string, status db.IssueStatus) (bool, error) {
	accepted := false
	err := rc.store.WithTransactionErr(func(q db.Querier) error {
		res, err := q.GetIssueResourceByURL(ctx, db.GetIssueResourceByURLParams{
			IntegrationID: integrationID,
			Url:           url,
		})
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		} else if err != nil {
			return fmt.Errorf("error getting issue resource: %w", err)
		}

		_, err = q.UpdateIssueStatus(ctx, db.UpdateIssueStatusParams{
			ID:     res.IssueID,
			Status: status,
		})
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		} else if err != nil {
			return fmt.Errorf("error updating issue: %w", err)
		}
		accepted = true
		return nil
	})
	return accepted, err
}

// secretMatches compares in constant time. An empty secret on either side
// never matches.
func secretMatches(configured, presented string) bool {
	if configured == "" || presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(presented)) == 1
}
