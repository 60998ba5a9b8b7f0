// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package controlplane

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/mindersec/rdm-integrations/internal/issues"
	"github.com/mindersec/rdm-integrations/internal/providers/rest"
	"github.com/mindersec/rdm-integrations/internal/session"
	provifv1 "github.com/mindersec/rdm-integrations/pkg/providers/v1"
)

type sendIssueRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type sendIssueResponse struct {
	// Configured is false when the integration has no repository set up, in
	// which case nothing was sent
	Configured bool   `json:"configured"`
	URL        string `json:"url,omitempty"`
}

// HandleSendIssue creates the issue on the provider of the integration with
// the token of the user, and tracks it for webhook updates
func (s *Server) HandleSendIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	integrationID, err := parseUUIDParam(chi.URLParam(r, "integration_id"), "integration id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	issueID, err := parseUUIDParam(chi.URLParam(r, "issue_id"), "issue id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req sendIssueRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Subject) == "" {
		writeError(w, r, newHttpError(http.StatusBadRequest, "missing subject").SetContents("subject is required"))
		return
	}

	integration, _, err := s.getIntegration(r, integrationID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token := s.loadSession(r).Get(session.TokenKey(integration.Provider))
	if token == "" {
		s.writeUnauthorized(w, r, integration.Provider)
		return
	}

	issueURL, err := s.issues.Send(ctx, issues.SendParams{
		IntegrationID: integrationID,
		IssueID:       issueID,
		Subject:       req.Subject,
		Message:       req.Message,
		Token:         token,
	})

	var apiErr *rest.RemoteAPIError
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, sendIssueResponse{Configured: true, URL: issueURL})
	case errors.Is(err, provifv1.ErrNotConfigured):
		writeJSON(w, http.StatusOK, sendIssueResponse{Configured: false})
	case errors.Is(err, issues.ErrIntegrationNotFound):
		writeError(w, r, newHttpError(http.StatusNotFound, "integration not found").SetContents("integration not found"))
	case errors.Is(err, issues.ErrIssueNotFound):
		writeError(w, r, newHttpError(http.StatusNotFound, "issue not found").SetContents("issue not found"))
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized:
		s.writeUnauthorized(w, r, integration.Provider)
	case errors.As(err, &apiErr):
		zerolog.Ctx(ctx).Info().Err(err).Msg("provider refused issue")
		writeError(w, r, newHttpError(http.StatusBadGateway, "provider error").
			SetContents("provider request failed with status %d", apiErr.StatusCode))
	default:
		writeError(w, r, err)
	}
}

// writeUnauthorized tells the client to go through the OAuth flow of the
// provider first
func (*Server) writeUnauthorized(w http.ResponseWriter, r *http.Request, providerClass string) {
	writeJSON(w, http.StatusUnauthorized, errorResponse{
		Error:        "provider authorization required",
		AuthorizeURL: authorizePath(providerClass, safeNext(r.URL.Query().Get("next"))),
	})
}
