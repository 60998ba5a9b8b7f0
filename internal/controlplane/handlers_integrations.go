// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package controlplane

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mindersec/rdm-integrations/internal/db"
	provifv1 "github.com/mindersec/rdm-integrations/pkg/providers/v1"
)

type createIntegrationRequest struct {
	Provider string           `json:"provider"`
	Options  provifv1.Options `json:"options"`
}

type updateOptionsRequest struct {
	Options provifv1.Options `json:"options"`
}

type integrationResponse struct {
	ID        uuid.UUID        `json:"id"`
	ProjectID uuid.UUID        `json:"project_id"`
	Provider  string           `json:"provider"`
	Options   provifv1.Options `json:"options"`
	// WebhookPath is where the provider must deliver the issue webhooks
	WebhookPath string    `json:"webhook_path"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newIntegrationResponse(integration db.Integration, fields []provifv1.Field, options provifv1.Options) integrationResponse {
	return integrationResponse{
		ID:          integration.ID,
		ProjectID:   integration.ProjectID,
		Provider:    integration.Provider,
		Options:     provifv1.MaskOptions(fields, options),
		WebhookPath: fmt.Sprintf("/api/v1/webhooks/%s/%s", integration.Provider, integration.ID),
		CreatedAt:   integration.CreatedAt,
		UpdatedAt:   integration.UpdatedAt,
	}
}

func optionsError(err error) error {
	var oerr *provifv1.OptionsError
	if errors.As(err, &oerr) {
		return &optionsHTTPError{oerr: oerr}
	}
	return err
}

type optionsHTTPError struct {
	oerr *provifv1.OptionsError
}

func (e *optionsHTTPError) Error() string {
	return e.oerr.Error()
}

type providerResponse struct {
	Class       string           `json:"class"`
	Description string           `json:"description"`
	Fields      []provifv1.Field `json:"fields"`
}

// HandleGetProvider describes a provider and its option schema
func (s *Server) HandleGetProvider(w http.ResponseWriter, r *http.Request) {
	providerClass := chi.URLParam(r, "provider")
	p, err := s.providers.Get(providerClass)
	if err != nil {
		writeError(w, r, newHttpError(http.StatusNotFound, "unknown provider").
			SetContents("unknown provider %q", providerClass))
		return
	}
	writeJSON(w, http.StatusOK, providerResponse{
		Class:       p.Class(),
		Description: p.Description(),
		Fields:      p.Fields(),
	})
}

// HandleProviderFields returns the option schema of a provider
func (s *Server) HandleProviderFields(w http.ResponseWriter, r *http.Request) {
	providerClass := chi.URLParam(r, "provider")
	p, err := s.providers.Get(providerClass)
	if err != nil {
		writeError(w, r, newHttpError(http.StatusNotFound, "unknown provider").
			SetContents("unknown provider %q", providerClass))
		return
	}
	writeJSON(w, http.StatusOK, p.Fields())
}

// HandleCreateIntegration creates an integration of a project
func (s *Server) HandleCreateIntegration(w http.ResponseWriter, r *http.Request) {
	resp, err := s.createIntegration(r)
	if err != nil {
		s.writeIntegrationError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) createIntegration(r *http.Request) (*integrationResponse, error) {
	ctx := r.Context()

	projectID, err := parseUUIDParam(chi.URLParam(r, "project_id"), "project id")
	if err != nil {
		return nil, err
	}

	var req createIntegrationRequest
	if err := decodeJSONBody(r, &req); err != nil {
		return nil, err
	}

	p, err := s.providers.Get(req.Provider)
	if err != nil {
		return nil, newHttpError(http.StatusBadRequest, "unknown provider").
			SetContents("unknown provider %q", req.Provider)
	}
	if err := provifv1.ValidateOptions(p.Fields(), req.Options); err != nil {
		return nil, optionsError(err)
	}

	integration, err := db.WithTransaction(s.store, func(q db.Querier) (db.Integration, error) {
		integration, err := q.CreateIntegration(ctx, db.CreateIntegrationParams{
			ProjectID: projectID,
			Provider:  p.Class(),
		})
		if err != nil {
			return db.Integration{}, fmt.Errorf("error creating integration: %w", err)
		}
		if err := db.ReplaceIntegrationOptions(ctx, q, integration.ID, req.Options); err != nil {
			return db.Integration{}, err
		}
		return integration, nil
	})
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("integration_id", integration.ID.String()).
		Str("project_id", projectID.String()).
		Str("provider", p.Class()).
		Interface("options", provifv1.MaskOptions(p.Fields(), req.Options)).
		Msg("integration created")

	resp := newIntegrationResponse(integration, p.Fields(), req.Options)
	return &resp, nil
}

// HandleGetIntegration returns an integration with its options. Secret
// options are masked.
func (s *Server) HandleGetIntegration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := parseUUIDParam(chi.URLParam(r, "integration_id"), "integration id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	integration, p, err := s.getIntegration(r, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	options, err := db.GetIntegrationOptions(ctx, s.store, id)
	if err != nil {
		writeError(w, r, fmt.Errorf("error getting integration options: %w", err))
		return
	}

	writeJSON(w, http.StatusOK, newIntegrationResponse(integration, p.Fields(), options))
}

// HandleUpdateIntegrationOptions replaces the options of an integration. A
// secret option sent back with its masked value keeps its stored value.
func (s *Server) HandleUpdateIntegrationOptions(w http.ResponseWriter, r *http.Request) {
	resp, err := s.updateIntegrationOptions(r)
	if err != nil {
		s.writeIntegrationError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) updateIntegrationOptions(r *http.Request) (*integrationResponse, error) {
	ctx := r.Context()

	id, err := parseUUIDParam(chi.URLParam(r, "integration_id"), "integration id")
	if err != nil {
		return nil, err
	}

	var req updateOptionsRequest
	if err := decodeJSONBody(r, &req); err != nil {
		return nil, err
	}

	integration, p, err := s.getIntegration(r, id)
	if err != nil {
		return nil, err
	}

	var options provifv1.Options
	err = s.store.WithTransactionErr(func(q db.Querier) error {
		current, err := db.GetIntegrationOptions(ctx, q, id)
		if err != nil {
			return fmt.Errorf("error getting integration options: %w", err)
		}

		options = unmaskOptions(p.Fields(), req.Options, current)
		if err := provifv1.ValidateOptions(p.Fields(), options); err != nil {
			return optionsError(err)
		}
		return db.ReplaceIntegrationOptions(ctx, q, id, options)
	})
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("integration_id", id.String()).
		Interface("options", provifv1.MaskOptions(p.Fields(), options)).
		Msg("integration options updated")

	// the options were just touched
	integration.UpdatedAt = time.Now()
	resp := newIntegrationResponse(integration, p.Fields(), options)
	return &resp, nil
}

// unmaskOptions replaces secret options submitted with the masked value by
// their current value
func unmaskOptions(fields []provifv1.Field, submitted, current provifv1.Options) provifv1.Options {
	options := make(provifv1.Options, len(submitted))
	for k, v := range submitted {
		options[k] = v
	}
	for _, f := range fields {
		if f.Secret && options[f.Key] == provifv1.MaskedValue {
			options[f.Key] = current[f.Key]
		}
	}
	return options
}

func (s *Server) getIntegration(r *http.Request, id uuid.UUID) (db.Integration, provifv1.Provider, error) {
	integration, err := s.store.GetIntegrationByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		return db.Integration{}, nil, newHttpError(http.StatusNotFound, "integration not found").
			SetContents("integration not found")
	} else if err != nil {
		return db.Integration{}, nil, fmt.Errorf("error getting integration: %w", err)
	}

	p, err := s.providers.Get(integration.Provider)
	if err != nil {
		return db.Integration{}, nil, fmt.Errorf("integration %s: %w", id, err)
	}
	return integration, p, nil
}

func (*Server) writeIntegrationError(w http.ResponseWriter, r *http.Request, err error) {
	var oerr *optionsHTTPError
	if errors.As(err, &oerr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   oerr.Error(),
			Missing: oerr.oerr.Missing,
			Unknown: oerr.oerr.Unknown,
		})
		return
	}
	writeError(w, r, err)
}
