// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package controlplane

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mindersec/rdm-integrations/internal/imports"
	"github.com/mindersec/rdm-integrations/internal/providers/credentials"
	"github.com/mindersec/rdm-integrations/internal/providers/rest"
	"github.com/mindersec/rdm-integrations/internal/session"
)

const opImportFile = "import_file"

// HandleImport serves the import form. GET returns the empty form; POST
// submits it. The form is rendered by the host, so both return JSON unless
// the submission redirects.
func (s *Server) HandleImport(w http.ResponseWriter, r *http.Request) {
	if err := s.processImport(w, r); err != nil {
		writeError(w, r, err)
	}
}

func (s *Server) processImport(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	providerClass := chi.URLParam(r, "provider")

	var projectID uuid.NullUUID
	if raw := chi.URLParam(r, "project_id"); raw != "" {
		id, err := parseUUIDParam(raw, "project id")
		if err != nil {
			return err
		}
		projectID = uuid.NullUUID{UUID: id, Valid: true}
	}

	src, err := s.providers.FileSource(providerClass)
	if err != nil {
		return newHttpError(http.StatusNotFound, "unknown provider").
			SetContents("cannot import files from %q", providerClass)
	}

	var form imports.Form
	cancel := false
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			return newHttpError(http.StatusBadRequest, "invalid form").SetContents("invalid form: %v", err)
		}
		cancel = r.PostForm.Has("cancel")
		form = imports.Form{
			Repo: r.PostForm.Get("repo"),
			Path: r.PostForm.Get("path"),
			Ref:  r.PostForm.Get("ref"),
		}
	}

	values := s.loadSession(r)
	token := values.Get(session.TokenKey(providerClass))
	if token == "" && !cancel {
		http.Redirect(w, r, authorizePath(providerClass, r.URL.Path), http.StatusFound)
		return nil
	}

	client := rest.NewClient(src, credentials.NewOAuth2TokenCredential(token), s.providers.HTTPClient(providerClass))
	driver := imports.NewDriver(src.BaseURL(), client, s.stager, s.routes)

	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusOK, driver.Render())
		return nil
	}

	res, err := driver.Submit(ctx, imports.SubmitParams{
		ProjectID: projectID,
		Cancel:    cancel,
		Form:      form,
		Session:   values,
	})
	if err != nil {
		s.mt.AddProviderOpCount(ctx, providerClass, opImportFile, false)
		var apiErr *rest.RemoteAPIError
		if errors.As(err, &apiErr) {
			zerolog.Ctx(ctx).Info().Err(err).Msg("import fetch failed")
			if apiErr.StatusCode == http.StatusUnauthorized {
				http.Redirect(w, r, authorizePath(providerClass, r.URL.Path), http.StatusFound)
				return nil
			}
			return newHttpError(http.StatusBadGateway, "provider error").
				SetContents("could not fetch %s: provider answered with status %d", form.Path, apiErr.StatusCode)
		}
		return err
	}

	if res.Redirect == "" {
		writeJSON(w, http.StatusUnprocessableEntity, res)
		return nil
	}

	if !cancel {
		s.mt.AddProviderOpCount(ctx, providerClass, opImportFile, true)
		if err := s.sessions.Save(w, values); err != nil {
			return err
		}
	}
	http.Redirect(w, r, res.Redirect, http.StatusSeeOther)
	return nil
}
