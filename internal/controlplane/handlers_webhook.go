// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package controlplane

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// HandleWebhook receives the issue webhooks of an integration
func (s *Server) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	s.webhooks.Handle(w, r, chi.URLParam(r, "provider"), chi.URLParam(r, "integration_id"))
}
