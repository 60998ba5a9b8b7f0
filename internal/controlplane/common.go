// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package controlplane

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mindersec/rdm-integrations/internal/session"
)

type httpResponseError struct {
	statusCode   int
	short        string
	pageContents string
}

func newHttpError(statusCode int, short string) *httpResponseError {
	return &httpResponseError{
		statusCode:   statusCode,
		short:        short,
		pageContents: http.StatusText(statusCode),
	}
}

func (e *httpResponseError) SetContents(contents string, args ...any) *httpResponseError {
	e.pageContents = fmt.Sprintf(contents, args...)
	return e
}

// Error implements error
func (e *httpResponseError) Error() string {
	return fmt.Sprintf("HTTP error: %d %s", e.statusCode, e.short)
}

func (e *httpResponseError) WriteError(w http.ResponseWriter) {
	writeJSON(w, e.statusCode, errorResponse{Error: e.pageContents})
}

type errorResponse struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing,omitempty"`
	Unknown []string `json:"unknown,omitempty"`
	// AuthorizeURL is where to send the user when a provider token is needed
	AuthorizeURL string `json:"authorize_url,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("error writing response")
	}
}

// writeError writes err if it is an *httpResponseError, and a bare 500
// otherwise
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var httpErr *httpResponseError
	if errors.As(err, &httpErr) {
		httpErr.WriteError(w)
		return
	}
	zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("error handling request")
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: http.StatusText(http.StatusInternalServerError)})
}

func decodeJSONBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return newHttpError(http.StatusBadRequest, "invalid body").SetContents("invalid request body: %v", err)
	}
	return nil
}

func parseUUIDParam(value, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, newHttpError(http.StatusBadRequest, "invalid "+name).SetContents("invalid %s", name)
	}
	return id, nil
}

// loadSession returns the session of the request. An undecodable session is
// replaced by an empty one.
func (s *Server) loadSession(r *http.Request) session.Values {
	values, err := s.sessions.Load(r)
	if err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("discarding invalid session")
		return session.Values{}
	}
	return values
}

// authorizePath returns the path starting the OAuth flow for the provider,
// coming back to next once done
func authorizePath(providerClass, next string) string {
	return "/oauth/authorize/" + providerClass + "?next=" + url.QueryEscape(next)
}

// safeNext returns next when it is a local path, and "/" otherwise
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
