// SPDX-FileCopyrightText: Copyright 2023 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

// Package v1 for providers provides the public interfaces for the forges an
// integration can talk to. The OAuth flow, the REST client and the webhook
// receiver only depend on these interfaces; forge specifics live in the
// implementations.
package v1

import (
	"net/http"
)

// IssueStatus is the local status of a tracked issue
type IssueStatus string

const (
	// IssueStatusOpen is the status of an issue nobody has acted upon yet
	IssueStatusOpen IssueStatus = "open"
	// IssueStatusInProgress is the status of an issue with remote activity
	IssueStatusInProgress IssueStatus = "in_progress"
	// IssueStatusClosed is the status of an issue closed on the forge
	IssueStatusClosed IssueStatus = "closed"
)

// Valid reports whether s is a known status
func (s IssueStatus) Valid() bool {
	switch s {
	case IssueStatusOpen, IssueStatusInProgress, IssueStatusClosed:
		return true
	}
	return false
}

// Endpoints are the URLs derived from a provider base URL
type Endpoints struct {
	AuthorizeURL string
	TokenURL     string
	APIURL       string
}

// IssueEvent is the part of an issue webhook the receiver acts upon. Both
// fields may be empty.
type IssueEvent struct {
	State string
	URL   string
}

// Provider is the interface every forge implements
type Provider interface {
	// Class is the provider identifier used in routes, e.g. "gitlab"
	Class() string
	// BaseURL is the configured base URL without surrounding slashes
	BaseURL() string
	ResolveEndpoints() Endpoints
	Scopes() []string
	ClientID() string
	ClientSecret() string
	// Description is shown to users choosing an integration
	Description() string
	// Fields describes the per-integration options
	Fields() []Field
}

// IssueTracker is implemented by providers that can receive issues
type IssueTracker interface {
	Provider
	// RepositoryFromURL returns the repository identifier in a repository
	// URL, or an empty string when none can be derived.
	RepositoryFromURL(repoURL string) string
	// IssuesPath is the API path, relative to the API URL, issues are
	// created under.
	IssuesPath(repo string) string
	// BuildIssuePayload returns the JSON-serializable issue creation body
	BuildIssuePayload(subject, message string) any
	// IssueURL extracts the web URL from an issue creation response
	IssueURL(body []byte) (string, error)
}

// FileSource is implemented by providers files can be imported from
type FileSource interface {
	Provider
	// FilePath is the API path, relative to the API URL, of a file at a ref
	FilePath(repo, path, ref string) string
	// DecodeFile returns the file contents from a file response
	DecodeFile(body []byte) ([]byte, error)
}

// WebhookVerifier is implemented by providers that deliver issue webhooks
type WebhookVerifier interface {
	Provider
	// WebhookToken returns the shared secret presented by the request
	WebhookToken(r *http.Request) string
	// ParseIssueEvent parses an untrusted webhook body
	ParseIssueEvent(body []byte) (*IssueEvent, error)
	// MapWebhookState maps a remote issue state onto a local status
	MapWebhookState(state string) IssueStatus
}
