// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

// Package rest provides the authenticated REST client used to create issues
// on, and fetch files from, a provider
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	provifv1 "github.com/mindersec/rdm-integrations/pkg/providers/v1"
)

const (
	// maxResponseSize caps how much of a provider response is read
	maxResponseSize = 50 << 20
	// maxErrorBodySize caps how much of an error response ends up in a RemoteAPIError
	maxErrorBodySize = 1 << 10

	userAgent = "rdm-integrations"
)

// Client talks to the REST API of a provider on behalf of a user. Requests
// are sent once; failures are returned to the caller.
type Client struct {
	provider provifv1.Provider
	cred     provifv1.RestCredential
	cli      *http.Client
	apiURL   string
}

// NewClient creates a client for the provider using the given credential. A
// nil HTTP client means http.DefaultClient.
func NewClient(provider provifv1.Provider, cred provifv1.RestCredential, cli *http.Client) *Client {
	if cli == nil {
		cli = http.DefaultClient
	}
	return &Client{
		provider: provider,
		cred:     cred,
		cli:      cli,
		apiURL:   provider.ResolveEndpoints().APIURL,
	}
}

// CreateIssue creates an issue in the repository configured in the repo_url
// option and returns its web URL. It returns provifv1.ErrNotConfigured, and
// sends nothing, when the option is unset.
func (c *Client) CreateIssue(ctx context.Context, options provifv1.OptionGetter, subject, message string) (string, error) {
	tracker, ok := c.provider.(provifv1.IssueTracker)
	if !ok {
		return "", fmt.Errorf("%w: %s cannot create issues", provifv1.ErrUnsupported, c.provider.Class())
	}

	repoURL, ok := options.Option(provifv1.OptionRepoURL)
	if !ok {
		return "", provifv1.ErrNotConfigured
	}
	repo := tracker.RepositoryFromURL(repoURL)
	if repo == "" {
		return "", provifv1.ErrNotConfigured
	}

	body, err := c.do(ctx, http.MethodPost, tracker.IssuesPath(repo), tracker.BuildIssuePayload(subject, message))
	if err != nil {
		return "", err
	}

	return tracker.IssueURL(body)
}

// FetchFile returns the contents of the file at path in repo, at ref
func (c *Client) FetchFile(ctx context.Context, repo, path, ref string) ([]byte, error) {
	source, ok := c.provider.(provifv1.FileSource)
	if !ok {
		return nil, fmt.Errorf("%w: %s cannot fetch files", provifv1.ErrUnsupported, c.provider.Class())
	}

	body, err := c.do(ctx, http.MethodGet, source.FilePath(repo, path, ref), nil)
	if err != nil {
		return nil, err
	}

	return source.DecodeFile(body)
}

// NewRequest creates a request for a path relative to the API URL. The path
// is expected to be escaped already.
func (c *Client) NewRequest(ctx context.Context, method, requestPath string, body any) (*http.Request, error) {
	u := c.apiURL + "/" + requestPath

	var buf io.Reader
	if body != nil {
		b := &bytes.Buffer{}
		enc := json.NewEncoder(b)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(body); err != nil {
			return nil, err
		}
		buf = b
	}

	req, err := http.NewRequestWithContext(ctx, method, u, buf)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	if c.cred != nil {
		c.cred.SetAuthorizationHeader(req)
	}

	return req, nil
}

func (c *Client) do(ctx context.Context, method, requestPath string, body any) ([]byte, error) {
	req, err := c.NewRequest(ctx, method, requestPath, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	logger := zerolog.Ctx(ctx).With().
		Str("provider", c.provider.Class()).
		Str("method", method).
		Str("url", req.URL.Redacted()).
		Logger()

	resp, err := c.cli.Do(req)
	if err != nil {
		logger.Debug().Err(err).Msg("provider request failed")
		return nil, &RemoteAPIError{Method: method, URL: req.URL.Redacted(), Err: err}
	}
	defer resp.Body.Close()

	logger.Debug().Int("status", resp.StatusCode).Msg("provider request done")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, &RemoteAPIError{
			Method:     method,
			URL:        req.URL.Redacted(),
			StatusCode: resp.StatusCode,
			Body:       string(errBody),
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &RemoteAPIError{Method: method, URL: req.URL.Redacted(), StatusCode: resp.StatusCode, Err: err}
	}
	return data, nil
}
