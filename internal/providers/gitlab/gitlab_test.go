// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package gitlab

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindersec/rdm-integrations/pkg/config/server"
	provifv1 "github.com/mindersec/rdm-integrations/pkg/providers/v1"
)

func newTestProvider(t *testing.T, baseURL string) *Provider {
	t.Helper()

	p, err := New(&server.GitLabConfig{
		OAuthClientConfig: server.OAuthClientConfig{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
		},
		BaseURL: baseURL,
	})
	require.NoError(t, err)
	return p
}

func TestNew(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, "https://gitlab.example.org/")
	assert.Equal(t, Class, p.Class())
	assert.Equal(t, "https://gitlab.example.org", p.BaseURL())
	assert.Equal(t, "client-id", p.ClientID())
	assert.Equal(t, "client-secret", p.ClientSecret())
	assert.Equal(t, []string{"api"}, p.Scopes())
}

func TestNewInvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  server.GitLabConfig
	}{
		{
			name: "no base URL",
			cfg: server.GitLabConfig{
				OAuthClientConfig: server.OAuthClientConfig{ClientID: "id", ClientSecret: "secret"},
				BaseURL:           "/",
			},
		},
		{
			name: "no client ID",
			cfg: server.GitLabConfig{
				OAuthClientConfig: server.OAuthClientConfig{ClientSecret: "secret"},
				BaseURL:           "https://gitlab.com",
			},
		},
		{
			name: "no client secret",
			cfg: server.GitLabConfig{
				OAuthClientConfig: server.OAuthClientConfig{ClientID: "id"},
				BaseURL:           "https://gitlab.com",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(&tt.cfg)
			require.ErrorIs(t, err, provifv1.ErrConfiguration)
		})
	}
}

func TestResolveEndpoints(t *testing.T) {
	t.Parallel()

	for _, base := range []string{
		"https://gitlab.com",
		"https://gitlab.com/",
		"https://gitlab.com//",
		"/https://gitlab.com",
	} {
		t.Run(base, func(t *testing.T) {
			t.Parallel()

			got := ResolveEndpoints(base)
			assert.Equal(t, provifv1.Endpoints{
				AuthorizeURL: "https://gitlab.com/oauth/authorize",
				TokenURL:     "https://gitlab.com/oauth/token",
				APIURL:       "https://gitlab.com/api/v4",
			}, got)
		})
	}
}

func TestFields(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, "https://gitlab.com")
	fields := p.Fields()
	require.Len(t, fields, 2)

	assert.Equal(t, provifv1.OptionRepoURL, fields[0].Key)
	assert.Equal(t, "https://gitlab.com/username/repo", fields[0].Placeholder)
	assert.True(t, fields[0].Required)
	assert.False(t, fields[0].Secret)

	assert.Equal(t, provifv1.OptionSecret, fields[1].Key)
	assert.Equal(t, "Secret (random) string", fields[1].Placeholder)
	assert.False(t, fields[1].Required)
	assert.True(t, fields[1].Secret)
}

func TestDescription(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, "https://gitlab.example.org/")
	assert.Equal(t, "This integration allows the creation of issues in arbitrary repositories on "+
		"https://gitlab.example.org. The upload of attachments is not supported by GitLab.", p.Description())
}

func TestRepositoryFromURL(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, "https://gitlab.com")

	tests := []struct {
		repoURL string
		want    string
	}{
		{repoURL: "https://gitlab.com/group/repo", want: "group/repo"},
		{repoURL: "https://gitlab.com/group/sub/repo/", want: "group/sub/repo"},
		{repoURL: "https://gitlab.com/group/repo.git", want: "group/repo"},
		{repoURL: " https://gitlab.com/group/repo ", want: "group/repo"},
		{repoURL: "https://gitlab.com/", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.repoURL, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, p.RepositoryFromURL(tt.repoURL))
		})
	}
}

func TestIssuesPath(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, "https://gitlab.com")
	got := p.IssuesPath("group/sub/repo")
	assert.Equal(t, "projects/group%2Fsub%2Frepo/issues", got)

	segment := strings.TrimSuffix(strings.TrimPrefix(got, "projects/"), "/issues")
	assert.NotContains(t, segment, "/")
}

func TestBuildIssuePayload(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, "https://gitlab.com")
	body, err := json.Marshal(p.BuildIssuePayload("Subject", "Message body"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Subject","description":"Message body"}`, string(body))
}

func TestIssueURL(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, "https://gitlab.com")

	u, err := p.IssueURL([]byte(`{"id":1,"iid":3,"web_url":"https://gitlab.com/group/repo/-/issues/3"}`))
	require.NoError(t, err)
	assert.Equal(t, "https://gitlab.com/group/repo/-/issues/3", u)

	_, err = p.IssueURL([]byte(`{"id":1}`))
	require.Error(t, err)

	_, err = p.IssueURL([]byte(`not json`))
	require.Error(t, err)
}

func TestFilePath(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, "https://gitlab.com")
	got := p.FilePath("group/repo", "data/my file.csv", "feature/x")
	assert.Equal(t, "projects/group%2Frepo/repository/files/data%2Fmy%20file.csv?ref=feature%2Fx", got)
}

func TestDecodeFile(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, "https://gitlab.com")

	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{
			name: "base64 content",
			body: `{"file_name":"a.txt","encoding":"base64","content":"aGVsbG8gd29ybGQ="}`,
			want: "hello world",
		},
		{
			name:    "bad base64",
			body:    `{"encoding":"base64","content":"!!!"}`,
			wantErr: true,
		},
		{
			name:    "unknown encoding",
			body:    `{"encoding":"text","content":"hello"}`,
			wantErr: true,
		},
		{
			name:    "not json",
			body:    `<html>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := p.DecodeFile([]byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestWebhookToken(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, "https://gitlab.com")

	r := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/gitlab/x", nil)
	assert.Empty(t, p.WebhookToken(r))

	r.Header.Set("X-Gitlab-Token", "s3cr3t")
	r.Header.Set("X-Gitlab-Event", "Issue Hook")
	assert.Equal(t, "s3cr3t", p.WebhookToken(r))
	assert.Equal(t, "Issue Hook", WebhookEventType(r))
}

func TestParseIssueEvent(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, "https://gitlab.com")

	ev, err := p.ParseIssueEvent([]byte(`{"object_kind":"issue","object_attributes":{"state":"closed","url":"https://x/issues/1"}}`))
	require.NoError(t, err)
	assert.Equal(t, &provifv1.IssueEvent{State: "closed", URL: "https://x/issues/1"}, ev)

	ev, err = p.ParseIssueEvent([]byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, ev.State)
	assert.Empty(t, ev.URL)

	_, err = p.ParseIssueEvent([]byte(`{"object_attributes":`))
	require.Error(t, err)
}

func TestMapWebhookState(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, "https://gitlab.com")

	tests := []struct {
		state string
		want  provifv1.IssueStatus
	}{
		{state: "closed", want: provifv1.IssueStatusClosed},
		{state: "opened", want: provifv1.IssueStatusInProgress},
		{state: "reopened", want: provifv1.IssueStatusInProgress},
		{state: "locked", want: provifv1.IssueStatusInProgress},
		{state: "Closed", want: provifv1.IssueStatusInProgress},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, p.MapWebhookState(tt.state))
		})
	}
}
