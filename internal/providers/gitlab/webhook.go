// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package gitlab

import (
	"encoding/json"
	"fmt"
	"net/http"

	gitlablib "gitlab.com/gitlab-org/api/client-go"

	provifv1 "github.com/mindersec/rdm-integrations/pkg/providers/v1"
)

// remoteStateClosed is the only issue state GitLab reports that is mapped
// onto a terminal local status
const remoteStateClosed = "closed"

// issueHook is the part of the issue hook payload we act upon
type issueHook struct {
	ObjectAttributes struct {
		State string `json:"state"`
		URL   string `json:"url"`
	} `json:"object_attributes"`
}

// WebhookToken implements the WebhookVerifier interface
func (*Provider) WebhookToken(r *http.Request) string {
	return gitlablib.HookEventToken(r)
}

// WebhookEventType returns the event type of a webhook request, for logging
func WebhookEventType(r *http.Request) string {
	return string(gitlablib.HookEventType(r))
}

// ParseIssueEvent implements the WebhookVerifier interface
func (*Provider) ParseIssueEvent(body []byte) (*provifv1.IssueEvent, error) {
	var hook issueHook
	if err := json.Unmarshal(body, &hook); err != nil {
		return nil, fmt.Errorf("invalid issue event payload: %w", err)
	}
	return &provifv1.IssueEvent{
		State: hook.ObjectAttributes.State,
		URL:   hook.ObjectAttributes.URL,
	}, nil
}

// MapWebhookState implements the WebhookVerifier interface. GitLab only
// tells closed issues apart: every other state means someone is working on it.
func (*Provider) MapWebhookState(state string) provifv1.IssueStatus {
	if state == remoteStateClosed {
		return provifv1.IssueStatusClosed
	}
	return provifv1.IssueStatusInProgress
}
