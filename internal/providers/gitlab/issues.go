// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package gitlab

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	gitlablib "gitlab.com/gitlab-org/api/client-go"
)

// createdIssue is the part of the issue creation response we read.
// gitlablib.Issue is not used because its decoder assumes a complete issue.
type createdIssue struct {
	ID     int    `json:"id"`
	IID    int    `json:"iid"`
	WebURL string `json:"web_url"`
}

// RepositoryFromURL implements the IssueTracker interface. The repository is
// what remains of the URL once the base URL and the surrounding slashes are
// removed, e.g. "group/sub/repo".
func (p *Provider) RepositoryFromURL(repoURL string) string {
	repo := strings.TrimSpace(repoURL)
	repo = strings.TrimPrefix(repo, p.baseURL)
	repo = strings.Trim(repo, "/")
	return strings.TrimSuffix(repo, ".git")
}

// IssuesPath implements the IssueTracker interface
func (*Provider) IssuesPath(repo string) string {
	return fmt.Sprintf("projects/%s/issues", escapeComponent(repo))
}

// BuildIssuePayload implements the IssueTracker interface
func (*Provider) BuildIssuePayload(subject, message string) any {
	return &gitlablib.CreateIssueOptions{
		Title:       gitlablib.Ptr(subject),
		Description: gitlablib.Ptr(message),
	}
}

// IssueURL implements the IssueTracker interface
func (*Provider) IssueURL(body []byte) (string, error) {
	var issue createdIssue
	if err := json.Unmarshal(body, &issue); err != nil {
		return "", fmt.Errorf("failed to decode issue: %w", err)
	}
	if issue.WebURL == "" {
		return "", errors.New("issue response has no web_url")
	}
	return issue.WebURL, nil
}
