// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package gitlab

import (
	provifv1 "github.com/mindersec/rdm-integrations/pkg/providers/v1"
)

// Description implements the Provider interface
func (p *Provider) Description() string {
	return "This integration allows the creation of issues in arbitrary repositories on " + p.baseURL +
		". The upload of attachments is not supported by GitLab."
}

// Fields implements the Provider interface
func (p *Provider) Fields() []provifv1.Field {
	return []provifv1.Field{
		{
			Key:         provifv1.OptionRepoURL,
			Placeholder: p.baseURL + "/username/repo",
			Help:        "URL of the GitLab repository issues are created in",
			Required:    true,
		},
		{
			Key:         provifv1.OptionSecret,
			Placeholder: "Secret (random) string",
			Help:        "Secret token configured on the GitLab issue webhook",
			Required:    false,
			Secret:      true,
		},
	}
}
