// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package providers

import "github.com/mindersec/rdm-integrations/internal/providers/gitlab"

// ListProviderClasses returns a list of provider classes.
func ListProviderClasses() []string {
	return []string{
		gitlab.Class,
	}
}
