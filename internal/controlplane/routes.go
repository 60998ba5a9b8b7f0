// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package controlplane

import (
	"github.com/google/uuid"
)

// hostRoutes are the pages of the host application the import form sends
// the user to
type hostRoutes struct{}

func (hostRoutes) ProjectList() string {
	return "/projects"
}

func (hostRoutes) Project(projectID uuid.UUID) string {
	return "/projects/" + projectID.String()
}

func (hostRoutes) CreateImport() string {
	return "/projects/new/import"
}

func (hostRoutes) UpdateImport(projectID uuid.UUID) string {
	return "/projects/" + projectID.String() + "/import/continue"
}
