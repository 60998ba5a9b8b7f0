// SPDX-FileCopyrightText: Copyright 2023 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

//go:build tools

package tools

//go:generate go install github.com/golangci/golangci-lint/v2/cmd/golangci-lint
//go:generate go install mvdan.cc/gofumpt
//go:generate go install golang.org/x/tools/cmd/goimports
//go:generate go install github.com/sqlc-dev/sqlc/cmd/sqlc
//go:generate go install go.uber.org/mock/mockgen

// nolint

import (
	_ "github.com/golangci/golangci-lint/v2/cmd/golangci-lint"
	_ "github.com/sqlc-dev/sqlc/cmd/sqlc"
	_ "go.uber.org/mock/mockgen"
	_ "golang.org/x/tools/cmd/goimports"
	_ "mvdan.cc/gofumpt"
)
