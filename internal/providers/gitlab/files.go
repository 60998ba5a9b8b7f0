// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package gitlab

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	gitlablib "gitlab.com/gitlab-org/api/client-go"
)

// FilePath implements the FileSource interface. Each of repo, path and ref
// is escaped on its own.
func (*Provider) FilePath(repo, path, ref string) string {
	return fmt.Sprintf("projects/%s/repository/files/%s?ref=%s",
		escapeComponent(repo), escapeComponent(path), escapeComponent(ref))
}

// DecodeFile implements the FileSource interface
func (*Provider) DecodeFile(body []byte) ([]byte, error) {
	var f gitlablib.File
	if err := json.Unmarshal(body, &f); err != nil {
		return nil, fmt.Errorf("failed to decode file: %w", err)
	}
	if f.Encoding != "" && f.Encoding != "base64" {
		return nil, fmt.Errorf("unsupported file encoding %q", f.Encoding)
	}

	content, err := base64.StdEncoding.DecodeString(f.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to decode file content: %w", err)
	}
	return content, nil
}
