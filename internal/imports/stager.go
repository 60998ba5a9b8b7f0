// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package imports

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// ErrInvalidStagedName is returned when a staged file name is not one
// FileStager could have produced
var ErrInvalidStagedName = errors.New("invalid staged file name")

// FileStager stages files in a directory. Each file gets a random name that
// keeps the extension of the original one.
type FileStager struct {
	fs  afero.Fs
	dir string
}

// NewFileStager creates a stager writing into dir on fs
func NewFileStager(fs afero.Fs, dir string) *FileStager {
	return &FileStager{fs: fs, dir: filepath.Clean(dir)}
}

// Stage implements Stager
func (s *FileStager) Stage(_ context.Context, name string, data []byte) (string, error) {
	if err := s.fs.MkdirAll(s.dir, 0o750); err != nil {
		return "", fmt.Errorf("error creating staging directory: %w", err)
	}

	staged := uuid.NewString() + path.Ext(name)
	if err := afero.WriteFile(s.fs, filepath.Join(s.dir, staged), data, 0o600); err != nil {
		return "", fmt.Errorf("error writing staged file: %w", err)
	}
	return staged, nil
}

// Read returns the contents of a staged file
func (s *FileStager) Read(name string) ([]byte, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return nil, ErrInvalidStagedName
	}
	return afero.ReadFile(s.fs, filepath.Join(s.dir, name))
}
