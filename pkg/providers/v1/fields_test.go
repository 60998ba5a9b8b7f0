// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package v1

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFields = []Field{
	{Key: OptionRepoURL, Required: true},
	{Key: OptionSecret, Secret: true},
}

func TestValidateOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		options     Options
		wantMissing []string
		wantUnknown []string
	}{
		{
			name:    "all set",
			options: Options{OptionRepoURL: "https://gitlab.com/a/b", OptionSecret: "s3cr3t"},
		},
		{
			name:    "optional omitted",
			options: Options{OptionRepoURL: "https://gitlab.com/a/b"},
		},
		{
			name:        "required missing",
			options:     Options{OptionSecret: "s3cr3t"},
			wantMissing: []string{OptionRepoURL},
		},
		{
			name:        "required empty",
			options:     Options{OptionRepoURL: ""},
			wantMissing: []string{OptionRepoURL},
		},
		{
			name:        "unknown keys are sorted",
			options:     Options{OptionRepoURL: "x", "zeta": "1", "alpha": "2"},
			wantUnknown: []string{"alpha", "zeta"},
		},
		{
			name:        "nil options",
			wantMissing: []string{OptionRepoURL},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateOptions(testFields, tt.options)
			if tt.wantMissing == nil && tt.wantUnknown == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, ErrInvalidOptions)
			var oerr *OptionsError
			require.True(t, errors.As(err, &oerr))
			assert.Equal(t, tt.wantMissing, oerr.Missing)
			assert.Equal(t, tt.wantUnknown, oerr.Unknown)
		})
	}
}

func TestMaskOptions(t *testing.T) {
	t.Parallel()

	options := Options{OptionRepoURL: "https://gitlab.com/a/b", OptionSecret: "s3cr3t"}
	masked := MaskOptions(testFields, options)

	assert.Equal(t, "https://gitlab.com/a/b", masked[OptionRepoURL])
	assert.Equal(t, MaskedValue, masked[OptionSecret])
	assert.Equal(t, "s3cr3t", options[OptionSecret], "input must not be modified")

	empty := MaskOptions(testFields, Options{OptionSecret: ""})
	assert.Equal(t, "", empty[OptionSecret])

	assert.NotNil(t, MaskOptions(testFields, nil))
}

func TestOptionsOption(t *testing.T) {
	t.Parallel()

	o := Options{"a": "1", "b": ""}
	v, ok := o.Option("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	_, ok = o.Option("b")
	assert.False(t, ok)

	_, ok = o.Option("c")
	assert.False(t, ok)
}

func TestIssueStatusValid(t *testing.T) {
	t.Parallel()

	assert.True(t, IssueStatusOpen.Valid())
	assert.True(t, IssueStatusInProgress.Valid())
	assert.True(t, IssueStatusClosed.Valid())
	assert.False(t, IssueStatus("reopened").Valid())
}
