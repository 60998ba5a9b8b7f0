// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package v1

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

const (
	// OptionRepoURL is the option holding the repository URL of an integration
	OptionRepoURL = "repo_url"
	// OptionSecret is the option holding the shared webhook secret
	OptionSecret = "secret"
)

// MaskedValue replaces secret option values in any output
const MaskedValue = "********"

// Field describes one option of an integration
type Field struct {
	Key         string `json:"key"`
	Placeholder string `json:"placeholder,omitempty"`
	Help        string `json:"help,omitempty"`
	Required    bool   `json:"required"`
	Secret      bool   `json:"secret"`
}

// OptionGetter gives access to the options of an integration
type OptionGetter interface {
	Option(key string) (string, bool)
}

// Options are the option values of an integration, by key
type Options map[string]string

// Option returns the value for key. Empty values are reported as unset.
func (o Options) Option(key string) (string, bool) {
	v, ok := o[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// OptionsError lists the problems found by ValidateOptions
type OptionsError struct {
	Missing []string
	Unknown []string
}

func (e *OptionsError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing required options: %s", strings.Join(e.Missing, ", ")))
	}
	if len(e.Unknown) > 0 {
		parts = append(parts, fmt.Sprintf("unknown options: %s", strings.Join(e.Unknown, ", ")))
	}
	return strings.Join(parts, "; ")
}

// Unwrap allows errors.Is(err, ErrInvalidOptions)
func (*OptionsError) Unwrap() error {
	return ErrInvalidOptions
}

// ValidateOptions checks that every required field has a non-empty value and
// that no option falls outside the fields. It returns an *OptionsError.
func ValidateOptions(fields []Field, options Options) error {
	known := make(map[string]struct{}, len(fields))
	oerr := &OptionsError{}
	for _, f := range fields {
		known[f.Key] = struct{}{}
		if _, ok := options.Option(f.Key); f.Required && !ok {
			oerr.Missing = append(oerr.Missing, f.Key)
		}
	}
	for _, key := range slices.Sorted(maps.Keys(options)) {
		if _, ok := known[key]; !ok {
			oerr.Unknown = append(oerr.Unknown, key)
		}
	}

	if len(oerr.Missing) == 0 && len(oerr.Unknown) == 0 {
		return nil
	}
	return oerr
}

// MaskOptions returns a copy of options where every non-empty secret value
// is replaced by MaskedValue
func MaskOptions(fields []Field, options Options) Options {
	masked := maps.Clone(options)
	if masked == nil {
		masked = Options{}
	}
	for _, f := range fields {
		if !f.Secret {
			continue
		}
		if v, ok := masked[f.Key]; ok && v != "" {
			masked[f.Key] = MaskedValue
		}
	}
	return masked
}
