// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

// Package imports drives the form that imports a file from a provider
// repository into a project
package imports

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"path"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mindersec/rdm-integrations/internal/session"
)

// DefaultRef is the initial value of the ref field
const DefaultRef = "main"

// Fetcher fetches a file from a provider repository
type Fetcher interface {
	FetchFile(ctx context.Context, repo, path, ref string) ([]byte, error)
}

// Stager hands a fetched file to the import pipeline. It returns the name the
// file was staged under.
type Stager interface {
	Stage(ctx context.Context, name string, data []byte) (string, error)
}

// Routes are the pages the form redirects to
type Routes interface {
	ProjectList() string
	Project(projectID uuid.UUID) string
	// CreateImport continues an import into a new project
	CreateImport() string
	// UpdateImport continues an import into an existing project
	UpdateImport(projectID uuid.UUID) string
}

// Form holds the values of the import form
type Form struct {
	Repo string `json:"repo" form:"repo" validate:"required"`
	Path string `json:"path" form:"path" validate:"required"`
	Ref  string `json:"ref" form:"ref" validate:"required"`
}

// FieldErrors maps a form field to what is wrong with it
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	msgs := make([]string, 0, len(fe))
	for _, field := range slices.Sorted(maps.Keys(fe)) {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, fe[field]))
	}
	return "invalid form: " + strings.Join(msgs, ", ")
}

// Result is what the host shows next: the form, or a redirect
type Result struct {
	Form        Form        `json:"form"`
	Errors      FieldErrors `json:"errors,omitempty"`
	SourceTitle string      `json:"source_title"`
	// Redirect is set when the host must redirect instead of showing the form
	Redirect string `json:"redirect,omitempty"`
}

// SubmitParams are the parameters of Submit
type SubmitParams struct {
	// ProjectID is the project being imported into, if any
	ProjectID uuid.NullUUID
	Cancel    bool
	Form      Form
	// Session is updated with the source title and the staged file name
	Session session.Values
}

// Driver runs the import form for one user
type Driver struct {
	sourceTitle string
	fetcher     Fetcher
	stager      Stager
	routes      Routes
	validate    *validator.Validate
}

// NewDriver creates a driver. sourceTitle is shown above the form, e.g. the
// base URL of the provider.
func NewDriver(sourceTitle string, fetcher Fetcher, stager Stager, routes Routes) *Driver {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("form")
	})
	return &Driver{
		sourceTitle: sourceTitle,
		fetcher:     fetcher,
		stager:      stager,
		routes:      routes,
		validate:    validate,
	}
}

// Render returns the empty form
func (d *Driver) Render() *Result {
	return &Result{
		Form:        Form{Ref: DefaultRef},
		SourceTitle: d.sourceTitle,
	}
}

// Submit processes a submission of the form. A cancelled submission
// redirects without reaching the provider. An invalid one returns the form
// with the entered values and the field errors. Otherwise the file is
// fetched and staged, and the result redirects to the import continuation.
// Fetch and staging failures are returned as errors.
func (d *Driver) Submit(ctx context.Context, params SubmitParams) (*Result, error) {
	if params.Cancel {
		if params.ProjectID.Valid {
			return &Result{Redirect: d.routes.Project(params.ProjectID.UUID)}, nil
		}
		return &Result{Redirect: d.routes.ProjectList()}, nil
	}

	if errs := d.validateForm(params.Form); errs != nil {
		return &Result{
			Form:        params.Form,
			Errors:      errs,
			SourceTitle: d.sourceTitle,
		}, nil
	}

	if params.Session != nil {
		params.Session[session.KeyImportSourceTitle] = params.Form.Path
	}

	data, err := d.fetcher.FetchFile(ctx, params.Form.Repo, params.Form.Path, params.Form.Ref)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %w", params.Form.Path, err)
	}

	name, err := d.stager.Stage(ctx, path.Base(params.Form.Path), data)
	if err != nil {
		return nil, fmt.Errorf("error staging %s: %w", params.Form.Path, err)
	}
	if params.Session != nil {
		params.Session[session.KeyImportFileName] = name
	}

	zerolog.Ctx(ctx).Info().
		Str("repo", params.Form.Repo).
		Str("path", params.Form.Path).
		Str("ref", params.Form.Ref).
		Str("staged", name).
		Int("size", len(data)).
		Msg("file staged for import")

	if params.ProjectID.Valid {
		return &Result{Redirect: d.routes.UpdateImport(params.ProjectID.UUID)}, nil
	}
	return &Result{Redirect: d.routes.CreateImport()}, nil
}

func (d *Driver) validateForm(form Form) FieldErrors {
	trimmed := Form{
		Repo: strings.TrimSpace(form.Repo),
		Path: strings.TrimSpace(form.Path),
		Ref:  strings.TrimSpace(form.Ref),
	}

	err := d.validate.Struct(trimmed)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"": err.Error()}
	}

	errs := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			errs[fe.Field()] = "This field is required."
		default:
			errs[fe.Field()] = fmt.Sprintf("failed on %s", fe.Tag())
		}
	}
	return errs
}
