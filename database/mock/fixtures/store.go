// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

// Package fixtures contains code for creating Store fixtures and is used in
// various parts of the code. For testing use only.
//
//nolint:all
package fixtures

import (
	"database/sql"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	mockdb "github.com/mindersec/rdm-integrations/database/mock"
	"github.com/mindersec/rdm-integrations/internal/db"
)

type (
	MockStoreBuilder = func(*gomock.Controller) *mockdb.MockStore
)

func NewMockStore(
	funcs ...func(*mockdb.MockStore),
) func(*gomock.Controller) *mockdb.MockStore {
	return func(ctrl *gomock.Controller) *mockdb.MockStore {
		mockStore := mockdb.NewMockStore(ctrl)

		for _, fn := range funcs {
			fn(mockStore)
		}

		return mockStore
	}
}

func WithTransaction() func(*mockdb.MockStore) {
	return func(mockStore *mockdb.MockStore) {
		mockStore.EXPECT().
			WithTransactionErr(gomock.Any()).
			DoAndReturn(func(fn func(db.Querier) error) error {
				return fn(mockStore)
			})
	}
}

func WithSuccessfulGetIntegrationByID(
	integration db.Integration,
) func(*mockdb.MockStore) {
	return func(mockStore *mockdb.MockStore) {
		mockStore.EXPECT().
			GetIntegrationByID(gomock.Any(), integration.ID).
			Return(integration, nil)
	}
}

func WithFailedGetIntegrationByID(
	err error,
) func(*mockdb.MockStore) {
	return func(mockStore *mockdb.MockStore) {
		mockStore.EXPECT().
			GetIntegrationByID(gomock.Any(), gomock.Any()).
			Return(db.Integration{}, err)
	}
}

func WithSuccessfulListIntegrationOptions(
	integrationID uuid.UUID,
	options map[string]string,
) func(*mockdb.MockStore) {
	rows := make([]db.IntegrationOption, 0, len(options))
	for k, v := range options {
		rows = append(rows, db.IntegrationOption{IntegrationID: integrationID, Key: k, Value: v})
	}
	return func(mockStore *mockdb.MockStore) {
		mockStore.EXPECT().
			ListIntegrationOptions(gomock.Any(), integrationID).
			Return(rows, nil)
	}
}

func WithSuccessfulGetIssueResourceByURL(
	resource db.IssueResource,
) func(*mockdb.MockStore) {
	return func(mockStore *mockdb.MockStore) {
		mockStore.EXPECT().
			GetIssueResourceByURL(gomock.Any(), db.GetIssueResourceByURLParams{
				IntegrationID: resource.IntegrationID,
				Url:           resource.Url,
			}).
			Return(resource, nil)
	}
}

func WithNoIssueResourceByURL() func(*mockdb.MockStore) {
	return func(mockStore *mockdb.MockStore) {
		mockStore.EXPECT().
			GetIssueResourceByURL(gomock.Any(), gomock.Any()).
			Return(db.IssueResource{}, sql.ErrNoRows)
	}
}

func WithSuccessfulUpdateIssueStatus(
	issueID uuid.UUID,
	status db.IssueStatus,
) func(*mockdb.MockStore) {
	return func(mockStore *mockdb.MockStore) {
		mockStore.EXPECT().
			UpdateIssueStatus(gomock.Any(), db.UpdateIssueStatusParams{ID: issueID, Status: status}).
			Return(db.Issue{ID: issueID, Status: status}, nil)
	}
}

func WithFailedUpdateIssueStatus(
	err error,
) func(*mockdb.MockStore) {
	return func(mockStore *mockdb.MockStore) {
		mockStore.EXPECT().
			UpdateIssueStatus(gomock.Any(), gomock.Any()).
			Return(db.Issue{}, err)
	}
}
