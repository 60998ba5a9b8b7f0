// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"

	provifv1 "github.com/mindersec/rdm-integrations/pkg/providers/v1"
)

// GetIntegrationOptions returns the options of an integration as a map
func GetIntegrationOptions(ctx context.Context, q Querier, integrationID uuid.UUID) (provifv1.Options, error) {
	rows, err := q.ListIntegrationOptions(ctx, integrationID)
	if err != nil {
		return nil, err
	}

	options := make(provifv1.Options, len(rows))
	for _, row := range rows {
		options[row.Key] = row.Value
	}
	return options, nil
}

// ReplaceIntegrationOptions replaces every option of an integration. It is
// meant to be called inside a transaction.
func ReplaceIntegrationOptions(
	ctx context.Context, q Querier, integrationID uuid.UUID, options provifv1.Options,
) error {
	if err := q.DeleteIntegrationOptions(ctx, integrationID); err != nil {
		return fmt.Errorf("error deleting options: %w", err)
	}

	for _, key := range slices.Sorted(maps.Keys(options)) {
		_, err := q.UpsertIntegrationOption(ctx, UpsertIntegrationOptionParams{
			IntegrationID: integrationID,
			Key:           key,
			Value:         options[key],
		})
		if err != nil {
			return fmt.Errorf("error storing option %s: %w", key, err)
		}
	}

	return q.TouchIntegration(ctx, integrationID)
}
