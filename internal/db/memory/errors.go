// SPDX-FileCopyrightText: Copyright 2024 The Minder Authors
// SPDX-License-Identifier: Apache-2.0

package memory

import "fmt"

// ForeignKeyError is returned when a row references a missing parent, the
// way a foreign key violation fails in Postgres
type ForeignKeyError struct {
	Table  string
	Column string
}

func (e *ForeignKeyError) Error() string {
	return fmt.Sprintf("insert on table %q violates foreign key on %q", e.Table, e.Column)
}

func errForeignKey(table, column string) error {
	return &ForeignKeyError{Table: table, Column: column}
}
