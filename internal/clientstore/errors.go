// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package clientstore

import "errors"

var (
	// ErrDocumentNotFound is returned by lookups for a key the store does
	// not hold (including keys known only through a tombstone).
	ErrDocumentNotFound = errors.New("document not found")

	// ErrOpeningDatabase is returned when the SQLite backend cannot open or
	// initialise its database file.
	ErrOpeningDatabase = errors.New("error opening local database")

	ErrBuildingSQLQuery = errors.New("error building SQL query")
	ErrExecutingQuery   = errors.New("error executing SQL query")
	ErrScanningRows     = errors.New("error scanning rows")
)
