// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	// ErrValidation is the root of every validation failure; all the
	// specific errors below wrap it so callers can match the whole class
	// with a single errors.Is check.
	ErrValidation = errors.New("validation error")

	ErrEmptyCollection   = errors.New("collection name is required")
	ErrInvalidCollection = errors.New("invalid collection name")
	ErrInvalidLimit      = errors.New("limit must be positive")
	ErrLimitTooLarge     = errors.New("limit exceeds maximum page size")
	ErrNegativeOffset    = errors.New("offset cannot be negative")
)
