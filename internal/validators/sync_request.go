// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks inbound requests before the service layer
// touches them. A malformed request is a terminal error for that call, so
// every failure wraps [ErrValidation] for uniform mapping to HTTP 400.
package validators

import (
	"fmt"
	"regexp"

	"github.com/MKhiriev/go-doc-sync/models"
)

// collectionNamePattern bounds collection names to a safe identifier shape:
// letters, digits, dash, underscore, 1..128 characters.
var collectionNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// SyncRequestValidator validates incoming sync page requests and normalizes
// their paging bounds.
type SyncRequestValidator struct {
	// MaxPageSize caps the limit a caller may request.
	MaxPageSize int
}

// NewSyncRequestValidator constructs a validator with the given page cap.
func NewSyncRequestValidator(maxPageSize int) *SyncRequestValidator {
	return &SyncRequestValidator{MaxPageSize: maxPageSize}
}

// Validate checks the shape of a sync request. A zero limit is allowed (the
// coordinator substitutes its default); a negative limit, an oversized
// limit, a negative offset, or a malformed collection name fails.
func (v *SyncRequestValidator) Validate(req models.SyncRequest) error {
	if req.Collection == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyCollection)
	}
	if !collectionNamePattern.MatchString(req.Collection) {
		return fmt.Errorf("%w: %w: %q", ErrValidation, ErrInvalidCollection, req.Collection)
	}
	if req.Limit < 0 {
		return fmt.Errorf("%w: %w", ErrValidation, ErrInvalidLimit)
	}
	if v.MaxPageSize > 0 && req.Limit > v.MaxPageSize {
		return fmt.Errorf("%w: %w: limit %d > max %d", ErrValidation, ErrLimitTooLarge, req.Limit, v.MaxPageSize)
	}
	if req.Offset < 0 {
		return fmt.Errorf("%w: %w", ErrValidation, ErrNegativeOffset)
	}

	return nil
}
