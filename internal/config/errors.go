// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid after all sources have been merged.
var (
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing API URL).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty server DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAuthConfigs indicates missing token verification settings.
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
	// ErrInvalidRetentionConfigs indicates an unusable retention budget
	// (for example, a target ratio outside (0, 1]).
	ErrInvalidRetentionConfigs = errors.New("invalid retention configuration")
)
