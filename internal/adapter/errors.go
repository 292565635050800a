// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

// Sentinel errors mapped from server responses and transport failures.
// Callers match them with [errors.Is].
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrInternalServerError = errors.New("internal server error")

	// ErrTransport marks network-level failures (connection refused, timeout,
	// broken websocket). The sync client treats it as a transition to the
	// offline state rather than a terminal failure.
	ErrTransport = errors.New("transport error")
)
