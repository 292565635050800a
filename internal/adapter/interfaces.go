// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client's transport layer towards the sync
// server.
//
// [ServerAdapter] covers the request/response side (paginated sync pages
// over HTTP), [EventTransport] the real-time side (sync events over a
// websocket with automatic reconnect). Error values defined in errors.go are
// mapped from HTTP status codes by mapHTTPError so that callers can use
// [errors.Is] for transport-agnostic error handling (e.g. [ErrNotFound] for
// 404, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-doc-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// ServerAdapter is the request/response channel to the sync server.
// Implementations are responsible for serialisation, authentication header
// management, and mapping transport-level errors to this package's
// sentinels.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to all subsequent
	// requests.
	SetToken(token string)

	// Token returns the bearer token currently held by the adapter, or an
	// empty string if none has been set.
	Token() string

	// FetchSyncPage requests one page of documents and deletions for
	// req.Collection. Returns [ErrNotFound] (wrapped) for an unknown
	// collection and [ErrUnauthorized] for a rejected token.
	FetchSyncPage(ctx context.Context, req models.SyncRequest) (models.SyncResponse, error)
}

// EventTransport is the real-time channel from the sync server. Run owns the
// connection lifecycle: it dials, resubscribes, forwards events, and redials
// with backoff on loss until the context is cancelled.
type EventTransport interface {
	// Run blocks, maintaining the connection until ctx is cancelled.
	Run(ctx context.Context)

	// Subscribe registers interest in a collection's events. The
	// registration survives reconnects: it is replayed on every new
	// connection.
	Subscribe(collection string)

	// Unsubscribe removes the registration.
	Unsubscribe(collection string)

	// Events delivers server-pushed events in connection order.
	Events() <-chan models.SyncEvent

	// Reconnected signals each successfully re-established connection
	// (including the first). Consumers run their catch-up sync on it.
	Reconnected() <-chan struct{}
}
