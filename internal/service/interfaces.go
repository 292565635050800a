// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the server-side business logic of the sync
// engine: the Sync Coordinator computing permission-filtered incremental
// diffs and the Real-time Dispatcher pushing filtered change events to
// connected subscribers.
package service

import (
	"context"

	"github.com/MKhiriev/go-doc-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SyncCoordinator serves paginated incremental sync requests. The call is
// read-only and idempotent: repeating a request returns the same page.
type SyncCoordinator interface {
	// GetSyncResponse returns one permission-filtered page of documents and
	// deletion tombstones for the requested collection. It fails with
	// store.ErrCollectionNotFound for a collection unknown to the backing
	// store and with validators.ErrValidation for a malformed request.
	GetSyncResponse(ctx context.Context, subject models.Subject, req models.SyncRequest) (models.SyncResponse, error)
}

// Subscriber is one connected real-time event consumer. Implementations live
// in the transport layer (websocket connections) and in tests.
type Subscriber interface {
	// ID uniquely identifies the connection (not the user: one user may
	// hold several connections).
	ID() string

	// Subject is the authenticated identity delivery is filtered against.
	Subject() models.Subject

	// Deliver hands one event to the subscriber. Implementations must not
	// block the caller: enqueue and return. Events enqueued by successive
	// Deliver calls are seen by the consumer in call order, which is what
	// gives per-document ordering downstream.
	Deliver(event models.SyncEvent) error
}

// Dispatcher maintains the per-collection subscriber registry and pushes
// permission-filtered change events. Subscribe and Unsubscribe are
// idempotent; emits never fail — a delivery error to one subscriber is
// logged and the fan-out continues.
type Dispatcher interface {
	Subscribe(ctx context.Context, collection string, sub Subscriber) error
	Unsubscribe(collection string, subscriberID string)
	UnsubscribeAll(subscriberID string)

	EmitDocumentCreated(ctx context.Context, doc models.Document)
	EmitDocumentUpdated(ctx context.Context, doc models.Document)
	EmitDocumentDeleted(ctx context.Context, collection, documentID, deletedBy string)
	EmitCollectionCleared(ctx context.Context, collection string)
}

// GrantSource is the narrow view of the permission store the engine needs:
// grants for filtering and groups for subject resolution. The server store
// package satisfies it with its PostgreSQL repository.
type GrantSource interface {
	GetUserPermissions(ctx context.Context, userID string) ([]models.Permission, error)
	GetUserGroups(ctx context.Context, userID string) ([]string, error)
}
