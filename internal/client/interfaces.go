// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"time"

	"github.com/MKhiriev/go-doc-sync/models"
)

// State is the coarse connection state of the sync client.
type State string

const (
	// StateIdle means the local replica is converged and live events are
	// being applied as they arrive.
	StateIdle State = "idle"

	// StateSyncing means a catch-up sync is walking server pages.
	StateSyncing State = "syncing"

	// StateOffline means the last server exchange failed at the transport
	// level; a reconnect with catch-up is pending.
	StateOffline State = "offline"

	// StateError means the last sync failed with a non-transport error
	// that was surfaced to subscribers via OnError.
	StateError State = "error"
)

// Callbacks are the hooks a local subscriber provides. Every field is
// optional; nil hooks are skipped. Hooks are invoked synchronously from the
// client's merge path and must not block.
type Callbacks struct {
	// OnUpdate fires after a created or updated document is accepted by
	// the local store. Stale and duplicate revisions never reach it.
	OnUpdate func(doc models.Document)

	// OnDelete fires after a deletion is applied locally.
	OnDelete func(collection, documentID string)

	// OnError fires when a sync attempt for the subscribed collection
	// fails, including a retention quota overrun after a merge.
	OnError func(err error)
}

// SyncClient orchestrates catch-up syncs, live event merging, and local
// subscriber fan-out over one local document store.
type SyncClient interface {
	// Subscribe registers callbacks for a collection and returns an
	// unsubscribe function. Multiple independent subscribers per
	// collection share one server-side subscription; fan-out is local.
	// The unsubscribe function is idempotent.
	Subscribe(collection string, cb Callbacks) func()

	// SyncCollection walks server pages for the collection, merging each
	// page into the local store before requesting the next. A nil since
	// fetches the full permitted snapshot. Cancellation is honoured
	// between pages, never mid-merge.
	SyncCollection(ctx context.Context, collection string, since *time.Time) error

	// SyncActiveCollections runs an incremental SyncCollection for every
	// collection with at least one subscriber, from that collection's
	// last successful sync point.
	SyncActiveCollections(ctx context.Context) error

	// State reports the current connection state.
	State() State

	// Run pumps the real-time transport: it forwards live events into the
	// merge path and runs a catch-up on every (re)connect before resuming
	// live handling. Blocks until ctx is cancelled.
	Run(ctx context.Context) error
}
