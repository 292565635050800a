// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package models defines the shared data and wire types of go-doc-sync:
// synchronized documents and their metadata, deletion tombstones, permission
// grants, sync request/response envelopes, and real-time event frames.
//
// The same types are used by the server (Sync Coordinator, Real-time
// Dispatcher) and the client (Local Document Store, Sync Client), so the JSON
// struct tags here are the wire contract.
package models

import (
	"encoding/json"
	"time"
)

// RetentionPriority is the eviction tier of a document in the client's local
// store. Lower ordinal means the document is kept longer under storage
// pressure. The value is immutable per document and set at write time.
type RetentionPriority int

const (
	// PriorityCritical documents are never evicted while unexpired.
	PriorityCritical RetentionPriority = 1

	// PriorityHigh documents are evicted last among evictable tiers.
	PriorityHigh RetentionPriority = 2

	// PriorityMedium is the default tier for documents written without an
	// explicit priority.
	PriorityMedium RetentionPriority = 3

	// PriorityLow documents are evicted before Medium and High.
	PriorityLow RetentionPriority = 4

	// PriorityTemporary documents are the first candidates for eviction.
	PriorityTemporary RetentionPriority = 5
)

// Valid reports whether p is one of the defined retention tiers.
func (p RetentionPriority) Valid() bool {
	return p >= PriorityCritical && p <= PriorityTemporary
}

// String implements fmt.Stringer for log output.
func (p RetentionPriority) String() string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	case PriorityTemporary:
		return "temporary"
	default:
		return "unknown"
	}
}

// Metadata carries the sync-relevant state of a Document. Version strictly
// increases on every mutation of the same (collection, id), including the
// mutation that marks deletion; the client resolves every replay and
// out-of-order delivery purely by comparing versions.
type Metadata struct {
	// Version is the monotonically increasing revision of the document.
	Version int64 `json:"version"`

	// LastModified is the server-side time of the last mutation.
	LastModified time.Time `json:"last_modified"`

	// LastSynced is set by the client when the document is merged locally.
	LastSynced *time.Time `json:"last_synced,omitempty"`

	// ExpiresAt, when set, marks the document expendable regardless of
	// priority once the deadline passes.
	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	// Priority is the retention tier used by the eviction pass.
	Priority RetentionPriority `json:"retention_priority"`

	// DeletedAt and DeletedBy are populated on the final mutation of a
	// document's life; active documents leave them zero.
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	DeletedBy string     `json:"deleted_by,omitempty"`
}

// DocumentKey is the composite key identifying one document replica.
type DocumentKey struct {
	Collection string
	ID         string
}

// Document is one synchronized record. Data is an opaque payload owned by the
// business layer; the engine never inspects it beyond measuring its size.
type Document struct {
	ID         string          `json:"id"`
	Collection string          `json:"collection"`
	Data       json.RawMessage `json:"data"`
	Metadata   Metadata        `json:"metadata"`
}

// Key returns the composite (collection, id) key of the document.
func (d Document) Key() DocumentKey {
	return DocumentKey{Collection: d.Collection, ID: d.ID}
}

// Size returns the payload size in bytes used for storage accounting.
func (d Document) Size() int64 {
	return int64(len(d.Data))
}

// Expired reports whether the document's ExpiresAt deadline has passed at
// the given instant. Documents without a deadline never expire.
func (d Document) Expired(now time.Time) bool {
	return d.Metadata.ExpiresAt != nil && d.Metadata.ExpiresAt.Before(now)
}
