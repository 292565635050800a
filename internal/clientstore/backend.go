// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package clientstore

import (
	"context"
	"time"

	"github.com/MKhiriev/go-doc-sync/models"
)

//go:generate mockgen -source=backend.go -destination=../mock/clientstore_mock.go -package=mock

// StorageStats is a point-in-time usage snapshot of the backend.
type StorageStats struct {
	// TotalSize is the sum of document payload sizes in bytes. Tombstones
	// carry no payload and do not count.
	TotalSize int64 `json:"total_size"`

	// DocumentCount is the number of live (non-tombstone) documents.
	DocumentCount int `json:"document_count"`

	// CollectionCount is the number of distinct collections holding at
	// least one live document.
	CollectionCount int `json:"collection_count"`

	// OldestModified and NewestModified bound the lastModified range of
	// live documents. Both are nil for an empty store.
	OldestModified *time.Time `json:"oldest_modified,omitempty"`
	NewestModified *time.Time `json:"newest_modified,omitempty"`
}

// StorageBackend is the raw persistence layer under the document store. It
// performs no version gating and no locking beyond its own internal
// consistency; [Store] layers both on top.
type StorageBackend interface {
	// Put upserts the document under its (collection, id) key.
	Put(ctx context.Context, doc models.Document) error

	// Get returns the document under key. The boolean reports presence.
	Get(ctx context.Context, key models.DocumentKey) (models.Document, bool, error)

	// Delete removes the document under key. Deleting an absent key is a
	// no-op.
	Delete(ctx context.Context, key models.DocumentKey) error

	// List returns the documents of one collection; an empty collection
	// name selects every document in the store.
	List(ctx context.Context, collection string) ([]models.Document, error)

	// PutDeletion upserts a tombstone under the record's key.
	PutDeletion(ctx context.Context, del models.DeletionRecord) error

	// GetDeletion returns the tombstone under key, if any.
	GetDeletion(ctx context.Context, key models.DocumentKey) (models.DeletionRecord, bool, error)

	// Clear removes every document and tombstone of the collection.
	Clear(ctx context.Context, collection string) error

	// Stats reports current storage usage.
	Stats(ctx context.Context) (StorageStats, error)

	// Close releases the backend's resources.
	Close() error
}
