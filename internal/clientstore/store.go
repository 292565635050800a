// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package clientstore

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/MKhiriev/go-doc-sync/internal/logger"
	"github.com/MKhiriev/go-doc-sync/models"
)

// lockStripes is the number of key-lock buckets. Writes to the same
// (collection, id) always hash to the same stripe, so merges of one document
// are serialised while unrelated documents proceed in parallel.
const lockStripes = 64

// Store is the version-gated document store the sync client merges into.
//
// Every write is guarded by a per-key lock and a version check against both
// the live document and any tombstone: applying the same batch twice, or two
// batches in either order, converges to the same state.
type Store struct {
	backend StorageBackend
	logger  *logger.Logger

	locks [lockStripes]sync.Mutex
}

// NewStore wraps backend with version gating and per-key serialisation.
func NewStore(backend StorageBackend, log *logger.Logger) *Store {
	return &Store{backend: backend, logger: log}
}

func (s *Store) lock(key models.DocumentKey) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(key.Collection))
	h.Write([]byte{0})
	h.Write([]byte(key.ID))
	return &s.locks[h.Sum32()%lockStripes]
}

// PutDocument merges one incoming document. It reports whether the document
// was accepted: an incoming version not strictly newer than the stored
// document, or not newer than a recorded deletion, is discarded.
func (s *Store) PutDocument(ctx context.Context, doc models.Document) (bool, error) {
	mu := s.lock(doc.Key())
	mu.Lock()
	defer mu.Unlock()

	existing, found, err := s.backend.Get(ctx, doc.Key())
	if err != nil {
		return false, fmt.Errorf("load current document: %w", err)
	}
	if found && existing.Metadata.Version >= doc.Metadata.Version {
		s.logger.Debug().
			Str("collection", doc.Collection).
			Str("id", doc.ID).
			Int64("stored_version", existing.Metadata.Version).
			Int64("incoming_version", doc.Metadata.Version).
			Msg("stale document update discarded")
		return false, nil
	}

	tombstone, found, err := s.backend.GetDeletion(ctx, doc.Key())
	if err != nil {
		return false, fmt.Errorf("load tombstone: %w", err)
	}
	if found && tombstone.Version >= doc.Metadata.Version {
		s.logger.Debug().
			Str("collection", doc.Collection).
			Str("id", doc.ID).
			Int64("deleted_version", tombstone.Version).
			Int64("incoming_version", doc.Metadata.Version).
			Msg("update older than recorded deletion discarded")
		return false, nil
	}

	if err = s.backend.Put(ctx, doc); err != nil {
		return false, fmt.Errorf("store document: %w", err)
	}

	return true, nil
}

// ApplyDeletion merges one deletion record. The tombstone is kept so that a
// late-arriving update of an older version can be recognised and discarded.
// It reports whether a live document was actually removed.
func (s *Store) ApplyDeletion(ctx context.Context, del models.DeletionRecord) (bool, error) {
	mu := s.lock(del.Key())
	mu.Lock()
	defer mu.Unlock()

	tombstone, found, err := s.backend.GetDeletion(ctx, del.Key())
	if err != nil {
		return false, fmt.Errorf("load tombstone: %w", err)
	}
	if found && tombstone.Version >= del.Version {
		return false, nil
	}

	if err = s.backend.PutDeletion(ctx, del); err != nil {
		return false, fmt.Errorf("store tombstone: %w", err)
	}

	existing, found, err := s.backend.Get(ctx, del.Key())
	if err != nil {
		return false, fmt.Errorf("load current document: %w", err)
	}
	if !found || existing.Metadata.Version > del.Version {
		// A strictly newer local document survives the stale deletion.
		return false, nil
	}

	if err = s.backend.Delete(ctx, del.Key()); err != nil {
		return false, fmt.Errorf("remove document: %w", err)
	}

	return true, nil
}

// GetDocument returns the document under (collection, id).
func (s *Store) GetDocument(ctx context.Context, collection, id string) (models.Document, error) {
	doc, found, err := s.backend.Get(ctx, models.DocumentKey{Collection: collection, ID: id})
	if err != nil {
		return models.Document{}, err
	}
	if !found {
		return models.Document{}, fmt.Errorf("%w: %s/%s", ErrDocumentNotFound, collection, id)
	}

	return doc, nil
}

// GetDocuments returns every live document of the collection.
func (s *Store) GetDocuments(ctx context.Context, collection string) ([]models.Document, error) {
	return s.backend.List(ctx, collection)
}

// GetDocumentsSince returns the collection's documents modified strictly
// after since.
func (s *Store) GetDocumentsSince(ctx context.Context, collection string, since time.Time) ([]models.Document, error) {
	docs, err := s.backend.List(ctx, collection)
	if err != nil {
		return nil, err
	}

	recent := docs[:0]
	for _, doc := range docs {
		if doc.Metadata.LastModified.After(since) {
			recent = append(recent, doc)
		}
	}

	return recent, nil
}

// ListAll returns every document in the store regardless of collection.
// The retention manager walks this to pick eviction candidates.
func (s *Store) ListAll(ctx context.Context) ([]models.Document, error) {
	return s.backend.List(ctx, "")
}

// Evict removes a document without recording a tombstone. It is a local
// space-reclamation operation, not a deletion: the server copy is untouched
// and the document may come back on the next sync.
func (s *Store) Evict(ctx context.Context, key models.DocumentKey) error {
	mu := s.lock(key)
	mu.Lock()
	defer mu.Unlock()

	return s.backend.Delete(ctx, key)
}

// Clear removes every document and tombstone of the collection.
func (s *Store) Clear(ctx context.Context, collection string) error {
	return s.backend.Clear(ctx, collection)
}

// GetStorageStats reports current local storage usage.
func (s *Store) GetStorageStats(ctx context.Context) (StorageStats, error) {
	return s.backend.Stats(ctx)
}

// Close releases the underlying backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
