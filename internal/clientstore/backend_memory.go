// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package clientstore

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-doc-sync/models"
)

// memoryBackend keeps the whole store in process memory. It backs tests and
// short-lived clients that do not need persistence across restarts.
type memoryBackend struct {
	mu        sync.RWMutex
	documents map[models.DocumentKey]models.Document
	deletions map[models.DocumentKey]models.DeletionRecord
}

// NewMemoryBackend returns an empty in-memory [StorageBackend].
func NewMemoryBackend() StorageBackend {
	return &memoryBackend{
		documents: make(map[models.DocumentKey]models.Document),
		deletions: make(map[models.DocumentKey]models.DeletionRecord),
	}
}

func (b *memoryBackend) Put(_ context.Context, doc models.Document) error {
	b.mu.Lock()
	b.documents[doc.Key()] = doc
	b.mu.Unlock()
	return nil
}

func (b *memoryBackend) Get(_ context.Context, key models.DocumentKey) (models.Document, bool, error) {
	b.mu.RLock()
	doc, ok := b.documents[key]
	b.mu.RUnlock()
	return doc, ok, nil
}

func (b *memoryBackend) Delete(_ context.Context, key models.DocumentKey) error {
	b.mu.Lock()
	delete(b.documents, key)
	b.mu.Unlock()
	return nil
}

func (b *memoryBackend) List(_ context.Context, collection string) ([]models.Document, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	docs := make([]models.Document, 0, len(b.documents))
	for key, doc := range b.documents {
		if collection != "" && key.Collection != collection {
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (b *memoryBackend) PutDeletion(_ context.Context, del models.DeletionRecord) error {
	b.mu.Lock()
	b.deletions[del.Key()] = del
	b.mu.Unlock()
	return nil
}

func (b *memoryBackend) GetDeletion(_ context.Context, key models.DocumentKey) (models.DeletionRecord, bool, error) {
	b.mu.RLock()
	del, ok := b.deletions[key]
	b.mu.RUnlock()
	return del, ok, nil
}

func (b *memoryBackend) Clear(_ context.Context, collection string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for key := range b.documents {
		if key.Collection == collection {
			delete(b.documents, key)
		}
	}
	for key := range b.deletions {
		if key.Collection == collection {
			delete(b.deletions, key)
		}
	}
	return nil
}

func (b *memoryBackend) Stats(_ context.Context) (StorageStats, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var stats StorageStats
	collections := make(map[string]struct{})
	for _, doc := range b.documents {
		stats.TotalSize += doc.Size()
		stats.DocumentCount++
		collections[doc.Collection] = struct{}{}

		modified := doc.Metadata.LastModified
		if stats.OldestModified == nil || modified.Before(*stats.OldestModified) {
			oldest := modified
			stats.OldestModified = &oldest
		}
		if stats.NewestModified == nil || modified.After(*stats.NewestModified) {
			newest := modified
			stats.NewestModified = &newest
		}
	}
	stats.CollectionCount = len(collections)

	return stats, nil
}

func (b *memoryBackend) Close() error {
	return nil
}
