// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package retention

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/go-doc-sync/internal/clientstore"
	"github.com/MKhiriev/go-doc-sync/internal/config"
	"github.com/MKhiriev/go-doc-sync/internal/logger"
	"github.com/MKhiriev/go-doc-sync/models"
)

// DocumentStore is the slice of the client store the manager needs:
// enumeration for candidate selection and tombstone-free removal.
// [clientstore.Store] satisfies it.
type DocumentStore interface {
	ListAll(ctx context.Context) ([]models.Document, error)
	Evict(ctx context.Context, key models.DocumentKey) error
	GetStorageStats(ctx context.Context) (clientstore.StorageStats, error)
}

// Manager runs eviction passes against the local store. Passes are
// single-flight: a call arriving while one is running returns immediately.
type Manager struct {
	store  DocumentStore
	cfg    config.Retention
	logger *logger.Logger

	mu sync.Mutex

	// now is swapped in tests to control expiry.
	now func() time.Time
}

func NewManager(store DocumentStore, cfg config.Retention, log *logger.Logger) *Manager {
	return &Manager{
		store:  store,
		cfg:    cfg,
		logger: log,
		now:    time.Now,
	}
}

// EnsureStorageSpace checks usage against the cap and, when exceeded, evicts
// documents until usage drops to MaxStorageSize*TargetRatio. It returns
// [ErrStorageQuotaExceeded] if the target cannot be reached because only
// unexpired critical documents remain.
func (m *Manager) EnsureStorageSpace(ctx context.Context) error {
	if !m.mu.TryLock() {
		// A pass is already running; its result covers this call.
		return nil
	}
	defer m.mu.Unlock()

	stats, err := m.store.GetStorageStats(ctx)
	if err != nil {
		return fmt.Errorf("read storage stats: %w", err)
	}
	if stats.TotalSize <= m.cfg.MaxStorageSize {
		return nil
	}

	target := int64(float64(m.cfg.MaxStorageSize) * m.cfg.TargetRatio)

	m.logger.Info().
		Int64("total_size", stats.TotalSize).
		Int64("max_size", m.cfg.MaxStorageSize).
		Int64("target_size", target).
		Msg("local storage over budget, starting eviction pass")

	docs, err := m.store.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list documents for eviction: %w", err)
	}

	remaining := stats.TotalSize
	evicted := 0

	for _, doc := range m.candidates(docs) {
		if remaining <= target {
			break
		}
		if err = m.store.Evict(ctx, doc.Key()); err != nil {
			return fmt.Errorf("evict %s/%s: %w", doc.Collection, doc.ID, err)
		}
		remaining -= doc.Size()
		evicted++
	}

	m.logger.Info().
		Int("evicted", evicted).
		Int64("remaining_size", remaining).
		Msg("eviction pass finished")

	if remaining > target {
		return ErrStorageQuotaExceeded
	}

	return nil
}

// candidates orders documents by eviction precedence: expired ones first
// (oldest modification first), then unexpired ones by descending retention
// tier and age. Unexpired critical documents are excluded entirely.
func (m *Manager) candidates(docs []models.Document) []models.Document {
	now := m.now()

	var expired, evictable []models.Document
	for _, doc := range docs {
		switch {
		case doc.Expired(now):
			expired = append(expired, doc)
		case doc.Metadata.Priority != models.PriorityCritical:
			evictable = append(evictable, doc)
		}
	}

	sort.Slice(expired, func(i, j int) bool {
		return expired[i].Metadata.LastModified.Before(expired[j].Metadata.LastModified)
	})
	sort.Slice(evictable, func(i, j int) bool {
		if evictable[i].Metadata.Priority != evictable[j].Metadata.Priority {
			return evictable[i].Metadata.Priority > evictable[j].Metadata.Priority
		}
		return evictable[i].Metadata.LastModified.Before(evictable[j].Metadata.LastModified)
	})

	return append(expired, evictable...)
}
