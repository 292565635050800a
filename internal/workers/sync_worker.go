// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-doc-sync/internal/config"
	"github.com/MKhiriev/go-doc-sync/internal/logger"
)

// periodicSync re-runs an incremental catch-up sync of every subscribed
// collection on a fixed cadence. It backstops the real-time channel: events
// dropped by a full subscriber buffer are picked up on the next tick.
type periodicSync struct {
	syncer   CollectionSyncer
	interval time.Duration
	logger   *logger.Logger
}

// NewPeriodicSync builds the catch-up sync worker. A non-positive interval
// falls back to the default sync interval.
func NewPeriodicSync(syncer CollectionSyncer, interval time.Duration, log *logger.Logger) Worker {
	if interval <= 0 {
		interval = config.DefaultSyncInterval
	}
	return &periodicSync{syncer: syncer, interval: interval, logger: log}
}

// Run implements [Worker].
func (w *periodicSync) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.syncer.SyncActiveCollections(ctx); err != nil {
				w.logger.Warn().Err(err).
					Str("func", "periodicSync.Run").
					Msg("periodic sync failed")
			}
		}
	}
}
