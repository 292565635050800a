// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-doc-sync/internal/config"
	"github.com/MKhiriev/go-doc-sync/internal/logger"
)

// retentionSweep triggers the eviction pass on a timer, so the replica is
// brought back under budget even when no merges are happening.
type retentionSweep struct {
	manager  SpaceEnsurer
	interval time.Duration
	logger   *logger.Logger
}

// NewRetentionSweep builds the timer-driven retention worker. A non-positive
// interval falls back to the default sweep interval.
func NewRetentionSweep(manager SpaceEnsurer, interval time.Duration, log *logger.Logger) Worker {
	if interval <= 0 {
		interval = config.DefaultSweepInterval
	}
	return &retentionSweep{manager: manager, interval: interval, logger: log}
}

// Run implements [Worker].
func (w *retentionSweep) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.manager.EnsureStorageSpace(ctx); err != nil {
				w.logger.Warn().Err(err).
					Str("func", "retentionSweep.Run").
					Msg("retention sweep could not reach target usage")
			}
		}
	}
}
