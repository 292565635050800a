// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-doc-sync/internal/logger"
)

// blockingWorker counts starts and blocks until its context is cancelled.
type blockingWorker struct {
	started atomic.Int32
}

func (w *blockingWorker) Run(ctx context.Context) {
	w.started.Add(1)
	<-ctx.Done()
}

type countingSyncer struct {
	calls atomic.Int32
	err   error
}

func (s *countingSyncer) SyncActiveCollections(context.Context) error {
	s.calls.Add(1)
	return s.err
}

type countingEnsurer struct {
	calls atomic.Int32
}

func (e *countingEnsurer) EnsureStorageSpace(context.Context) error {
	e.calls.Add(1)
	return nil
}

func TestWorkers_Run_StartsAllAndWaitsForShutdown(t *testing.T) {
	first := &blockingWorker{}
	second := &blockingWorker{}
	aggregate := NewWorkers(first, second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		aggregate.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return first.started.Load() == 1 && second.started.Load() == 1
	}, 5*time.Second, 10*time.Millisecond)

	select {
	case <-done:
		t.Fatal("Run returned while workers were still running")
	case <-time.After(50 * time.Millisecond):
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestWorkers_Run_EmptyAggregateReturns(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	NewWorkers().Run(ctx)
}

func TestPeriodicSync_TicksUntilCancelled(t *testing.T) {
	syncer := &countingSyncer{}
	worker := NewPeriodicSync(syncer, 10*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return syncer.calls.Load() >= 2 },
		5*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop after cancellation")
	}
}

func TestPeriodicSync_SyncErrorDoesNotStopTheWorker(t *testing.T) {
	syncer := &countingSyncer{err: assert.AnError}
	worker := NewPeriodicSync(syncer, 10*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go worker.Run(ctx)

	require.Eventually(t, func() bool { return syncer.calls.Load() >= 3 },
		5*time.Second, 5*time.Millisecond)
}

func TestRetentionSweep_TicksUntilCancelled(t *testing.T) {
	ensurer := &countingEnsurer{}
	worker := NewRetentionSweep(ensurer, 10*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return ensurer.calls.Load() >= 2 },
		5*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop after cancellation")
	}
}
