// Package workers runs the client's background jobs: the periodic catch-up
// sync and the timer-driven retention sweep. Each job is a [Worker] that
// blocks until its context is cancelled; the [Workers] aggregate runs them
// together and waits for all of them to finish.
package workers

import "context"

// Worker is one background job. Run blocks, doing periodic work, until ctx
// is cancelled.
type Worker interface {
	Run(ctx context.Context)
}

// CollectionSyncer is the slice of the sync client the periodic sync worker
// needs.
type CollectionSyncer interface {
	SyncActiveCollections(ctx context.Context) error
}

// SpaceEnsurer is the slice of the retention manager the sweep worker needs.
type SpaceEnsurer interface {
	EnsureStorageSpace(ctx context.Context) error
}
