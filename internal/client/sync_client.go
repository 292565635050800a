// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/go-doc-sync/internal/adapter"
	"github.com/MKhiriev/go-doc-sync/internal/clientstore"
	"github.com/MKhiriev/go-doc-sync/internal/config"
	"github.com/MKhiriev/go-doc-sync/internal/logger"
	"github.com/MKhiriev/go-doc-sync/internal/retention"
	"github.com/MKhiriev/go-doc-sync/models"
)

// syncClient is the concrete implementation of [SyncClient].
//
// Live events and catch-up pages converge through the same two store calls,
// PutDocument and ApplyDeletion, so conflict resolution does not depend on
// which channel delivered a revision. Fan-out happens only for revisions the
// store accepted.
type syncClient struct {
	server    adapter.ServerAdapter
	transport adapter.EventTransport
	store     *clientstore.Store
	retention *retention.Manager
	pageSize  int
	logger    *logger.Logger

	mu       sync.Mutex
	state    State
	nextID   int64
	subs     map[string]map[int64]Callbacks
	lastSync map[string]time.Time

	now func() time.Time
}

// NewSyncClient wires a [SyncClient] over the given transports, store and
// retention manager. pageSize bounds every catch-up page; zero or negative
// falls back to the default sync page size.
func NewSyncClient(
	server adapter.ServerAdapter,
	transport adapter.EventTransport,
	store *clientstore.Store,
	ret *retention.Manager,
	pageSize int,
	log *logger.Logger,
) SyncClient {
	if pageSize <= 0 {
		pageSize = config.DefaultSyncPageSize
	}

	return &syncClient{
		server:    server,
		transport: transport,
		store:     store,
		retention: ret,
		pageSize:  pageSize,
		logger:    log,
		state:     StateIdle,
		subs:      make(map[string]map[int64]Callbacks),
		lastSync:  make(map[string]time.Time),
		now:       time.Now,
	}
}

// Subscribe implements [SyncClient]. The first subscriber of a collection
// opens the server-side subscription; the last one leaving closes it and
// forgets the collection's sync point.
func (c *syncClient) Subscribe(collection string, cb Callbacks) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	bucket, ok := c.subs[collection]
	if !ok {
		bucket = make(map[int64]Callbacks)
		c.subs[collection] = bucket
	}
	bucket[id] = cb
	first := len(bucket) == 1
	c.mu.Unlock()

	if first {
		c.transport.Subscribe(collection)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs[collection], id)
			last := len(c.subs[collection]) == 0
			if last {
				delete(c.subs, collection)
				delete(c.lastSync, collection)
			}
			c.mu.Unlock()

			if last {
				c.transport.Unsubscribe(collection)
			}
		})
	}
}

// SyncCollection implements [SyncClient]. Pages are merged as they arrive,
// bounding peak memory to one page, and the retention manager runs after
// every merged page. The sync point is advanced only when the whole walk
// succeeds, so a failed sync is retried from the previous point.
func (c *syncClient) SyncCollection(ctx context.Context, collection string, since *time.Time) error {
	c.setState(StateSyncing)
	started := c.now()

	for offset := 0; ; offset += c.pageSize {
		if err := ctx.Err(); err != nil {
			c.setState(StateIdle)
			return err
		}

		page, err := c.server.FetchSyncPage(ctx, models.SyncRequest{
			Collection: collection,
			Since:      since,
			Limit:      c.pageSize,
			Offset:     offset,
		})
		if err != nil {
			if errors.Is(err, adapter.ErrTransport) {
				c.setState(StateOffline)
			} else {
				c.setState(StateError)
			}
			c.notifyError(collection, err)
			return fmt.Errorf("fetch sync page: %w", err)
		}

		if err = c.mergePage(ctx, page); err != nil {
			c.setState(StateError)
			c.notifyError(collection, err)
			return err
		}

		if err = c.retention.EnsureStorageSpace(ctx); err != nil {
			// the replica is over budget but the merged data is intact:
			// surface the condition and keep syncing
			c.notifyError(collection, err)
		}

		if !page.HasMore {
			break
		}
	}

	c.mu.Lock()
	c.lastSync[collection] = started
	c.mu.Unlock()
	c.setState(StateIdle)

	c.logger.Debug().
		Str("func", "syncClient.SyncCollection").
		Str("collection", collection).
		Msg("collection synchronized")

	return nil
}

// SyncActiveCollections implements [SyncClient]. Collections are walked in
// a stable order; the first failure aborts the pass.
func (c *syncClient) SyncActiveCollections(ctx context.Context) error {
	for _, collection := range c.activeCollections() {
		since := c.syncPoint(collection)
		if err := c.SyncCollection(ctx, collection, since); err != nil {
			return fmt.Errorf("sync collection %s: %w", collection, err)
		}
	}
	return nil
}

// State implements [SyncClient].
func (c *syncClient) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Run implements [SyncClient]. Every Reconnected signal, including the one
// for the first connection, triggers a catch-up of all active collections
// before the next live event is applied, so no change is missed across a
// connection gap.
func (c *syncClient) Run(ctx context.Context) error {
	go c.transport.Run(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.transport.Reconnected():
			c.catchUp(ctx)
		case event := <-c.transport.Events():
			// a pending reconnect signal means this event already belongs
			// to the new connection; close the gap before applying it
			select {
			case <-c.transport.Reconnected():
				c.catchUp(ctx)
			default:
			}
			c.handleEvent(ctx, event)
		}
	}
}

func (c *syncClient) catchUp(ctx context.Context) {
	if err := c.SyncActiveCollections(ctx); err != nil {
		c.logger.Warn().Err(err).
			Str("func", "syncClient.catchUp").
			Msg("catch-up sync failed")
	}
}

func (c *syncClient) handleEvent(ctx context.Context, event models.SyncEvent) {
	switch event.Type {
	case models.EventDocumentCreated, models.EventDocumentUpdated:
		if event.Document == nil {
			return
		}
		if err := c.mergeDocument(ctx, *event.Document); err != nil {
			c.notifyError(event.Collection, err)
		}

	case models.EventDocumentDeleted:
		del := models.DeletionRecord{
			ID:         event.DocumentID,
			Collection: event.Collection,
			DeletedAt:  event.Timestamp,
		}
		// live deleted events carry no version; adopting the stored one
		// tombstones exactly the revision we hold without blocking a
		// later recreate. Catch-up delivers the authoritative record.
		if doc, err := c.store.GetDocument(ctx, event.Collection, event.DocumentID); err == nil {
			del.Version = doc.Metadata.Version
		}
		if err := c.mergeDeletion(ctx, del); err != nil {
			c.notifyError(event.Collection, err)
		}

	case models.EventCollectionCleared:
		if err := c.store.Clear(ctx, event.Collection); err != nil {
			c.notifyError(event.Collection, err)
			return
		}
		c.logger.Info().
			Str("func", "syncClient.handleEvent").
			Str("collection", event.Collection).
			Msg("collection cleared by server")

	case models.EventSyncError:
		c.notifyError(event.Collection, ErrServerSync)
	}
}

func (c *syncClient) mergePage(ctx context.Context, page models.SyncResponse) error {
	for _, doc := range page.Documents {
		if err := c.mergeDocument(ctx, doc); err != nil {
			return err
		}
	}
	for _, del := range page.Deletions {
		if err := c.mergeDeletion(ctx, del); err != nil {
			return err
		}
	}
	return nil
}

func (c *syncClient) mergeDocument(ctx context.Context, doc models.Document) error {
	syncedAt := c.now()
	doc.Metadata.LastSynced = &syncedAt

	accepted, err := c.store.PutDocument(ctx, doc)
	if err != nil {
		return fmt.Errorf("merge document %s/%s: %w", doc.Collection, doc.ID, err)
	}
	if accepted {
		c.fanOutUpdate(doc)
	}
	return nil
}

func (c *syncClient) mergeDeletion(ctx context.Context, del models.DeletionRecord) error {
	applied, err := c.store.ApplyDeletion(ctx, del)
	if err != nil {
		return fmt.Errorf("merge deletion %s/%s: %w", del.Collection, del.ID, err)
	}
	if applied {
		c.fanOutDelete(del.Collection, del.ID)
	}
	return nil
}

func (c *syncClient) fanOutUpdate(doc models.Document) {
	for _, cb := range c.callbacks(doc.Collection) {
		if cb.OnUpdate != nil {
			cb.OnUpdate(doc)
		}
	}
}

func (c *syncClient) fanOutDelete(collection, documentID string) {
	for _, cb := range c.callbacks(collection) {
		if cb.OnDelete != nil {
			cb.OnDelete(collection, documentID)
		}
	}
}

func (c *syncClient) notifyError(collection string, err error) {
	for _, cb := range c.callbacks(collection) {
		if cb.OnError != nil {
			cb.OnError(err)
		}
	}
}

// callbacks snapshots the collection's subscribers so hooks run outside the
// client lock.
func (c *syncClient) callbacks(collection string) []Callbacks {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := make([]Callbacks, 0, len(c.subs[collection]))
	for _, cb := range c.subs[collection] {
		snapshot = append(snapshot, cb)
	}
	return snapshot
}

func (c *syncClient) activeCollections() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	collections := make([]string, 0, len(c.subs))
	for collection := range c.subs {
		collections = append(collections, collection)
	}
	sort.Strings(collections)
	return collections
}

func (c *syncClient) syncPoint(collection string) *time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	point, ok := c.lastSync[collection]
	if !ok {
		return nil
	}
	return &point
}

func (c *syncClient) setState(state State) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
}
