package client_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-doc-sync/internal/adapter"
	"github.com/MKhiriev/go-doc-sync/internal/client"
	"github.com/MKhiriev/go-doc-sync/internal/clientstore"
	"github.com/MKhiriev/go-doc-sync/internal/config"
	"github.com/MKhiriev/go-doc-sync/internal/logger"
	"github.com/MKhiriev/go-doc-sync/internal/mock"
	"github.com/MKhiriev/go-doc-sync/internal/retention"
	"github.com/MKhiriev/go-doc-sync/models"
)

func testDocument(collection, id string, version int64, modified time.Time) models.Document {
	return models.Document{
		ID:         id,
		Collection: collection,
		Data:       json.RawMessage(`{"body":"` + id + `"}`),
		Metadata: models.Metadata{
			Version:      version,
			LastModified: modified,
			Priority:     models.PriorityMedium,
		},
	}
}

// recorder collects fan-out invocations for assertions.
type recorder struct {
	mu      sync.Mutex
	updates []models.Document
	deletes []string
	errors  []error
}

func (r *recorder) callbacks() client.Callbacks {
	return client.Callbacks{
		OnUpdate: func(doc models.Document) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.updates = append(r.updates, doc)
		},
		OnDelete: func(collection, documentID string) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.deletes = append(r.deletes, collection+"/"+documentID)
		},
		OnError: func(err error) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.errors = append(r.errors, err)
		},
	}
}

func (r *recorder) updateCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.updates)
}

type clientFixture struct {
	client    client.SyncClient
	server    *mock.MockServerAdapter
	transport *mock.MockEventTransport
	store     *clientstore.Store
}

func newClientFixture(t *testing.T, pageSize int, retentionCfg config.Retention) *clientFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	serverAdapter := mock.NewMockServerAdapter(ctrl)
	transport := mock.NewMockEventTransport(ctrl)
	store := clientstore.NewStore(clientstore.NewMemoryBackend(), logger.Nop())
	manager := retention.NewManager(store, retentionCfg, logger.Nop())

	return &clientFixture{
		client:    client.NewSyncClient(serverAdapter, transport, store, manager, pageSize, logger.Nop()),
		server:    serverAdapter,
		transport: transport,
		store:     store,
	}
}

func roomyRetention() config.Retention {
	return config.Retention{MaxStorageSize: 1 << 30, TargetRatio: 0.9}
}

func TestSyncClient_SyncCollection_WalksPagesAndMerges(t *testing.T) {
	f := newClientFixture(t, 2, roomyRetention())
	modified := time.Now().Add(-time.Hour)

	f.transport.EXPECT().Subscribe("notes")
	rec := &recorder{}
	f.client.Subscribe("notes", rec.callbacks())

	firstPage := models.SyncResponse{
		Collection: "notes",
		Documents: []models.Document{
			testDocument("notes", "n1", 1, modified),
			testDocument("notes", "n2", 1, modified),
		},
		HasMore: true,
	}
	secondPage := models.SyncResponse{
		Collection: "notes",
		Documents:  []models.Document{testDocument("notes", "n3", 1, modified)},
		Deletions: []models.DeletionRecord{
			{ID: "n4", Collection: "notes", DeletedAt: modified, Version: 2},
		},
	}

	gomock.InOrder(
		f.server.EXPECT().
			FetchSyncPage(gomock.Any(), models.SyncRequest{Collection: "notes", Limit: 2, Offset: 0}).
			Return(firstPage, nil),
		f.server.EXPECT().
			FetchSyncPage(gomock.Any(), models.SyncRequest{Collection: "notes", Limit: 2, Offset: 2}).
			Return(secondPage, nil),
	)

	err := f.client.SyncCollection(context.Background(), "notes", nil)
	require.NoError(t, err)
	assert.Equal(t, client.StateIdle, f.client.State())

	docs, err := f.store.GetDocuments(context.Background(), "notes")
	require.NoError(t, err)
	assert.Len(t, docs, 3)
	for _, doc := range docs {
		assert.NotNil(t, doc.Metadata.LastSynced, "merge must stamp last_synced")
	}

	assert.Len(t, rec.updates, 3)
	assert.Equal(t, []string{"notes/n4"}, rec.deletes)
	assert.Empty(t, rec.errors)
}

func TestSyncClient_SyncCollection_StaleRevisionsDoNotFanOut(t *testing.T) {
	f := newClientFixture(t, 10, roomyRetention())
	modified := time.Now().Add(-time.Hour)

	current := testDocument("notes", "n1", 5, modified)
	_, err := f.store.PutDocument(context.Background(), current)
	require.NoError(t, err)

	f.transport.EXPECT().Subscribe("notes")
	rec := &recorder{}
	f.client.Subscribe("notes", rec.callbacks())

	f.server.EXPECT().
		FetchSyncPage(gomock.Any(), gomock.Any()).
		Return(models.SyncResponse{
			Collection: "notes",
			Documents:  []models.Document{testDocument("notes", "n1", 3, modified)},
		}, nil)

	require.NoError(t, f.client.SyncCollection(context.Background(), "notes", nil))

	stored, err := f.store.GetDocument(context.Background(), "notes", "n1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), stored.Metadata.Version)
	assert.Empty(t, rec.updates, "stale revision must not reach subscribers")
}

func TestSyncClient_SyncCollection_TransportErrorMovesOffline(t *testing.T) {
	f := newClientFixture(t, 10, roomyRetention())

	f.transport.EXPECT().Subscribe("notes")
	rec := &recorder{}
	f.client.Subscribe("notes", rec.callbacks())

	f.server.EXPECT().
		FetchSyncPage(gomock.Any(), gomock.Any()).
		Return(models.SyncResponse{}, fmt.Errorf("dial: %w", adapter.ErrTransport))

	err := f.client.SyncCollection(context.Background(), "notes", nil)
	require.ErrorIs(t, err, adapter.ErrTransport)
	assert.Equal(t, client.StateOffline, f.client.State())
	require.Len(t, rec.errors, 1)
	assert.ErrorIs(t, rec.errors[0], adapter.ErrTransport)
}

func TestSyncClient_SyncCollection_ServerErrorMovesError(t *testing.T) {
	f := newClientFixture(t, 10, roomyRetention())

	f.transport.EXPECT().Subscribe("notes")
	rec := &recorder{}
	f.client.Subscribe("notes", rec.callbacks())

	f.server.EXPECT().
		FetchSyncPage(gomock.Any(), gomock.Any()).
		Return(models.SyncResponse{}, adapter.ErrNotFound)

	err := f.client.SyncCollection(context.Background(), "notes", nil)
	require.ErrorIs(t, err, adapter.ErrNotFound)
	assert.Equal(t, client.StateError, f.client.State())
}

func TestSyncClient_SyncCollection_CancelledBetweenPages(t *testing.T) {
	f := newClientFixture(t, 1, roomyRetention())
	ctx, cancel := context.WithCancel(context.Background())

	f.server.EXPECT().
		FetchSyncPage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, models.SyncRequest) (models.SyncResponse, error) {
			cancel()
			return models.SyncResponse{
				Collection: "notes",
				Documents:  []models.Document{testDocument("notes", "n1", 1, time.Now())},
				HasMore:    true,
			}, nil
		})

	err := f.client.SyncCollection(ctx, "notes", nil)
	require.ErrorIs(t, err, context.Canceled)

	// the page fetched before cancellation is merged, not rolled back
	_, err = f.store.GetDocument(context.Background(), "notes", "n1")
	assert.NoError(t, err)
}

func TestSyncClient_SyncCollection_SurfacesQuotaExceeded(t *testing.T) {
	// cap too small for the page of unexpired CRITICAL documents
	f := newClientFixture(t, 10, config.Retention{MaxStorageSize: 8, TargetRatio: 0.9})

	f.transport.EXPECT().Subscribe("notes")
	rec := &recorder{}
	f.client.Subscribe("notes", rec.callbacks())

	critical := testDocument("notes", "n1", 1, time.Now())
	critical.Metadata.Priority = models.PriorityCritical

	f.server.EXPECT().
		FetchSyncPage(gomock.Any(), gomock.Any()).
		Return(models.SyncResponse{Collection: "notes", Documents: []models.Document{critical}}, nil)

	err := f.client.SyncCollection(context.Background(), "notes", nil)
	require.NoError(t, err, "a quota overrun does not fail the sync")
	require.Len(t, rec.errors, 1)
	assert.ErrorIs(t, rec.errors[0], retention.ErrStorageQuotaExceeded)

	_, err = f.store.GetDocument(context.Background(), "notes", "n1")
	assert.NoError(t, err, "unexpired critical documents are never evicted")
}

func TestSyncClient_Subscribe_FanOutAndIdempotentUnsubscribe(t *testing.T) {
	f := newClientFixture(t, 10, roomyRetention())

	f.transport.EXPECT().Subscribe("notes").Times(1)
	f.transport.EXPECT().Unsubscribe("notes").Times(1)

	first := &recorder{}
	second := &recorder{}
	cancelFirst := f.client.Subscribe("notes", first.callbacks())
	cancelSecond := f.client.Subscribe("notes", second.callbacks())

	f.server.EXPECT().
		FetchSyncPage(gomock.Any(), gomock.Any()).
		Return(models.SyncResponse{
			Collection: "notes",
			Documents:  []models.Document{testDocument("notes", "n1", 1, time.Now())},
		}, nil)

	require.NoError(t, f.client.SyncCollection(context.Background(), "notes", nil))
	assert.Len(t, first.updates, 1)
	assert.Len(t, second.updates, 1)

	cancelFirst()
	cancelFirst() // second call is a no-op
	cancelSecond()
}

func TestSyncClient_Run_CatchesUpOnReconnectThenAppliesLiveEvents(t *testing.T) {
	f := newClientFixture(t, 10, roomyRetention())

	events := make(chan models.SyncEvent)
	reconnected := make(chan struct{}, 1)
	var eventsRecv <-chan models.SyncEvent = events
	var reconnectedRecv <-chan struct{} = reconnected

	f.transport.EXPECT().Run(gomock.Any()).AnyTimes()
	f.transport.EXPECT().Events().Return(eventsRecv).AnyTimes()
	f.transport.EXPECT().Reconnected().Return(reconnectedRecv).AnyTimes()
	f.transport.EXPECT().Subscribe("notes")

	rec := &recorder{}
	f.client.Subscribe("notes", rec.callbacks())

	catchUpRan := make(chan struct{})
	f.server.EXPECT().
		FetchSyncPage(gomock.Any(), models.SyncRequest{Collection: "notes", Limit: 10, Offset: 0}).
		DoAndReturn(func(context.Context, models.SyncRequest) (models.SyncResponse, error) {
			close(catchUpRan)
			return models.SyncResponse{Collection: "notes"}, nil
		})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.client.Run(ctx) }()

	reconnected <- struct{}{}
	select {
	case <-catchUpRan:
	case <-time.After(5 * time.Second):
		t.Fatal("catch-up sync did not run after reconnect")
	}

	live := testDocument("notes", "n1", 1, time.Now())
	events <- models.SyncEvent{
		Type:       models.EventDocumentUpdated,
		Collection: "notes",
		Document:   &live,
		Timestamp:  time.Now(),
	}

	require.Eventually(t, func() bool { return rec.updateCount() == 1 },
		5*time.Second, 10*time.Millisecond)

	stored, err := f.store.GetDocument(context.Background(), "notes", "n1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Metadata.Version)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop on context cancellation")
	}
}

func TestSyncClient_Run_DeletedEventRemovesStoredDocument(t *testing.T) {
	f := newClientFixture(t, 10, roomyRetention())

	events := make(chan models.SyncEvent)
	reconnected := make(chan struct{})
	var eventsRecv <-chan models.SyncEvent = events
	var reconnectedRecv <-chan struct{} = reconnected

	f.transport.EXPECT().Run(gomock.Any()).AnyTimes()
	f.transport.EXPECT().Events().Return(eventsRecv).AnyTimes()
	f.transport.EXPECT().Reconnected().Return(reconnectedRecv).AnyTimes()
	f.transport.EXPECT().Subscribe("notes")

	stored := testDocument("notes", "n1", 3, time.Now().Add(-time.Hour))
	_, err := f.store.PutDocument(context.Background(), stored)
	require.NoError(t, err)

	rec := &recorder{}
	f.client.Subscribe("notes", rec.callbacks())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = f.client.Run(ctx)
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	events <- models.SyncEvent{
		Type:       models.EventDocumentDeleted,
		Collection: "notes",
		DocumentID: "n1",
		Timestamp:  time.Now(),
	}

	require.Eventually(t, func() bool {
		_, err := f.store.GetDocument(context.Background(), "notes", "n1")
		return err != nil
	}, 5*time.Second, 10*time.Millisecond)

	// the tombstone adopted the stored version, so a newer revision revives
	revived := testDocument("notes", "n1", 4, time.Now())
	accepted, err := f.store.PutDocument(context.Background(), revived)
	require.NoError(t, err)
	assert.True(t, accepted)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, []string{"notes/n1"}, rec.deletes)
}

func TestSyncClient_Run_CatchUpPrecedesPendingLiveEvent(t *testing.T) {
	f := newClientFixture(t, 10, roomyRetention())

	// both channels are ready before Run starts; the catch-up must win
	events := make(chan models.SyncEvent, 1)
	reconnected := make(chan struct{}, 1)
	var eventsRecv <-chan models.SyncEvent = events
	var reconnectedRecv <-chan struct{} = reconnected

	f.transport.EXPECT().Run(gomock.Any()).AnyTimes()
	f.transport.EXPECT().Events().Return(eventsRecv).AnyTimes()
	f.transport.EXPECT().Reconnected().Return(reconnectedRecv).AnyTimes()
	f.transport.EXPECT().Subscribe("notes")

	var (
		orderMu sync.Mutex
		order   []string
	)
	f.client.Subscribe("notes", client.Callbacks{
		OnUpdate: func(models.Document) {
			orderMu.Lock()
			defer orderMu.Unlock()
			order = append(order, "live-event")
		},
	})

	f.server.EXPECT().
		FetchSyncPage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, models.SyncRequest) (models.SyncResponse, error) {
			orderMu.Lock()
			defer orderMu.Unlock()
			order = append(order, "catch-up")
			return models.SyncResponse{Collection: "notes"}, nil
		})

	live := testDocument("notes", "n1", 1, time.Now())
	reconnected <- struct{}{}
	events <- models.SyncEvent{
		Type:       models.EventDocumentUpdated,
		Collection: "notes",
		Document:   &live,
		Timestamp:  time.Now(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = f.client.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		orderMu.Lock()
		defer orderMu.Unlock()
		return len(order) == 2
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	<-done

	orderMu.Lock()
	defer orderMu.Unlock()
	assert.Equal(t, []string{"catch-up", "live-event"}, order)
}
