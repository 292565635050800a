package client

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MKhiriev/go-doc-sync/internal/adapter"
	"github.com/MKhiriev/go-doc-sync/internal/clientstore"
	"github.com/MKhiriev/go-doc-sync/internal/config"
	"github.com/MKhiriev/go-doc-sync/internal/logger"
	"github.com/MKhiriev/go-doc-sync/internal/retention"
	"github.com/MKhiriev/go-doc-sync/internal/workers"
)

// App is the runnable sync client process: storage, retention, transports,
// the sync client itself, and its background workers, wired from one
// [config.ClientConfig].
type App struct {
	cfg     config.ClientConfig
	sync    SyncClient
	store   *clientstore.Store
	workers *workers.Workers
	logger  *logger.Logger
}

// NewApp wires the client process. The local replica is SQLite-backed when
// cfg.Storage.DSN names a database file and in-memory otherwise.
func NewApp(cfg config.ClientConfig) (*App, error) {
	log := logger.NewLogger("sync-client")

	backend, err := newStorageBackend(cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("open local storage: %w", err)
	}

	store := clientstore.NewStore(backend, log)
	manager := retention.NewManager(store, cfg.Retention, log)

	server, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}
	transport := adapter.NewWSEventTransport(cfg.Adapter, log)

	syncClient := NewSyncClient(server, transport, store, manager, 0, log)

	background := workers.NewWorkers(
		workers.NewPeriodicSync(syncClient, cfg.Workers.SyncInterval, log),
		workers.NewRetentionSweep(manager, cfg.Retention.SweepInterval, log),
	)

	return &App{
		cfg:     cfg,
		sync:    syncClient,
		store:   store,
		workers: background,
		logger:  log,
	}, nil
}

// SyncClient exposes the wired sync client for embedding callers that
// subscribe collections before Run.
func (a *App) SyncClient() SyncClient {
	return a.sync
}

// Run starts the event pump and the background workers and blocks until the
// process receives SIGTERM, SIGINT or SIGQUIT. The local store is closed on
// the way out.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	a.logger.Info().
		Str("func", "App.Run").
		Str("api_url", a.cfg.Adapter.APIURL).
		Str("socket_url", a.cfg.Adapter.SocketURL).
		Msg("sync client starting")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.workers.Run(ctx)
	}()

	err := a.sync.Run(ctx)
	wg.Wait()

	if closeErr := a.store.Close(); closeErr != nil {
		a.logger.Warn().Err(closeErr).
			Str("func", "App.Run").
			Msg("closing local store")
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	a.logger.Info().Str("func", "App.Run").Msg("sync client stopped")
	return nil
}

func newStorageBackend(cfg config.ClientStorage, log *logger.Logger) (clientstore.StorageBackend, error) {
	if cfg.DSN == "" || cfg.DSN == ":memory:" {
		return clientstore.NewMemoryBackend(), nil
	}
	return clientstore.NewSQLiteBackend(cfg.DSN, log)
}
