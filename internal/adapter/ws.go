// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MKhiriev/go-doc-sync/internal/config"
	"github.com/MKhiriev/go-doc-sync/internal/logger"
	"github.com/MKhiriev/go-doc-sync/models"
)

const (
	// maxReconnectDelay caps the doubling backoff between dial attempts.
	maxReconnectDelay = 30 * time.Second

	// eventChannelSize buffers server pushes between the read loop and the
	// consumer.
	eventChannelSize = 64
)

// wsEventTransport is the gorilla/websocket implementation of
// [EventTransport]. One goroutine (Run) owns dialing, the read loop, and
// reconnection; subscription changes from other goroutines are applied
// through a writer mutex.
type wsEventTransport struct {
	socketURL      string
	token          string
	reconnectDelay time.Duration
	logger         *logger.Logger

	events      chan models.SyncEvent
	reconnected chan struct{}

	mu            sync.Mutex
	conn          *websocket.Conn
	subscriptions map[string]struct{}
}

// NewWSEventTransport constructs an [EventTransport] for the websocket
// endpoint in cfg. The transport is idle until Run is called.
func NewWSEventTransport(cfg config.ClientAdapter, logger *logger.Logger) EventTransport {
	delay := cfg.ReconnectDelay
	if delay <= 0 {
		delay = config.DefaultReconnectDelay
	}

	return &wsEventTransport{
		socketURL:      cfg.SocketURL,
		token:          cfg.AuthToken,
		reconnectDelay: delay,
		logger:         logger,
		events:         make(chan models.SyncEvent, eventChannelSize),
		reconnected:    make(chan struct{}, 1),
		subscriptions:  make(map[string]struct{}),
	}
}

// Run implements [EventTransport]. Each connection loss doubles the delay
// before the next dial attempt up to maxReconnectDelay; a successful dial
// resets it.
func (t *wsEventTransport) Run(ctx context.Context) {
	delay := t.reconnectDelay

	for {
		if ctx.Err() != nil {
			return
		}

		conn, err := t.dial(ctx)
		if err != nil {
			t.logger.Warn().
				Err(err).
				Str("socket_url", t.socketURL).
				Dur("retry_in", delay).
				Msg("event channel dial failed")

			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
			if delay *= 2; delay > maxReconnectDelay {
				delay = maxReconnectDelay
			}
			continue
		}

		delay = t.reconnectDelay

		if err = t.attach(conn); err != nil {
			conn.Close()
			continue
		}
		t.signalReconnected()

		t.readLoop(ctx, conn)
		t.detach(conn)
	}
}

func (t *wsEventTransport) dial(ctx context.Context) (*websocket.Conn, error) {
	header := http.Header{}
	if t.token != "" {
		header.Set("Authorization", "Bearer "+t.token)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, t.socketURL, header)
	return conn, err
}

// attach stores the live connection and replays the current subscription
// set so the server resumes pushing for every collection of interest.
func (t *wsEventTransport) attach(conn *websocket.Conn) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.conn = conn
	for collection := range t.subscriptions {
		frame := models.SubscriptionRequest{Action: "subscribe", Collection: collection}
		if err := conn.WriteJSON(frame); err != nil {
			t.conn = nil
			return err
		}
	}

	t.logger.Info().
		Int("subscriptions", len(t.subscriptions)).
		Msg("event channel connected")

	return nil
}

func (t *wsEventTransport) detach(conn *websocket.Conn) {
	t.mu.Lock()
	if t.conn == conn {
		t.conn = nil
	}
	t.mu.Unlock()
	conn.Close()
}

func (t *wsEventTransport) readLoop(ctx context.Context, conn *websocket.Conn) {
	// Unblock the blocking read when the context ends.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var event models.SyncEvent
		if err := conn.ReadJSON(&event); err != nil {
			if ctx.Err() == nil {
				t.logger.Warn().Err(err).Msg("event channel lost")
			}
			return
		}

		select {
		case t.events <- event:
		case <-ctx.Done():
			return
		}
	}
}

func (t *wsEventTransport) signalReconnected() {
	select {
	case t.reconnected <- struct{}{}:
	default:
	}
}

// Subscribe implements [EventTransport].
func (t *wsEventTransport) Subscribe(collection string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.subscriptions[collection] = struct{}{}
	if t.conn != nil {
		frame := models.SubscriptionRequest{Action: "subscribe", Collection: collection}
		if err := t.conn.WriteJSON(frame); err != nil {
			t.logger.Warn().Err(err).Str("collection", collection).Msg("subscribe frame failed")
		}
	}
}

// Unsubscribe implements [EventTransport].
func (t *wsEventTransport) Unsubscribe(collection string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.subscriptions, collection)
	if t.conn != nil {
		frame := models.SubscriptionRequest{Action: "unsubscribe", Collection: collection}
		if err := t.conn.WriteJSON(frame); err != nil {
			t.logger.Warn().Err(err).Str("collection", collection).Msg("unsubscribe frame failed")
		}
	}
}

// Events implements [EventTransport].
func (t *wsEventTransport) Events() <-chan models.SyncEvent {
	return t.events
}

// Reconnected implements [EventTransport].
func (t *wsEventTransport) Reconnected() <-chan struct{} {
	return t.reconnected
}
