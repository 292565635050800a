// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-doc-sync/internal/config"
	"github.com/MKhiriev/go-doc-sync/internal/logger"
	"github.com/MKhiriev/go-doc-sync/models"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// TestWSEventTransport_SubscribeAndReceive dials a fake server, lets the
// transport replay its subscription, and checks a pushed event comes out of
// Events().
func TestWSEventTransport_SubscribeAndReceive(t *testing.T) {
	pushed := models.SyncEvent{
		Type:       models.EventDocumentUpdated,
		Collection: "notes",
		DocumentID: "n1",
		Timestamp:  time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer ws-test-token", r.Header.Get("Authorization"))

		conn, err := testUpgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		// The transport replays its subscription set right after dialing.
		var frame models.SubscriptionRequest
		require.NoError(t, conn.ReadJSON(&frame))
		assert.Equal(t, models.SubscriptionRequest{Action: "subscribe", Collection: "notes"}, frame)

		require.NoError(t, conn.WriteJSON(pushed))

		// Hold the connection open until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer server.Close()

	transport := NewWSEventTransport(config.ClientAdapter{
		SocketURL:      "ws" + strings.TrimPrefix(server.URL, "http"),
		AuthToken:      "ws-test-token",
		ReconnectDelay: 10 * time.Millisecond,
	}, logger.Nop())

	transport.Subscribe("notes")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go transport.Run(ctx)

	select {
	case <-transport.Reconnected():
	case <-time.After(5 * time.Second):
		t.Fatal("transport never connected")
	}

	select {
	case event := <-transport.Events():
		// Round-trip through JSON loses nothing the client relies on.
		want, _ := json.Marshal(pushed)
		got, _ := json.Marshal(event)
		assert.JSONEq(t, string(want), string(got))
	case <-time.After(5 * time.Second):
		t.Fatal("no event was delivered")
	}
}

// TestWSEventTransport_ReconnectsAfterLoss drops the first connection
// server-side and expects a second Reconnected signal.
func TestWSEventTransport_ReconnectsAfterLoss(t *testing.T) {
	connections := make(chan struct{}, 4)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		require.NoError(t, err)

		connections <- struct{}{}
		if len(connections) == 1 {
			conn.Close() // sever the first connection immediately
			return
		}

		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer server.Close()

	transport := NewWSEventTransport(config.ClientAdapter{
		SocketURL:      "ws" + strings.TrimPrefix(server.URL, "http"),
		ReconnectDelay: 10 * time.Millisecond,
	}, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go transport.Run(ctx)

	for i := 0; i < 2; i++ {
		select {
		case <-transport.Reconnected():
		case <-time.After(5 * time.Second):
			t.Fatalf("connection %d never established", i+1)
		}
	}
}
