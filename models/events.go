// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncEventType is the closed set of real-time notification kinds pushed
// over the event channel. Document events carry a payload; control events
// do not.
type SyncEventType string

const (
	// EventDocumentCreated and EventDocumentUpdated carry the full document.
	EventDocumentCreated SyncEventType = "document:created"
	EventDocumentUpdated SyncEventType = "document:updated"

	// EventDocumentDeleted carries only the document id. The payload is
	// withheld so a subscriber losing access concurrently with the deletion
	// learns nothing beyond the fact of removal.
	EventDocumentDeleted SyncEventType = "document:deleted"

	// Control events.
	EventCollectionCleared SyncEventType = "collection:cleared"
	EventSyncComplete      SyncEventType = "sync:complete"
	EventSyncError         SyncEventType = "sync:error"
)

// Valid reports whether t is one of the defined event types.
func (t SyncEventType) Valid() bool {
	switch t {
	case EventDocumentCreated, EventDocumentUpdated, EventDocumentDeleted,
		EventCollectionCleared, EventSyncComplete, EventSyncError:
		return true
	default:
		return false
	}
}

// SyncEvent is the ephemeral notification envelope delivered to subscribers.
// It is never persisted.
type SyncEvent struct {
	Type       SyncEventType `json:"type"`
	Collection string        `json:"collection"`
	DocumentID string        `json:"document_id,omitempty"`
	Document   *Document     `json:"document,omitempty"`
	Timestamp  time.Time     `json:"timestamp"`
}

// SubscriptionRequest is the client-to-server frame managing which
// collections a websocket subscriber receives events for.
type SubscriptionRequest struct {
	Action     string `json:"action"` // "subscribe" | "unsubscribe"
	Collection string `json:"collection"`
}
