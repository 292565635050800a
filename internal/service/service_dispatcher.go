// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-doc-sync/internal/logger"
	"github.com/MKhiriev/go-doc-sync/internal/permission"
	"github.com/MKhiriev/go-doc-sync/models"
)

// dispatcher is the concrete implementation of [Dispatcher].
//
// The registry is one bucket per collection, each with its own lock, so
// emission to the subscribers of one collection never blocks subscribe or
// emit traffic on unrelated collections. The outer map lock is held only
// long enough to locate or create a bucket.
//
// Each subscriber's resolver and group memberships are snapshotted at
// subscribe time from the grant source; grants or memberships changed
// mid-connection take effect on the next subscribe.
type dispatcher struct {
	grants GrantSource
	logger *logger.Logger

	mu      sync.RWMutex
	buckets map[string]*subscriberBucket
}

type subscriberBucket struct {
	mu   sync.RWMutex
	subs map[string]registeredSubscriber
}

type registeredSubscriber struct {
	sub      Subscriber
	subject  models.Subject
	resolver *permission.Resolver
}

// NewDispatcher constructs a [Dispatcher] with an empty registry. The
// registry is owned by the returned value; construct one per server process
// and tear it down with the process.
func NewDispatcher(grants GrantSource, log *logger.Logger) Dispatcher {
	return &dispatcher{
		grants:  grants,
		logger:  log,
		buckets: make(map[string]*subscriberBucket),
	}
}

// Subscribe implements [Dispatcher]. Re-subscribing an already registered
// subscriber refreshes its grant snapshot and is otherwise a no-op.
func (d *dispatcher) Subscribe(ctx context.Context, collection string, sub Subscriber) error {
	grants, err := d.grants.GetUserPermissions(ctx, sub.Subject().UserID)
	if err != nil {
		return fmt.Errorf("load grants for subscriber %s: %w", sub.ID(), err)
	}

	groups, err := d.grants.GetUserGroups(ctx, sub.Subject().UserID)
	if err != nil {
		return fmt.Errorf("load groups for subscriber %s: %w", sub.ID(), err)
	}

	bucket := d.bucket(collection, true)
	bucket.mu.Lock()
	bucket.subs[sub.ID()] = registeredSubscriber{
		sub:      sub,
		subject:  snapshotSubject(sub.Subject(), groups),
		resolver: permission.NewResolver(grants),
	}
	bucket.mu.Unlock()

	d.logger.Debug().
		Str("func", "dispatcher.Subscribe").
		Str("collection", collection).
		Str("subscriber_id", sub.ID()).
		Str("user_id", sub.Subject().UserID).
		Msg("subscriber registered")

	return nil
}

// Unsubscribe implements [Dispatcher]. Removing an absent subscriber is a
// no-op.
func (d *dispatcher) Unsubscribe(collection string, subscriberID string) {
	bucket := d.bucket(collection, false)
	if bucket == nil {
		return
	}

	bucket.mu.Lock()
	delete(bucket.subs, subscriberID)
	bucket.mu.Unlock()
}

// UnsubscribeAll removes the subscriber from every collection bucket. Called
// by the transport layer when a connection closes.
func (d *dispatcher) UnsubscribeAll(subscriberID string) {
	d.mu.RLock()
	buckets := make([]*subscriberBucket, 0, len(d.buckets))
	for _, b := range d.buckets {
		buckets = append(buckets, b)
	}
	d.mu.RUnlock()

	for _, b := range buckets {
		b.mu.Lock()
		delete(b.subs, subscriberID)
		b.mu.Unlock()
	}
}

// EmitDocumentCreated implements [Dispatcher].
func (d *dispatcher) EmitDocumentCreated(ctx context.Context, doc models.Document) {
	d.emit(ctx, models.SyncEvent{
		Type:       models.EventDocumentCreated,
		Collection: doc.Collection,
		DocumentID: doc.ID,
		Document:   &doc,
		Timestamp:  time.Now().UTC(),
	})
}

// EmitDocumentUpdated implements [Dispatcher].
func (d *dispatcher) EmitDocumentUpdated(ctx context.Context, doc models.Document) {
	d.emit(ctx, models.SyncEvent{
		Type:       models.EventDocumentUpdated,
		Collection: doc.Collection,
		DocumentID: doc.ID,
		Document:   &doc,
		Timestamp:  time.Now().UTC(),
	})
}

// EmitDocumentDeleted implements [Dispatcher]. The event carries only the
// document id: a subscriber losing access concurrently with the deletion
// must not learn the final payload.
func (d *dispatcher) EmitDocumentDeleted(ctx context.Context, collection, documentID, deletedBy string) {
	d.emit(ctx, models.SyncEvent{
		Type:       models.EventDocumentDeleted,
		Collection: collection,
		DocumentID: documentID,
		Timestamp:  time.Now().UTC(),
	})
}

// EmitCollectionCleared implements [Dispatcher]. The event is a control
// frame delivered to every subscriber of the collection regardless of
// per-item grants: it carries no document data.
func (d *dispatcher) EmitCollectionCleared(ctx context.Context, collection string) {
	d.emit(ctx, models.SyncEvent{
		Type:       models.EventCollectionCleared,
		Collection: collection,
		Timestamp:  time.Now().UTC(),
	})
}

// emit fans the event out to every permitted subscriber of its collection.
// A delivery failure is logged and skipped; it never aborts the fan-out and
// never reaches the emitter. Per-document ordering per subscriber follows
// from Deliver being an ordered, non-blocking enqueue on each subscriber.
func (d *dispatcher) emit(ctx context.Context, event models.SyncEvent) {
	bucket := d.bucket(event.Collection, false)
	if bucket == nil {
		return
	}

	bucket.mu.RLock()
	targets := make([]registeredSubscriber, 0, len(bucket.subs))
	for _, reg := range bucket.subs {
		targets = append(targets, reg)
	}
	bucket.mu.RUnlock()

	for _, reg := range targets {
		if event.DocumentID != "" {
			allowed := reg.resolver.Check(reg.subject, event.Collection, event.DocumentID, models.ActionRead)
			if !allowed {
				continue
			}
		}

		if err := reg.sub.Deliver(event); err != nil {
			d.logger.Warn().
				Err(err).
				Str("func", "dispatcher.emit").
				Str("collection", event.Collection).
				Str("subscriber_id", reg.sub.ID()).
				Str("event_type", string(event.Type)).
				Msg("event delivery failed; continuing fan-out")
		}
	}
}

// snapshotSubject merges the groups resolved from the grant source into the
// subject presented at subscribe time. Token claims can lag behind membership
// changes; the union keeps both sources of group access live for the
// lifetime of the subscription.
func snapshotSubject(subject models.Subject, groups []string) models.Subject {
	seen := make(map[string]struct{}, len(subject.GroupIDs)+len(groups))
	merged := make([]string, 0, len(subject.GroupIDs)+len(groups))
	for _, id := range subject.GroupIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		merged = append(merged, id)
	}
	for _, id := range groups {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		merged = append(merged, id)
	}

	return models.Subject{UserID: subject.UserID, GroupIDs: merged}
}

// bucket returns the registry bucket of a collection, creating it when
// create is set.
func (d *dispatcher) bucket(collection string, create bool) *subscriberBucket {
	d.mu.RLock()
	b, ok := d.buckets[collection]
	d.mu.RUnlock()
	if ok || !create {
		return b
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if b, ok = d.buckets[collection]; ok {
		return b
	}
	b = &subscriberBucket{subs: make(map[string]registeredSubscriber)}
	d.buckets[collection] = b

	return b
}
