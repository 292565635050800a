// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store implements the server-side persistence layer of the sync
// engine: the document backing store (documents, deletion tombstones,
// collection registry) and the permission source the resolver reads grants
// from. Both are backed by PostgreSQL.
package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-doc-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// BackingStore exposes the read path of the server document store consumed
// by the Sync Coordinator. All methods are read-only and safe for unlimited
// concurrent use.
type BackingStore interface {
	// CollectionExists reports whether the named collection is registered.
	CollectionExists(ctx context.Context, collection string) (bool, error)

	// GetDocuments fetches documents of collection with
	// last_modified > since (or all documents when since is nil), ordered
	// by last_modified, bounded by limit and offset.
	GetDocuments(ctx context.Context, collection string, since *time.Time, limit, offset int) ([]models.Document, error)

	// GetDeletions fetches deletion tombstones of collection with
	// deleted_at > since (or all tombstones when since is nil), ordered by
	// deleted_at, bounded by limit and offset.
	GetDeletions(ctx context.Context, collection string, since *time.Time, limit, offset int) ([]models.DeletionRecord, error)
}

// PermissionSource loads the access-control inputs for one user: the grants
// that name the user or any of the user's groups, and the group memberships
// themselves. Grant administration happens in an external admin path; this
// interface is read-only.
type PermissionSource interface {
	// GetUserPermissions returns every grant applying to userID directly or
	// through any of the user's groups.
	GetUserPermissions(ctx context.Context, userID string) ([]models.Permission, error)

	// GetUserGroups returns the IDs of the groups userID belongs to.
	GetUserGroups(ctx context.Context, userID string) ([]string, error)
}

// Repositories aggregates every server-side repository behind one value so
// the service layer receives a single dependency.
type Repositories struct {
	Documents   BackingStore
	Permissions PermissionSource
}

// NewRepositories wires all PostgreSQL repositories over one connection.
func NewRepositories(db *DB) *Repositories {
	return &Repositories{
		Documents:   NewDocumentRepository(db),
		Permissions: NewPermissionRepository(db),
	}
}
