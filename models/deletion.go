// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// DeletionRecord is the tombstone proving that a document was removed.
// It is created exactly once per deletion, at the version the document had
// when it was removed, and is immutable thereafter. Tombstones propagate
// deletions to clients instead of letting rows silently disappear.
type DeletionRecord struct {
	ID         string    `json:"id"`
	Collection string    `json:"collection"`
	DeletedAt  time.Time `json:"deleted_at"`
	DeletedBy  string    `json:"deleted_by"`
	Version    int64     `json:"version"`
}

// Key returns the composite (collection, id) key the tombstone occupies.
func (r DeletionRecord) Key() DocumentKey {
	return DocumentKey{Collection: r.Collection, ID: r.ID}
}
