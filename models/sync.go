// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncRequest is one page request of an incremental collection sync.
// The client repeats the call with offset += limit while the response
// reports HasMore, which yields a complete permitted snapshot as of the
// moment the first page was requested.
type SyncRequest struct {
	// Collection is the namespace being synchronized.
	Collection string `json:"collection"`

	// Since, when set, narrows the page to documents with
	// last_modified > Since and deletions with deleted_at > Since.
	// Omitted, the request walks the full permitted snapshot.
	Since *time.Time `json:"since,omitempty"`

	// Limit bounds the page size; the server applies a default when zero.
	Limit int `json:"limit,omitempty"`

	// Offset skips rows already fetched by earlier pages.
	Offset int `json:"offset,omitempty"`
}

// SyncResponse is one permission-filtered page of documents and tombstones.
type SyncResponse struct {
	Collection string           `json:"collection"`
	Documents  []Document       `json:"documents"`
	Deletions  []DeletionRecord `json:"deletions"`
	HasMore    bool             `json:"has_more"`
}
