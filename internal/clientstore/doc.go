// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package clientstore implements the client-side document store.
//
// Documents are kept under the composite (collection, id) key together with
// deletion tombstones. Writes are version-gated: an incoming document or
// deletion older than what the store already holds is discarded, which makes
// merging idempotent and order-independent. Persistence is pluggable through
// [StorageBackend]; an SQLite file and an in-memory map are provided.
package clientstore
