// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package retention enforces the client's local storage budget.
//
// When usage crosses the configured cap, an eviction pass reclaims space
// down to the target ratio: expired documents go first, then live documents
// by descending retention tier (temporary before low before medium before
// high), oldest modification first within a tier. Critical documents are
// only ever reclaimed once expired.
package retention
