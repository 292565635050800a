// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the sync client runtime.
//
// The sync client keeps the local replica converged with the server: it runs
// paginated catch-up syncs through the HTTP adapter, merges live websocket
// events through the same version-gated store path, fans accepted changes
// out to local subscribers, and gives the retention manager a pass after
// every merged page. It also owns the connection state machine and the
// catch-up-then-resume reconnect protocol.
package client
