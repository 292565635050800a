// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-doc-sync/internal/config"
	"github.com/MKhiriev/go-doc-sync/internal/logger"
	"github.com/MKhiriev/go-doc-sync/internal/store"
)

// Services aggregates every server-side service behind one value handed to
// the transport layer.
type Services struct {
	SyncCoordinator SyncCoordinator
	Dispatcher      Dispatcher
}

// NewServices wires the services over the repositories.
func NewServices(repos *store.Repositories, cfg *config.ServerConfig, log *logger.Logger) *Services {
	return &Services{
		SyncCoordinator: NewSyncCoordinator(repos.Documents, repos.Permissions, cfg.Sync, log),
		Dispatcher:      NewDispatcher(repos.Permissions, log),
	}
}
