// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// validate checks the final merged [ServerConfig] and fills in paging
// defaults. The HTTP address may legitimately stay empty (tests construct
// handlers directly), but a server with an address needs a DSN and a token
// verification key.
func (cfg *ServerConfig) validate() error {
	if cfg.Sync.DefaultPageSize <= 0 {
		cfg.Sync.DefaultPageSize = DefaultSyncPageSize
	}
	if cfg.Sync.MaxPageSize <= 0 {
		cfg.Sync.MaxPageSize = DefaultMaxSyncPageSize
	}

	if cfg.Server.HTTPAddress == "" {
		return nil
	}
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.Auth.TokenSignKey == "" || cfg.Auth.TokenIssuer == "" {
		return ErrInvalidAuthConfigs
	}

	return nil
}

// validate checks the final merged [ClientConfig] and applies the documented
// defaults for every zero-valued optional field.
func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.APIURL == "" {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Adapter.RequestTimeout <= 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Adapter.ReconnectDelay <= 0 {
		cfg.Adapter.ReconnectDelay = DefaultReconnectDelay
	}
	if cfg.Retention.MaxStorageSize <= 0 {
		cfg.Retention.MaxStorageSize = DefaultMaxStorageSize
	}
	if cfg.Retention.TargetRatio == 0 {
		cfg.Retention.TargetRatio = DefaultTargetRatio
	}
	if cfg.Retention.TargetRatio < 0 || cfg.Retention.TargetRatio > 1 {
		return ErrInvalidRetentionConfigs
	}
	if cfg.Retention.SweepInterval <= 0 {
		cfg.Retention.SweepInterval = DefaultSweepInterval
	}
	if cfg.Workers.SyncInterval <= 0 {
		cfg.Workers.SyncInterval = DefaultSyncInterval
	}

	return nil
}
