// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// serverJSONConfig mirrors [ServerConfig] with JSON tags and the string
// Duration wrapper, so operators can write "30s" instead of nanoseconds.
type serverJSONConfig struct {
	Auth struct {
		TokenSignKey string `json:"token_sign_key"`
		TokenIssuer  string `json:"token_issuer"`
	} `json:"auth,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Sync struct {
		DefaultPageSize int `json:"default_page_size"`
		MaxPageSize     int `json:"max_page_size"`
	} `json:"sync,omitempty"`
}

// clientJSONConfig mirrors [ClientConfig] for the JSON source.
type clientJSONConfig struct {
	Adapter struct {
		APIURL         string   `json:"api_url"`
		SocketURL      string   `json:"socket_url"`
		AuthToken      string   `json:"auth_token"`
		RequestTimeout Duration `json:"request_timeout"`
		ReconnectDelay Duration `json:"reconnect_delay"`
	} `json:"adapter,omitempty"`

	Storage struct {
		DSN string `json:"dsn"`
	} `json:"storage,omitempty"`

	Retention struct {
		MaxStorageSize int64    `json:"max_storage_size"`
		TargetRatio    float64  `json:"target_ratio"`
		SweepInterval  Duration `json:"sweep_interval"`
	} `json:"retention,omitempty"`

	Workers struct {
		SyncInterval Duration `json:"sync_interval"`
	} `json:"workers,omitempty"`
}

func parseServerJSON(jsonFilePath string) (*ServerConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg serverJSONConfig
	if err = json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &ServerConfig{
		Auth: Auth{
			TokenSignKey: jsonCfg.Auth.TokenSignKey,
			TokenIssuer:  jsonCfg.Auth.TokenIssuer,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Sync: Sync{
			DefaultPageSize: jsonCfg.Sync.DefaultPageSize,
			MaxPageSize:     jsonCfg.Sync.MaxPageSize,
		},
	}

	return cfg, nil
}

func parseClientJSON(jsonFilePath string) (*ClientConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg clientJSONConfig
	if err = json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &ClientConfig{
		Adapter: ClientAdapter{
			APIURL:         jsonCfg.Adapter.APIURL,
			SocketURL:      jsonCfg.Adapter.SocketURL,
			AuthToken:      jsonCfg.Adapter.AuthToken,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			ReconnectDelay: time.Duration(jsonCfg.Adapter.ReconnectDelay),
		},
		Storage: ClientStorage{
			DSN: jsonCfg.Storage.DSN,
		},
		Retention: Retention{
			MaxStorageSize: jsonCfg.Retention.MaxStorageSize,
			TargetRatio:    jsonCfg.Retention.TargetRatio,
			SweepInterval:  time.Duration(jsonCfg.Retention.SweepInterval),
		},
		Workers: ClientWorkers{
			SyncInterval: time.Duration(jsonCfg.Workers.SyncInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
