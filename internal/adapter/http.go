// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-doc-sync/internal/config"
	"github.com/MKhiriev/go-doc-sync/internal/logger"
	"github.com/MKhiriev/go-doc-sync/internal/utils"
	"github.com/MKhiriev/go-doc-sync/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient
	token  string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// cfg.APIURL and configures the underlying HTTP client with the resolved
// base URL and request timeout.
//
// Returns an error if cfg.APIURL is empty or cannot be parsed as a valid
// URL.
func NewHTTPServerAdapter(cfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.APIURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter api url: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	adapter := &httpServerAdapter{client: client, logger: logger}
	adapter.SetToken(cfg.AuthToken)

	return adapter, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	return h.token
}

// FetchSyncPage implements [ServerAdapter]. It POSTs the page request to
// POST /api/sync and decodes the page from the response body.
func (h *httpServerAdapter) FetchSyncPage(ctx context.Context, req models.SyncRequest) (models.SyncResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+h.token).
		SetBody(req).
		Post("/api/sync")
	if err != nil {
		return models.SyncResponse{}, fmt.Errorf("%w: sync page request: %w", ErrTransport, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SyncResponse{}, err
	}

	var page models.SyncResponse
	if err = json.Unmarshal(resp.Body(), &page); err != nil {
		return models.SyncResponse{}, fmt.Errorf("decode sync page: %w", err)
	}

	h.logger.Debug().
		Str("collection", page.Collection).
		Int("documents", len(page.Documents)).
		Int("deletions", len(page.Deletions)).
		Bool("has_more", page.HasMore).
		Msg("sync page fetched")

	return page, nil
}
