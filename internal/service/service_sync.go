// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-doc-sync/internal/config"
	"github.com/MKhiriev/go-doc-sync/internal/logger"
	"github.com/MKhiriev/go-doc-sync/internal/permission"
	"github.com/MKhiriev/go-doc-sync/internal/store"
	"github.com/MKhiriev/go-doc-sync/internal/validators"
	"github.com/MKhiriev/go-doc-sync/models"
)

// syncCoordinator is the concrete implementation of [SyncCoordinator].
//
// It is stateless per request: every call loads the caller's grants, builds
// a resolver over them, fetches one candidate page from the backing store
// and filters it. Safe for unlimited concurrent use.
type syncCoordinator struct {
	documents store.BackingStore
	grants    GrantSource
	validator *validators.SyncRequestValidator
	cfg       config.Sync
	logger    *logger.Logger
}

// NewSyncCoordinator constructs a [SyncCoordinator] over the backing store
// and the grant source.
func NewSyncCoordinator(documents store.BackingStore, grants GrantSource, cfg config.Sync, log *logger.Logger) SyncCoordinator {
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = config.DefaultSyncPageSize
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = config.DefaultMaxSyncPageSize
	}

	return &syncCoordinator{
		documents: documents,
		grants:    grants,
		validator: validators.NewSyncRequestValidator(cfg.MaxPageSize),
		cfg:       cfg,
		logger:    log,
	}
}

// GetSyncResponse implements [SyncCoordinator].
//
// HasMore is computed from the pre-filter candidate count: a full candidate
// page means the walk is not finished even if permission filtering shrank
// the visible slice, so paging never stalls short of the complete permitted
// snapshot. Permission denials drop items silently; a caller with no grants
// at all receives an empty page, not an error.
func (s *syncCoordinator) GetSyncResponse(ctx context.Context, subject models.Subject, req models.SyncRequest) (models.SyncResponse, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(req); err != nil {
		return models.SyncResponse{}, err
	}

	limit := req.Limit
	if limit == 0 {
		limit = s.cfg.DefaultPageSize
	}

	exists, err := s.documents.CollectionExists(ctx, req.Collection)
	if err != nil {
		return models.SyncResponse{}, fmt.Errorf("check collection %q: %w", req.Collection, err)
	}
	if !exists {
		return models.SyncResponse{}, fmt.Errorf("collection %q: %w", req.Collection, store.ErrCollectionNotFound)
	}

	grants, err := s.grants.GetUserPermissions(ctx, subject.UserID)
	if err != nil {
		return models.SyncResponse{}, fmt.Errorf("load grants for user %s: %w", subject.UserID, err)
	}
	resolver := permission.NewResolver(grants)

	candidates, err := s.documents.GetDocuments(ctx, req.Collection, req.Since, limit, req.Offset)
	if err != nil {
		return models.SyncResponse{}, fmt.Errorf("fetch documents page: %w", err)
	}

	deletionCandidates, err := s.documents.GetDeletions(ctx, req.Collection, req.Since, limit, req.Offset)
	if err != nil {
		return models.SyncResponse{}, fmt.Errorf("fetch deletions page: %w", err)
	}

	documents := make([]models.Document, 0, len(candidates))
	for _, doc := range candidates {
		if resolver.Check(subject, req.Collection, doc.ID, models.ActionRead) {
			documents = append(documents, doc)
		}
	}

	deletions := make([]models.DeletionRecord, 0, len(deletionCandidates))
	for _, rec := range deletionCandidates {
		if resolver.Check(subject, req.Collection, rec.ID, models.ActionRead) {
			deletions = append(deletions, rec)
		}
	}

	log.Debug().
		Str("func", "syncCoordinator.GetSyncResponse").
		Str("collection", req.Collection).
		Str("user_id", subject.UserID).
		Int("candidates", len(candidates)).
		Int("visible_documents", len(documents)).
		Int("visible_deletions", len(deletions)).
		Msg("served sync page")

	return models.SyncResponse{
		Collection: req.Collection,
		Documents:  documents,
		Deletions:  deletions,
		HasMore:    len(candidates) == limit || len(deletionCandidates) == limit,
	}, nil
}
