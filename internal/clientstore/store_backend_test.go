// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package clientstore_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-doc-sync/internal/clientstore"
	"github.com/MKhiriev/go-doc-sync/internal/logger"
	"github.com/MKhiriev/go-doc-sync/internal/mock"
	"github.com/MKhiriev/go-doc-sync/models"
)

func backendDoc(collection, id string, version int64) models.Document {
	return models.Document{
		ID:         id,
		Collection: collection,
		Data:       json.RawMessage(`{"k":"v"}`),
		Metadata: models.Metadata{
			Version:      version,
			LastModified: time.Now().UTC(),
			Priority:     models.PriorityMedium,
		},
	}
}

func TestStore_PutDocument_SurfacesBackendReadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := mock.NewMockStorageBackend(ctrl)
	store := clientstore.NewStore(backend, logger.Nop())
	ctx := context.Background()

	doc := backendDoc("notes", "n1", 2)
	backendErr := errors.New("database is locked")
	backend.EXPECT().Get(ctx, doc.Key()).Return(models.Document{}, false, backendErr)

	accepted, err := store.PutDocument(ctx, doc)

	require.ErrorIs(t, err, backendErr)
	assert.False(t, accepted)
}

func TestStore_ApplyDeletion_StopsWhenTombstoneWriteFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := mock.NewMockStorageBackend(ctrl)
	store := clientstore.NewStore(backend, logger.Nop())
	ctx := context.Background()

	del := models.DeletionRecord{
		ID:         "n1",
		Collection: "notes",
		DeletedAt:  time.Now().UTC(),
		Version:    3,
	}
	backendErr := errors.New("disk full")

	// The live document must stay untouched when the tombstone cannot be
	// persisted, so no Delete call is expected.
	backend.EXPECT().GetDeletion(ctx, del.Key()).Return(models.DeletionRecord{}, false, nil)
	backend.EXPECT().PutDeletion(ctx, del).Return(backendErr)

	removed, err := store.ApplyDeletion(ctx, del)

	require.ErrorIs(t, err, backendErr)
	assert.False(t, removed)
}
