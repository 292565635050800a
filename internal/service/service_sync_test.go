// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-doc-sync/internal/config"
	"github.com/MKhiriev/go-doc-sync/internal/logger"
	"github.com/MKhiriev/go-doc-sync/internal/mock"
	"github.com/MKhiriev/go-doc-sync/internal/service"
	"github.com/MKhiriev/go-doc-sync/internal/store"
	"github.com/MKhiriev/go-doc-sync/internal/validators"
	"github.com/MKhiriev/go-doc-sync/models"
)

// doc is a shorthand constructor for Document used only in tests.
func doc(collection, id string, version int64, modified time.Time) models.Document {
	return models.Document{
		ID:         id,
		Collection: collection,
		Data:       json.RawMessage(`{}`),
		Metadata: models.Metadata{
			Version:      version,
			LastModified: modified,
			Priority:     models.PriorityMedium,
		},
	}
}

func readGrant(userID, collection string) models.Permission {
	return models.Permission{
		ID:         "p-" + userID,
		UserID:     userID,
		Collection: collection,
		Actions:    []models.PermissionAction{models.ActionRead},
		Scope:      models.ScopeCollection,
	}
}

func newTestCoordinator(t *testing.T, ctrl *gomock.Controller) (service.SyncCoordinator, *mock.MockBackingStore, *mock.MockPermissionSource) {
	t.Helper()

	docs := mock.NewMockBackingStore(ctrl)
	grants := mock.NewMockPermissionSource(ctrl)
	cfg := config.Sync{DefaultPageSize: 2, MaxPageSize: 10}

	return service.NewSyncCoordinator(docs, grants, cfg, logger.Nop()), docs, grants
}

func TestSyncCoordinator_GetSyncResponse_UnknownCollection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	coordinator, docs, _ := newTestCoordinator(t, ctrl)
	ctx := context.Background()

	docs.EXPECT().CollectionExists(ctx, "ghosts").Return(false, nil)

	_, err := coordinator.GetSyncResponse(ctx, models.Subject{UserID: "u1"}, models.SyncRequest{Collection: "ghosts"})

	assert.ErrorIs(t, err, store.ErrCollectionNotFound)
}

func TestSyncCoordinator_GetSyncResponse_MalformedRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	coordinator, _, _ := newTestCoordinator(t, ctrl)

	_, err := coordinator.GetSyncResponse(context.Background(), models.Subject{UserID: "u1"}, models.SyncRequest{})

	assert.ErrorIs(t, err, validators.ErrValidation)
}

func TestSyncCoordinator_GetSyncResponse_FiltersByPermission(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	coordinator, docs, grants := newTestCoordinator(t, ctrl)
	ctx := context.Background()
	subject := models.Subject{UserID: "u1"}
	now := time.Now().UTC()

	docs.EXPECT().CollectionExists(ctx, "events").Return(true, nil)
	grants.EXPECT().GetUserPermissions(ctx, "u1").Return([]models.Permission{
		{
			ID: "p1", UserID: "u1", Collection: "events", ItemID: "e1",
			Actions: []models.PermissionAction{models.ActionRead}, Scope: models.ScopeItem,
		},
	}, nil)
	docs.EXPECT().GetDocuments(ctx, "events", nil, 2, 0).Return([]models.Document{
		doc("events", "e1", 1, now),
		doc("events", "e2", 1, now), // not granted — must be dropped
	}, nil)
	docs.EXPECT().GetDeletions(ctx, "events", nil, 2, 0).Return(nil, nil)

	resp, err := coordinator.GetSyncResponse(ctx, subject, models.SyncRequest{Collection: "events"})

	require.NoError(t, err)
	require.Len(t, resp.Documents, 1)
	assert.Equal(t, "e1", resp.Documents[0].ID)
	// Two candidates == default page size, so the walk is not finished even
	// though filtering shrank the visible page.
	assert.True(t, resp.HasMore)
}

func TestSyncCoordinator_GetSyncResponse_NoGrantsYieldsEmptyPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	coordinator, docs, grants := newTestCoordinator(t, ctrl)
	ctx := context.Background()
	now := time.Now().UTC()

	docs.EXPECT().CollectionExists(ctx, "events").Return(true, nil)
	grants.EXPECT().GetUserPermissions(ctx, "u1").Return(nil, nil)
	docs.EXPECT().GetDocuments(ctx, "events", nil, 2, 0).Return([]models.Document{doc("events", "e1", 1, now)}, nil)
	docs.EXPECT().GetDeletions(ctx, "events", nil, 2, 0).Return(nil, nil)

	resp, err := coordinator.GetSyncResponse(ctx, models.Subject{UserID: "u1"}, models.SyncRequest{Collection: "events"})

	require.NoError(t, err)
	assert.Empty(t, resp.Documents)
	assert.Empty(t, resp.Deletions)
	assert.False(t, resp.HasMore)
}

func TestSyncCoordinator_GetSyncResponse_PassesSinceAndPaging(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	coordinator, docs, grants := newTestCoordinator(t, ctrl)
	ctx := context.Background()
	since := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	deletedAt := since.Add(time.Hour)

	docs.EXPECT().CollectionExists(ctx, "events").Return(true, nil)
	grants.EXPECT().GetUserPermissions(ctx, "u1").Return([]models.Permission{readGrant("u1", "events")}, nil)
	docs.EXPECT().GetDocuments(ctx, "events", &since, 5, 10).Return(nil, nil)
	docs.EXPECT().GetDeletions(ctx, "events", &since, 5, 10).Return([]models.DeletionRecord{
		{ID: "e9", Collection: "events", DeletedAt: deletedAt, DeletedBy: "u2", Version: 4},
	}, nil)

	resp, err := coordinator.GetSyncResponse(ctx, models.Subject{UserID: "u1"}, models.SyncRequest{
		Collection: "events",
		Since:      &since,
		Limit:      5,
		Offset:     10,
	})

	require.NoError(t, err)
	require.Len(t, resp.Deletions, 1)
	assert.Equal(t, "e9", resp.Deletions[0].ID)
	assert.False(t, resp.HasMore)
}

func TestSyncCoordinator_GetSyncResponse_IsRepeatable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	coordinator, docs, grants := newTestCoordinator(t, ctrl)
	ctx := context.Background()
	now := time.Now().UTC()
	page := []models.Document{doc("events", "e1", 3, now)}

	docs.EXPECT().CollectionExists(ctx, "events").Return(true, nil).Times(2)
	grants.EXPECT().GetUserPermissions(ctx, "u1").Return([]models.Permission{readGrant("u1", "events")}, nil).Times(2)
	docs.EXPECT().GetDocuments(ctx, "events", nil, 2, 0).Return(page, nil).Times(2)
	docs.EXPECT().GetDeletions(ctx, "events", nil, 2, 0).Return(nil, nil).Times(2)

	first, err := coordinator.GetSyncResponse(ctx, models.Subject{UserID: "u1"}, models.SyncRequest{Collection: "events"})
	require.NoError(t, err)
	second, err := coordinator.GetSyncResponse(ctx, models.Subject{UserID: "u1"}, models.SyncRequest{Collection: "events"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
