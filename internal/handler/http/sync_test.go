// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
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
	"github.com/MKhiriev/go-doc-sync/internal/utils"
	"github.com/MKhiriev/go-doc-sync/internal/validators"
	"github.com/MKhiriev/go-doc-sync/models"
)

var testAuthCfg = config.Auth{
	TokenSignKey: "test-sign-key",
	TokenIssuer:  "doc-sync-test",
}

func newTestHandler(t *testing.T, ctrl *gomock.Controller) (*Handler, *mock.MockSyncCoordinator, *mock.MockDispatcher) {
	t.Helper()

	coordinator := mock.NewMockSyncCoordinator(ctrl)
	dispatcher := mock.NewMockDispatcher(ctrl)
	services := &service.Services{
		SyncCoordinator: coordinator,
		Dispatcher:      dispatcher,
	}

	return NewHandler(services, testAuthCfg, logger.Nop()), coordinator, dispatcher
}

func bearerToken(t *testing.T, subject models.Subject) string {
	t.Helper()

	token, err := utils.GenerateJWTToken(testAuthCfg.TokenIssuer, subject, time.Hour, testAuthCfg.TokenSignKey)
	require.NoError(t, err)

	return "Bearer " + token
}

func TestHandler_Sync(t *testing.T) {
	subject := models.Subject{UserID: "u1", GroupIDs: []string{"g1"}}
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		body         string
		prepare      func(coordinator *mock.MockSyncCoordinator)
		expectStatus int
		expectBody   *models.SyncResponse
	}{
		{
			name: "successful sync page",
			body: `{"collection":"notes","limit":10}`,
			prepare: func(coordinator *mock.MockSyncCoordinator) {
				coordinator.EXPECT().
					GetSyncResponse(gomock.Any(), subject, models.SyncRequest{Collection: "notes", Limit: 10}).
					Return(models.SyncResponse{
						Collection: "notes",
						Documents: []models.Document{{
							ID:         "n1",
							Collection: "notes",
							Data:       json.RawMessage(`{"title":"x"}`),
							Metadata: models.Metadata{
								Version:      2,
								LastModified: now,
								Priority:     models.PriorityMedium,
							},
						}},
						HasMore: false,
					}, nil)
			},
			expectStatus: http.StatusOK,
			expectBody: &models.SyncResponse{
				Collection: "notes",
				Documents: []models.Document{{
					ID:         "n1",
					Collection: "notes",
					Data:       json.RawMessage(`{"title":"x"}`),
					Metadata: models.Metadata{
						Version:      2,
						LastModified: now,
						Priority:     models.PriorityMedium,
					},
				}},
			},
		},
		{
			name:         "malformed JSON body",
			body:         `{"collection":`,
			expectStatus: http.StatusBadRequest,
		},
		{
			name: "unknown collection",
			body: `{"collection":"ghosts"}`,
			prepare: func(coordinator *mock.MockSyncCoordinator) {
				coordinator.EXPECT().
					GetSyncResponse(gomock.Any(), subject, gomock.Any()).
					Return(models.SyncResponse{}, store.ErrCollectionNotFound)
			},
			expectStatus: http.StatusNotFound,
		},
		{
			name: "invalid request parameters",
			body: `{"collection":"notes","limit":-1}`,
			prepare: func(coordinator *mock.MockSyncCoordinator) {
				coordinator.EXPECT().
					GetSyncResponse(gomock.Any(), subject, gomock.Any()).
					Return(models.SyncResponse{}, fmt.Errorf("%w: %w", validators.ErrValidation, validators.ErrInvalidLimit))
			},
			expectStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			handler, coordinator, _ := newTestHandler(t, ctrl)
			if tt.prepare != nil {
				tt.prepare(coordinator)
			}

			request := httptest.NewRequest(http.MethodPost, "/api/sync", strings.NewReader(tt.body))
			request.Header.Set("Authorization", bearerToken(t, subject))
			recorder := httptest.NewRecorder()

			handler.Init().ServeHTTP(recorder, request)

			assert.Equal(t, tt.expectStatus, recorder.Code)

			if tt.expectBody != nil {
				var got models.SyncResponse
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
				assert.Equal(t, *tt.expectBody, got)
			}
		})
	}
}

func TestHandler_Sync_RequiresAuthentication(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler, _, _ := newTestHandler(t, ctrl)

	request := httptest.NewRequest(http.MethodPost, "/api/sync", strings.NewReader(`{"collection":"notes"}`))
	recorder := httptest.NewRecorder()

	handler.Init().ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestHandler_Sync_RejectsWrongMethod(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler, _, _ := newTestHandler(t, ctrl)

	request := httptest.NewRequest(http.MethodGet, "/api/sync", nil)
	request.Header.Set("Authorization", bearerToken(t, models.Subject{UserID: "u1"}))
	recorder := httptest.NewRecorder()

	handler.Init().ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
