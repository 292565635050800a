// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-doc-sync/internal/logger"
	"github.com/MKhiriev/go-doc-sync/models"
)

// newMockDB builds a *DB over go-sqlmock with QueryMatcherRegexp so tests
// can assert on query fragments instead of full SQL strings.
func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &DB{
		DB:                 conn,
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             logger.Nop(),
	}, mock
}

func TestDocumentRepository_GetDocuments(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDocumentRepository(db)

	modified := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "collection", "data", "version", "last_modified", "expires_at", "retention_priority",
	}).AddRow("e1", "events", []byte(`{"title":"standup"}`), int64(3), modified, nil, int(models.PriorityMedium))

	mock.ExpectQuery(`SELECT .+ FROM documents WHERE collection = \$1 AND last_modified > \$2`).
		WithArgs("events", modified.Add(-time.Hour)).
		WillReturnRows(rows)

	since := modified.Add(-time.Hour)
	docs, err := repo.GetDocuments(context.Background(), "events", &since, 100, 0)

	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "e1", docs[0].ID)
	assert.Equal(t, int64(3), docs[0].Metadata.Version)
	assert.Equal(t, models.PriorityMedium, docs[0].Metadata.Priority)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_GetDocuments_NoSinceOmitsBound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDocumentRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM documents WHERE collection = \$1 ORDER BY last_modified ASC`).
		WithArgs("events").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "collection", "data", "version", "last_modified", "expires_at", "retention_priority",
		}))

	docs, err := repo.GetDocuments(context.Background(), "events", nil, 100, 0)

	require.NoError(t, err)
	assert.Empty(t, docs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_GetDeletions(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDocumentRepository(db)

	deletedAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "collection", "deleted_at", "deleted_by", "version"}).
		AddRow("e2", "events", deletedAt, "u1", int64(5))

	mock.ExpectQuery(`SELECT .+ FROM deletion_records WHERE collection = \$1`).
		WithArgs("events").
		WillReturnRows(rows)

	deletions, err := repo.GetDeletions(context.Background(), "events", nil, 100, 0)

	require.NoError(t, err)
	require.Len(t, deletions, 1)
	assert.Equal(t, "e2", deletions[0].ID)
	assert.Equal(t, int64(5), deletions[0].Version)
	assert.Equal(t, "u1", deletions[0].DeletedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_CollectionExists(t *testing.T) {
	t.Run("Registered", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDocumentRepository(db)

		mock.ExpectQuery(`SELECT 1 FROM collections WHERE name = \$1`).
			WithArgs("events").
			WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

		exists, err := repo.CollectionExists(context.Background(), "events")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("Unknown", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewDocumentRepository(db)

		mock.ExpectQuery(`SELECT 1 FROM collections WHERE name = \$1`).
			WithArgs("ghosts").
			WillReturnRows(sqlmock.NewRows([]string{"1"}))

		exists, err := repo.CollectionExists(context.Background(), "ghosts")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestPermissionRepository_GetUserPermissions(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPermissionRepository(db)

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "group_id", "collection", "item_id", "actions", "scope",
	}).
		AddRow("p1", "u1", nil, "events", nil, []byte(`[1]`), int(models.ScopeCollection)).
		AddRow("p2", nil, "g1", "events", "e1", []byte(`[1,2]`), int(models.ScopeItem))

	mock.ExpectQuery(`SELECT .+ FROM permission_grants g LEFT JOIN group_members m`).
		WithArgs("u1", "u1").
		WillReturnRows(rows)

	grants, err := repo.GetUserPermissions(context.Background(), "u1")

	require.NoError(t, err)
	require.Len(t, grants, 2)
	assert.Equal(t, "u1", grants[0].UserID)
	assert.Equal(t, []models.PermissionAction{models.ActionRead}, grants[0].Actions)
	assert.Equal(t, "g1", grants[1].GroupID)
	assert.Equal(t, "e1", grants[1].ItemID)
	assert.Equal(t, []models.PermissionAction{models.ActionRead, models.ActionWrite}, grants[1].Actions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPermissionRepository_GetUserGroups(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPermissionRepository(db)

	mock.ExpectQuery(`SELECT group_id FROM group_members WHERE user_id = \$1`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"group_id"}).AddRow("g1").AddRow("g2"))

	groups, err := repo.GetUserGroups(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, []string{"g1", "g2"}, groups)
	assert.NoError(t, mock.ExpectationsWereMet())
}
