// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package clientstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-doc-sync/internal/logger"
	"github.com/MKhiriev/go-doc-sync/models"
)

// sqlite is the shared squirrel builder configured for SQLite placeholders.
var sqlite = sq.StatementBuilder.PlaceholderFormat(sq.Question)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS documents (
    collection    TEXT      NOT NULL,
    id            TEXT      NOT NULL,
    data          BLOB      NOT NULL,
    version       INTEGER   NOT NULL,
    last_modified TIMESTAMP NOT NULL,
    last_synced   TIMESTAMP,
    expires_at    TIMESTAMP,
    priority      INTEGER   NOT NULL,
    PRIMARY KEY (collection, id)
);

CREATE INDEX IF NOT EXISTS idx_documents_last_modified
    ON documents (collection, last_modified);

CREATE INDEX IF NOT EXISTS idx_documents_expires_at
    ON documents (expires_at) WHERE expires_at IS NOT NULL;

CREATE INDEX IF NOT EXISTS idx_documents_priority
    ON documents (priority, last_modified);

CREATE TABLE IF NOT EXISTS deletion_records (
    collection TEXT      NOT NULL,
    id         TEXT      NOT NULL,
    deleted_at TIMESTAMP NOT NULL,
    deleted_by TEXT      NOT NULL,
    version    INTEGER   NOT NULL,
    PRIMARY KEY (collection, id)
);
`

// sqliteBackend persists the store in a local SQLite database.
type sqliteBackend struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewSQLiteBackend opens (and if necessary initialises) the SQLite database
// at dsn. Use ":memory:" for a throwaway store.
func NewSQLiteBackend(dsn string, log *logger.Logger) (StorageBackend, error) {
	if dsn == "" {
		dsn = ":memory:"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpeningDatabase, err)
	}

	// SQLite serialises writers; one connection avoids SQLITE_BUSY and, for
	// ":memory:", keeps every query on the same database instance.
	db.SetMaxOpenConns(1)

	if _, err = db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", ErrOpeningDatabase, err)
	}

	log.Info().Str("dsn", dsn).Msg("local document database opened")

	return &sqliteBackend{db: db, logger: log}, nil
}

func (b *sqliteBackend) Put(ctx context.Context, doc models.Document) error {
	query, args, err := sqlite.
		Insert("documents").
		Columns("collection", "id", "data", "version", "last_modified", "last_synced", "expires_at", "priority").
		Values(
			doc.Collection,
			doc.ID,
			[]byte(doc.Data),
			doc.Metadata.Version,
			doc.Metadata.LastModified,
			doc.Metadata.LastSynced,
			doc.Metadata.ExpiresAt,
			doc.Metadata.Priority,
		).
		Suffix(`ON CONFLICT (collection, id) DO UPDATE SET
            data = excluded.data,
            version = excluded.version,
            last_modified = excluded.last_modified,
            last_synced = excluded.last_synced,
            expires_at = excluded.expires_at,
            priority = excluded.priority`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = b.db.ExecContext(ctx, query, args...); err != nil {
		b.logger.Err(err).
			Str("func", "sqliteBackend.Put").
			Str("collection", doc.Collection).
			Str("id", doc.ID).
			Msg("failed to upsert document")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (b *sqliteBackend) Get(ctx context.Context, key models.DocumentKey) (models.Document, bool, error) {
	query, args, err := sqlite.
		Select("id", "collection", "data", "version", "last_modified", "last_synced", "expires_at", "priority").
		From("documents").
		Where(sq.Eq{"collection": key.Collection, "id": key.ID}).
		ToSql()
	if err != nil {
		return models.Document{}, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		doc  models.Document
		data []byte
	)
	row := b.db.QueryRowContext(ctx, query, args...)
	scanErr := row.Scan(
		&doc.ID,
		&doc.Collection,
		&data,
		&doc.Metadata.Version,
		&doc.Metadata.LastModified,
		&doc.Metadata.LastSynced,
		&doc.Metadata.ExpiresAt,
		&doc.Metadata.Priority,
	)
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.Document{}, false, nil
		}
		return models.Document{}, false, fmt.Errorf("%w: %w", ErrExecutingQuery, scanErr)
	}

	doc.Data = data

	return doc, true, nil
}

func (b *sqliteBackend) Delete(ctx context.Context, key models.DocumentKey) error {
	query, args, err := sqlite.
		Delete("documents").
		Where(sq.Eq{"collection": key.Collection, "id": key.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = b.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (b *sqliteBackend) List(ctx context.Context, collection string) ([]models.Document, error) {
	builder := sqlite.
		Select("id", "collection", "data", "version", "last_modified", "last_synced", "expires_at", "priority").
		From("documents").
		OrderBy("last_modified ASC", "id ASC")
	if collection != "" {
		builder = builder.Where(sq.Eq{"collection": collection})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := b.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var (
			doc  models.Document
			data []byte
		)
		scanErr := rows.Scan(
			&doc.ID,
			&doc.Collection,
			&data,
			&doc.Metadata.Version,
			&doc.Metadata.LastModified,
			&doc.Metadata.LastSynced,
			&doc.Metadata.ExpiresAt,
			&doc.Metadata.Priority,
		)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}

		doc.Data = data
		docs = append(docs, doc)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return docs, nil
}

func (b *sqliteBackend) PutDeletion(ctx context.Context, del models.DeletionRecord) error {
	query, args, err := sqlite.
		Insert("deletion_records").
		Columns("collection", "id", "deleted_at", "deleted_by", "version").
		Values(del.Collection, del.ID, del.DeletedAt, del.DeletedBy, del.Version).
		Suffix(`ON CONFLICT (collection, id) DO UPDATE SET
            deleted_at = excluded.deleted_at,
            deleted_by = excluded.deleted_by,
            version = excluded.version`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = b.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (b *sqliteBackend) GetDeletion(ctx context.Context, key models.DocumentKey) (models.DeletionRecord, bool, error) {
	query, args, err := sqlite.
		Select("id", "collection", "deleted_at", "deleted_by", "version").
		From("deletion_records").
		Where(sq.Eq{"collection": key.Collection, "id": key.ID}).
		ToSql()
	if err != nil {
		return models.DeletionRecord{}, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var del models.DeletionRecord
	row := b.db.QueryRowContext(ctx, query, args...)
	scanErr := row.Scan(&del.ID, &del.Collection, &del.DeletedAt, &del.DeletedBy, &del.Version)
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.DeletionRecord{}, false, nil
		}
		return models.DeletionRecord{}, false, fmt.Errorf("%w: %w", ErrExecutingQuery, scanErr)
	}

	return del, true, nil
}

func (b *sqliteBackend) Clear(ctx context.Context, collection string) error {
	for _, table := range []string{"documents", "deletion_records"} {
		query, args, err := sqlite.
			Delete(table).
			Where(sq.Eq{"collection": collection}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if _, err = b.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	return nil
}

func (b *sqliteBackend) Stats(ctx context.Context) (StorageStats, error) {
	query, args, err := sqlite.
		Select(
			"COALESCE(SUM(LENGTH(data)), 0)",
			"COUNT(*)",
			"COUNT(DISTINCT collection)",
		).
		From("documents").
		ToSql()
	if err != nil {
		return StorageStats{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var stats StorageStats
	row := b.db.QueryRowContext(ctx, query, args...)
	scanErr := row.Scan(&stats.TotalSize, &stats.DocumentCount, &stats.CollectionCount)
	if scanErr != nil {
		return StorageStats{}, fmt.Errorf("%w: %w", ErrExecutingQuery, scanErr)
	}

	// MIN/MAX aggregates erase the column's declared type, so the driver
	// would hand back strings; ordered single-row selects keep time.Time.
	stats.OldestModified, err = b.modifiedBound(ctx, "ASC")
	if err != nil {
		return StorageStats{}, err
	}
	stats.NewestModified, err = b.modifiedBound(ctx, "DESC")
	if err != nil {
		return StorageStats{}, err
	}

	return stats, nil
}

func (b *sqliteBackend) modifiedBound(ctx context.Context, direction string) (*time.Time, error) {
	query, args, err := sqlite.
		Select("last_modified").
		From("documents").
		OrderBy("last_modified " + direction).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var bound time.Time
	scanErr := b.db.QueryRowContext(ctx, query, args...).Scan(&bound)
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, scanErr)
	}

	return &bound, nil
}

func (b *sqliteBackend) Close() error {
	return b.db.Close()
}
