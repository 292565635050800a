// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-doc-sync/internal/logger"
	"github.com/MKhiriev/go-doc-sync/models"
)

// psql is the shared squirrel builder configured for PostgreSQL placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// documentRepository is the PostgreSQL-backed implementation of
// [BackingStore]. It serves the "documents", "deletion_records" and
// "collections" tables using the embedded [*DB] connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (collection, since, limit, offset).
type documentRepository struct {
	*DB
}

// NewDocumentRepository constructs a [BackingStore] backed by the provided
// database connection.
func NewDocumentRepository(db *DB) BackingStore {
	return &documentRepository{DB: db}
}

// CollectionExists implements [BackingStore].
func (d *documentRepository) CollectionExists(ctx context.Context, collection string) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Select("1").
		From("collections").
		Where(sq.Eq{"name": collection}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var one int
	row := d.DB.QueryRowContext(ctx, query, args...)
	if scanErr := row.Scan(&one); scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return false, nil
		}
		log.Err(scanErr).
			Str("func", "documentRepository.CollectionExists").
			Str("collection", collection).
			Msg("failed to check collection registration")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, scanErr)
	}

	return true, nil
}

// GetDocuments implements [BackingStore]. The query is built dynamically:
// the since bound is only added when the caller supplies one, so an omitted
// since walks the full collection snapshot.
func (d *documentRepository) GetDocuments(ctx context.Context, collection string, since *time.Time, limit, offset int) ([]models.Document, error) {
	log := logger.FromContext(ctx)

	builder := psql.
		Select(
			"id",
			"collection",
			"data",
			"version",
			"last_modified",
			"expires_at",
			"retention_priority",
		).
		From("documents").
		Where(sq.Eq{"collection": collection}).
		OrderBy("last_modified ASC", "id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset))
	if since != nil {
		builder = builder.Where(sq.Gt{"last_modified": *since})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.GetDocuments").
			Str("collection", collection).
			Msg("failed to build documents query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := d.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.GetDocuments").
			Str("collection", collection).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to execute query for getting documents")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.Document, 0, limit)

	for rows.Next() {
		var doc models.Document

		scanErr := rows.Scan(
			&doc.ID,
			&doc.Collection,
			&doc.Data,
			&doc.Metadata.Version,
			&doc.Metadata.LastModified,
			&doc.Metadata.ExpiresAt,
			&doc.Metadata.Priority,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "documentRepository.GetDocuments").
				Str("collection", collection).
				Msg("failed to scan document row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		results = append(results, doc)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "documentRepository.GetDocuments").
			Str("collection", collection).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// GetDeletions implements [BackingStore].
func (d *documentRepository) GetDeletions(ctx context.Context, collection string, since *time.Time, limit, offset int) ([]models.DeletionRecord, error) {
	log := logger.FromContext(ctx)

	builder := psql.
		Select(
			"id",
			"collection",
			"deleted_at",
			"deleted_by",
			"version",
		).
		From("deletion_records").
		Where(sq.Eq{"collection": collection}).
		OrderBy("deleted_at ASC", "id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset))
	if since != nil {
		builder = builder.Where(sq.Gt{"deleted_at": *since})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.GetDeletions").
			Str("collection", collection).
			Msg("failed to build deletions query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := d.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.GetDeletions").
			Str("collection", collection).
			Msg("failed to execute query for getting deletion records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.DeletionRecord, 0, limit)

	for rows.Next() {
		var rec models.DeletionRecord

		scanErr := rows.Scan(
			&rec.ID,
			&rec.Collection,
			&rec.DeletedAt,
			&rec.DeletedBy,
			&rec.Version,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "documentRepository.GetDeletions").
				Str("collection", collection).
				Msg("failed to scan deletion record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		results = append(results, rec)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "documentRepository.GetDeletions").
			Str("collection", collection).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}
