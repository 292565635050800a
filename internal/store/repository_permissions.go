// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-doc-sync/internal/logger"
	"github.com/MKhiriev/go-doc-sync/models"
)

// permissionRepository is the PostgreSQL-backed implementation of
// [PermissionSource]. Grants live in the "permission_grants" table with the
// action set stored as a JSONB array; group memberships live in
// "group_members".
type permissionRepository struct {
	*DB
}

// NewPermissionRepository constructs a [PermissionSource] backed by the
// provided database connection.
func NewPermissionRepository(db *DB) PermissionSource {
	return &permissionRepository{DB: db}
}

// GetUserPermissions implements [PermissionSource]. It returns grants that
// name the user directly plus grants naming any group the user belongs to,
// resolved in a single query through the group_members join.
func (p *permissionRepository) GetUserPermissions(ctx context.Context, userID string) ([]models.Permission, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Select(
			"g.id",
			"g.user_id",
			"g.group_id",
			"g.collection",
			"g.item_id",
			"g.actions",
			"g.scope",
		).
		From("permission_grants g").
		LeftJoin("group_members m ON m.group_id = g.group_id").
		Where(sq.Or{
			sq.Eq{"g.user_id": userID},
			sq.Eq{"m.user_id": userID},
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "permissionRepository.GetUserPermissions").
			Str("user_id", userID).
			Msg("failed to execute query for getting user permission grants")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	grants := make([]models.Permission, 0, 16)

	for rows.Next() {
		var (
			grant      models.Permission
			userIDCol  *string
			groupIDCol *string
			itemIDCol  *string
			rawActions []byte
		)

		scanErr := rows.Scan(
			&grant.ID,
			&userIDCol,
			&groupIDCol,
			&grant.Collection,
			&itemIDCol,
			&rawActions,
			&grant.Scope,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "permissionRepository.GetUserPermissions").
				Str("user_id", userID).
				Msg("failed to scan permission grant row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		if userIDCol != nil {
			grant.UserID = *userIDCol
		}
		if groupIDCol != nil {
			grant.GroupID = *groupIDCol
		}
		if itemIDCol != nil {
			grant.ItemID = *itemIDCol
		}
		if err = json.Unmarshal(rawActions, &grant.Actions); err != nil {
			log.Err(err).
				Str("func", "permissionRepository.GetUserPermissions").
				Str("grant_id", grant.ID).
				Msg("failed to decode grant action set")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		grants = append(grants, grant)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "permissionRepository.GetUserPermissions").
			Str("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return grants, nil
}

// GetUserGroups implements [PermissionSource].
func (p *permissionRepository) GetUserGroups(ctx context.Context, userID string) ([]string, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Select("group_id").
		From("group_members").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("group_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "permissionRepository.GetUserGroups").
			Str("user_id", userID).
			Msg("failed to execute query for getting user groups")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	groups := make([]string, 0, 8)

	for rows.Next() {
		var groupID string
		if scanErr := rows.Scan(&groupID); scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		groups = append(groups, groupID)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return groups, nil
}
