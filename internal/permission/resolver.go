// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package permission implements the pure access-control check at the heart
// of the sync engine. A Resolver holds an immutable, collection-indexed set
// of allow-list grants and answers whether a subject may perform an action
// on an item. There is no deny rule: no matching grant means no access.
package permission

import (
	"github.com/MKhiriev/go-doc-sync/models"
)

// Resolver answers permission checks against a fixed grant set.
//
// Grants are indexed by collection at construction time so a check touches
// only the grants of the collection in question. A Resolver is immutable
// after construction and therefore safe for unlimited concurrent use;
// callers that receive updated grants build a new Resolver.
type Resolver struct {
	byCollection map[string][]models.Permission
}

// NewResolver builds a Resolver over the given grants. The caller is
// responsible for supplying a grant set already scoped to the subject(s) it
// will check (typically everything loaded for one user and their groups).
func NewResolver(grants []models.Permission) *Resolver {
	byCollection := make(map[string][]models.Permission, len(grants))
	for _, g := range grants {
		byCollection[g.Collection] = append(byCollection[g.Collection], g)
	}

	return &Resolver{byCollection: byCollection}
}

// Check reports whether subject may perform action on (collection, itemID).
//
// The effective action set is the union of the actions of every grant that
// matches the subject (by user ID or by any of the subject's group IDs) and
// the location: collection-scope grants match every item, item-scope grants
// match only their exact item. ActionAdmin in the union implies all actions.
//
// The function is total and side-effect free: any input yields a boolean,
// and an empty or foreign grant set simply yields false.
func (r *Resolver) Check(subject models.Subject, collection, itemID string, action models.PermissionAction) bool {
	for _, grant := range r.byCollection[collection] {
		if !r.granteeMatches(grant, subject) {
			continue
		}
		if !grant.Matches(collection, itemID) {
			continue
		}
		for _, allowed := range grant.Actions {
			if allowed == action || allowed == models.ActionAdmin {
				return true
			}
		}
	}

	return false
}

// granteeMatches reports whether the grant names the subject directly or via
// one of the subject's groups.
func (r *Resolver) granteeMatches(grant models.Permission, subject models.Subject) bool {
	if grant.UserID != "" && grant.UserID == subject.UserID {
		return true
	}
	if grant.GroupID == "" {
		return false
	}
	for _, groupID := range subject.GroupIDs {
		if grant.GroupID == groupID {
			return true
		}
	}

	return false
}
