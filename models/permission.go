// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// PermissionAction is one member of the closed set of actions a grant can
// allow. ActionAdmin implies every other action.
type PermissionAction int

const (
	ActionRead PermissionAction = iota + 1
	ActionWrite
	ActionDelete
	ActionAdmin
)

// Valid reports whether a is one of the defined actions.
func (a PermissionAction) Valid() bool {
	return a >= ActionRead && a <= ActionAdmin
}

// String implements fmt.Stringer for log output.
func (a PermissionAction) String() string {
	switch a {
	case ActionRead:
		return "read"
	case ActionWrite:
		return "write"
	case ActionDelete:
		return "delete"
	case ActionAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// PermissionScope tells whether a grant covers a whole collection or one item.
type PermissionScope int

const (
	ScopeCollection PermissionScope = iota + 1
	ScopeItem
)

// Permission is a single allow-list access rule. Exactly one of UserID and
// GroupID identifies the grantee. A grant with ItemID set applies only to
// that item; with ItemID empty it applies to the whole collection. There is
// no deny action: absence of a matching grant is the deny.
type Permission struct {
	ID         string             `json:"id"`
	UserID     string             `json:"user_id,omitempty"`
	GroupID    string             `json:"group_id,omitempty"`
	Collection string             `json:"collection"`
	ItemID     string             `json:"item_id,omitempty"`
	Actions    []PermissionAction `json:"actions"`
	Scope      PermissionScope    `json:"scope"`
}

// Matches reports whether the grant applies to one specific (collection,
// itemID) pair for a grantee already known to match UserID/GroupID.
// An empty grant ItemID matches every item of the collection.
func (p Permission) Matches(collection, itemID string) bool {
	if p.Collection != collection {
		return false
	}
	return p.ItemID == "" || p.ItemID == itemID
}

// Subject is the already-authenticated caller identity the resolver checks
// grants against. Group membership resolution happens in the external auth
// layer; the engine receives the final list.
type Subject struct {
	UserID   string   `json:"user_id"`
	GroupIDs []string `json:"group_ids,omitempty"`
}
