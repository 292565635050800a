// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, HTTP client initialization, JWT token
// validation, and other common operations.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key used to store the authenticated user identifier
// in the context. Used together with GetUserIDFromContext for type-safe
// retrieval of the user ID from context.Context.
var UserIDCtxKey = contextKey("userID")

// GroupIDsCtxKey is the key used to store the authenticated user's group
// memberships in the context. The auth middleware resolves groups once per
// request so permission checks never re-parse the token.
var GroupIDsCtxKey = contextKey("groupIDs")

// GetUserIDFromContext retrieves the user identifier from the context.
//
// Returns the user ID and an ok flag:
//   - ok == true  — value is found and has the correct string type
//   - ok == false — value is missing or has an unexpected type
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}

// GetGroupIDsFromContext retrieves the user's group memberships from the
// context. A user belonging to no groups yields an empty slice with ok true
// when the auth middleware has run; ok is false when it has not.
func GetGroupIDsFromContext(ctx context.Context) ([]string, bool) {
	groups, ok := ctx.Value(GroupIDsCtxKey).([]string)
	return groups, ok
}
