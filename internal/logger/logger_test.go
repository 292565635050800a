// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWithOutput_EmitsRoleField(t *testing.T) {
	var buf bytes.Buffer
	log := NewLoggerWithOutput("test-role", &buf)

	log.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "test-role", entry["role"])
	assert.Equal(t, "hello", entry["message"])
	assert.Contains(t, entry, "ts")
}

func TestNop_DiscardsOutput(t *testing.T) {
	log := Nop()

	// Must not panic and must not write anywhere.
	log.Error().Msg("dropped")
}

func TestFromContext_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLoggerWithOutput("ctx-role", &buf)

	ctx := parent.WithContext(context.Background())
	got := FromContext(ctx)

	got.Info().Msg("via context")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ctx-role", entry["role"])
}

func TestFromRequest_UsesRequestContext(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLoggerWithOutput("req-role", &buf)

	r := httptest.NewRequest("GET", "/", nil)
	r = r.WithContext(parent.WithContext(r.Context()))

	FromRequest(r).Info().Msg("via request")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-role", entry["role"])
}

func TestGetChildLogger_InheritsFields(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLoggerWithOutput("parent", &buf)

	child := parent.GetChildLogger()
	child.Info().Msg("child entry")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "parent", entry["role"])
}
