// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-doc-sync/models"
)

const (
	testIssuer  = "go-doc-sync-test"
	testSignKey = "test-sign-key"
)

func TestJWTToken_RoundTrip(t *testing.T) {
	subject := models.Subject{UserID: "user-1", GroupIDs: []string{"team-a", "team-b"}}

	signed, err := GenerateJWTToken(testIssuer, subject, time.Hour, testSignKey)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	got, err := ValidateAndParseJWTToken(signed, testSignKey, testIssuer)
	require.NoError(t, err)
	assert.Equal(t, subject, got)
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		subject  models.Subject
		duration time.Duration
		signKey  string
	}{
		{"EmptyIssuer", "", models.Subject{UserID: "u"}, time.Hour, testSignKey},
		{"EmptyUserID", testIssuer, models.Subject{}, time.Hour, testSignKey},
		{"ZeroDuration", testIssuer, models.Subject{UserID: "u"}, 0, testSignKey},
		{"EmptySignKey", testIssuer, models.Subject{UserID: "u"}, time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.subject, tt.duration, tt.signKey)
			assert.Error(t, err)
		})
	}
}

func TestValidateAndParseJWTToken_Expired(t *testing.T) {
	subject := models.Subject{UserID: "user-1"}

	signed, err := GenerateJWTToken(testIssuer, subject, -time.Minute, testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(signed, testSignKey, testIssuer)
	assert.ErrorIs(t, err, ErrTokenIsExpired)
}

func TestValidateAndParseJWTToken_WrongKey(t *testing.T) {
	signed, err := GenerateJWTToken(testIssuer, models.Subject{UserID: "user-1"}, time.Hour, testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(signed, "other-key", testIssuer)
	assert.Error(t, err)
}

func TestValidateAndParseJWTToken_WrongIssuer(t *testing.T) {
	signed, err := GenerateJWTToken("someone-else", models.Subject{UserID: "user-1"}, time.Hour, testSignKey)
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(signed, testSignKey, testIssuer)
	assert.Error(t, err)
}
