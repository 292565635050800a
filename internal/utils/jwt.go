// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-doc-sync/models"
)

// ErrTokenIsExpired is returned when the exp claim of an otherwise valid
// token lies in the past.
var ErrTokenIsExpired = errors.New("token is expired")

// syncClaims is the claim set the external auth layer embeds in tokens it
// issues for the sync engine: the standard registered claims plus the
// caller's group memberships.
type syncClaims struct {
	jwt.RegisteredClaims
	Groups []string `json:"groups,omitempty"`
}

// GenerateJWTToken creates a signed HMAC-SHA256 JWT for the given subject.
//
// The token carries:
//   - Issuer    (iss): identifies the issuing service
//   - Subject   (sub): the user ID
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//   - groups        : the subject's group memberships
//
// It exists for tests and local tooling; in production the external auth
// layer issues tokens.
func GenerateJWTToken(issuer string, subject models.Subject, tokenDuration time.Duration, signKey string) (string, error) {
	if issuer == "" || subject.UserID == "" || tokenDuration == 0 || signKey == "" {
		return "", errors.New("invalid params for generating JWT token")
	}

	now := time.Now()
	claims := &syncClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Groups: subject.GroupIDs,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return signed, nil
}

// ValidateAndParseJWTToken verifies the signature, issuer and expiry of the
// given token string and extracts the caller identity from it.
//
// Validation includes:
//   - signature verification with the provided sign key (HMAC only)
//   - issuer (iss) claim check against tokenIssuer
//   - expiration (exp) claim check, surfaced as ErrTokenIsExpired
//   - subject (sub) claim presence
//
// On success it returns the subject with the user ID and group memberships
// resolved from the claims.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Subject, error) {
	claims := &syncClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Subject{}, ErrTokenIsExpired
		}
		return models.Subject{}, fmt.Errorf("error parsing JWT token: %w", err)
	}
	if !token.Valid {
		return models.Subject{}, errors.New("invalid JWT token")
	}
	if claims.Subject == "" {
		return models.Subject{}, errors.New("JWT token has no subject claim")
	}

	return models.Subject{UserID: claims.Subject, GroupIDs: claims.Groups}, nil
}
