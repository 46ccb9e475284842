// Labelboard - Course Label Management
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/labelboard

// Package xsrf issues and verifies anti-forgery tokens for
// state-changing admin and REST actions.
//
// Tokens are HMAC-SHA256 signed JWTs scoped to an action name and bound
// to request fields (typically the target label's key), so a token
// minted for editing one label cannot be replayed against another, and
// a token for one action cannot authorize a different one.
// Verification is a pure function of (token, action, bound fields);
// no request context or server-side session is consulted.
package xsrf

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/labelboard/internal/metrics"
)

// DefaultTokenTTL bounds how long an issued token stays valid.
const DefaultTokenTTL = 24 * time.Hour

// claims carries the action scope and bound request fields.
type claims struct {
	Action string            `json:"action"`
	Bound  map[string]string `json:"bound,omitempty"`
	jwt.RegisteredClaims
}

// Manager issues and verifies action-scoped anti-forgery tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a token manager. The secret must be at least 32
// characters; the ttl falls back to DefaultTokenTTL when non-positive.
func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("xsrf secret must be at least 32 characters")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl}, nil
}

// CreateToken mints a token scoped to action and bound to the given
// fields. Pass nil bound fields for actions with no target (e.g. the
// dashboard "add" action).
func (m *Manager) CreateToken(action string, bound map[string]string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims{
		Action: action,
		Bound:  bound,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign xsrf token: %w", err)
	}
	return signed, nil
}

// VerifyToken reports whether the token is valid for the action and the
// bound fields. Any failure - bad signature, expiry, action mismatch,
// bound-field mismatch, malformed token - verifies false; callers fail
// closed on false without distinguishing the cause to the client.
func (m *Manager) VerifyToken(token, action string, bound map[string]string) bool {
	ok := m.verify(token, action, bound)
	metrics.RecordXSRFVerification(action, ok)
	return ok
}

func (m *Manager) verify(token, action string, bound map[string]string) bool {
	if token == "" {
		return false
	}

	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return false
	}

	c, ok := parsed.Claims.(*claims)
	if !ok {
		return false
	}
	if c.Action != action {
		return false
	}

	if len(c.Bound) != len(bound) {
		return false
	}
	for k, v := range bound {
		if c.Bound[k] != v {
			return false
		}
	}
	return true
}
