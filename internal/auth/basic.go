// Labelboard - Course Label Management
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/labelboard

// Package auth provides HTTP Basic Authentication for the admin
// dashboard. REST anti-forgery is handled separately by internal/xsrf.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/labelboard/internal/logging"
)

// BasicAuthManager validates admin credentials with a bcrypt-hashed
// password. The password is hashed once at construction so request
// verification does not re-hash the configured secret.
type BasicAuthManager struct {
	username     string
	passwordHash []byte
}

// NewBasicAuthManager creates a Basic Auth manager for the admin user.
func NewBasicAuthManager(username, password string) (*BasicAuthManager, error) {
	if username == "" {
		return nil, fmt.Errorf("admin username is required")
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("admin password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return &BasicAuthManager{
		username:     username,
		passwordHash: hash,
	}, nil
}

// ValidateCredentials reports whether the given username and password
// match the configured admin credentials. The username comparison is
// constant-time over a digest so mismatched lengths leak nothing;
// bcrypt comparison is constant-time by construction.
func (m *BasicAuthManager) ValidateCredentials(username, password string) bool {
	wantUser := sha256.Sum256([]byte(m.username))
	gotUser := sha256.Sum256([]byte(username))
	userOK := subtle.ConstantTimeCompare(wantUser[:], gotUser[:]) == 1

	passOK := bcrypt.CompareHashAndPassword(m.passwordHash, []byte(password)) == nil

	return userOK && passOK
}

// Middleware enforces Basic Auth on every request it wraps, challenging
// with WWW-Authenticate on failure.
func (m *BasicAuthManager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok || !m.ValidateCredentials(username, password) {
			logging.Ctx(r.Context()).Warn().
				Str("path", r.URL.Path).
				Msg("admin basic auth rejected")
			w.Header().Set("WWW-Authenticate", `Basic realm="labelboard admin"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
