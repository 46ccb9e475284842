// Labelboard - Course Label Management
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/labelboard

package xsrf

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestManager(t *testing.T, ttl time.Duration) *Manager {
	t.Helper()
	m, err := NewManager(testSecret, ttl)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}
	return m
}

func TestNewManagerRejectsShortSecret(t *testing.T) {
	if _, err := NewManager("short", 0); err == nil {
		t.Error("expected error for short secret")
	}
}

func TestCreateAndVerifyRoundTrip(t *testing.T) {
	m := newTestManager(t, time.Minute)

	token, err := m.CreateToken("label-put", map[string]string{"key": "1"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if !m.VerifyToken(token, "label-put", map[string]string{"key": "1"}) {
		t.Error("expected valid token to verify")
	}
}

func TestVerifyRejectsWrongAction(t *testing.T) {
	m := newTestManager(t, time.Minute)

	token, err := m.CreateToken("label-put", map[string]string{"key": "1"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if m.VerifyToken(token, "label-delete", map[string]string{"key": "1"}) {
		t.Error("token scoped to label-put must not verify for label-delete")
	}
}

func TestVerifyRejectsWrongBoundKey(t *testing.T) {
	m := newTestManager(t, time.Minute)

	token, err := m.CreateToken("label-put", map[string]string{"key": "1"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if m.VerifyToken(token, "label-put", map[string]string{"key": "2"}) {
		t.Error("token bound to key 1 must not verify for key 2")
	}
	if m.VerifyToken(token, "label-put", nil) {
		t.Error("token bound to a key must not verify without bound fields")
	}
}

func TestVerifyRejectsUnboundTokenForBoundCheck(t *testing.T) {
	m := newTestManager(t, time.Minute)

	token, err := m.CreateToken("add_course_label", nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if !m.VerifyToken(token, "add_course_label", nil) {
		t.Error("unbound token should verify with nil bound fields")
	}
	if m.VerifyToken(token, "add_course_label", map[string]string{"key": "1"}) {
		t.Error("unbound token must not verify against bound fields")
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	m := newTestManager(t, time.Minute)

	token, err := m.CreateToken("label-put", map[string]string{"key": "1"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	tampered := token[:len(token)-4] + "XXXX"
	if m.VerifyToken(tampered, "label-put", map[string]string{"key": "1"}) {
		t.Error("tampered token must be rejected")
	}

	// Flipping a claims byte must invalidate the signature too.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	mangled := parts[0] + "." + parts[1][:len(parts[1])-2] + "AA." + parts[2]
	if m.VerifyToken(mangled, "label-put", map[string]string{"key": "1"}) {
		t.Error("token with altered claims must be rejected")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m := newTestManager(t, time.Millisecond)

	token, err := m.CreateToken("label-put", map[string]string{"key": "1"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if m.VerifyToken(token, "label-put", map[string]string{"key": "1"}) {
		t.Error("expired token must be rejected")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := newTestManager(t, time.Minute)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if m.VerifyToken(token, "label-put", nil) {
			t.Errorf("expected %q to be rejected", token)
		}
	}
}

func TestVerifyRejectsTokenFromDifferentSecret(t *testing.T) {
	m1 := newTestManager(t, time.Minute)
	m2, err := NewManager("ffffffffffffffffffffffffffffffff", time.Minute)
	if err != nil {
		t.Fatalf("failed to create manager: %v", err)
	}

	token, err := m2.CreateToken("label-put", map[string]string{"key": "1"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if m1.VerifyToken(token, "label-put", map[string]string{"key": "1"}) {
		t.Error("token signed with a different secret must be rejected")
	}
}
