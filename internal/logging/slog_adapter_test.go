// Labelboard - Course Label Management
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/labelboard

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func newCapturedSlog(t *testing.T) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	return slog.New(NewSlogHandler()), &buf
}

func TestSlogHandlerWritesThroughZerolog(t *testing.T) {
	logger, buf := newCapturedSlog(t)

	logger.Info("service started", "name", "http-server")

	out := buf.String()
	if !strings.Contains(out, `"message":"service started"`) {
		t.Errorf("message missing from output: %s", out)
	}
	if !strings.Contains(out, `"name":"http-server"`) {
		t.Errorf("attribute missing from output: %s", out)
	}
	if !strings.Contains(out, `"level":"info"`) {
		t.Errorf("level missing from output: %s", out)
	}
}

func TestSlogHandlerLevels(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelDebug, `"level":"debug"`},
		{slog.LevelInfo, `"level":"info"`},
		{slog.LevelWarn, `"level":"warn"`},
		{slog.LevelError, `"level":"error"`},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			logger, buf := newCapturedSlog(t)
			logger.Log(context.Background(), tt.level, "event")
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("expected %s in output: %s", tt.want, buf.String())
			}
		})
	}
}

func TestSlogHandlerAttrKinds(t *testing.T) {
	logger, buf := newCapturedSlog(t)

	logger.Info("attrs",
		"count", int64(3),
		"ratio", 0.5,
		"ok", true,
		"wait", 2*time.Second,
	)

	out := buf.String()
	for _, want := range []string{`"count":3`, `"ratio":0.5`, `"ok":true`, `"wait":2000`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in output: %s", want, out)
		}
	}
}

func TestSlogHandlerWithAttrsAndGroup(t *testing.T) {
	logger, buf := newCapturedSlog(t)

	logger.With("component", "supervisor").WithGroup("restart").Info("backing off", "count", 2)

	out := buf.String()
	// An attribute attached before the group opens must not pick up
	// the group prefix; record attributes after it must.
	if !strings.Contains(out, `"component":"supervisor"`) {
		t.Errorf("With attribute missing: %s", out)
	}
	if strings.Contains(out, `"restart.component"`) {
		t.Errorf("pre-group attribute was group-prefixed: %s", out)
	}
	if !strings.Contains(out, `"restart.count":2`) {
		t.Errorf("group-prefixed attribute missing: %s", out)
	}
}

func TestSlogHandlerAttrsAfterGroupArePrefixed(t *testing.T) {
	logger, buf := newCapturedSlog(t)

	logger.WithGroup("restart").With("service", "http-server").Info("restarted", "count", 1)

	out := buf.String()
	if !strings.Contains(out, `"restart.service":"http-server"`) {
		t.Errorf("post-group With attribute not prefixed: %s", out)
	}
	if !strings.Contains(out, `"restart.count":1`) {
		t.Errorf("record attribute not prefixed: %s", out)
	}
}

func TestSlogHandlerEnabled(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "warn", Format: "json", Output: &buf})
	h := NewSlogHandler()

	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should be disabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled at warn level")
	}
}

func TestNewSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})

	NewSlogLogger().Info("bridge up")
	if !strings.Contains(buf.String(), "bridge up") {
		t.Errorf("slog logger did not reach the zerolog sink: %s", buf.String())
	}
}
