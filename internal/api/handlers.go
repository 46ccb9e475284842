// Labelboard - Course Label Management
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/labelboard

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/labelboard/internal/labels"
	"github.com/tomtom215/labelboard/internal/xsrf"
)

// RestPath is the single REST endpoint for label records. Method
// selects the operation: GET reads, PUT writes, DELETE removes.
const RestPath = "/rest/labels/item"

// Anti-forgery action names for REST write operations. GET responses
// mint a put token bound to the fetched key; delete tokens are minted
// by the dashboard alongside each record's delete link.
const (
	ActionPut    = "label-put"
	ActionDelete = "label-delete"
)

// Handler serves the label REST endpoint and health probes.
type Handler struct {
	service   *labels.Service
	tokens    *xsrf.Manager
	readiness func() error
	startTime time.Time
}

// NewHandler creates a Handler. readiness reports whether the backing
// store is usable; nil means always ready.
func NewHandler(service *labels.Service, tokens *xsrf.Manager, readiness func() error) *Handler {
	return &Handler{
		service:   service,
		tokens:    tokens,
		readiness: readiness,
		startTime: time.Now(),
	}
}

type healthStatus struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
	Error  string `json:"error,omitempty"`
}

func (h *Handler) writeHealth(w http.ResponseWriter, code int, status healthStatus) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(status)
}

// HealthLive reports process liveness.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	h.writeHealth(w, http.StatusOK, healthStatus{
		Status: "ok",
		Uptime: time.Since(h.startTime).Round(time.Second).String(),
	})
}

// HealthReady reports readiness to serve traffic, checking the backing
// store when a readiness probe was configured.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.readiness != nil {
		if err := h.readiness(); err != nil {
			h.writeHealth(w, http.StatusServiceUnavailable, healthStatus{
				Status: "unavailable",
				Uptime: time.Since(h.startTime).Round(time.Second).String(),
				Error:  err.Error(),
			})
			return
		}
	}
	h.writeHealth(w, http.StatusOK, healthStatus{
		Status: "ok",
		Uptime: time.Since(h.startTime).Round(time.Second).String(),
	})
}
