// Labelboard - Course Label Management
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/labelboard

// Package api provides the JSON REST contract for label records and the
// HTTP router assembling all surfaces.
//
// Every REST response uses one envelope shape:
//
//	{"status": 200, "message": "Success.", "payload": {...}, "xsrf_token": "..."}
//
// payload is present on GET success (the record fields) and on 404
// (echoing the requested key); xsrf_token is present only on GET
// success, carrying a freshly minted write token for the client.
package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/labelboard/internal/logging"
)

// Envelope is the wire shape shared by all REST responses.
type Envelope struct {
	Status    int         `json:"status"`
	Message   string      `json:"message"`
	Payload   interface{} `json:"payload,omitempty"`
	XSRFToken string      `json:"xsrf_token,omitempty"`
}

// Response messages. These are part of the wire contract; clients match
// on them.
const (
	MsgSuccess  = "Success."
	MsgSaved    = "Saved."
	MsgDeleted  = "Deleted."
	MsgNotFound = "Object not found."
	MsgBadToken = "Bad XSRF token. Please reload the page and try again."
)

// WriteEnvelope writes the envelope with its status as the HTTP status
// code.
func WriteEnvelope(w http.ResponseWriter, r *http.Request, env Envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(env.Status)

	if err := json.NewEncoder(w).Encode(env); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response envelope")
	}
}

// WriteSuccess writes a 200 envelope with an optional payload and token.
func WriteSuccess(w http.ResponseWriter, r *http.Request, message string, payload interface{}, xsrfToken string) {
	WriteEnvelope(w, r, Envelope{
		Status:    http.StatusOK,
		Message:   message,
		Payload:   payload,
		XSRFToken: xsrfToken,
	})
}

// WriteNotFound writes the 404 envelope, echoing the requested key in
// the payload.
func WriteNotFound(w http.ResponseWriter, r *http.Request, key string) {
	WriteEnvelope(w, r, Envelope{
		Status:  http.StatusNotFound,
		Message: MsgNotFound,
		Payload: map[string]string{"key": key},
	})
}

// WriteForbidden writes the 403 envelope for anti-forgery failures.
// The body is identical whether or not the target exists, so rejection
// leaks nothing about the keyspace.
func WriteForbidden(w http.ResponseWriter, r *http.Request) {
	WriteEnvelope(w, r, Envelope{
		Status:  http.StatusForbidden,
		Message: MsgBadToken,
	})
}

// WriteBadRequest writes a 400 envelope with the given message.
func WriteBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	WriteEnvelope(w, r, Envelope{
		Status:  http.StatusBadRequest,
		Message: message,
	})
}

// WriteInternalError writes a 500 envelope. The underlying error is
// logged, never sent to the client.
func WriteInternalError(w http.ResponseWriter, r *http.Request, err error) {
	logging.Ctx(r.Context()).Error().Err(err).Msg("internal error")
	WriteEnvelope(w, r, Envelope{
		Status:  http.StatusInternalServerError,
		Message: "Internal error.",
	})
}
