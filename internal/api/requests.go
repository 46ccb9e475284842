// Labelboard - Course Label Management
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/labelboard

package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
)

// maxRequestBody caps REST request bodies. Label records are small;
// anything near this limit is malformed or hostile.
const maxRequestBody = 1 << 20

// PutRequest is the write envelope sent by the editor. The payload
// arrives either as a JSON object or as a JSON string containing
// encoded JSON, depending on the client; DecodePayload handles both.
type PutRequest struct {
	Key       string          `json:"key"`
	Payload   json.RawMessage `json:"payload"`
	XSRFToken string          `json:"xsrf_token"`
}

// LabelPayload is the editable subset of a label record. Key and ID
// are accepted for tolerance but ignored; the record identity comes
// from the request envelope, never the payload.
type LabelPayload struct {
	Key         string `json:"key"`
	ID          string `json:"id"`
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"max=10000"`
}

// DecodeRequest reads and decodes a PutRequest from the request body.
func DecodeRequest(r *http.Request) (*PutRequest, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}

	var req PutRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("failed to decode request: %w", err)
	}
	return &req, nil
}

// DecodePayload unwraps the payload into its editable fields,
// tolerating the double-encoded string form.
func (req *PutRequest) DecodePayload() (*LabelPayload, error) {
	raw := bytes.TrimSpace(req.Payload)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, errors.New("request payload is empty")
	}

	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, fmt.Errorf("failed to decode payload wrapper: %w", err)
		}
		raw = []byte(inner)
	}

	var payload LabelPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}
	return &payload, nil
}
