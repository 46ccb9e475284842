// Labelboard - Course Label Management
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/labelboard

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/labelboard/internal/logging"
	"github.com/tomtom215/labelboard/internal/store"
	"github.com/tomtom215/labelboard/internal/validation"
)

// GetLabel fetches one record by key. The success envelope carries a
// put token bound to the fetched key, so the editor can write it back
// without a second round trip.
func (h *Handler) GetLabel(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")

	label, err := h.service.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, store.ErrLabelNotFound) {
			WriteNotFound(w, r, key)
			return
		}
		WriteInternalError(w, r, err)
		return
	}

	token, err := h.tokens.CreateToken(ActionPut, map[string]string{"key": key})
	if err != nil {
		WriteInternalError(w, r, err)
		return
	}

	WriteSuccess(w, r, MsgSuccess, label, token)
}

// PutLabel overwrites the editable fields of an existing record. The
// token is checked before anything else, so forged requests learn
// nothing, not even whether the key exists.
func (h *Handler) PutLabel(w http.ResponseWriter, r *http.Request) {
	req, err := DecodeRequest(r)
	if err != nil {
		WriteBadRequest(w, r, "Malformed request.")
		return
	}

	if !h.tokens.VerifyToken(req.XSRFToken, ActionPut, map[string]string{"key": req.Key}) {
		WriteForbidden(w, r)
		return
	}

	if _, err := h.service.Get(r.Context(), req.Key); err != nil {
		if errors.Is(err, store.ErrLabelNotFound) {
			WriteNotFound(w, r, req.Key)
			return
		}
		WriteInternalError(w, r, err)
		return
	}

	payload, err := req.DecodePayload()
	if err != nil {
		WriteBadRequest(w, r, "Malformed request payload.")
		return
	}

	if err := validation.ValidateStruct(payload); err != nil {
		WriteBadRequest(w, r, err.Error())
		return
	}

	if err := h.service.Update(r.Context(), req.Key, payload.Title, payload.Description); err != nil {
		if errors.Is(err, store.ErrLabelNotFound) {
			WriteNotFound(w, r, req.Key)
			return
		}
		WriteInternalError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().Str("key", req.Key).Msg("label updated")
	WriteSuccess(w, r, MsgSaved, nil, "")
}

// DeleteLabel removes one record by key. The key and token travel in
// the query string; the dashboard mints the token alongside each
// record's delete link. A key that is already gone is a 404, matching
// the lookup-first discipline of the other write path.
func (h *Handler) DeleteLabel(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	token := r.URL.Query().Get("xsrf_token")
	if token == "" {
		token = r.Header.Get("X-XSRF-Token")
	}

	if !h.tokens.VerifyToken(token, ActionDelete, map[string]string{"key": key}) {
		WriteForbidden(w, r)
		return
	}

	if _, err := h.service.Get(r.Context(), key); err != nil {
		if errors.Is(err, store.ErrLabelNotFound) {
			WriteNotFound(w, r, key)
			return
		}
		WriteInternalError(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), key); err != nil {
		WriteInternalError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().Str("key", key).Msg("label deleted")
	WriteSuccess(w, r, MsgDeleted, nil, "")
}
