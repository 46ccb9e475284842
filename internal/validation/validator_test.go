// Labelboard - Course Label Management
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/labelboard

package validation

import (
	"errors"
	"strings"
	"testing"
)

type testPayload struct {
	Title       string `validate:"required,max=10"`
	Description string `validate:"max=20"`
}

func TestValidateStructSuccess(t *testing.T) {
	p := testPayload{Title: "Beginner", Description: "Intro courses"}
	if err := ValidateStruct(&p); err != nil {
		t.Errorf("expected valid payload, got %v", err)
	}
}

func TestValidateStructRequired(t *testing.T) {
	p := testPayload{Title: ""}
	err := ValidateStruct(&p)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var verr *RequestValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *RequestValidationError, got %T", err)
	}
	if len(verr.Fields()) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(verr.Fields()))
	}
	if verr.Fields()[0].Field != "Title" || verr.Fields()[0].Tag != "required" {
		t.Errorf("unexpected field error: %+v", verr.Fields()[0])
	}
	if !strings.Contains(err.Error(), "Title is required") {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestValidateStructMax(t *testing.T) {
	p := testPayload{
		Title:       "way too long for the limit",
		Description: strings.Repeat("x", 30),
	}
	err := ValidateStruct(&p)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var verr *RequestValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *RequestValidationError, got %T", err)
	}
	if len(verr.Fields()) != 2 {
		t.Errorf("expected 2 field errors, got %d", len(verr.Fields()))
	}
	if !strings.Contains(err.Error(), "; ") {
		t.Errorf("expected combined message, got %q", err.Error())
	}
}
