package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	plain := New(ErrCodeNotFound, "relationship not found")
	if plain.Error() != "NOT_FOUND: relationship not found" {
		t.Errorf("Error() = %q", plain.Error())
	}

	cause := errors.New("connection refused")
	wrapped := Wrap(cause, ErrCodeInternalError, "failed to load relationship")
	if wrapped.Error() != "INTERNAL_ERROR: failed to load relationship (connection refused)" {
		t.Errorf("Error() = %q", wrapped.Error())
	}
}

func TestUnwrapPreservesCause(t *testing.T) {
	cause := errors.New("deadlock detected")
	wrapped := Wrap(cause, ErrCodeTransientFailure, "transaction aborted")

	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestCodeExtraction(t *testing.T) {
	err := New(ErrCodeCapacityExceeded, "requester is full")
	if Code(err) != ErrCodeCapacityExceeded {
		t.Errorf("Code() = %q, want %q", Code(err), ErrCodeCapacityExceeded)
	}

	// Codes survive another layer of wrapping.
	outer := fmt.Errorf("handling request: %w", err)
	if Code(outer) != ErrCodeCapacityExceeded {
		t.Errorf("Code() through fmt wrap = %q, want %q", Code(outer), ErrCodeCapacityExceeded)
	}

	if Code(errors.New("anonymous")) != ErrCodeInternalError {
		t.Errorf("Code() on a plain error should fall back to %q", ErrCodeInternalError)
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidState, "relationship is not pending")
	if !Is(err, ErrCodeInvalidState) {
		t.Error("Is() = false, want true")
	}
	if Is(err, ErrCodeNotFound) {
		t.Error("Is() matched the wrong code")
	}
	if Is(nil, ErrCodeNotFound) {
		t.Error("Is(nil, ...) must be false")
	}
}
