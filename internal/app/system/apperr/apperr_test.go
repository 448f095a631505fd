package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", E(Validation, "missing title"), Validation},
		{"forbidden", E(Forbidden, "not your comment"), Forbidden},
		{"wrapped once", fmt.Errorf("load pin: %w", E(NotFound, "pin not found")), NotFound},
		{"wrapped with cause", Wrap(Conflict, "already reacted", errors.New("E11000")), Conflict},
		{"plain error", errors.New("boom"), Internal},
		{"nil cause unwrap", E(Unauthenticated, "token expired"), Unauthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{Validation, http.StatusBadRequest},
		{Unauthenticated, http.StatusUnauthorized},
		{Forbidden, http.StatusForbidden},
		{NotFound, http.StatusNotFound},
		{Conflict, http.StatusConflict},
		{Internal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := tt.kind.Status(); got != tt.want {
			t.Errorf("Status(%v): got %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("react: %w", E(Conflict, "already reacted"))
	if !Is(err, Conflict) {
		t.Error("expected Is(err, Conflict) to be true")
	}
	if Is(err, Forbidden) {
		t.Error("expected Is(err, Forbidden) to be false")
	}
	if Is(nil, Internal) {
		t.Error("expected Is(nil, ...) to be false")
	}
}

func TestErrorString(t *testing.T) {
	plain := E(NotFound, "group not found")
	if plain.Error() != "group not found" {
		t.Errorf("Error(): got %q", plain.Error())
	}
	wrapped := Wrap(Internal, "update pin", errors.New("connection reset"))
	if wrapped.Error() != "update pin: connection reset" {
		t.Errorf("Error(): got %q", wrapped.Error())
	}
	if !errors.Is(wrapped, wrapped.Err) {
		t.Error("expected Unwrap to expose the cause")
	}
}
