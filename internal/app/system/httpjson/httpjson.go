// internal/app/system/httpjson/httpjson.go

// Package httpjson is the shared JSON boundary for feature handlers: request
// decoding, response writing, and the single place apperr kinds become HTTP
// status codes.
package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"go.uber.org/zap"
)

// maxBodyBytes bounds JSON request bodies. Media uploads go through
// multipart, not here.
const maxBodyBytes = 1 << 20

type errorBody struct {
	Error string `json:"error"`
}

// Write encodes v as JSON with the given status. A nil v writes only the
// status (use http.StatusNoContent for deletes).
func Write(w http.ResponseWriter, status int, v any) {
	if v == nil {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Decode reads the request body into dst. Unknown fields are rejected so
// client typos surface as Validation errors instead of silent drops.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperr.Wrap(apperr.Validation, "invalid request body", err)
	}
	return nil
}

// WriteError maps err's kind to a status code and writes a JSON error body.
// Internal errors are logged with their cause and reported generically so
// persistence details never leak to callers.
func WriteError(w http.ResponseWriter, log *zap.Logger, err error) {
	kind := apperr.KindOf(err)
	msg := "internal error"
	if kind != apperr.Internal {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			msg = ae.Message
		}
	} else if log != nil {
		log.Error("internal error", zap.Error(err))
	}
	Write(w, kind.Status(), errorBody{Error: msg})
}
