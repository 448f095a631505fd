// internal/app/features/authapi/login.go
package authapi

import (
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/app/system/httpjson"
	"github.com/dalemusser/pindrop/internal/app/system/timeouts"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin handles POST /auth/login. Wrong email and wrong password
// produce the same response so the endpoint does not leak which addresses
// have accounts.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if req.Email == "" || req.Password == "" {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "email and password are required"))
		return
	}

	// Brute-force protection: per-IP and per-email sliding windows.
	if allowed, reason := h.Logins.Check(r, req.Email); !allowed {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.RateLimited, reason))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "login")
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.WriteError(w, h.Log, apperr.E(apperr.Unauthenticated, "invalid credentials"))
			return
		}
		httpjson.WriteError(w, h.Log, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Unauthenticated, "invalid credentials"))
		return
	}

	tok, err := h.Tokens.Issue(user.ID, user.Role)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	// A successful login clears the per-email attempt window.
	h.Logins.ResetEmail(req.Email)

	httpjson.Write(w, http.StatusOK, authResponse{Token: tok.Value, User: *user})
}
