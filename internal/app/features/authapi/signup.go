// internal/app/features/authapi/signup.go
package authapi

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	userstore "github.com/dalemusser/pindrop/internal/app/store/users"
	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/app/system/httpjson"
	"github.com/dalemusser/pindrop/internal/app/system/sanitize"
	"github.com/dalemusser/pindrop/internal/app/system/timeouts"
	"github.com/dalemusser/pindrop/internal/domain/models"
)

const minPasswordLen = 8

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// HandleSignup handles POST /auth/signup. Creates the account and returns
// a bearer token so new users are signed in immediately.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Name = sanitize.Plain(req.Name)
	if _, err := mail.ParseAddress(req.Email); err != nil {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "invalid email address"))
		return
	}
	if len(req.Password) < minPasswordLen {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "password must be at least 8 characters"))
		return
	}
	if req.Name == "" {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "name is required"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "signup")
	defer cancel()

	user, err := h.Users.Create(ctx, models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         models.RoleUser,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			httpjson.WriteError(w, h.Log, apperr.Wrap(apperr.Conflict, "email already registered", err))
			return
		}
		httpjson.WriteError(w, h.Log, err)
		return
	}

	tok, err := h.Tokens.Issue(user.ID, user.Role)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, authResponse{Token: tok.Value, User: user})
}
