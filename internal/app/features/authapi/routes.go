// internal/app/features/authapi/routes.go
package authapi

import (
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/signup", h.HandleSignup)
	r.Post("/login", h.HandleLogin)
	// Logout verifies the bearer token itself, so no middleware here.
	r.Post("/logout", h.HandleLogout)

	return r
}
