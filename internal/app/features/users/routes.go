// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/pindrop/internal/app/system/auth"
)

func Routes(h *Handler, tokens *auth.Manager, log *zap.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(tokens.Require(log))

	r.Get("/me", h.HandleMe)
	r.Patch("/me", h.HandleUpdateMe)
	r.Delete("/me", h.HandleDeleteMe)
	r.Post("/me/avatar", h.HandleUploadAvatar)

	// Directory and account removal are admin tools.
	r.Group(func(ar chi.Router) {
		ar.Use(auth.RequireAdmin(log))

		ar.Get("/", h.HandleList)
		ar.Delete("/{id}", h.HandleDelete)
	})

	return r
}
