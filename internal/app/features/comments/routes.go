// internal/app/features/comments/routes.go
package comments

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/pindrop/internal/app/system/auth"
)

func Routes(h *Handler, tokens *auth.Manager, log *zap.Logger) chi.Router {
	r := chi.NewRouter()

	// Listing follows the parent pin's visibility, so anonymous callers
	// can read comments on public pins.
	r.Group(func(cr chi.Router) {
		cr.Use(tokens.Optional(log))

		cr.Get("/", h.HandleList)
	})

	r.Group(func(cr chi.Router) {
		cr.Use(tokens.Require(log))

		cr.Post("/", h.HandleCreate)
		cr.Patch("/{id}", h.HandleUpdate)
		cr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
