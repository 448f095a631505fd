// internal/app/features/pins/routes.go
package pins

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/pindrop/internal/app/system/auth"
)

func Routes(h *Handler, tokens *auth.Manager, log *zap.Logger) chi.Router {
	r := chi.NewRouter()

	// Feeds and single-pin reads work for anonymous callers too; the
	// visibility rules narrow what they see.
	r.Group(func(pr chi.Router) {
		pr.Use(tokens.Optional(log))

		pr.Get("/", h.HandleList)
		pr.Get("/{id}", h.HandleGet)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(tokens.Require(log))

		pr.Get("/me", h.HandleMine)
		pr.Post("/", h.HandleCreate)
		pr.Patch("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
		pr.Post("/{id}/media", h.HandleUploadMedia)
	})

	return r
}
