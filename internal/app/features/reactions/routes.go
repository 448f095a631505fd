// internal/app/features/reactions/routes.go
package reactions

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/pindrop/internal/app/system/auth"
)

func Routes(h *Handler, tokens *auth.Manager, log *zap.Logger) chi.Router {
	r := chi.NewRouter()

	// Tallies are readable wherever the target pin is.
	r.Group(func(rr chi.Router) {
		rr.Use(tokens.Optional(log))

		rr.Get("/tally", h.HandleTally)
	})

	r.Group(func(rr chi.Router) {
		rr.Use(tokens.Require(log))

		rr.Post("/", h.HandleReact)
		rr.Delete("/", h.HandleUnreact)
		rr.Get("/me", h.HandleMine)
	})

	return r
}
