// internal/app/features/reports/routes.go
package reports

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/pindrop/internal/app/system/auth"
)

func Routes(h *Handler, tokens *auth.Manager, log *zap.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(tokens.Require(log))

	r.Post("/", h.HandleCreate)

	// The moderation queue is admin-only.
	r.Group(func(mr chi.Router) {
		mr.Use(auth.RequireAdmin(log))

		mr.Get("/", h.HandleList)
		mr.Patch("/{id}", h.HandleUpdateStatus)
	})

	return r
}
