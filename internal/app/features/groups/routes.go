// internal/app/features/groups/routes.go
package groups

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dalemusser/pindrop/internal/app/system/auth"
)

func Routes(h *Handler, tokens *auth.Manager, log *zap.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(tokens.Require(log))

	r.Get("/", h.HandleList)
	r.Post("/", h.HandleCreate)
	r.Get("/{id}", h.HandleGet)
	r.Patch("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)

	r.Get("/{id}/invite", h.HandleGetInvite)
	r.Post("/{id}/invite", h.HandleRegenerateInvite)
	r.Post("/{id}/join", h.HandleJoin)

	r.Get("/{id}/members", h.HandleListMembers)
	r.Delete("/{id}/members/{userID}", h.HandleKick)
	r.Post("/{id}/members/{userID}/promote", h.HandlePromote)

	r.Post("/{id}/avatar", h.HandleUploadAvatar)

	return r
}
