// internal/app/features/comments/delete.go
package comments

import (
	"net/http"

	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/app/system/auth"
	"github.com/dalemusser/pindrop/internal/app/system/httpjson"
	"github.com/dalemusser/pindrop/internal/app/system/timeouts"
	"github.com/dalemusser/pindrop/internal/domain/models"
)

// HandleDelete handles DELETE /comments/{id}. Author-only; reactions on the
// comment go with it.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentIdentity(r.Context())
	if !ok {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Unauthenticated, "authentication required"))
		return
	}

	id, err := urlID(r, "id")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	comment, err := h.loadComment(r, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if comment.AuthorID != caller.UserID {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Forbidden, "only the author can delete a comment"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete comment")
	defer cancel()

	if err := h.Reactions.DeleteByTarget(ctx, models.TargetComment, id); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if err := h.Comments.Delete(ctx, id); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusNoContent, nil)
}
