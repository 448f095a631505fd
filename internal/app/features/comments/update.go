// internal/app/features/comments/update.go
package comments

import (
	"net/http"

	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/app/system/auth"
	"github.com/dalemusser/pindrop/internal/app/system/httpjson"
	"github.com/dalemusser/pindrop/internal/app/system/sanitize"
	"github.com/dalemusser/pindrop/internal/app/system/timeouts"
)

type updateCommentRequest struct {
	Content string `json:"content"`
}

// HandleUpdate handles PATCH /comments/{id}. Only the author may edit;
// neither app admins nor group members get an override.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
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

	var req updateCommentRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	content := sanitize.Rich(req.Content)
	if content == "" {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "content is required"))
		return
	}

	comment, err := h.loadComment(r, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if comment.AuthorID != caller.UserID {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Forbidden, "only the author can edit a comment"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update comment")
	defer cancel()

	updated, err := h.Comments.UpdateContent(ctx, id, content)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusOK, updated)
}
