// internal/app/features/comments/create.go
package comments

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dalemusser/pindrop/internal/app/policy/pinpolicy"
	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/app/system/auth"
	"github.com/dalemusser/pindrop/internal/app/system/httpjson"
	"github.com/dalemusser/pindrop/internal/app/system/sanitize"
	"github.com/dalemusser/pindrop/internal/app/system/timeouts"
	"github.com/dalemusser/pindrop/internal/domain/models"
)

type createCommentRequest struct {
	PinID   string `json:"pin_id"`
	Content string `json:"content"`
}

// HandleCreate handles POST /comments. Commenting requires the ability to
// view the pin being commented on.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentIdentity(r.Context())
	if !ok {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Unauthenticated, "authentication required"))
		return
	}

	var req createCommentRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	pinID, err := primitive.ObjectIDFromHex(req.PinID)
	if err != nil {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "invalid pin_id"))
		return
	}
	content := sanitize.Rich(req.Content)
	if content == "" {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "content is required"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create comment")
	defer cancel()

	pin, err := h.loadPin(r, pinID)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	allowed, err := pinpolicy.CanView(ctx, h.DB, pin, &caller)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if !allowed {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Forbidden, "not authorized to comment on this pin"))
		return
	}

	comment, err := h.Comments.Create(ctx, models.Comment{
		PinID:    pinID,
		AuthorID: caller.UserID,
		Content:  content,
	})
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, comment)
}
