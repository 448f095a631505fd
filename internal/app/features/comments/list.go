// internal/app/features/comments/list.go
package comments

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/dalemusser/pindrop/internal/app/policy/pinpolicy"
	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/app/system/auth"
	"github.com/dalemusser/pindrop/internal/app/system/httpjson"
	"github.com/dalemusser/pindrop/internal/app/system/timeouts"
)

// HandleList handles GET /comments?pin_id=... in thread order, oldest first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	pinID, err := primitive.ObjectIDFromHex(r.URL.Query().Get("pin_id"))
	if err != nil {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "pin_id query parameter is required"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list comments")
	defer cancel()

	pin, err := h.loadPin(r, pinID)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	allowed, err := pinpolicy.CanView(ctx, h.DB, pin, auth.Caller(r.Context()))
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if !allowed {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Forbidden, "not authorized to view this pin"))
		return
	}

	comments, err := h.Comments.ListByPin(ctx, pinID)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	authorIDs := make([]primitive.ObjectID, 0, len(comments))
	seen := make(map[primitive.ObjectID]struct{}, len(comments))
	for _, c := range comments {
		if _, ok := seen[c.AuthorID]; ok {
			continue
		}
		seen[c.AuthorID] = struct{}{}
		authorIDs = append(authorIDs, c.AuthorID)
	}
	sums, err := h.Users.SummariesByIDs(ctx, authorIDs)
	if err != nil {
		h.Log.Warn("load author summaries", zap.Error(err))
		sums = nil
	}

	out := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		resp := commentResponse{Comment: c}
		if s, ok := sums[c.AuthorID]; ok {
			resp.Author = &s
		}
		out = append(out, resp)
	}

	httpjson.Write(w, http.StatusOK, out)
}
