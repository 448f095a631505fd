// internal/app/features/pins/list.go
package pins

import (
	"context"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	pinstore "github.com/dalemusser/pindrop/internal/app/store/pins"
	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/app/system/auth"
	"github.com/dalemusser/pindrop/internal/app/system/httpjson"
	"github.com/dalemusser/pindrop/internal/app/system/timeouts"
	"github.com/dalemusser/pindrop/internal/domain/models"
)

// viewer resolves the caller's membership set once, so the feed is a
// single query rather than a per-pin lookup.
func (h *Handler) viewer(ctx context.Context, caller *auth.Identity) (pinstore.Viewer, error) {
	if caller == nil {
		return pinstore.Viewer{}, nil
	}
	groupIDs, err := h.Members.GroupIDsForUser(ctx, caller.UserID)
	if err != nil {
		return pinstore.Viewer{}, err
	}
	return pinstore.Viewer{
		UserID:   caller.UserID,
		IsAdmin:  caller.IsAdmin(),
		GroupIDs: groupIDs,
	}, nil
}

// decorateList bulk-loads owner summaries for a page of pins.
func (h *Handler) decorateList(ctx context.Context, pins []models.Pin) []pinResponse {
	ownerIDs := make([]primitive.ObjectID, 0, len(pins))
	seen := make(map[primitive.ObjectID]struct{}, len(pins))
	for _, p := range pins {
		if _, ok := seen[p.OwnerID]; ok {
			continue
		}
		seen[p.OwnerID] = struct{}{}
		ownerIDs = append(ownerIDs, p.OwnerID)
	}

	sums, err := h.Users.SummariesByIDs(ctx, ownerIDs)
	if err != nil {
		h.Log.Warn("load owner summaries", zap.Error(err))
		sums = nil
	}

	out := make([]pinResponse, 0, len(pins))
	for _, p := range pins {
		resp := pinResponse{Pin: p}
		if s, ok := sums[p.OwnerID]; ok {
			resp.Owner = &s
		}
		out = append(out, resp)
	}
	return out
}

// HandleList handles GET /pins with optional privacy, group_id, q (title
// search), limit, and offset query parameters.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := pinstore.ListOptions{}
	if p := q.Get("privacy"); p != "" {
		if !models.ValidPrivacy(p) {
			httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "invalid privacy filter"))
			return
		}
		opts.Privacy = p
	}
	opts.Search = q.Get("q")
	if g := q.Get("group_id"); g != "" {
		gid, err := primitive.ObjectIDFromHex(g)
		if err != nil {
			httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "invalid group_id filter"))
			return
		}
		opts.GroupID = &gid
	}
	if l := q.Get("limit"); l != "" {
		n, err := strconv.ParseInt(l, 10, 64)
		if err != nil || n < 0 {
			httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "invalid limit"))
			return
		}
		opts.Limit = n
	}
	if o := q.Get("offset"); o != "" {
		n, err := strconv.ParseInt(o, 10, 64)
		if err != nil || n < 0 {
			httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "invalid offset"))
			return
		}
		opts.Offset = n
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list pins")
	defer cancel()

	v, err := h.viewer(ctx, auth.Caller(r.Context()))
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	pins, err := h.Pins.ListVisible(ctx, v, opts)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusOK, h.decorateList(ctx, pins))
}
