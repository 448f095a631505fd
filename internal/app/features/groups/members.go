// internal/app/features/groups/members.go
package groups

import (
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/dalemusser/pindrop/internal/app/policy/grouppolicy"
	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/app/system/auth"
	"github.com/dalemusser/pindrop/internal/app/system/httpjson"
	"github.com/dalemusser/pindrop/internal/app/system/timeouts"
	"github.com/dalemusser/pindrop/internal/domain/models"
)

// memberResponse joins a membership record with its user's display summary.
type memberResponse struct {
	UserID   primitive.ObjectID  `json:"user_id"`
	Role     string              `json:"role"`
	JoinedAt time.Time           `json:"joined_at"`
	User     *models.UserSummary `json:"user,omitempty"`
}

// HandleListMembers handles GET /groups/{id}/members. Members only.
func (h *Handler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	if _, err := h.loadGroup(r, id); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if _, err := h.requireMember(r, id); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list group members")
	defer cancel()

	memberships, err := h.Members.ListByGroup(ctx, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	userIDs := make([]primitive.ObjectID, 0, len(memberships))
	for _, m := range memberships {
		userIDs = append(userIDs, m.UserID)
	}
	sums, err := h.Users.SummariesByIDs(ctx, userIDs)
	if err != nil {
		h.Log.Warn("load member summaries", zap.Error(err))
		sums = nil
	}

	out := make([]memberResponse, 0, len(memberships))
	for _, m := range memberships {
		resp := memberResponse{
			UserID:   m.UserID,
			Role:     m.Role,
			JoinedAt: m.CreatedAt,
		}
		if s, ok := sums[m.UserID]; ok {
			resp.User = &s
		}
		out = append(out, resp)
	}

	httpjson.Write(w, http.StatusOK, out)
}

// requireManager returns the caller when they may administer the group.
func (h *Handler) requireManager(r *http.Request, groupID primitive.ObjectID) (auth.Identity, error) {
	caller, ok := auth.CurrentIdentity(r.Context())
	if !ok {
		return auth.Identity{}, apperr.E(apperr.Unauthenticated, "authentication required")
	}
	allowed, err := grouppolicy.CanManage(r.Context(), h.DB, &caller, groupID)
	if err != nil {
		return auth.Identity{}, err
	}
	if !allowed {
		return auth.Identity{}, apperr.E(apperr.Forbidden, "group admin access required")
	}
	return caller, nil
}

// HandleKick handles DELETE /groups/{id}/members/{userID}. Removing a
// membership removes whatever role it held, admin or member alike.
func (h *Handler) HandleKick(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	userID, err := urlID(r, "userID")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	if _, err := h.loadGroup(r, id); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	caller, err := h.requireManager(r, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "kick group member")
	defer cancel()

	if err := h.Members.Remove(ctx, id, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.WriteError(w, h.Log, apperr.E(apperr.NotFound, "user is not a member of this group"))
			return
		}
		httpjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("group member removed",
		zap.String("group_id", id.Hex()),
		zap.String("user_id", userID.Hex()),
		zap.String("removed_by", caller.UserID.Hex()))
	httpjson.Write(w, http.StatusNoContent, nil)
}

// HandlePromote handles POST /groups/{id}/members/{userID}/promote.
// A member promoting themself before holding admin standing is refused by
// the manage check.
func (h *Handler) HandlePromote(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	userID, err := urlID(r, "userID")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	if _, err := h.loadGroup(r, id); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if _, err := h.requireManager(r, id); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "promote group member")
	defer cancel()

	if err := h.Members.Promote(ctx, id, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.WriteError(w, h.Log, apperr.E(apperr.NotFound, "user is not a member of this group"))
			return
		}
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusNoContent, nil)
}
