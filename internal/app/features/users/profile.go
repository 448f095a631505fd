// internal/app/features/users/profile.go
package users

import (
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/dalemusser/pindrop/internal/app/store/users"
	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/app/system/auth"
	"github.com/dalemusser/pindrop/internal/app/system/httpjson"
	"github.com/dalemusser/pindrop/internal/app/system/media"
	"github.com/dalemusser/pindrop/internal/app/system/sanitize"
	"github.com/dalemusser/pindrop/internal/app/system/timeouts"
)

// HandleMe handles GET /users/me.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentIdentity(r.Context())
	if !ok {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Unauthenticated, "authentication required"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get profile")
	defer cancel()

	user, err := h.Users.GetByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.WriteError(w, h.Log, apperr.E(apperr.NotFound, "user not found"))
			return
		}
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	Name *string `json:"name,omitempty"`
}

// HandleUpdateMe handles PATCH /users/me.
func (h *Handler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentIdentity(r.Context())
	if !ok {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Unauthenticated, "authentication required"))
		return
	}

	var req updateProfileRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	upd := userstore.ProfileUpdate{}
	if req.Name != nil {
		name := sanitize.Plain(*req.Name)
		if name == "" {
			httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "name cannot be empty"))
			return
		}
		upd.Name = &name
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update profile")
	defer cancel()

	user, err := h.Users.UpdateProfile(ctx, caller.UserID, upd)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.WriteError(w, h.Log, apperr.E(apperr.NotFound, "user not found"))
			return
		}
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusOK, user)
}

// HandleDeleteMe handles DELETE /users/me. The account record is removed;
// the user's pins and comments remain under their ID.
func (h *Handler) HandleDeleteMe(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentIdentity(r.Context())
	if !ok {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Unauthenticated, "authentication required"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete own account")
	defer cancel()

	if err := h.Users.Delete(ctx, caller.UserID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.WriteError(w, h.Log, apperr.E(apperr.NotFound, "user not found"))
			return
		}
		httpjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("account deleted by owner", zap.String("user_id", caller.UserID.Hex()))
	httpjson.Write(w, http.StatusNoContent, nil)
}

// HandleUploadAvatar handles POST /users/me/avatar.
func (h *Handler) HandleUploadAvatar(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentIdentity(r.Context())
	if !ok {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Unauthenticated, "authentication required"))
		return
	}
	if h.Media == nil {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Internal, "media storage is not configured"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, media.MaxUploadBytes)
	if err := r.ParseMultipartForm(media.MaxUploadBytes); err != nil {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "invalid multipart upload"))
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, `upload must include an "avatar" file field`))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !media.AllowedImage(contentType) {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "unsupported image type"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Upload(), h.Log, "upload avatar")
	defer cancel()

	obj, err := h.Media.Upload(ctx, file, contentType, "avatars")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	user, err := h.Users.UpdateProfile(ctx, caller.UserID, userstore.ProfileUpdate{Avatar: &obj.URL})
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusOK, user)
}
