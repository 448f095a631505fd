// internal/app/features/groups/avatar.go
package groups

import (
	"net/http"

	"go.uber.org/zap"

	groupstore "github.com/dalemusser/pindrop/internal/app/store/groups"
	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/app/system/httpjson"
	"github.com/dalemusser/pindrop/internal/app/system/media"
	"github.com/dalemusser/pindrop/internal/app/system/timeouts"
)

// HandleUploadAvatar handles POST /groups/{id}/avatar. Group admins and
// app admins only.
func (h *Handler) HandleUploadAvatar(w http.ResponseWriter, r *http.Request) {
	if h.Media == nil {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Internal, "media storage is not configured"))
		return
	}

	id, err := urlID(r, "id")
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

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Upload(), h.Log, "upload group avatar")
	defer cancel()

	obj, err := h.Media.Upload(ctx, file, contentType, "avatars")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	updated, err := h.Groups.Apply(ctx, id, groupstore.Update{Avatar: &obj.URL})
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("group avatar updated",
		zap.String("group_id", id.Hex()),
		zap.String("updated_by", caller.UserID.Hex()),
		zap.String("key", obj.Key))
	httpjson.Write(w, http.StatusOK, updated)
}
