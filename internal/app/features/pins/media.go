// internal/app/features/pins/media.go
package pins

import (
	"mime/multipart"
	"net/http"

	"go.uber.org/zap"

	"github.com/dalemusser/pindrop/internal/app/policy/pinpolicy"
	pinstore "github.com/dalemusser/pindrop/internal/app/store/pins"
	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/app/system/auth"
	"github.com/dalemusser/pindrop/internal/app/system/httpjson"
	"github.com/dalemusser/pindrop/internal/app/system/media"
	"github.com/dalemusser/pindrop/internal/app/system/timeouts"
)

// HandleUploadMedia handles POST /pins/{id}/media. The multipart field name
// decides the slot: "image" appends to the ordered image list (oldest ten
// kept), "video" replaces the single video.
func (h *Handler) HandleUploadMedia(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CurrentIdentity(r.Context())
	if !ok {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Unauthenticated, "authentication required"))
		return
	}
	if h.Media == nil {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Internal, "media storage is not configured"))
		return
	}

	id, err := urlID(r, "id")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	pin, err := h.loadPin(r, id)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Upload(), h.Log, "upload pin media")
	defer cancel()

	allowed, err := pinpolicy.CanMutate(ctx, h.DB, pin, &caller)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	if !allowed {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Forbidden, "not authorized to edit this pin"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, media.MaxUploadBytes)
	if err := r.ParseMultipartForm(media.MaxUploadBytes); err != nil {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "invalid multipart upload"))
		return
	}

	file, header, slot, err := mediaFile(r)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	switch slot {
	case "image":
		if !media.AllowedImage(contentType) {
			httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "unsupported image type"))
			return
		}
	case "video":
		if !media.AllowedVideo(contentType) {
			httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "unsupported video type"))
			return
		}
	}

	obj, err := h.Media.Upload(ctx, file, contentType, "pins")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	upd := pinstore.Update{}
	if slot == "image" {
		upd.AddImages = []string{obj.URL}
	} else {
		upd.Video = &obj.URL
	}

	updated, err := h.Pins.Apply(ctx, id, upd)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	h.Log.Info("pin media uploaded",
		zap.String("pin_id", id.Hex()),
		zap.String("slot", slot),
		zap.String("key", obj.Key))
	httpjson.Write(w, http.StatusOK, h.decorate(ctx, *updated))
}

// mediaFile pulls the uploaded file out of the multipart form, accepting
// either an "image" or a "video" file field.
func mediaFile(r *http.Request) (multipart.File, *multipart.FileHeader, string, error) {
	if file, header, err := r.FormFile("image"); err == nil {
		return file, header, "image", nil
	}
	if file, header, err := r.FormFile("video"); err == nil {
		return file, header, "video", nil
	}
	return nil, nil, "", apperr.E(apperr.Validation, `upload must include an "image" or "video" file field`)
}
