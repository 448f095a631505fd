// Package reports implements content reporting. Any authenticated user may
// file a report; only app admins list and work the queue.
package reports

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	commentstore "github.com/dalemusser/pindrop/internal/app/store/comments"
	pinstore "github.com/dalemusser/pindrop/internal/app/store/pins"
	reportstore "github.com/dalemusser/pindrop/internal/app/store/reports"
	"github.com/dalemusser/pindrop/internal/app/system/apperr"
)

// Handler is the shared dependency container for the reports feature.
type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	Reports  *reportstore.Store
	Pins     *pinstore.Store
	Comments *commentstore.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		Reports:  reportstore.New(db),
		Pins:     pinstore.New(db),
		Comments: commentstore.New(db),
	}
}

func urlID(r *http.Request, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		return primitive.NilObjectID, apperr.E(apperr.Validation, "invalid "+name)
	}
	return id, nil
}

// loadReport fetches a report, mapping a missing document to NotFound.
func (h *Handler) loadReport(r *http.Request, id primitive.ObjectID) error {
	if _, err := h.Reports.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.E(apperr.NotFound, "report not found")
		}
		return err
	}
	return nil
}
