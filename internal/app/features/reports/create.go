// internal/app/features/reports/create.go
package reports

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/pindrop/internal/app/policy/reportpolicy"
	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/app/system/auth"
	"github.com/dalemusser/pindrop/internal/app/system/httpjson"
	"github.com/dalemusser/pindrop/internal/app/system/sanitize"
	"github.com/dalemusser/pindrop/internal/app/system/timeouts"
	"github.com/dalemusser/pindrop/internal/domain/models"
)

type createReportRequest struct {
	TargetType string `json:"target_type"`
	TargetID   string `json:"target_id"`
	Reason     string `json:"reason"`
}

// targetExists checks that the reported entity is present. Reports do not
// apply the pin view rule: a user can report content surfaced to them even
// if their access has since been revoked.
func (h *Handler) targetExists(ctx context.Context, targetType string, targetID primitive.ObjectID) error {
	var err error
	switch targetType {
	case models.TargetPin:
		_, err = h.Pins.GetByID(ctx, targetID)
	case models.TargetComment:
		_, err = h.Comments.GetByID(ctx, targetID)
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.E(apperr.NotFound, "reported content not found")
	}
	return err
}

// HandleCreate handles POST /reports.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	caller := auth.Caller(r.Context())
	if !reportpolicy.CanCreate(caller) {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Unauthenticated, "authentication required"))
		return
	}

	var req createReportRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	if !models.ValidTargetType(req.TargetType) {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, `target_type must be "pin" or "comment"`))
		return
	}
	targetID, err := primitive.ObjectIDFromHex(req.TargetID)
	if err != nil {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "invalid target_id"))
		return
	}
	reason := sanitize.Plain(req.Reason)
	if reason == "" {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, "reason is required"))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "create report")
	defer cancel()

	if err := h.targetExists(ctx, req.TargetType, targetID); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	report, err := h.Reports.Create(ctx, models.Report{
		ReporterID: caller.UserID,
		TargetType: req.TargetType,
		TargetID:   targetID,
		Reason:     reason,
	})
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusCreated, report)
}
