// internal/app/features/reports/moderate.go
package reports

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/dalemusser/pindrop/internal/app/system/apperr"
	"github.com/dalemusser/pindrop/internal/app/system/auth"
	"github.com/dalemusser/pindrop/internal/app/system/httpjson"
	"github.com/dalemusser/pindrop/internal/app/system/sanitize"
	"github.com/dalemusser/pindrop/internal/app/system/timeouts"
	"github.com/dalemusser/pindrop/internal/domain/models"
)

// HandleList handles GET /reports with an optional ?status= filter.
// The admin gate sits in the route middleware.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && status != models.ReportOpen && status != models.ReportResolved {
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, `status must be "open" or "resolved"`))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list reports")
	defer cancel()

	reports, err := h.Reports.List(ctx, status)
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	httpjson.Write(w, http.StatusOK, reports)
}

type updateStatusRequest struct {
	Status           string `json:"status"`
	ResolutionReason string `json:"resolution_reason,omitempty"`
}

// HandleUpdateStatus handles PATCH /reports/{id}. Status moves both ways:
// resolving records the resolution, reopening clears it.
func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	var req updateStatusRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	if err := h.loadReport(r, id); err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update report status")
	defer cancel()

	var updated *models.Report
	switch req.Status {
	case models.ReportResolved:
		updated, err = h.Reports.Resolve(ctx, id, sanitize.Plain(req.ResolutionReason))
	case models.ReportOpen:
		updated, err = h.Reports.Reopen(ctx, id)
	default:
		httpjson.WriteError(w, h.Log, apperr.E(apperr.Validation, `status must be "open" or "resolved"`))
		return
	}
	if err != nil {
		httpjson.WriteError(w, h.Log, err)
		return
	}

	if caller, ok := auth.CurrentIdentity(r.Context()); ok {
		h.Log.Info("report status updated",
			zap.String("report_id", id.Hex()),
			zap.String("status", req.Status),
			zap.String("updated_by", caller.UserID.Hex()))
	}

	httpjson.Write(w, http.StatusOK, updated)
}
