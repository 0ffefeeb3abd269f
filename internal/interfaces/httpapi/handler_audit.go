package httpapi

import (
	"net/http"

	"github.com/riskibarqy/formation-editor/internal/usecase"
)

// RunFormationAudit accepts an empty body, which audits every stored
// formation without repairing.
func (h *Handler) RunFormationAudit(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunFormationAudit")
	defer span.End()

	var req auditFormationsRequest
	if err := h.decodeJSON(ctx, r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.auditService.Audit(ctx, usecase.AuditFormationsInput{
		TeamIDs:    req.TeamIDs,
		Repair:     req.Repair,
		DryRun:     req.DryRun,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "formation audit failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "formation audit finished",
		"task_count", result.TaskCount,
		"invalid_count", result.InvalidCount,
		"repaired_count", result.RepairedCount,
		"failed_count", result.FailedCount,
	)
	writeSuccess(ctx, w, http.StatusOK, result)
}
