package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) OpenEditorSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OpenEditorSession")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	view, err := h.formationService.OpenEditor(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "open editor failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, editorViewToDTO(view))
}

func (h *Handler) GetEditorSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEditorSession")
	defer span.End()

	sessionID := strings.TrimSpace(r.PathValue("sessionID"))
	view, err := h.formationService.EditorView(ctx, sessionID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, editorViewToDTO(view))
}

func (h *Handler) SetEditorTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetEditorTemplate")
	defer span.End()

	sessionID := strings.TrimSpace(r.PathValue("sessionID"))
	var req setTemplateRequest
	if err := h.decodeJSON(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.formationService.SetTemplate(ctx, sessionID, req.TemplateName)
	if err != nil {
		h.logger.WarnContext(ctx, "set editor template failed", "session_id", sessionID, "template", req.TemplateName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, editorViewToDTO(view))
}

func (h *Handler) AssignEditorPosition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignEditorPosition")
	defer span.End()

	sessionID := strings.TrimSpace(r.PathValue("sessionID"))
	positionID := strings.TrimSpace(r.PathValue("positionID"))
	var req assignPositionRequest
	if err := h.decodeJSON(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.formationService.Assign(ctx, sessionID, req.PlayerID, positionID)
	if err != nil {
		h.logger.WarnContext(ctx, "assign position failed",
			"session_id", sessionID,
			"position_id", positionID,
			"player_id", req.PlayerID.String(),
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, editorViewToDTO(view))
}

func (h *Handler) RemoveEditorPosition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveEditorPosition")
	defer span.End()

	sessionID := strings.TrimSpace(r.PathValue("sessionID"))
	positionID := strings.TrimSpace(r.PathValue("positionID"))
	view, err := h.formationService.Remove(ctx, sessionID, positionID)
	if err != nil {
		h.logger.WarnContext(ctx, "remove position failed", "session_id", sessionID, "position_id", positionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, editorViewToDTO(view))
}

func (h *Handler) SaveEditorSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveEditorSession")
	defer span.End()

	sessionID := strings.TrimSpace(r.PathValue("sessionID"))
	result, err := h.formationService.SaveEditor(ctx, sessionID)
	if err != nil {
		h.logger.WarnContext(ctx, "save editor session failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, saveResultToDTO(result))
}

func (h *Handler) CloseEditorSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CloseEditorSession")
	defer span.End()

	sessionID := strings.TrimSpace(r.PathValue("sessionID"))
	if err := h.formationService.CloseEditor(ctx, sessionID); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"sessionId": sessionID, "status": "closed"})
}
