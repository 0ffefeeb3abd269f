package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/formation-editor/internal/domain/formation"
	"github.com/riskibarqy/formation-editor/internal/domain/player"
	"github.com/riskibarqy/formation-editor/internal/usecase"
)

func (h *Handler) ListFormationTemplates(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFormationTemplates")
	defer span.End()

	templates := h.formationService.ListTemplates(ctx)
	defaultName := h.formationService.Catalog().Default().Name

	items := make([]templateDTO, 0, len(templates))
	for _, item := range templates {
		items = append(items, templateToDTO(item, defaultName))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.formationService.ListTeams(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, item := range teams {
		items = append(items, teamToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListTeamPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamPlayers")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	roster, err := h.formationService.ListPlayers(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(roster))
}

// RemoveTeamPlayer is the roster change hook for upstream squad systems.
func (h *Handler) RemoveTeamPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveTeamPlayer")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	playerID := player.ID(strings.TrimSpace(r.PathValue("playerID")))
	if err := h.formationService.RemovePlayer(ctx, teamID, playerID); err != nil {
		h.logger.WarnContext(ctx, "remove player failed", "team_id", teamID, "player_id", playerID.String(), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{
		"teamId":   teamID,
		"playerId": playerID.String(),
		"status":   "removed",
	})
}

func (h *Handler) GetTeamFormation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamFormation")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	saved, exists, err := h.formationService.GetSavedFormation(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get formation failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeSuccess(ctx, w, http.StatusOK, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, savedFormationToDTO(saved))
}

func (h *Handler) SaveTeamFormation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveTeamFormation")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	var req saveFormationRequest
	if err := h.decodeJSON(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	positions := make([]formation.Assignment, 0, len(req.Positions))
	for _, pos := range req.Positions {
		positions = append(positions, formation.Assignment{
			SlotID:   strings.TrimSpace(pos.ID),
			PlayerID: pos.PlayerID,
		})
	}

	result, err := h.formationService.SaveFormation(ctx, usecase.SaveFormationInput{
		TeamID:       teamID,
		TemplateName: req.TemplateName,
		Positions:    positions,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save formation failed", "team_id", teamID, "template", req.TemplateName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, saveResultToDTO(result))
}

func (h *Handler) ImportLegacyFormation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportLegacyFormation")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	var req legacyFormationRequest
	if err := h.decodeJSON(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	positions := make(map[string]string, len(req.Positions))
	for slotID, playerID := range req.Positions {
		positions[slotID] = playerID.String()
	}

	result, err := h.formationService.ImportLegacyFormation(ctx, teamID, req.FormationType, positions)
	if err != nil {
		h.logger.WarnContext(ctx, "import legacy formation failed", "team_id", teamID, "formation_type", req.FormationType, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, saveResultToDTO(result))
}
