package httpapi

import (
	"time"

	"github.com/riskibarqy/formation-editor/internal/domain/formation"
	"github.com/riskibarqy/formation-editor/internal/domain/player"
	"github.com/riskibarqy/formation-editor/internal/domain/team"
	"github.com/riskibarqy/formation-editor/internal/usecase"
)

type saveFormationRequest struct {
	TemplateName string                  `json:"templateName" validate:"required,max=32"`
	Positions    []formationPositionBody `json:"positions" validate:"max=32,dive"`
}

type formationPositionBody struct {
	ID       string    `json:"id" validate:"required"`
	PlayerID player.ID `json:"playerId"`
}

type legacyFormationRequest struct {
	FormationType string               `json:"formation_type" validate:"required,max=32"`
	Positions     map[string]player.ID `json:"positions"`
}

type setTemplateRequest struct {
	TemplateName string `json:"templateName" validate:"required,max=32"`
}

type assignPositionRequest struct {
	PlayerID player.ID `json:"playerId" validate:"required"`
}

type auditFormationsRequest struct {
	TeamIDs    []string `json:"teamIds" validate:"max=500,dive,required"`
	Repair     bool     `json:"repair"`
	DryRun     bool     `json:"dryRun"`
	MaxWorkers int      `json:"maxWorkers" validate:"gte=0,lte=64"`
}

type templateDTO struct {
	Name      string    `json:"name"`
	IsDefault bool      `json:"isDefault"`
	Slots     []slotDTO `json:"slots"`
}

type slotDTO struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	PlayerID *string `json:"playerId"`
}

type teamDTO struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DefaultTemplate string `json:"defaultTemplate"`
}

type playerDTO struct {
	ID              string `json:"id"`
	TeamID          string `json:"teamId"`
	Name            string `json:"name"`
	Number          *int   `json:"number"`
	NaturalPosition string `json:"naturalPosition,omitempty"`
}

type assignmentDTO struct {
	ID       string  `json:"id"`
	PlayerID *string `json:"playerId"`
}

type savedFormationDTO struct {
	TeamID       string          `json:"teamId"`
	TemplateName string          `json:"templateName"`
	Positions    []assignmentDTO `json:"positions"`
	UpdatedAt    string          `json:"updatedAt"`
}

type sinkResultDTO struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type saveFormationResponse struct {
	Formation savedFormationDTO `json:"formation"`
	Sink      *sinkResultDTO    `json:"sink,omitempty"`
}

type editorSessionDTO struct {
	SessionID        string      `json:"sessionId"`
	TeamID           string      `json:"teamId"`
	TemplateName     string      `json:"templateName"`
	Positions        []slotDTO   `json:"positions"`
	AvailablePlayers []playerDTO `json:"availablePlayers"`
	SelectedPlayers  []playerDTO `json:"selectedPlayers"`
}

func optionalPlayerID(id player.ID) *string {
	if id.IsZero() {
		return nil
	}
	v := id.String()
	return &v
}

func templateToDTO(item formation.Template, defaultName string) templateDTO {
	slots := make([]slotDTO, 0, len(item.Slots))
	for _, slot := range item.Slots {
		slots = append(slots, slotDTO{ID: slot.ID, Label: slot.Label, X: slot.X, Y: slot.Y})
	}
	return templateDTO{
		Name:      item.Name,
		IsDefault: item.Name == defaultName,
		Slots:     slots,
	}
}

func teamToDTO(item team.Team) teamDTO {
	return teamDTO{ID: item.ID, Name: item.Name, DefaultTemplate: item.DefaultTemplate}
}

func playerToDTO(item player.Player) playerDTO {
	return playerDTO{
		ID:              item.ID.String(),
		TeamID:          item.TeamID,
		Name:            item.Name,
		Number:          item.Number,
		NaturalPosition: item.NaturalPosition,
	}
}

func playersToDTO(items []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerToDTO(item))
	}
	return out
}

func savedFormationToDTO(item formation.Saved) savedFormationDTO {
	positions := make([]assignmentDTO, 0, len(item.Snapshot.Positions))
	for _, pos := range item.Snapshot.Positions {
		positions = append(positions, assignmentDTO{ID: pos.SlotID, PlayerID: optionalPlayerID(pos.PlayerID)})
	}
	return savedFormationDTO{
		TeamID:       item.TeamID,
		TemplateName: item.Snapshot.TemplateName,
		Positions:    positions,
		UpdatedAt:    item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func saveResultToDTO(result usecase.SaveFormationResult) saveFormationResponse {
	resp := saveFormationResponse{Formation: savedFormationToDTO(result.Saved)}
	if result.Publish != nil {
		resp.Sink = &sinkResultDTO{Success: result.Publish.Success, Error: result.Publish.Error}
	}
	return resp
}

func editorViewToDTO(view usecase.EditorView) editorSessionDTO {
	positions := make([]slotDTO, 0, len(view.Positions))
	for _, slot := range view.Positions {
		positions = append(positions, slotDTO{
			ID:       slot.ID,
			Label:    slot.Label,
			X:        slot.X,
			Y:        slot.Y,
			PlayerID: optionalPlayerID(slot.PlayerID),
		})
	}
	return editorSessionDTO{
		SessionID:        view.SessionID,
		TeamID:           view.TeamID,
		TemplateName:     view.TemplateName,
		Positions:        positions,
		AvailablePlayers: playersToDTO(view.AvailablePlayers),
		SelectedPlayers:  playersToDTO(view.SelectedPlayers),
	}
}
