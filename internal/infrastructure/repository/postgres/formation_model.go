package postgres

import (
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/riskibarqy/formation-editor/internal/domain/formation"
	"github.com/riskibarqy/formation-editor/internal/domain/player"
)

// Positions are stored as two parallel arrays; an empty player id marks an
// empty slot.
type formationTableModel struct {
	ID            int64          `db:"id"`
	TeamID        string         `db:"team_public_id"`
	FormationType string         `db:"formation_type"`
	SlotIDs       pq.StringArray `db:"slot_ids"`
	PlayerIDs     pq.StringArray `db:"player_ids"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
	DeletedAt     *time.Time     `db:"deleted_at"`
}

type formationInsertModel struct {
	TeamID        string         `db:"team_public_id"`
	FormationType string         `db:"formation_type"`
	SlotIDs       pq.StringArray `db:"slot_ids"`
	PlayerIDs     pq.StringArray `db:"player_ids"`
}

func splitPositions(positions []formation.Assignment) ([]string, []string) {
	slotIDs := make([]string, 0, len(positions))
	playerIDs := make([]string, 0, len(positions))
	for _, item := range positions {
		slotIDs = append(slotIDs, item.SlotID)
		playerIDs = append(playerIDs, item.PlayerID.String())
	}
	return slotIDs, playerIDs
}

func joinPositions(slotIDs, playerIDs []string) ([]formation.Assignment, error) {
	if len(slotIDs) != len(playerIDs) {
		return nil, fmt.Errorf("stored positions are corrupt: %d slots, %d players", len(slotIDs), len(playerIDs))
	}

	out := make([]formation.Assignment, 0, len(slotIDs))
	for i, slotID := range slotIDs {
		out = append(out, formation.Assignment{SlotID: slotID, PlayerID: player.ID(playerIDs[i])})
	}
	return out, nil
}
