package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/formation-editor/internal/domain/player"
)

type PlayerRepository struct {
	mu            sync.RWMutex
	playersByTeam map[string][]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	r := &PlayerRepository{playersByTeam: make(map[string][]player.Player)}
	r.upsert(players)
	return r
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	players := r.playersByTeam[teamID]
	out := make([]player.Player, 0, len(players))
	for _, p := range players {
		out = append(out, clonePlayer(p))
	}

	return out, nil
}

func (r *PlayerRepository) UpsertPlayers(_ context.Context, items []player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.upsert(items)
	return nil
}

// RemovePlayer drops a player from a roster; saved formations are not touched.
func (r *PlayerRepository) RemovePlayer(_ context.Context, teamID string, playerID player.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.playersByTeam[teamID]
	for idx := range rows {
		if rows[idx].ID == playerID {
			r.playersByTeam[teamID] = append(rows[:idx:idx], rows[idx+1:]...)
			return nil
		}
	}
	return nil
}

func (r *PlayerRepository) upsert(items []player.Player) {
	for _, item := range items {
		if item.ID.IsZero() || item.TeamID == "" {
			continue
		}

		rows := r.playersByTeam[item.TeamID]
		updated := false
		for idx := range rows {
			if rows[idx].ID == item.ID {
				rows[idx] = clonePlayer(item)
				updated = true
				break
			}
		}
		if !updated {
			rows = append(rows, clonePlayer(item))
		}
		r.playersByTeam[item.TeamID] = rows
	}
}

func clonePlayer(item player.Player) player.Player {
	if item.Number != nil {
		item.Number = player.IntPtr(*item.Number)
	}
	return item
}
