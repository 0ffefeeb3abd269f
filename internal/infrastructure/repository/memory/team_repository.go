package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/riskibarqy/formation-editor/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	order []string
	teams map[string]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	r := &TeamRepository{teams: make(map[string]team.Team, len(teams))}
	r.upsert(teams)
	return r
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.teams[id])
	}

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.teams[teamID]
	return item, ok, nil
}

func (r *TeamRepository) UpsertTeams(_ context.Context, items []team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.upsert(items)
	return nil
}

func (r *TeamRepository) upsert(items []team.Team) {
	for _, item := range items {
		teamID := strings.TrimSpace(item.ID)
		if teamID == "" {
			continue
		}
		item.ID = teamID
		if _, exists := r.teams[teamID]; !exists {
			r.order = append(r.order, teamID)
		}
		r.teams[teamID] = item
	}
}
