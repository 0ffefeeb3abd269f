package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/formation-editor/internal/domain/formation"
)

type FormationRepository struct {
	mu    sync.RWMutex
	items map[string]formation.Saved
	now   func() time.Time
}

func NewFormationRepository() *FormationRepository {
	return &FormationRepository{
		items: make(map[string]formation.Saved),
		now:   time.Now,
	}
}

func (r *FormationRepository) GetByTeam(_ context.Context, teamID string) (formation.Saved, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[teamID]
	if !ok {
		return formation.Saved{}, false, nil
	}

	return cloneSaved(item), true, nil
}

func (r *FormationRepository) List(_ context.Context) ([]formation.Saved, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]formation.Saved, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, cloneSaved(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })

	return out, nil
}

func (r *FormationRepository) Upsert(_ context.Context, item formation.Saved) (formation.Saved, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item = cloneSaved(item)
	item.Snapshot.TeamID = item.TeamID
	item.UpdatedAt = r.now().UTC()
	r.items[item.TeamID] = item

	return cloneSaved(item), nil
}

func cloneSaved(item formation.Saved) formation.Saved {
	copied := item
	copied.Snapshot.Positions = append([]formation.Assignment(nil), item.Snapshot.Positions...)
	return copied
}
