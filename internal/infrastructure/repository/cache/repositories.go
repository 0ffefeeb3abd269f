package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/formation-editor/internal/domain/formation"
	"github.com/riskibarqy/formation-editor/internal/domain/player"
	"github.com/riskibarqy/formation-editor/internal/domain/team"
	basecache "github.com/riskibarqy/formation-editor/internal/platform/cache"
)

// Store is the shared read-through cache used by every decorator.
type Store = basecache.Store[any]

func NewStore(ttl time.Duration) *Store {
	return basecache.NewStore[any](ttl)
}

type TeamRepository struct {
	next  team.Repository
	cache *Store
}

func NewTeamRepository(next team.Repository, cache *Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

// List is not cached; only per-team lookups are.
func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	return r.next.List(ctx)
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	key := "team:id:" + teamID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByID)
	return cached.value, cached.exists, nil
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

type PlayerRepository struct {
	next  player.Repository
	cache *Store
}

func NewPlayerRepository(next player.Repository, cache *Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID string) ([]player.Player, error) {
	key := rosterKey(teamID)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByTeam(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return clonePlayers(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return clonePlayers(items), nil
}

// RemovePlayer forwards to the wrapped repository and drops the cached roster.
func (r *PlayerRepository) RemovePlayer(ctx context.Context, teamID string, playerID player.ID) error {
	writer, ok := r.next.(player.RosterWriter)
	if !ok {
		return fmt.Errorf("player repository %T does not support roster changes", r.next)
	}
	if err := writer.RemovePlayer(ctx, teamID, playerID); err != nil {
		return err
	}
	r.Invalidate(ctx, teamID)
	return nil
}

// Invalidate drops the cached roster of one team.
func (r *PlayerRepository) Invalidate(ctx context.Context, teamID string) {
	r.cache.Delete(ctx, rosterKey(teamID))
}

func clonePlayers(items []player.Player) []player.Player {
	out := make([]player.Player, 0, len(items))
	for _, item := range items {
		if item.Number != nil {
			number := *item.Number
			item.Number = &number
		}
		out = append(out, item)
	}
	return out
}

func rosterKey(teamID string) string {
	return "player:list:team:" + teamID
}

type FormationRepository struct {
	next  formation.Repository
	cache *Store
}

func NewFormationRepository(next formation.Repository, cache *Store) *FormationRepository {
	return &FormationRepository{next: next, cache: cache}
}

func (r *FormationRepository) GetByTeam(ctx context.Context, teamID string) (formation.Saved, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, formationKey(teamID), func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByTeam(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cachedFormationByTeam{value: cloneSaved(item), exists: exists}, nil
	})
	if err != nil {
		return formation.Saved{}, false, err
	}

	cached, _ := v.(cachedFormationByTeam)
	return cloneSaved(cached.value), cached.exists, nil
}

// List is not cached; the audit needs the stored truth.
func (r *FormationRepository) List(ctx context.Context) ([]formation.Saved, error) {
	return r.next.List(ctx)
}

func (r *FormationRepository) Upsert(ctx context.Context, item formation.Saved) (formation.Saved, error) {
	stored, err := r.next.Upsert(ctx, item)
	if err != nil {
		return formation.Saved{}, err
	}
	r.cache.Delete(ctx, formationKey(item.TeamID))
	return stored, nil
}

type cachedFormationByTeam struct {
	value  formation.Saved
	exists bool
}

func cloneSaved(item formation.Saved) formation.Saved {
	out := item
	out.Snapshot.Positions = append([]formation.Assignment(nil), item.Snapshot.Positions...)
	return out
}

func formationKey(teamID string) string {
	return "formation:team:" + teamID
}
