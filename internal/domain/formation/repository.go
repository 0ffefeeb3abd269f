package formation

import "context"

// Repository persists one saved formation per team.
type Repository interface {
	GetByTeam(ctx context.Context, teamID string) (Saved, bool, error)
	List(ctx context.Context) ([]Saved, error)
	Upsert(ctx context.Context, saved Saved) (Saved, error)
}
