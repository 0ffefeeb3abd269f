package player

import "context"

// Repository describes roster reads needed by use cases.
type Repository interface {
	ListByTeam(ctx context.Context, teamID string) ([]Player, error)
}

// RosterWriter removes players from a roster. Stored formations that still
// name the player are left as they are.
type RosterWriter interface {
	RemovePlayer(ctx context.Context, teamID string, playerID ID) error
}
