package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/formation-editor/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo teams and rosters when the database has no teams.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM teams`); err != nil {
		return fmt.Errorf("count teams for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	if err := NewTeamRepository(db).UpsertTeams(ctx, memory.SeedTeams()); err != nil {
		return fmt.Errorf("seed teams: %w", err)
	}
	if err := NewPlayerRepository(db).UpsertPlayers(ctx, memory.SeedPlayers()); err != nil {
		return fmt.Errorf("seed players: %w", err)
	}
	return nil
}
