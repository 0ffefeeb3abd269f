package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/formation-editor/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo teams and rosters into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM teams WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count teams for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, t := range memory.SeedTeams() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO teams (public_id, name, default_formation)
VALUES (:public_id, :name, :default_formation)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":         t.ID,
			"name":              t.Name,
			"default_formation": t.DefaultTemplate,
		})
		if err != nil {
			return fmt.Errorf("bind seed team %s query: %w", t.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed team %s: %w", t.ID, err)
		}
	}

	for idx, p := range memory.SeedPlayers() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO players (public_id, team_public_id, name, shirt_number, natural_position, display_order)
VALUES (:public_id, :team_public_id, :name, :shirt_number, :natural_position, :display_order)
ON CONFLICT (team_public_id, public_id) WHERE deleted_at IS NULL DO NOTHING`, map[string]any{
			"public_id":        p.ID.String(),
			"team_public_id":   p.TeamID,
			"name":             p.Name,
			"shirt_number":     intPtrToNullInt64(p.Number),
			"natural_position": stringToNullString(p.NaturalPosition),
			"display_order":    idx,
		})
		if err != nil {
			return fmt.Errorf("bind seed player %s query: %w", p.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
