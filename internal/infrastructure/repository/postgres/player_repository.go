package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/formation-editor/internal/domain/player"
	qb "github.com/riskibarqy/formation-editor/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// ListByTeam returns the active roster in display order.
func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID string) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").
		Where(
			qb.Eq("team_public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("display_order", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players by team query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list players by team: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.Player{
			ID:              player.ID(row.PublicID),
			TeamID:          row.TeamID,
			Name:            row.Name,
			Number:          nullInt64ToIntPtr(row.ShirtNumber),
			NaturalPosition: nullStringValue(row.NaturalPosition),
		})
	}

	return out, nil
}

// RemovePlayer soft deletes the active roster row.
func (r *PlayerRepository) RemovePlayer(ctx context.Context, teamID string, playerID player.ID) error {
	query, args, err := removePlayerQuery(teamID, playerID)
	if err != nil {
		return fmt.Errorf("build remove player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("remove player %s: %w", playerID, err)
	}
	return nil
}

func removePlayerQuery(teamID string, playerID player.ID) (string, []any, error) {
	return qb.Update("players").
		SetExpr("deleted_at", "NOW()").
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("team_public_id", teamID),
			qb.Eq("public_id", playerID.String()),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
}
