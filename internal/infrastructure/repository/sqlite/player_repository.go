package sqlite

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

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID string) ([]player.Player, error) {
	query, args, err := qb.SQLite.Select("*").From("players").
		Where(qb.Eq("team_public_id", teamID)).
		OrderBy("display_order", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players by team query: %w", err)
	}

	var rows []playerRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list players by team: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.Player{
			ID:              player.ID(row.PublicID),
			TeamID:          row.TeamID,
			Name:            row.Name,
			Number:          nullToIntPtr(row.ShirtNumber),
			NaturalPosition: nullToString(row.NaturalPosition),
		})
	}
	return out, nil
}

// UpsertPlayers writes players in one transaction; slice order becomes
// roster order.
func (r *PlayerRepository) UpsertPlayers(ctx context.Context, items []player.Player) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert players tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for idx, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("upsert player %s: %w", item.ID, err)
		}

		query, args, err := qb.SQLite.InsertModel("players", playerInsertModel{
			PublicID:        item.ID.String(),
			TeamID:          item.TeamID,
			Name:            item.Name,
			ShirtNumber:     intPtrToNull(item.Number),
			NaturalPosition: stringToNull(item.NaturalPosition),
			DisplayOrder:    idx,
		}, `ON CONFLICT (team_public_id, public_id) DO UPDATE SET
    name = excluded.name,
    shirt_number = excluded.shirt_number,
    natural_position = excluded.natural_position,
    display_order = excluded.display_order`)
		if err != nil {
			return fmt.Errorf("build player upsert query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert player %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert players tx: %w", err)
	}
	return nil
}

func (r *PlayerRepository) RemovePlayer(ctx context.Context, teamID string, playerID player.ID) error {
	query, args, err := qb.SQLite.DeleteFrom("players").
		Where(
			qb.Eq("team_public_id", teamID),
			qb.Eq("public_id", playerID.String()),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build remove player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("remove player %s: %w", playerID, err)
	}
	return nil
}
