package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/formation-editor/internal/domain/formation"
	qb "github.com/riskibarqy/formation-editor/internal/platform/querybuilder"
)

type FormationRepository struct {
	db *sqlx.DB
}

func NewFormationRepository(db *sqlx.DB) *FormationRepository {
	return &FormationRepository{db: db}
}

func (r *FormationRepository) GetByTeam(ctx context.Context, teamID string) (formation.Saved, bool, error) {
	query, args, err := formationBaseSelectBuilder().
		Where(
			qb.Eq("team_public_id", teamID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return formation.Saved{}, false, fmt.Errorf("build get formation query: %w", err)
	}

	var row formationTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isBindParameterMismatch(err) || isUnnamedPreparedStatementMissing(err) {
			return r.getByTeamSingleParam(ctx, teamID)
		}
		if isNotFound(err) {
			return formation.Saved{}, false, nil
		}
		return formation.Saved{}, false, fmt.Errorf("get formation: %w", err)
	}

	saved, err := formationFromRow(row)
	if err != nil {
		return formation.Saved{}, false, err
	}
	return saved, true, nil
}

func (r *FormationRepository) getByTeamSingleParam(ctx context.Context, teamID string) (formation.Saved, bool, error) {
	query, _, err := formationBaseSelectBuilder().
		Where(
			qb.Expr("team_public_id = ($1::text[])[1]"),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return formation.Saved{}, false, fmt.Errorf("build get formation single param fallback query: %w", err)
	}

	var row formationTableModel
	if err := r.db.GetContext(ctx, &row, query, pq.Array([]string{teamID})); err != nil {
		if isNotFound(err) {
			return formation.Saved{}, false, nil
		}
		return formation.Saved{}, false, fmt.Errorf("get formation fallback: %w", err)
	}

	saved, err := formationFromRow(row)
	if err != nil {
		return formation.Saved{}, false, err
	}
	return saved, true, nil
}

func (r *FormationRepository) List(ctx context.Context) ([]formation.Saved, error) {
	query, args, err := formationBaseSelectBuilder().
		Where(qb.IsNull("deleted_at")).
		OrderBy("team_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list formations query: %w", err)
	}

	var rows []formationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list formations: %w", err)
	}

	out := make([]formation.Saved, 0, len(rows))
	for _, row := range rows {
		saved, err := formationFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, saved)
	}
	return out, nil
}

func (r *FormationRepository) Upsert(ctx context.Context, item formation.Saved) (formation.Saved, error) {
	slotIDs, playerIDs := splitPositions(item.Snapshot.Positions)
	insertModel := formationInsertModel{
		TeamID:        item.TeamID,
		FormationType: item.Snapshot.TemplateName,
		SlotIDs:       pq.StringArray(slotIDs),
		PlayerIDs:     pq.StringArray(playerIDs),
	}

	query, args, err := qb.InsertModel("formations", insertModel, `ON CONFLICT (team_public_id) WHERE deleted_at IS NULL
DO UPDATE SET
    formation_type = EXCLUDED.formation_type,
    slot_ids = EXCLUDED.slot_ids,
    player_ids = EXCLUDED.player_ids,
    updated_at = NOW(),
    deleted_at = NULL
RETURNING updated_at`)
	if err != nil {
		return formation.Saved{}, fmt.Errorf("build formation upsert query: %w", err)
	}

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return formation.Saved{}, fmt.Errorf("upsert formation: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return formation.Saved{}, fmt.Errorf("upsert formation: %w", err)
		}
		return formation.Saved{}, fmt.Errorf("upsert formation: no row returned")
	}

	var updatedAt time.Time
	if err := rows.Scan(&updatedAt); err != nil {
		return formation.Saved{}, fmt.Errorf("scan formation updated_at: %w", err)
	}

	item.Snapshot.TeamID = item.TeamID
	item.Snapshot.Positions = append([]formation.Assignment(nil), item.Snapshot.Positions...)
	item.UpdatedAt = updatedAt.UTC()
	return item, nil
}

func formationFromRow(row formationTableModel) (formation.Saved, error) {
	positions, err := joinPositions(row.SlotIDs, row.PlayerIDs)
	if err != nil {
		return formation.Saved{}, fmt.Errorf("decode formation for team %s: %w", row.TeamID, err)
	}

	return formation.Saved{
		TeamID: row.TeamID,
		Snapshot: formation.Snapshot{
			TemplateName: row.FormationType,
			TeamID:       row.TeamID,
			Positions:    positions,
		},
		UpdatedAt: row.UpdatedAt.UTC(),
	}, nil
}

func formationBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("formations")
}
