package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/formation-editor/internal/domain/formation"
	"github.com/riskibarqy/formation-editor/internal/domain/player"
	qb "github.com/riskibarqy/formation-editor/internal/platform/querybuilder"
)

type FormationRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewFormationRepository(db *sqlx.DB) *FormationRepository {
	return &FormationRepository{db: db, now: time.Now}
}

func (r *FormationRepository) GetByTeam(ctx context.Context, teamID string) (formation.Saved, bool, error) {
	query, args, err := qb.SQLite.Select("*").From("formations").
		Where(qb.Eq("team_public_id", teamID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return formation.Saved{}, false, fmt.Errorf("build get formation query: %w", err)
	}

	var rows []formationRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return formation.Saved{}, false, fmt.Errorf("get formation: %w", err)
	}
	if len(rows) == 0 {
		return formation.Saved{}, false, nil
	}

	saved, err := formationFromRow(rows[0])
	if err != nil {
		return formation.Saved{}, false, err
	}
	return saved, true, nil
}

func (r *FormationRepository) List(ctx context.Context) ([]formation.Saved, error) {
	query, args, err := qb.SQLite.Select("*").From("formations").OrderBy("team_public_id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list formations query: %w", err)
	}

	var rows []formationRow
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
	stored := make([]storedPosition, 0, len(item.Snapshot.Positions))
	for _, pos := range item.Snapshot.Positions {
		stored = append(stored, storedPosition{SlotID: pos.SlotID, PlayerID: pos.PlayerID.String()})
	}
	positions, err := sonic.MarshalString(stored)
	if err != nil {
		return formation.Saved{}, fmt.Errorf("encode formation positions: %w", err)
	}

	updatedAt := r.now().UTC()
	query, args, err := qb.SQLite.InsertModel("formations", formationRow{
		TeamID:        item.TeamID,
		FormationType: item.Snapshot.TemplateName,
		Positions:     positions,
		UpdatedAt:     updatedAt.Format(time.RFC3339Nano),
	}, `ON CONFLICT (team_public_id) DO UPDATE SET
    formation_type = excluded.formation_type,
    positions = excluded.positions,
    updated_at = excluded.updated_at`)
	if err != nil {
		return formation.Saved{}, fmt.Errorf("build formation upsert query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return formation.Saved{}, fmt.Errorf("upsert formation: %w", err)
	}

	item.Snapshot.TeamID = item.TeamID
	item.Snapshot.Positions = append([]formation.Assignment(nil), item.Snapshot.Positions...)
	item.UpdatedAt = updatedAt
	return item, nil
}

func formationFromRow(row formationRow) (formation.Saved, error) {
	var stored []storedPosition
	if err := sonic.UnmarshalString(row.Positions, &stored); err != nil {
		return formation.Saved{}, fmt.Errorf("decode formation positions for team %s: %w", row.TeamID, err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, row.UpdatedAt)
	if err != nil {
		return formation.Saved{}, fmt.Errorf("decode formation updated_at for team %s: %w", row.TeamID, err)
	}

	positions := make([]formation.Assignment, 0, len(stored))
	for _, pos := range stored {
		positions = append(positions, formation.Assignment{SlotID: pos.SlotID, PlayerID: player.ID(pos.PlayerID)})
	}

	return formation.Saved{
		TeamID: row.TeamID,
		Snapshot: formation.Snapshot{
			TemplateName: row.FormationType,
			TeamID:       row.TeamID,
			Positions:    positions,
		},
		UpdatedAt: updatedAt,
	}, nil
}
