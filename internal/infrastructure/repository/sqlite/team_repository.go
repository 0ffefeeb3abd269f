package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/formation-editor/internal/domain/team"
	qb "github.com/riskibarqy/formation-editor/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.SQLite.Select("*").From("teams").OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	var rows []teamRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Team{ID: row.PublicID, Name: row.Name, DefaultTemplate: row.DefaultFormation})
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.SQLite.Select("*").From("teams").
		Where(qb.Eq("public_id", teamID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build get team query: %w", err)
	}

	var rows []teamRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return team.Team{}, false, fmt.Errorf("get team: %w", err)
	}
	if len(rows) == 0 {
		return team.Team{}, false, nil
	}

	row := rows[0]
	return team.Team{ID: row.PublicID, Name: row.Name, DefaultTemplate: row.DefaultFormation}, true, nil
}

// UpsertTeams inserts or renames teams by public id.
func (r *TeamRepository) UpsertTeams(ctx context.Context, items []team.Team) error {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("upsert team %s: %w", item.ID, err)
		}

		query, args, err := qb.SQLite.InsertModel("teams", teamInsertModel{
			PublicID:         item.ID,
			Name:             item.Name,
			DefaultFormation: item.DefaultTemplate,
		}, `ON CONFLICT (public_id) DO UPDATE SET
    name = excluded.name,
    default_formation = excluded.default_formation`)
		if err != nil {
			return fmt.Errorf("build team upsert query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert team %s: %w", item.ID, err)
		}
	}
	return nil
}
