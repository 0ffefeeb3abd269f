package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("team_id", "template_name").
		From("formations").
		Where(Eq("team_id", "t1"), IsNull("deleted_at")).
		OrderBy("team_id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT team_id, template_name FROM formations WHERE team_id = $1 AND deleted_at IS NULL ORDER BY team_id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "t1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_SQLiteExpr(t *testing.T) {
	query, args, err := SQLite.Select("id").
		From("players").
		Where(Eq("team_public_id", "a"), Expr("shirt_number > ?", 5)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id FROM players WHERE team_public_id = ? AND shirt_number > ?"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[1] != 5 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		TeamID    string    `db:"team_id"`
		Template  string    `db:"template_name"`
		Ignored   string    `db:"-"`
		UpdatedAt time.Time `db:"updated_at"`
		internal  string
	}
	at := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	query, args, err := InsertModel("formations", row{TeamID: "t1", Template: "4-4-2", UpdatedAt: at, internal: "x"}, "RETURNING updated_at")
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO formations (team_id, template_name, updated_at) VALUES ($1, $2, $3) RETURNING updated_at"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "t1" || args[1] != "4-4-2" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModel("formations", struct{ A string }{}, ""); err == nil {
		t.Fatalf("expected error for model without db columns")
	}
}

func TestInsertBuilder_SQLiteRows(t *testing.T) {
	query, args, err := SQLite.InsertInto("formation_positions").
		Columns("team_id", "slot_id").
		Values("t1", "gk").
		Values("t1", "lb").
		Suffix("ON CONFLICT DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO formation_positions (team_id, slot_id) VALUES (?, ?), (?, ?) ON CONFLICT DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := SQLite.InsertInto("x").Columns("a", "b").Values("only-one").ToSQL(); err == nil {
		t.Fatalf("expected row width error")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("players").
		Set("display_order", 3).
		SetExpr("updated_at", "NOW()").
		Where(Eq("public_id", "p1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE players SET display_order = $1, updated_at = NOW() WHERE public_id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != 3 || args[1] != "p1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := SQLite.DeleteFrom("players").Where(Eq("public_id", "p1")).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM players WHERE public_id = ?" || len(args) != 1 {
		t.Fatalf("unexpected query: %s %+v", query, args)
	}

	if _, _, err := SQLite.DeleteFrom("players").ToSQL(); err == nil {
		t.Fatalf("expected error for delete without where")
	}
}
