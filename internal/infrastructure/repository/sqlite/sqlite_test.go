package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/formation-editor/internal/domain/formation"
	"github.com/riskibarqy/formation-editor/internal/domain/player"
	"github.com/riskibarqy/formation-editor/internal/infrastructure/repository/memory"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := BootstrapSeed(context.Background(), db); err != nil {
		t.Fatalf("seed test database: %v", err)
	}
	return db
}

func TestTeamRepository_ListAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewTeamRepository(db)
	ctx := context.Background()

	teams, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(teams) != 2 || teams[0].ID != memory.TeamIDDemo {
		t.Fatalf("unexpected teams: %+v", teams)
	}

	item, ok, err := repo.GetByID(ctx, memory.TeamIDReserves)
	if err != nil || !ok {
		t.Fatalf("get team: ok=%v err=%v", ok, err)
	}
	if item.DefaultTemplate != "4-3-3" {
		t.Fatalf("unexpected default template: %s", item.DefaultTemplate)
	}

	if _, ok, err := repo.GetByID(ctx, "ghost"); err != nil || ok {
		t.Fatalf("expected missing team, ok=%v err=%v", ok, err)
	}
}

func TestBootstrapSeed_IsIdempotent(t *testing.T) {
	db := newTestDB(t)

	if err := BootstrapSeed(context.Background(), db); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	roster, err := NewPlayerRepository(db).ListByTeam(context.Background(), memory.TeamIDDemo)
	if err != nil {
		t.Fatalf("list roster: %v", err)
	}
	if len(roster) != 15 {
		t.Fatalf("expected 15 players after reseed, got %d", len(roster))
	}
}

func TestPlayerRepository_RosterOrderAndRemove(t *testing.T) {
	db := newTestDB(t)
	repo := NewPlayerRepository(db)
	ctx := context.Background()

	roster, err := repo.ListByTeam(ctx, memory.TeamIDDemo)
	if err != nil {
		t.Fatalf("list roster: %v", err)
	}
	if roster[0].ID != "1" || roster[0].Name != "John Smith" || roster[0].Number == nil || *roster[0].Number != 1 {
		t.Fatalf("unexpected first player: %+v", roster[0])
	}
	if roster[14].ID != "15" {
		t.Fatalf("roster must keep seed order, last=%s", roster[14].ID)
	}

	if err := repo.RemovePlayer(ctx, memory.TeamIDDemo, player.ID("15")); err != nil {
		t.Fatalf("remove player: %v", err)
	}
	roster, err = repo.ListByTeam(ctx, memory.TeamIDDemo)
	if err != nil {
		t.Fatalf("list roster after remove: %v", err)
	}
	if len(roster) != 14 {
		t.Fatalf("expected 14 players, got %d", len(roster))
	}
}

func TestFormationRepository_UpsertGetList(t *testing.T) {
	db := newTestDB(t)
	repo := NewFormationRepository(db)
	at := time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC)
	repo.now = func() time.Time { return at }
	ctx := context.Background()

	if _, ok, err := repo.GetByTeam(ctx, memory.TeamIDDemo); err != nil || ok {
		t.Fatalf("expected no saved formation, ok=%v err=%v", ok, err)
	}

	stored, err := repo.Upsert(ctx, formation.Saved{
		TeamID: memory.TeamIDDemo,
		Snapshot: formation.Snapshot{
			TemplateName: "4-4-2",
			Positions: []formation.Assignment{
				{SlotID: "gk", PlayerID: "1"},
				{SlotID: "lb"},
			},
		},
	})
	if err != nil {
		t.Fatalf("upsert formation: %v", err)
	}
	if !stored.UpdatedAt.Equal(at) || stored.Snapshot.TeamID != memory.TeamIDDemo {
		t.Fatalf("unexpected stored formation: %+v", stored)
	}

	got, ok, err := repo.GetByTeam(ctx, memory.TeamIDDemo)
	if err != nil || !ok {
		t.Fatalf("get formation: ok=%v err=%v", ok, err)
	}
	if len(got.Snapshot.Positions) != 2 || got.Snapshot.Positions[0].PlayerID != "1" || !got.Snapshot.Positions[1].PlayerID.IsZero() {
		t.Fatalf("unexpected positions: %+v", got.Snapshot.Positions)
	}
	if !got.UpdatedAt.Equal(at) {
		t.Fatalf("unexpected updated_at: %s", got.UpdatedAt)
	}

	if _, err := repo.Upsert(ctx, formation.Saved{
		TeamID:   memory.TeamIDDemo,
		Snapshot: formation.Snapshot{TemplateName: "4-3-3", Positions: []formation.Assignment{{SlotID: "st", PlayerID: "9"}}},
	}); err != nil {
		t.Fatalf("overwrite formation: %v", err)
	}

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list formations: %v", err)
	}
	if len(items) != 1 || items[0].Snapshot.TemplateName != "4-3-3" {
		t.Fatalf("unexpected formations: %+v", items)
	}
}

func TestOpen_FileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formation.db")

	db, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open file database: %v", err)
	}
	if err := BootstrapSeed(context.Background(), db); err != nil {
		t.Fatalf("seed file database: %v", err)
	}
	_ = db.Close()

	reopened, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("reopen file database: %v", err)
	}
	defer reopened.Close()

	teams, err := NewTeamRepository(reopened).List(context.Background())
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("expected persisted teams, got %d", len(teams))
	}
}

func TestOpen_RequiresPath(t *testing.T) {
	if _, err := Open(context.Background(), " "); err == nil {
		t.Fatalf("expected error for blank path")
	}
}
