package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/formation-editor/internal/domain/formation"
	"github.com/riskibarqy/formation-editor/internal/domain/player"
	"github.com/riskibarqy/formation-editor/internal/infrastructure/repository/memory"
)

func seedAuditFixture(t *testing.T) (*FormationAuditService, *memory.FormationRepository, *memory.PlayerRepository) {
	t.Helper()

	ctx := context.Background()
	formations := memory.NewFormationRepository()
	players := memory.NewPlayerRepository(memory.SeedPlayers())
	teams := memory.NewTeamRepository(memory.SeedTeams())

	_, err := formations.Upsert(ctx, formation.Saved{
		TeamID: memory.TeamIDDemo,
		Snapshot: formation.Snapshot{
			TemplateName: "4-4-2",
			Positions: []formation.Assignment{
				{SlotID: "gk", PlayerID: "1"},
				{SlotID: "st1", PlayerID: "9"},
			},
		},
	})
	require.NoError(t, err)
	_, err = formations.Upsert(ctx, formation.Saved{
		TeamID: memory.TeamIDReserves,
		Snapshot: formation.Snapshot{
			TemplateName: "4-3-3",
			Positions:    []formation.Assignment{{SlotID: "gk", PlayerID: "r1"}},
		},
	})
	require.NoError(t, err)

	service := NewFormationAuditService(nil, teams, players, formations, 2, nil)
	return service, formations, players
}

func TestFormationAuditService_AllValid(t *testing.T) {
	service, _, _ := seedAuditFixture(t)

	result, err := service.Audit(context.Background(), AuditFormationsInput{})
	require.NoError(t, err)
	require.Equal(t, 2, result.TaskCount)
	require.Equal(t, 2, result.OKCount)
	require.Equal(t, 2, result.WorkerCount)
	require.Len(t, result.Items, 2)
	require.Equal(t, memory.TeamIDDemo, result.Items[0].TeamID)
	require.Equal(t, memory.TeamIDReserves, result.Items[1].TeamID)
}

func TestFormationAuditService_ReportsWithoutRepair(t *testing.T) {
	service, formations, players := seedAuditFixture(t)
	ctx := context.Background()
	require.NoError(t, players.RemovePlayer(ctx, memory.TeamIDDemo, player.ID("9")))

	result, err := service.Audit(ctx, AuditFormationsInput{TeamIDs: []string{memory.TeamIDDemo}})
	require.NoError(t, err)
	require.Equal(t, 1, result.TaskCount)
	require.Equal(t, 1, result.InvalidCount)
	require.Equal(t, AuditStatusInvalid, result.Items[0].Status)
	require.NotEmpty(t, result.Items[0].Reason)

	stored, ok, err := formations.GetByTeam(ctx, memory.TeamIDDemo)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, player.ID("9"), stored.Snapshot.AssignedPlayers()["st1"])
}

func TestFormationAuditService_RepairDryRunLeavesStoreUntouched(t *testing.T) {
	service, formations, players := seedAuditFixture(t)
	ctx := context.Background()
	require.NoError(t, players.RemovePlayer(ctx, memory.TeamIDDemo, player.ID("9")))

	result, err := service.Audit(ctx, AuditFormationsInput{Repair: true, DryRun: true})
	require.NoError(t, err)
	require.True(t, result.DryRun)
	require.Equal(t, 1, result.RepairedCount)
	require.Equal(t, 1, result.OKCount)

	repaired := result.Items[0]
	require.Equal(t, AuditStatusRepaired, repaired.Status)
	require.False(t, repaired.Saved)
	require.NotEmpty(t, repaired.Notes)

	stored, _, err := formations.GetByTeam(ctx, memory.TeamIDDemo)
	require.NoError(t, err)
	require.Equal(t, player.ID("9"), stored.Snapshot.AssignedPlayers()["st1"])
}

func TestFormationAuditService_RepairPersists(t *testing.T) {
	service, formations, players := seedAuditFixture(t)
	ctx := context.Background()
	require.NoError(t, players.RemovePlayer(ctx, memory.TeamIDDemo, player.ID("9")))

	result, err := service.Audit(ctx, AuditFormationsInput{Repair: true})
	require.NoError(t, err)
	require.Equal(t, 1, result.RepairedCount)
	require.True(t, result.Items[0].Saved)

	stored, _, err := formations.GetByTeam(ctx, memory.TeamIDDemo)
	require.NoError(t, err)
	assigned := stored.Snapshot.AssignedPlayers()
	require.Equal(t, player.ID("1"), assigned["gk"])
	require.NotContains(t, assigned, "st1")

	again, err := service.Audit(ctx, AuditFormationsInput{})
	require.NoError(t, err)
	require.Equal(t, 2, again.OKCount)
}

func TestFormationAuditService_UnknownTemplateFallsBackToTeamDefault(t *testing.T) {
	service, formations, _ := seedAuditFixture(t)
	ctx := context.Background()

	_, err := formations.Upsert(ctx, formation.Saved{
		TeamID: memory.TeamIDReserves,
		Snapshot: formation.Snapshot{
			TemplateName: "2-3-5",
			Positions:    []formation.Assignment{{SlotID: "gk", PlayerID: "r1"}},
		},
	})
	require.NoError(t, err)

	result, err := service.Audit(ctx, AuditFormationsInput{TeamIDs: []string{memory.TeamIDReserves}, Repair: true})
	require.NoError(t, err)
	require.Equal(t, AuditStatusRepaired, result.Items[0].Status)
	require.Equal(t, "4-3-3", result.Items[0].TemplateName)
}

func TestFormationAuditService_EmptyStore(t *testing.T) {
	service := NewFormationAuditService(nil, memory.NewTeamRepository(nil), memory.NewPlayerRepository(nil), memory.NewFormationRepository(), 0, nil)

	result, err := service.Audit(context.Background(), AuditFormationsInput{})
	require.NoError(t, err)
	require.Zero(t, result.TaskCount)
	require.Empty(t, result.Items)
}
