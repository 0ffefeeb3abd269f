package memory

import (
	"github.com/riskibarqy/formation-editor/internal/domain/player"
	"github.com/riskibarqy/formation-editor/internal/domain/team"
)

const (
	TeamIDDemo     = "demo-fc"
	TeamIDReserves = "demo-reserves"
)

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: TeamIDDemo, Name: "Demo FC", DefaultTemplate: "4-4-2"},
		{ID: TeamIDReserves, Name: "Demo FC Reserves", DefaultTemplate: "4-3-3"},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "1", TeamID: TeamIDDemo, Name: "John Smith", Number: player.IntPtr(1), NaturalPosition: "GK"},
		{ID: "2", TeamID: TeamIDDemo, Name: "David Jones", Number: player.IntPtr(2), NaturalPosition: "RB"},
		{ID: "3", TeamID: TeamIDDemo, Name: "Michael Brown", Number: player.IntPtr(3), NaturalPosition: "LB"},
		{ID: "4", TeamID: TeamIDDemo, Name: "Robert Wilson", Number: player.IntPtr(4), NaturalPosition: "CB"},
		{ID: "5", TeamID: TeamIDDemo, Name: "James Taylor", Number: player.IntPtr(5), NaturalPosition: "CB"},
		{ID: "6", TeamID: TeamIDDemo, Name: "William Davis", Number: player.IntPtr(6), NaturalPosition: "DM"},
		{ID: "7", TeamID: TeamIDDemo, Name: "Richard Miller", Number: player.IntPtr(7), NaturalPosition: "RM"},
		{ID: "8", TeamID: TeamIDDemo, Name: "Joseph Allen", Number: player.IntPtr(8), NaturalPosition: "CM"},
		{ID: "9", TeamID: TeamIDDemo, Name: "Thomas Young", Number: player.IntPtr(9), NaturalPosition: "ST"},
		{ID: "10", TeamID: TeamIDDemo, Name: "Charles King", Number: player.IntPtr(10), NaturalPosition: "CM"},
		{ID: "11", TeamID: TeamIDDemo, Name: "Daniel Scott", Number: player.IntPtr(11), NaturalPosition: "LM"},
		{ID: "12", TeamID: TeamIDDemo, Name: "Matthew Green", Number: player.IntPtr(12), NaturalPosition: "GK"},
		{ID: "13", TeamID: TeamIDDemo, Name: "Anthony Baker", Number: player.IntPtr(13), NaturalPosition: "CB"},
		{ID: "14", TeamID: TeamIDDemo, Name: "Donald Nelson", Number: player.IntPtr(14), NaturalPosition: "CM"},
		{ID: "15", TeamID: TeamIDDemo, Name: "Mark Carter", Number: player.IntPtr(15), NaturalPosition: "ST"},

		{ID: "r1", TeamID: TeamIDReserves, Name: "Paul Walker", Number: player.IntPtr(1), NaturalPosition: "GK"},
		{ID: "r2", TeamID: TeamIDReserves, Name: "Steven Hall", Number: player.IntPtr(2), NaturalPosition: "RB"},
		{ID: "r3", TeamID: TeamIDReserves, Name: "Kevin Wright", Number: player.IntPtr(4), NaturalPosition: "CB"},
		{ID: "r4", TeamID: TeamIDReserves, Name: "Brian Lopez", Number: player.IntPtr(5), NaturalPosition: "CB"},
		{ID: "r5", TeamID: TeamIDReserves, Name: "George Hill", Number: player.IntPtr(3), NaturalPosition: "LB"},
		{ID: "r6", TeamID: TeamIDReserves, Name: "Edward Adams", Number: player.IntPtr(6), NaturalPosition: "DM"},
		{ID: "r7", TeamID: TeamIDReserves, Name: "Ronald Campbell", Number: player.IntPtr(8), NaturalPosition: "CM"},
		{ID: "r8", TeamID: TeamIDReserves, Name: "Timothy Evans", Number: player.IntPtr(10), NaturalPosition: "CM"},
		{ID: "r9", TeamID: TeamIDReserves, Name: "Jason Turner", Number: player.IntPtr(7), NaturalPosition: "RW"},
		{ID: "r10", TeamID: TeamIDReserves, Name: "Jeffrey Parker", Number: player.IntPtr(9), NaturalPosition: "ST"},
		{ID: "r11", TeamID: TeamIDReserves, Name: "Ryan Collins", Number: player.IntPtr(11), NaturalPosition: "LW"},
	}
}
