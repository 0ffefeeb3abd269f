package formation

import (
	"fmt"

	"github.com/riskibarqy/formation-editor/internal/domain/player"
)

// Sanitize rewrites a stored snapshot so that it initializes cleanly against
// catalog and roster. It returns the repaired snapshot and one note per
// change; no notes means the snapshot was already valid.
//
// An unknown template is replaced by fallbackTemplate (or the catalog
// default) carrying assignments by slot id. Orphan slots, players missing
// from the roster and repeated occupancy are dropped; the first occurrence
// in snapshot order wins.
func Sanitize(catalog *Catalog, roster []player.Player, snapshot Snapshot, fallbackTemplate string) (Snapshot, []string) {
	var notes []string

	tmpl, ok := catalog.Template(snapshot.TemplateName)
	if !ok {
		tmpl, ok = catalog.Template(fallbackTemplate)
		if !ok {
			tmpl = catalog.Default()
		}
		notes = append(notes, fmt.Sprintf("template %q replaced by %q", snapshot.TemplateName, tmpl.Name))
	}

	known := make(map[player.ID]struct{}, len(roster))
	for _, item := range roster {
		known[item.ID] = struct{}{}
	}

	assigned := make(map[string]player.ID, len(tmpl.Slots))
	seenSlot := make(map[string]struct{}, len(snapshot.Positions))
	holder := make(map[player.ID]string, len(snapshot.Positions))
	for _, item := range snapshot.Positions {
		if !tmpl.HasSlot(item.SlotID) {
			if !item.PlayerID.IsZero() {
				notes = append(notes, fmt.Sprintf("position %q dropped", item.SlotID))
			}
			continue
		}
		if _, dup := seenSlot[item.SlotID]; dup {
			if !item.PlayerID.IsZero() && assigned[item.SlotID] != item.PlayerID {
				notes = append(notes, fmt.Sprintf("position %q listed twice", item.SlotID))
			}
			continue
		}
		seenSlot[item.SlotID] = struct{}{}

		if item.PlayerID.IsZero() {
			continue
		}
		if _, ok := known[item.PlayerID]; !ok {
			notes = append(notes, fmt.Sprintf("player %q at position %q not in roster", item.PlayerID, item.SlotID))
			continue
		}
		if other, exists := holder[item.PlayerID]; exists {
			notes = append(notes, fmt.Sprintf("player %q already at position %q, cleared from %q", item.PlayerID, other, item.SlotID))
			continue
		}
		holder[item.PlayerID] = item.SlotID
		assigned[item.SlotID] = item.PlayerID
	}

	positions := make([]Assignment, 0, len(tmpl.Slots))
	for _, def := range tmpl.Slots {
		positions = append(positions, Assignment{SlotID: def.ID, PlayerID: assigned[def.ID]})
	}

	return Snapshot{
		TemplateName: tmpl.Name,
		TeamID:       snapshot.TeamID,
		Positions:    positions,
	}, notes
}
