package formation

import (
	"time"

	"github.com/riskibarqy/formation-editor/internal/domain/player"
)

// SlotDefinition is one position of a template as declared by the catalog.
type SlotDefinition struct {
	ID    string  `yaml:"id"`
	Label string  `yaml:"label"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
}

// Template is a named, ordered set of slot definitions.
type Template struct {
	Name  string           `yaml:"name"`
	Slots []SlotDefinition `yaml:"slots"`
}

// HasSlot reports whether the template declares slotID.
func (t Template) HasSlot(slotID string) bool {
	for _, slot := range t.Slots {
		if slot.ID == slotID {
			return true
		}
	}
	return false
}

// Slot is a live position of a formation. A zero PlayerID means the slot is empty.
type Slot struct {
	ID       string
	Label    string
	X        float64
	Y        float64
	PlayerID player.ID
}

func (s Slot) IsEmpty() bool {
	return s.PlayerID.IsZero()
}

// Assignment is the serialized form of one slot.
type Assignment struct {
	SlotID   string
	PlayerID player.ID
}

// Snapshot is the serialized form of a formation handed to persistence.
type Snapshot struct {
	TemplateName string
	TeamID       string
	Positions    []Assignment
}

// AssignedPlayers returns the slot -> player map of non-empty assignments.
func (s Snapshot) AssignedPlayers() map[string]player.ID {
	out := make(map[string]player.ID, len(s.Positions))
	for _, item := range s.Positions {
		if item.PlayerID.IsZero() {
			continue
		}
		out[item.SlotID] = item.PlayerID
	}
	return out
}

// Saved is a persisted snapshot for one team.
type Saved struct {
	TeamID    string
	Snapshot  Snapshot
	UpdatedAt time.Time
}

// View is everything a renderer needs for one frame.
type View struct {
	TeamID           string
	TemplateName     string
	Positions        []Slot
	AvailablePlayers []player.Player
	SelectedPlayers  []player.Player
}
