package formation

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/formation-editor/internal/domain/player"
)

// State is the assignment state machine of one formation editor.
//
// The available/selected partition of the roster is never stored; it is
// derived from the roster and the current slots on every read. State is not
// safe for concurrent use.
type State struct {
	catalog *Catalog
	teamID  string

	initialized  bool
	roster       []player.Player
	rosterIndex  map[player.ID]int
	templateName string
	slots        []Slot
}

func NewState(catalog *Catalog, teamID string) *State {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &State{
		catalog: catalog,
		teamID:  strings.TrimSpace(teamID),
	}
}

// Initialize adopts saved when present, otherwise the catalog default
// template with every slot empty. It may succeed only once.
func (s *State) Initialize(roster []player.Player, saved *Snapshot) error {
	if saved == nil {
		return s.InitializeWithTemplate(roster, s.catalog.Default().Name)
	}
	if s.initialized {
		return ErrAlreadyInitialized
	}

	rosterCopy, index, err := indexRoster(roster)
	if err != nil {
		return err
	}

	tmpl, ok := s.catalog.Template(saved.TemplateName)
	if !ok {
		return errors.Wrapf(ErrInvalidTemplate, "template %q", saved.TemplateName)
	}

	assigned := make(map[string]player.ID, len(saved.Positions))
	holder := make(map[player.ID]string, len(saved.Positions))
	for _, item := range saved.Positions {
		if !tmpl.HasSlot(item.SlotID) {
			return errors.Wrapf(ErrOrphanSlot, "position %q in template %q", item.SlotID, tmpl.Name)
		}
		if prev, exists := assigned[item.SlotID]; exists && prev != item.PlayerID {
			return errors.Wrapf(ErrDuplicateAssignment, "position %q listed twice", item.SlotID)
		}
		if item.PlayerID.IsZero() {
			continue
		}
		if _, ok := index[item.PlayerID]; !ok {
			return errors.Wrapf(ErrUnknownPlayer, "player %q at position %q", item.PlayerID, item.SlotID)
		}
		if other, exists := holder[item.PlayerID]; exists && other != item.SlotID {
			return errors.Wrapf(ErrDuplicateAssignment, "player %q at positions %q and %q", item.PlayerID, other, item.SlotID)
		}
		assigned[item.SlotID] = item.PlayerID
		holder[item.PlayerID] = item.SlotID
	}

	s.adopt(rosterCopy, index, tmpl, assigned)
	return nil
}

// InitializeWithTemplate starts from templateName with every slot empty.
func (s *State) InitializeWithTemplate(roster []player.Player, templateName string) error {
	if s.initialized {
		return ErrAlreadyInitialized
	}

	rosterCopy, index, err := indexRoster(roster)
	if err != nil {
		return err
	}

	tmpl, ok := s.catalog.Template(templateName)
	if !ok {
		return errors.Wrapf(ErrUnknownTemplate, "template %q", templateName)
	}

	s.adopt(rosterCopy, index, tmpl, nil)
	return nil
}

func (s *State) adopt(roster []player.Player, index map[player.ID]int, tmpl Template, assigned map[string]player.ID) {
	s.roster = roster
	s.rosterIndex = index
	s.templateName = tmpl.Name
	s.slots = buildSlots(tmpl, assigned)
	s.initialized = true
}

func (s *State) Initialized() bool {
	return s.initialized
}

// SetFormation switches to templateName. Assignments survive only on slots
// whose id exists in both templates.
func (s *State) SetFormation(templateName string) error {
	if !s.initialized {
		return ErrNotInitialized
	}

	tmpl, ok := s.catalog.Template(templateName)
	if !ok {
		return errors.Wrapf(ErrUnknownTemplate, "template %q", templateName)
	}
	if tmpl.Name == s.templateName {
		return nil
	}

	carried := make(map[string]player.ID, len(s.slots))
	for _, slot := range s.slots {
		if !slot.IsEmpty() {
			carried[slot.ID] = slot.PlayerID
		}
	}

	s.templateName = tmpl.Name
	s.slots = buildSlots(tmpl, carried)
	return nil
}

// Assign places playerID at positionID. The previous holder of the target
// is released first, then the player leaves any other slot.
func (s *State) Assign(playerID player.ID, positionID string) error {
	if !s.initialized {
		return ErrNotInitialized
	}

	target := s.slotIndex(positionID)
	if target < 0 {
		return errors.Wrapf(ErrUnknownPosition, "position %q", positionID)
	}
	if _, ok := s.rosterIndex[playerID]; !ok || playerID.IsZero() {
		return errors.Wrapf(ErrUnknownPlayer, "player %q", playerID)
	}

	if s.slots[target].PlayerID == playerID {
		return nil
	}

	s.slots[target].PlayerID = ""
	for i := range s.slots {
		if i != target && s.slots[i].PlayerID == playerID {
			s.slots[i].PlayerID = ""
		}
	}
	s.slots[target].PlayerID = playerID
	return nil
}

// Remove empties positionID. Removing from an empty slot is a no-op.
func (s *State) Remove(positionID string) error {
	if !s.initialized {
		return ErrNotInitialized
	}

	idx := s.slotIndex(positionID)
	if idx < 0 {
		return errors.Wrapf(ErrUnknownPosition, "position %q", positionID)
	}

	s.slots[idx].PlayerID = ""
	return nil
}

// Snapshot serializes the formation. Positions are in template order and
// include empty slots.
func (s *State) Snapshot() (Snapshot, error) {
	if !s.initialized {
		return Snapshot{}, ErrNotInitialized
	}

	positions := make([]Assignment, 0, len(s.slots))
	for _, slot := range s.slots {
		positions = append(positions, Assignment{SlotID: slot.ID, PlayerID: slot.PlayerID})
	}

	return Snapshot{
		TemplateName: s.templateName,
		TeamID:       s.teamID,
		Positions:    positions,
	}, nil
}

func (s *State) TeamID() string {
	return s.teamID
}

func (s *State) TemplateName() string {
	return s.templateName
}

// Positions returns a copy of the current slots in template order.
func (s *State) Positions() []Slot {
	return append([]Slot(nil), s.slots...)
}

// Roster returns a copy of the roster the state was initialized with.
func (s *State) Roster() []player.Player {
	return clonePlayers(s.roster)
}

// AvailablePlayers returns roster players not assigned to any slot, in roster order.
func (s *State) AvailablePlayers() []player.Player {
	available, _ := s.partition()
	return available
}

// SelectedPlayers returns roster players assigned to a slot, in roster order.
func (s *State) SelectedPlayers() []player.Player {
	_, selected := s.partition()
	return selected
}

func (s *State) View() View {
	available, selected := s.partition()
	return View{
		TeamID:           s.teamID,
		TemplateName:     s.templateName,
		Positions:        s.Positions(),
		AvailablePlayers: available,
		SelectedPlayers:  selected,
	}
}

func (s *State) partition() ([]player.Player, []player.Player) {
	assigned := make(map[player.ID]struct{}, len(s.slots))
	for _, slot := range s.slots {
		if !slot.IsEmpty() {
			assigned[slot.PlayerID] = struct{}{}
		}
	}

	available := make([]player.Player, 0, len(s.roster))
	selected := make([]player.Player, 0, len(assigned))
	for _, item := range s.roster {
		if _, ok := assigned[item.ID]; ok {
			selected = append(selected, clonePlayer(item))
			continue
		}
		available = append(available, clonePlayer(item))
	}
	return available, selected
}

func (s *State) slotIndex(positionID string) int {
	for i, slot := range s.slots {
		if slot.ID == positionID {
			return i
		}
	}
	return -1
}

func buildSlots(tmpl Template, assigned map[string]player.ID) []Slot {
	slots := make([]Slot, 0, len(tmpl.Slots))
	for _, def := range tmpl.Slots {
		slots = append(slots, Slot{
			ID:       def.ID,
			Label:    def.Label,
			X:        def.X,
			Y:        def.Y,
			PlayerID: assigned[def.ID],
		})
	}
	return slots
}

func indexRoster(roster []player.Player) ([]player.Player, map[player.ID]int, error) {
	out := make([]player.Player, 0, len(roster))
	index := make(map[player.ID]int, len(roster))
	for _, item := range roster {
		if item.ID.IsZero() {
			return nil, nil, errors.Wrapf(ErrInvalidRoster, "player %q has no id", item.Name)
		}
		if _, exists := index[item.ID]; exists {
			return nil, nil, errors.Wrapf(ErrInvalidRoster, "duplicate player %q", item.ID)
		}
		index[item.ID] = len(out)
		out = append(out, clonePlayer(item))
	}
	return out, index, nil
}

func clonePlayers(items []player.Player) []player.Player {
	out := make([]player.Player, 0, len(items))
	for _, item := range items {
		out = append(out, clonePlayer(item))
	}
	return out
}

func clonePlayer(item player.Player) player.Player {
	if item.Number != nil {
		number := *item.Number
		item.Number = &number
	}
	return item
}
