package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/formation-editor/internal/domain/formation"
	"github.com/riskibarqy/formation-editor/internal/domain/player"
	"github.com/riskibarqy/formation-editor/internal/domain/team"
	"github.com/riskibarqy/formation-editor/internal/platform/logging"
)

type SaveFormationInput struct {
	TeamID       string
	TemplateName string
	Positions    []formation.Assignment
}

// SaveFormationResult carries the stored formation and, when a remote sink
// is configured, its verdict as returned by the sink.
type SaveFormationResult struct {
	Saved   formation.Saved
	Publish *formation.PublishResult
}

// EditorView is the state of one editor session as seen by a renderer.
type EditorView struct {
	SessionID string
	formation.View
}

type FormationService struct {
	catalog       *formation.Catalog
	teamRepo      team.Repository
	playerRepo    player.Repository
	formationRepo formation.Repository
	sessions      *EditorSessions
	publisher     formation.Publisher
	rosterWriter  player.RosterWriter
	logger        *logging.Logger
}

func NewFormationService(
	catalog *formation.Catalog,
	teamRepo team.Repository,
	playerRepo player.Repository,
	formationRepo formation.Repository,
	sessions *EditorSessions,
	logger *logging.Logger,
) *FormationService {
	if catalog == nil {
		catalog = formation.DefaultCatalog()
	}
	if sessions == nil {
		sessions = NewEditorSessions(0, nil)
	}

	return &FormationService{
		catalog:       catalog,
		teamRepo:      teamRepo,
		playerRepo:    playerRepo,
		formationRepo: formationRepo,
		sessions:      sessions,
		logger:        logging.OrDefault(logger).Named("formation_service"),
	}
}

// SetPublisher enables forwarding of saved formations to a remote sink.
func (s *FormationService) SetPublisher(publisher formation.Publisher) {
	s.publisher = publisher
}

// SetRosterWriter enables RemovePlayer. Without it rosters are read-only.
func (s *FormationService) SetRosterWriter(writer player.RosterWriter) {
	s.rosterWriter = writer
}

func (s *FormationService) Catalog() *formation.Catalog {
	return s.catalog
}

func (s *FormationService) ListTemplates(ctx context.Context) []formation.Template {
	_, span := startUsecaseSpan(ctx, "usecase.FormationService.ListTemplates")
	defer span.End()

	return s.catalog.Templates()
}

func (s *FormationService) ListTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FormationService.ListTeams")
	defer span.End()

	items, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return items, nil
}

func (s *FormationService) ListPlayers(ctx context.Context, teamID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FormationService.ListPlayers", attribute.String("team.id", teamID))
	defer span.End()

	if _, err := s.requireTeam(ctx, teamID); err != nil {
		return nil, err
	}

	roster, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list players by team: %w", err)
	}
	return roster, nil
}

// RemovePlayer drops a player from a team roster. Saved formations that still
// hold the player are repaired when an editor opens them or by the audit.
func (s *FormationService) RemovePlayer(ctx context.Context, teamID string, playerID player.ID) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.FormationService.RemovePlayer",
		attribute.String("team.id", teamID),
		attribute.String("player.id", playerID.String()),
	)
	defer span.End()

	if s.rosterWriter == nil {
		return fmt.Errorf("%w: roster is read-only for this storage", ErrInvalidInput)
	}
	if playerID.IsZero() {
		return fmt.Errorf("%w: player_id is required", ErrInvalidInput)
	}

	roster, err := s.ListPlayers(ctx, teamID)
	if err != nil {
		return err
	}
	found := false
	for _, item := range roster {
		if item.ID == playerID {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: player=%s team=%s", ErrNotFound, playerID, teamID)
	}

	if err := s.rosterWriter.RemovePlayer(ctx, strings.TrimSpace(teamID), playerID); err != nil {
		return fmt.Errorf("remove player: %w", err)
	}
	s.logger.InfoContext(ctx, "player removed from roster", "team_id", teamID, "player_id", playerID.String())
	return nil
}

func (s *FormationService) GetSavedFormation(ctx context.Context, teamID string) (formation.Saved, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FormationService.GetSavedFormation", attribute.String("team.id", teamID))
	defer span.End()

	if _, err := s.requireTeam(ctx, teamID); err != nil {
		return formation.Saved{}, false, err
	}

	saved, exists, err := s.formationRepo.GetByTeam(ctx, strings.TrimSpace(teamID))
	if err != nil {
		return formation.Saved{}, false, fmt.Errorf("get saved formation: %w", err)
	}
	return saved, exists, nil
}

// SaveFormation validates the payload by initializing a fresh state against
// the team roster, then persists the normalized snapshot.
func (s *FormationService) SaveFormation(ctx context.Context, input SaveFormationInput) (SaveFormationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FormationService.SaveFormation", attribute.String("team.id", input.TeamID))
	defer span.End()

	input.TeamID = strings.TrimSpace(input.TeamID)
	input.TemplateName = strings.TrimSpace(input.TemplateName)
	if input.TemplateName == "" {
		return SaveFormationResult{}, fmt.Errorf("%w: template_name is required", ErrInvalidInput)
	}

	if _, err := s.requireTeam(ctx, input.TeamID); err != nil {
		return SaveFormationResult{}, err
	}
	roster, err := s.playerRepo.ListByTeam(ctx, input.TeamID)
	if err != nil {
		return SaveFormationResult{}, fmt.Errorf("list players by team: %w", err)
	}

	state := formation.NewState(s.catalog, input.TeamID)
	if err := state.Initialize(roster, &formation.Snapshot{
		TemplateName: input.TemplateName,
		TeamID:       input.TeamID,
		Positions:    input.Positions,
	}); err != nil {
		return SaveFormationResult{}, formationInputError(err)
	}

	snapshot, err := state.Snapshot()
	if err != nil {
		return SaveFormationResult{}, fmt.Errorf("snapshot formation: %w", err)
	}
	return s.persist(ctx, snapshot)
}

// ImportLegacyFormation accepts the slot -> player map stored by older editors.
func (s *FormationService) ImportLegacyFormation(ctx context.Context, teamID, formationType string, positions map[string]string) (SaveFormationResult, error) {
	slotIDs := make([]string, 0, len(positions))
	for slotID := range positions {
		slotIDs = append(slotIDs, slotID)
	}
	sort.Strings(slotIDs)

	assignments := make([]formation.Assignment, 0, len(slotIDs))
	for _, slotID := range slotIDs {
		playerID := strings.TrimSpace(positions[slotID])
		if playerID == "" {
			continue
		}
		assignments = append(assignments, formation.Assignment{
			SlotID:   strings.TrimSpace(slotID),
			PlayerID: player.ID(playerID),
		})
	}

	return s.SaveFormation(ctx, SaveFormationInput{
		TeamID:       teamID,
		TemplateName: formationType,
		Positions:    assignments,
	})
}

// OpenEditor loads the team, its roster and its saved formation concurrently
// and registers a new editor session.
func (s *FormationService) OpenEditor(ctx context.Context, teamID string) (EditorView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FormationService.OpenEditor", attribute.String("team.id", teamID))
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return EditorView{}, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}

	var (
		item       team.Team
		teamExists bool
		roster     []player.Player
		saved      formation.Saved
		hasSaved   bool
	)

	loaders := pool.New().WithContext(ctx).WithCancelOnError()
	loaders.Go(func(ctx context.Context) error {
		var err error
		item, teamExists, err = s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			return fmt.Errorf("get team by id: %w", err)
		}
		return nil
	})
	loaders.Go(func(ctx context.Context) error {
		var err error
		roster, err = s.playerRepo.ListByTeam(ctx, teamID)
		if err != nil {
			return fmt.Errorf("list players by team: %w", err)
		}
		return nil
	})
	loaders.Go(func(ctx context.Context) error {
		var err error
		saved, hasSaved, err = s.formationRepo.GetByTeam(ctx, teamID)
		if err != nil {
			return fmt.Errorf("get saved formation: %w", err)
		}
		return nil
	})
	if err := loaders.Wait(); err != nil {
		return EditorView{}, err
	}
	if !teamExists {
		return EditorView{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	state, err := s.bootstrapState(ctx, item, roster, saved, hasSaved)
	if err != nil {
		return EditorView{}, err
	}

	session, err := s.sessions.Open(ctx, teamID, state)
	if err != nil {
		return EditorView{}, err
	}
	s.logger.InfoContext(ctx, "editor session opened", "session_id", session.ID, "team_id", teamID, "template", state.TemplateName())

	return s.viewOf(session)
}

func (s *FormationService) bootstrapState(ctx context.Context, item team.Team, roster []player.Player, saved formation.Saved, hasSaved bool) (*formation.State, error) {
	state := formation.NewState(s.catalog, item.ID)

	if !hasSaved {
		templateName := s.catalog.Default().Name
		if s.catalog.Has(item.DefaultTemplate) {
			templateName = item.DefaultTemplate
		}
		if err := state.InitializeWithTemplate(roster, templateName); err != nil {
			return nil, formationInputError(err)
		}
		return state, nil
	}

	snapshot := saved.Snapshot
	err := state.Initialize(roster, &snapshot)
	if err == nil {
		return state, nil
	}
	if !formation.IsRuleViolation(err) || errors.Is(err, formation.ErrInvalidRoster) {
		return nil, formationInputError(err)
	}

	// Rosters change outside the editor; open on the repaired shape instead of failing.
	repaired, notes := formation.Sanitize(s.catalog, roster, snapshot, item.DefaultTemplate)
	s.logger.WarnContext(ctx, "saved formation repaired on open", "team_id", item.ID, "error", err, "notes", notes)

	state = formation.NewState(s.catalog, item.ID)
	if err := state.Initialize(roster, &repaired); err != nil {
		return nil, formationInputError(err)
	}
	return state, nil
}

func (s *FormationService) EditorView(ctx context.Context, sessionID string) (EditorView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FormationService.EditorView", attribute.String("editor.session_id", sessionID))
	defer span.End()

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return EditorView{}, err
	}
	return s.viewOf(session)
}

func (s *FormationService) Assign(ctx context.Context, sessionID string, playerID player.ID, positionID string) (EditorView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FormationService.Assign", attribute.String("editor.session_id", sessionID))
	defer span.End()

	return s.apply(ctx, sessionID, func(state *formation.State) error {
		return state.Assign(playerID, strings.TrimSpace(positionID))
	})
}

func (s *FormationService) Remove(ctx context.Context, sessionID, positionID string) (EditorView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FormationService.Remove", attribute.String("editor.session_id", sessionID))
	defer span.End()

	return s.apply(ctx, sessionID, func(state *formation.State) error {
		return state.Remove(strings.TrimSpace(positionID))
	})
}

func (s *FormationService) SetTemplate(ctx context.Context, sessionID, templateName string) (EditorView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FormationService.SetTemplate", attribute.String("editor.session_id", sessionID))
	defer span.End()

	return s.apply(ctx, sessionID, func(state *formation.State) error {
		return state.SetFormation(strings.TrimSpace(templateName))
	})
}

// SaveEditor persists the session snapshot. The session stays open.
func (s *FormationService) SaveEditor(ctx context.Context, sessionID string) (SaveFormationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FormationService.SaveEditor", attribute.String("editor.session_id", sessionID))
	defer span.End()

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return SaveFormationResult{}, err
	}

	var snapshot formation.Snapshot
	if err := session.Do(func(state *formation.State) error {
		var snapErr error
		snapshot, snapErr = state.Snapshot()
		return snapErr
	}); err != nil {
		return SaveFormationResult{}, fmt.Errorf("snapshot editor session: %w", err)
	}

	return s.persist(ctx, snapshot)
}

func (s *FormationService) CloseEditor(ctx context.Context, sessionID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.FormationService.CloseEditor", attribute.String("editor.session_id", sessionID))
	defer span.End()

	if err := s.sessions.Close(ctx, sessionID); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "editor session closed", "session_id", sessionID)
	return nil
}

// SweepSessions drops idle editor sessions.
func (s *FormationService) SweepSessions(ctx context.Context) int {
	removed := s.sessions.Sweep(ctx)
	if removed > 0 {
		s.logger.DebugContext(ctx, "idle editor sessions swept", "removed", removed)
	}
	return removed
}

func (s *FormationService) apply(ctx context.Context, sessionID string, fn func(state *formation.State) error) (EditorView, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return EditorView{}, err
	}

	var view formation.View
	err = session.Do(func(state *formation.State) error {
		if err := fn(state); err != nil {
			return err
		}
		view = state.View()
		return nil
	})
	if err != nil {
		return EditorView{}, formationInputError(err)
	}

	return EditorView{SessionID: session.ID, View: view}, nil
}

func (s *FormationService) persist(ctx context.Context, snapshot formation.Snapshot) (SaveFormationResult, error) {
	stored, err := s.formationRepo.Upsert(ctx, formation.Saved{
		TeamID:   snapshot.TeamID,
		Snapshot: snapshot,
	})
	if err != nil {
		return SaveFormationResult{}, fmt.Errorf("upsert formation: %w", err)
	}
	result := SaveFormationResult{Saved: stored}
	s.logger.InfoContext(ctx, "formation saved", "team_id", stored.TeamID, "template", stored.Snapshot.TemplateName)

	if s.publisher == nil {
		return result, nil
	}

	published, err := s.publisher.Publish(ctx, stored.Snapshot)
	if err != nil {
		s.logger.WarnContext(ctx, "formation sink unreachable", "team_id", stored.TeamID, "error", err)
		if errors.Is(err, ErrDependencyUnavailable) {
			return result, err
		}
		return result, fmt.Errorf("%w: formation sink: %w", ErrDependencyUnavailable, err)
	}
	if !published.Success {
		s.logger.WarnContext(ctx, "formation sink rejected formation", "team_id", stored.TeamID, "sink_error", published.Error)
	}
	result.Publish = &published

	return result, nil
}

func (s *FormationService) viewOf(session *EditorSession) (EditorView, error) {
	var view formation.View
	if err := session.Do(func(state *formation.State) error {
		view = state.View()
		return nil
	}); err != nil {
		return EditorView{}, err
	}
	return EditorView{SessionID: session.ID, View: view}, nil
}

func (s *FormationService) requireTeam(ctx context.Context, teamID string) (team.Team, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return item, nil
}
