package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/formation-editor/internal/domain/formation"
	"github.com/riskibarqy/formation-editor/internal/domain/player"
	"github.com/riskibarqy/formation-editor/internal/domain/team"
	"github.com/riskibarqy/formation-editor/internal/platform/logging"
)

const (
	AuditStatusOK       = "ok"
	AuditStatusInvalid  = "invalid"
	AuditStatusRepaired = "repaired"
	AuditStatusFailed   = "failed"

	defaultAuditWorkers = 4
	maxAuditWorkers     = 64
)

type AuditFormationsInput struct {
	// TeamIDs narrows the audit; empty means every stored formation.
	TeamIDs    []string
	Repair     bool
	DryRun     bool
	MaxWorkers int
}

type AuditFormationsResult struct {
	TaskCount     int               `json:"task_count"`
	OKCount       int               `json:"ok_count"`
	InvalidCount  int               `json:"invalid_count"`
	RepairedCount int               `json:"repaired_count"`
	FailedCount   int               `json:"failed_count"`
	WorkerCount   int               `json:"worker_count"`
	DryRun        bool              `json:"dry_run"`
	Items         []AuditItemResult `json:"items"`
}

type AuditItemResult struct {
	TeamID       string   `json:"team_id"`
	TemplateName string   `json:"template_name"`
	Status       string   `json:"status"`
	Reason       string   `json:"reason,omitempty"`
	Notes        []string `json:"notes,omitempty"`
	Saved        bool     `json:"saved"`
	DurationMs   int64    `json:"duration_ms"`
}

// FormationAuditService re-checks stored formations against the current
// catalog and rosters.
type FormationAuditService struct {
	catalog       *formation.Catalog
	teamRepo      team.Repository
	playerRepo    player.Repository
	formationRepo formation.Repository
	workers       int
	logger        *logging.Logger
}

func NewFormationAuditService(
	catalog *formation.Catalog,
	teamRepo team.Repository,
	playerRepo player.Repository,
	formationRepo formation.Repository,
	workers int,
	logger *logging.Logger,
) *FormationAuditService {
	if catalog == nil {
		catalog = formation.DefaultCatalog()
	}
	if workers <= 0 {
		workers = defaultAuditWorkers
	}

	return &FormationAuditService{
		catalog:       catalog,
		teamRepo:      teamRepo,
		playerRepo:    playerRepo,
		formationRepo: formationRepo,
		workers:       workers,
		logger:        logging.OrDefault(logger).Named("formation_audit"),
	}
}

func (s *FormationAuditService) Audit(ctx context.Context, input AuditFormationsInput) (AuditFormationsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FormationAuditService.Audit",
		attribute.Bool("audit.repair", input.Repair),
		attribute.Bool("audit.dry_run", input.DryRun),
	)
	defer span.End()

	items, err := s.formationRepo.List(ctx)
	if err != nil {
		return AuditFormationsResult{}, fmt.Errorf("list saved formations: %w", err)
	}
	items = filterByTeam(items, input.TeamIDs)

	workerCount := input.MaxWorkers
	if workerCount <= 0 {
		workerCount = s.workers
	}
	if workerCount > maxAuditWorkers {
		workerCount = maxAuditWorkers
	}
	if workerCount > len(items) && len(items) > 0 {
		workerCount = len(items)
	}

	result := AuditFormationsResult{
		TaskCount:   len(items),
		WorkerCount: workerCount,
		DryRun:      input.DryRun,
		Items:       make([]AuditItemResult, 0, len(items)),
	}
	if len(items) == 0 {
		return result, nil
	}

	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return AuditFormationsResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	rows := make(chan AuditItemResult, len(items))
	var okCount, invalidCount, repairedCount, failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, item := range items {
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := s.auditOne(ctx, item, input)
			row.DurationMs = time.Since(start).Milliseconds()

			switch row.Status {
			case AuditStatusOK:
				okCount.Add(1)
			case AuditStatusInvalid:
				invalidCount.Add(1)
			case AuditStatusRepaired:
				repairedCount.Add(1)
			default:
				failedCount.Add(1)
			}
			rows <- row
		}); err != nil {
			workers.Done()
			return AuditFormationsResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(rows)

	for row := range rows {
		result.Items = append(result.Items, row)
	}
	sort.SliceStable(result.Items, func(i, j int) bool {
		return result.Items[i].TeamID < result.Items[j].TeamID
	})

	result.OKCount = int(okCount.Load())
	result.InvalidCount = int(invalidCount.Load())
	result.RepairedCount = int(repairedCount.Load())
	result.FailedCount = int(failedCount.Load())

	s.logger.InfoContext(ctx, "formation audit finished",
		"tasks", result.TaskCount,
		"ok", result.OKCount,
		"invalid", result.InvalidCount,
		"repaired", result.RepairedCount,
		"failed", result.FailedCount,
		"dry_run", input.DryRun,
	)
	return result, nil
}

func (s *FormationAuditService) auditOne(ctx context.Context, item formation.Saved, input AuditFormationsInput) AuditItemResult {
	row := AuditItemResult{
		TeamID:       item.TeamID,
		TemplateName: item.Snapshot.TemplateName,
	}

	owner, exists, err := s.teamRepo.GetByID(ctx, item.TeamID)
	if err != nil {
		row.Status = AuditStatusFailed
		row.Reason = fmt.Sprintf("get team: %v", err)
		return row
	}
	if !exists {
		row.Status = AuditStatusInvalid
		row.Reason = "team no longer exists"
		return row
	}

	roster, err := s.playerRepo.ListByTeam(ctx, item.TeamID)
	if err != nil {
		row.Status = AuditStatusFailed
		row.Reason = fmt.Sprintf("list roster: %v", err)
		return row
	}

	snapshot := item.Snapshot
	checkErr := formation.NewState(s.catalog, item.TeamID).Initialize(roster, &snapshot)
	if checkErr == nil {
		row.Status = AuditStatusOK
		return row
	}
	if !formation.IsRuleViolation(checkErr) {
		row.Status = AuditStatusFailed
		row.Reason = checkErr.Error()
		return row
	}

	row.Status = AuditStatusInvalid
	row.Reason = checkErr.Error()
	if !input.Repair || errors.Is(checkErr, formation.ErrInvalidRoster) {
		return row
	}

	repaired, notes := formation.Sanitize(s.catalog, roster, snapshot, owner.DefaultTemplate)
	repaired.TeamID = item.TeamID
	proof := formation.NewState(s.catalog, item.TeamID)
	if err := proof.Initialize(roster, &repaired); err != nil {
		row.Reason = fmt.Sprintf("repair did not converge: %v", err)
		return row
	}

	row.Status = AuditStatusRepaired
	row.TemplateName = repaired.TemplateName
	row.Notes = notes
	if input.DryRun {
		return row
	}

	if _, err := s.formationRepo.Upsert(ctx, formation.Saved{TeamID: item.TeamID, Snapshot: repaired}); err != nil {
		row.Status = AuditStatusFailed
		row.Reason = fmt.Sprintf("save repaired formation: %v", err)
		return row
	}
	row.Saved = true
	s.logger.InfoContext(ctx, "formation repaired", "team_id", item.TeamID, "notes", notes)
	return row
}

func filterByTeam(items []formation.Saved, teamIDs []string) []formation.Saved {
	if len(teamIDs) == 0 {
		return items
	}

	wanted := make(map[string]struct{}, len(teamIDs))
	for _, teamID := range teamIDs {
		if teamID = strings.TrimSpace(teamID); teamID != "" {
			wanted[teamID] = struct{}{}
		}
	}

	out := make([]formation.Saved, 0, len(items))
	for _, item := range items {
		if _, ok := wanted[item.TeamID]; ok {
			out = append(out, item)
		}
	}
	return out
}
