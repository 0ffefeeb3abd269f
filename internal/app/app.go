package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.opentelemetry.io/otel/attribute"

	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/formation-editor/internal/config"
	"github.com/riskibarqy/formation-editor/internal/domain/formation"
	"github.com/riskibarqy/formation-editor/internal/domain/player"
	"github.com/riskibarqy/formation-editor/internal/domain/team"
	"github.com/riskibarqy/formation-editor/internal/infrastructure/formationsink"
	cacherepo "github.com/riskibarqy/formation-editor/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/formation-editor/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/formation-editor/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/formation-editor/internal/infrastructure/repository/sqlite"
	"github.com/riskibarqy/formation-editor/internal/interfaces/httpapi"
	"github.com/riskibarqy/formation-editor/internal/platform/dburl"
	idgen "github.com/riskibarqy/formation-editor/internal/platform/id"
	"github.com/riskibarqy/formation-editor/internal/platform/logging"
	"github.com/riskibarqy/formation-editor/internal/usecase"
)

// App owns the HTTP server and the background resources it depends on.
type App struct {
	Server *http.Server

	formationService *usecase.FormationService
	sweepInterval    time.Duration
	logger           *logging.Logger
	closers          []io.Closer

	stopSweep context.CancelFunc
	sweepDone sync.WaitGroup
}

type repositories struct {
	teams      team.Repository
	players    player.Repository
	formations formation.Repository
	closer     io.Closer
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	logger = logging.OrDefault(logger)
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	catalog := formation.DefaultCatalog()
	if cfg.FormationCatalogPath != "" {
		loaded, err := formation.LoadCatalogFile(cfg.FormationCatalogPath)
		if err != nil {
			return nil, fmt.Errorf("load formation catalog: %w", err)
		}
		catalog = loaded
	}

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	a := &App{
		sweepInterval: cfg.EditorSweepInterval,
		logger:        logger.Named("app"),
	}
	if repos.closer != nil {
		a.closers = append(a.closers, repos.closer)
	}

	if cfg.CacheEnabled && cfg.StorageDriver != config.StorageMemory {
		store := cacherepo.NewStore(cfg.CacheTTL)
		repos.teams = cacherepo.NewTeamRepository(repos.teams, store)
		repos.players = cacherepo.NewPlayerRepository(repos.players, store)
		repos.formations = cacherepo.NewFormationRepository(repos.formations, store)
	}

	sessions := usecase.NewEditorSessions(cfg.EditorSessionTTL, idgen.NewPrefixedGenerator("es_", 12))
	a.formationService = usecase.NewFormationService(catalog, repos.teams, repos.players, repos.formations, sessions, logger)
	if writer, ok := repos.players.(player.RosterWriter); ok {
		a.formationService.SetRosterWriter(writer)
	}
	if cfg.FormationSinkEnabled {
		sink, err := formationsink.NewClient(formationsink.ClientConfig{
			URL:            cfg.FormationSinkURL,
			Timeout:        cfg.FormationSinkTimeout,
			MaxRetries:     cfg.FormationSinkRetries,
			RetryBackoff:   cfg.FormationSinkRetryBackoff,
			Logger:         logger,
			CircuitBreaker: cfg.FormationSinkCircuit,
		})
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("build formation sink: %w", err)
		}
		a.formationService.SetPublisher(sink)
	}
	auditService := usecase.NewFormationAuditService(catalog, repos.teams, repos.players, repos.formations, cfg.AuditWorkerCount, logger)

	handler := httpapi.NewHandler(a.formationService, auditService, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
		SwaggerEnabled:     cfg.SwaggerEnabled,
	})
	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("app wired",
		"storage_driver", cfg.StorageDriver,
		"cache_enabled", cfg.CacheEnabled,
		"formation_sink_enabled", cfg.FormationSinkEnabled,
		"templates", len(catalog.Names()),
	)
	return a, nil
}

func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openPostgres(cfg)
		if err != nil {
			return repositories{}, err
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return repositories{}, fmt.Errorf("ping postgres: %w", err)
		}
		logger.Info("postgres connected", "target", dburl.Redact(cfg.DBURL))
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			logger.Warn("postgres seed skipped", "error", err)
		}
		return repositories{
			teams:      postgres.NewTeamRepository(db),
			players:    postgres.NewPlayerRepository(db),
			formations: postgres.NewFormationRepository(db),
			closer:     db,
		}, nil
	case config.StorageSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return repositories{}, fmt.Errorf("open sqlite: %w", err)
		}
		logger.Info("sqlite opened", "path", cfg.SQLitePath)
		if err := sqlite.BootstrapSeed(ctx, db); err != nil {
			_ = db.Close()
			return repositories{}, fmt.Errorf("seed sqlite: %w", err)
		}
		return repositories{
			teams:      sqlite.NewTeamRepository(db),
			players:    sqlite.NewPlayerRepository(db),
			formations: sqlite.NewFormationRepository(db),
			closer:     db,
		}, nil
	default:
		return repositories{
			teams:      memory.NewTeamRepository(memory.SeedTeams()),
			players:    memory.NewPlayerRepository(memory.SeedPlayers()),
			formations: memory.NewFormationRepository(),
		}, nil
	}
}

func openPostgres(cfg config.Config) (*sqlx.DB, error) {
	dbURL := dburl.Normalize(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dburl.Name(dbURL)),
		otelsql.WithQueryFormatter(dburl.TraceQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return db, nil
}

// StartBackground runs the idle editor session sweeper until ctx is done or
// Close is called.
func (a *App) StartBackground(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	a.stopSweep = cancel

	a.sweepDone.Add(1)
	go func() {
		defer a.sweepDone.Done()

		ticker := time.NewTicker(a.sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				a.formationService.SweepSessions(ctx)
			}
		}
	}()
}

func (a *App) Close() error {
	if a.stopSweep != nil {
		a.stopSweep()
	}
	a.sweepDone.Wait()

	var firstErr error
	for _, closer := range a.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
