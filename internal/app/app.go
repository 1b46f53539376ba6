package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/football-standings/external/footballdata"
	"github.com/riskibarqy/football-standings/external/sportmonks"
	"github.com/riskibarqy/football-standings/internal/config"
	"github.com/riskibarqy/football-standings/internal/domain/standing"
	cacherepo "github.com/riskibarqy/football-standings/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/football-standings/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/football-standings/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/football-standings/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/football-standings/internal/platform/cache"
	"github.com/riskibarqy/football-standings/internal/platform/logging"
	"github.com/riskibarqy/football-standings/internal/platform/resilience"
	"github.com/riskibarqy/football-standings/internal/usecase"
)

type syncer interface {
	SyncAll(ctx context.Context) (usecase.SyncResult, error)
}

// App owns the HTTP server and the optional upstream sync loop.
type App struct {
	Server *http.Server

	logger       *logging.Logger
	db           *sqlx.DB
	sync         syncer
	syncInterval time.Duration
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	repo, db, err := newStandingRepository(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	standingSvc := usecase.NewStandingService(repo, cfg.FetchMaxWorkers)
	handler := httpapi.NewHandler(standingSvc, logger.Named("httpapi"))
	router := httpapi.NewRouter(handler, logger.Named("http"), cfg.CORSAllowedOrigins)

	a := &App{
		Server: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		logger:       logger,
		db:           db,
		syncInterval: cfg.SyncInterval,
	}

	provider := cfg.ActiveProvider()
	if provider.Enabled {
		upstream := newStandingsProvider(cfg.StandingsProvider, provider, logger)
		a.sync = usecase.NewSyncService(upstream, repo, provider.Competitions, cfg.SyncMaxWorkers, logger.Named("sync"))
		logger.Info("standings sync enabled", "provider", cfg.StandingsProvider, "interval", cfg.SyncInterval.String())
	} else {
		logger.Info("standings sync disabled", "provider", cfg.StandingsProvider, "reason", "provider not enabled")
	}

	return a, nil
}

func newStandingsProvider(name string, cfg config.ProviderConfig, logger *logging.Logger) usecase.StandingsProvider {
	breaker := resilience.CircuitBreakerConfig{
		Enabled:          cfg.CircuitEnabled,
		FailureThreshold: cfg.CircuitFailureCount,
		OpenTimeout:      cfg.CircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.CircuitHalfOpenMaxReq,
	}

	if name == config.ProviderSportMonks {
		return sportmonks.NewClient(sportmonks.ClientConfig{
			BaseURL:        cfg.BaseURL,
			Token:          cfg.Token,
			Timeout:        cfg.Timeout,
			MaxRetries:     cfg.MaxRetries,
			Logger:         logger.Named("sportmonks"),
			CircuitBreaker: breaker,
		})
	}
	return footballdata.NewClient(footballdata.ClientConfig{
		BaseURL:        cfg.BaseURL,
		Token:          cfg.Token,
		Timeout:        cfg.Timeout,
		MaxRetries:     cfg.MaxRetries,
		Logger:         logger.Named("footballdata"),
		CircuitBreaker: breaker,
	})
}

func newStandingRepository(ctx context.Context, cfg config.Config, logger *logging.Logger) (standing.Repository, *sqlx.DB, error) {
	var (
		repo standing.Repository
		db   *sqlx.DB
	)

	if cfg.DBURL == "" {
		logger.Info("using in-memory standings store", "reason", "DB_URL empty")
		repo = memory.NewStandingRepository(memory.SeedStandings())
	} else {
		var err error
		db, err = openDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		repo = postgres.NewStandingRepository(db)
	}

	if cfg.CacheEnabled {
		repo = cacherepo.NewStandingRepository(repo, basecache.NewStore[[]standing.Team](cfg.CacheTTL))
	}

	return repo, db, nil
}

// RunSync refreshes standings once, then on every interval until ctx ends.
// It returns immediately when the upstream provider is disabled.
func (a *App) RunSync(ctx context.Context) {
	if a.sync == nil {
		return
	}

	a.syncOnce(ctx)

	ticker := time.NewTicker(a.syncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.syncOnce(ctx)
		}
	}
}

func (a *App) syncOnce(ctx context.Context) {
	// SyncService logs the per-run summary itself.
	if _, err := a.sync.SyncAll(ctx); err != nil && !errors.Is(err, context.Canceled) {
		a.logger.ErrorContext(ctx, "standings sync failed", "error", err)
	}
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
