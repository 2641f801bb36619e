// Package app wires the concrete infrastructure into the use cases and
// owns the service lifecycle.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"jobcrawler/internal/aggregate"
	"jobcrawler/internal/config"
	"jobcrawler/internal/domain"
	"jobcrawler/internal/infrastructure/boards"
	"jobcrawler/internal/infrastructure/mailer"
	"jobcrawler/internal/infrastructure/redisstore"
	"jobcrawler/internal/infrastructure/scheduler"
	"jobcrawler/internal/infrastructure/storage"
	"jobcrawler/internal/logging"
	"jobcrawler/internal/ports"
	"jobcrawler/internal/source"
	"jobcrawler/internal/usecase"
)

// sourceStagger spaces the start of concurrent board fetches inside one
// collection.
const sourceStagger = 500 * time.Millisecond

type App struct {
	logger *slog.Logger
	pool   *pgxpool.Pool
	redis  *redis.Client
	orch   *usecase.Orchestrator
	sched  *usecase.Scheduler
	search *usecase.SearchService
}

// New builds the full object graph from config. Redis and mail are
// optional; when absent the related concerns are disabled rather than
// failing startup.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.New(cfg.Logging.Level)

	pool, err := pgxpool.New(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := storage.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	var (
		redisClient *redis.Client
		lock        ports.CycleLock
		state       ports.CycleStateStore
	)
	if cfg.Redis.URL != "" {
		redisClient, err = redisstore.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			pool.Close()
			return nil, err
		}
		cycleState := redisstore.NewCycleState(redisClient)
		lock = cycleState
		state = cycleState
	} else {
		logger.Warn("redis not configured, cycle lock disabled")
	}

	client := boards.NewClient()
	registry := source.NewRegistry()
	registry.Register(boards.NewIndeed(client, logger))
	registry.Register(boards.NewLinkedIn(client, logger))
	registry.Register(boards.NewTimesJobs(client, logger))

	var alerts ports.AlertSender
	if cfg.AlertsEnabled() {
		alerts = mailer.NewSMTPSender(mailer.Config{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
		})
	} else {
		logger.Warn("mail not configured, alert digests disabled")
	}

	userStore := storage.NewUserStore(pool)
	jobRepo := storage.NewJobRepository(pool)

	orch := usecase.NewOrchestrator(usecase.OrchestratorDeps{
		Users:      userStore,
		Jobs:       jobRepo,
		Aggregator: aggregate.New(registry, logger, sourceStagger),
		Alerts:     alerts,
		Lock:       lock,
		State:      state,
		Logger:     logger,
		Limits: usecase.Limits{
			QueriesPerUser:   cfg.Scrape.QueriesPerUser,
			LocationsPerUser: cfg.Scrape.LocationsPerUser,
			JobsPerQuery:     cfg.Scrape.JobsPerQuery,
			ComboDelay:       cfg.Scrape.ComboDelay,
		},
	})

	sched := usecase.NewScheduler(
		orch,
		scheduler.NewCron(cfg.Scheduler.IntervalHours),
		logger,
		cfg.Scheduler.RetryCooldown,
	)

	return &App{
		logger: logger,
		pool:   pool,
		redis:  redisClient,
		orch:   orch,
		sched:  sched,
		search: usecase.NewSearchService(jobRepo, userStore),
	}, nil
}

// Search exposes the read path over stored postings to outer surfaces
// (HTTP handlers, CLI tooling).
func (a *App) Search(ctx context.Context, req usecase.SearchRequest) ([]domain.ScoredJob, error) {
	return a.search.Search(ctx, req)
}

// Run starts the periodic scraping and blocks until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if err := a.sched.Start(ctx); err != nil {
		return err
	}
	a.logger.Info("job crawler started")

	<-ctx.Done()
	a.logger.Info("shutting down")

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return a.sched.Stop(stopCtx)
}

// RunOnce executes a single scrape cycle and returns. Used by the
// -once flag for manual triggering and smoke testing.
func (a *App) RunOnce(ctx context.Context) error {
	report, err := a.orch.RunCycle(ctx)
	if err != nil {
		return err
	}
	a.logger.Info("manual cycle complete",
		"cycle", report.ID,
		"new", report.NewJobs,
		"collected", report.JobsCollected,
		"source_errors", report.SourceErrors,
	)
	return nil
}

// Close releases the database and redis connections.
func (a *App) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	a.pool.Close()
}
