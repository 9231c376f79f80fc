package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"loan-eligibility/config"
	"loan-eligibility/logging"
	"loan-eligibility/repository"
	"loan-eligibility/service"
)

// App holds the wired dependencies shared by every command.
type App struct {
	Config      *config.Config
	Logger      zerolog.Logger
	Policies    repository.PolicyRepository
	Loans       *service.LoanService
	Eligibility *service.EligibilityService

	closers []func()
}

// NewApp connects the optional backing stores and builds the pipeline.
// Postgres and redis are used only when configured.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewLogger(cfg.Log)
	app := &App{Config: cfg, Logger: logger}

	var cache repository.CacheRepository = repository.NewMemoryCache()
	if cfg.Redis.Addr != "" {
		redisCache := repository.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Prefix)
		if err := redisCache.Ping(ctx); err != nil {
			logger.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable, using in-memory cache")
			_ = redisCache.Close()
		} else {
			cache = redisCache
			app.closers = append(app.closers, func() { _ = redisCache.Close() })
			logger.Debug().Str("addr", cfg.Redis.Addr).Msg("Redis cache initialized")
		}
	}

	if cfg.Postgres.DSN != "" {
		pool, err := repository.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.closers = append(app.closers, pool.Close)
		repo := repository.NewPolicyRepositoryPostgres(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			app.Close()
			return nil, err
		}
		app.Policies = repo
	} else {
		app.Policies = repository.NewPolicyRepositoryMemory()
	}

	if err := seedPolicies(ctx, app.Policies); err != nil {
		app.Close()
		return nil, err
	}

	var valuer service.ExternalValuer
	aiValuer := service.NewOpenAIValuer(cfg.Valuation.OpenAIAPIKey, cfg.Valuation.OpenAIModel, cfg.Valuation.OpenAIURL)
	if aiValuer.Enabled() {
		valuer = aiValuer
		logger.Debug().Str("model", cfg.Valuation.OpenAIModel).Msg("External valuation enabled")
	}

	app.Loans = service.NewLoanService()
	app.Eligibility = service.NewEligibilityService(
		service.NewTradelineClassifier(service.FirstMatchAutoLoan),
		service.NewValuationService(cfg.ValuationConfig(), valuer, cache, logger),
		service.NewPolicyMatcher(),
		service.NewReportAssembler(),
		cfg.RateCard(),
		logger,
	)
	return app, nil
}

// seedPolicies loads the bootstrap table when the store is empty.
func seedPolicies(ctx context.Context, repo repository.PolicyRepository) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("reading lender policies: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	if err := repo.Seed(ctx, repository.DefaultPolicies()); err != nil {
		return fmt.Errorf("seeding lender policies: %w", err)
	}
	return nil
}

func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
