package di

import (
	"fmt"

	"RivalEdge/internal/domain/repository"
	"RivalEdge/internal/handler/api"
	"RivalEdge/internal/service/cache"
	"RivalEdge/internal/service/fplapi"
	"RivalEdge/internal/usecase"
	"RivalEdge/pkg/config"
	xhttp "RivalEdge/pkg/http"
	applogger "RivalEdge/pkg/logger"
	"RivalEdge/pkg/metrics"
	"RivalEdge/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	log, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return log, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideGateway creates the fantasy API gateway client.
func ProvideGateway(cfg *config.Config) repository.Gateway {
	return fplapi.New(
		cfg.FantasyAPI.BaseURL,
		fplapi.WithTimeout(cfg.FantasyAPI.Timeout),
		fplapi.WithRateLimit(cfg.FantasyAPI.RateCapacity, cfg.FantasyAPI.RatePerSec),
	)
}

// ProvideParams merges configured engine overrides onto the defaults.
func ProvideParams(cfg *config.Config) usecase.Params {
	p := usecase.DefaultParams()
	if cfg.Engine.Horizon > 0 {
		p.Horizon = cfg.Engine.Horizon
	}
	if cfg.Engine.HomeAdvantage > 0 {
		p.HomeAdvantage = cfg.Engine.HomeAdvantage
	}
	if cfg.Engine.ImprovementThreshold > 0 {
		p.ImprovementThreshold = cfg.Engine.ImprovementThreshold
	}
	if cfg.Engine.FixtureAdvantageWeight > 0 {
		p.FixtureAdvantageWeight = cfg.Engine.FixtureAdvantageWeight
	}
	if cfg.Engine.CaptainMinForm > 0 {
		p.CaptainMinForm = cfg.Engine.CaptainMinForm
	}
	return p
}

// ProvideSnapshotStore creates the reference data store.
func ProvideSnapshotStore(
	gateway repository.Gateway,
	m repository.Metrics,
	log *applogger.Logger,
	cfg *config.Config,
) *usecase.SnapshotStore {
	return usecase.NewSnapshotStore(gateway, m, log, cfg.Snapshot.TTL)
}

// ProvideEstimator creates the fixture and points estimator.
func ProvideEstimator(params usecase.Params) *usecase.Estimator {
	return usecase.NewEstimator(params)
}

// ProvideRanker creates the transfer ranking engine.
func ProvideRanker(est *usecase.Estimator, params usecase.Params) *usecase.Ranker {
	return usecase.NewRanker(est, params)
}

// ProvideAggregator creates the squad aggregation engine.
func ProvideAggregator(est *usecase.Estimator, params usecase.Params) *usecase.Aggregator {
	return usecase.NewAggregator(est, params)
}

// ProvideResultCache picks the result cache backend: Redis when
// configured, otherwise an in-process TTL cache.
func ProvideResultCache(cfg *config.Config) cache.BytesCache {
	if cfg.Cache.Redis.Enabled {
		return cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	}
	return cache.NewTTLCache()
}

// ProvideTeamAnalyzer creates the analysis orchestrator.
func ProvideTeamAnalyzer(
	store *usecase.SnapshotStore,
	gateway repository.Gateway,
	ranker *usecase.Ranker,
	agg *usecase.Aggregator,
	m repository.Metrics,
	log *applogger.Logger,
	resultCache cache.BytesCache,
	cfg *config.Config,
) *usecase.TeamAnalyzer {
	return usecase.NewTeamAnalyzer(store, gateway, ranker, agg, m, log, resultCache, cfg.Cache.TTL)
}

// ProvideHandler creates the HTTP route handler.
func ProvideHandler(log *applogger.Logger, analyzer *usecase.TeamAnalyzer) xhttp.Handler {
	return api.NewAnalysisEchoHandler(log, analyzer)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	log *applogger.Logger,
	analyzer *usecase.TeamAnalyzer,
	handler xhttp.Handler,
) *server.App {
	return server.New(cfg, log, analyzer, handler)
}
