package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/resumi/job-discovery/internal/engine"
	"github.com/resumi/job-discovery/internal/profile"
	"github.com/resumi/job-discovery/internal/profile/gemini"
	"github.com/resumi/job-discovery/internal/secrets"
	"github.com/resumi/job-discovery/internal/source"
	"github.com/resumi/job-discovery/internal/store"
)

// buildEngine assembles the full pipeline from the parsed config.
func buildEngine(ctx context.Context, config *Config, logger *zap.Logger) (*engine.Engine, error) {
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}

	collectors := buildCollectors(config.Sources, logger)
	if len(collectors) == 0 {
		return nil, fmt.Errorf("no sources configured; enable at least one under the sources key")
	}

	cache, sessions, err := buildStores(ctx, config.Redis, logger)
	if err != nil {
		return nil, err
	}

	clusterer, err := buildClusterer(ctx, config.AI, logger)
	if err != nil {
		logger.Warn("skill clustering disabled", zap.Error(err))
	}

	return engine.New(engine.Options{
		Logger:     logger,
		Extractor:  profile.NewExtractor(logger, clusterer),
		Collectors: collectors,
		Cache:      cache,
		Sessions:   sessions,
		Budget:     config.Budget,
	}), nil
}

func buildCollectors(cfg *SourcesConfig, logger *zap.Logger) []source.Collector {
	if cfg == nil {
		return nil
	}

	deps := source.Deps{
		HTTP:   source.NewHTTPClient(),
		Limits: source.NewLimiters(),
		Robots: source.NewRobots(app, source.NewHTTPClient(), logger),
		Logger: logger,
	}

	var collectors []source.Collector
	if cfg.Greenhouse != nil && len(cfg.Greenhouse.Companies) > 0 {
		collectors = append(collectors, source.NewGreenhouse(cfg.Greenhouse.Companies, "", deps))
	}
	if cfg.Lever != nil && len(cfg.Lever.Companies) > 0 {
		collectors = append(collectors, source.NewLever(cfg.Lever.Companies, "", deps))
	}
	if cfg.RemoteOK != nil && cfg.RemoteOK.Enabled {
		collectors = append(collectors, source.NewRemoteOK("", deps))
	}
	if cfg.WWR != nil && cfg.WWR.Enabled {
		collectors = append(collectors, source.NewWeWorkRemotely(cfg.WWR.Feeds, "", deps))
	}
	if cfg.Workday != nil && len(cfg.Workday.Tenants) > 0 {
		collectors = append(collectors, source.NewWorkday(cfg.Workday.Tenants, deps))
	}

	names := make([]string, 0, len(collectors))
	for _, c := range collectors {
		names = append(names, c.Name())
	}
	logger.Info("sources configured", zap.Strings("sources", names))

	return collectors
}

func buildStores(ctx context.Context, cfg *RedisConfig, logger *zap.Logger) (store.JobCache, store.SessionStore, error) {
	if cfg == nil || strings.TrimSpace(cfg.Addr) == "" {
		logger.Info("no redis address configured, using in-memory store")
		mem := store.NewMemoryStore()
		return mem, mem, nil
	}

	client, err := store.NewRedisClient(ctx, cfg.Addr, cfg.Password, cfg.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to redis: %w", err)
	}

	rs := store.NewRedisStore(client, logger)
	logger.Info("using redis store", zap.String("addr", cfg.Addr))
	return rs, rs, nil
}

func buildClusterer(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (profile.Clusterer, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}
	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Resolve("gemini api key", cfg.Gemini.APIKeyFile, cfg.Gemini.APIKey)
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}

	return gemini.NewClusterer(generator, logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", generator.Model()),
	), 0), nil
}
