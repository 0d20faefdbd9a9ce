package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/kirillkom/business-assistant/internal/config"
	"github.com/kirillkom/business-assistant/internal/core/domain"
	"github.com/kirillkom/business-assistant/internal/core/ports"
	"github.com/kirillkom/business-assistant/internal/core/usecase"
	"github.com/kirillkom/business-assistant/internal/infrastructure/cache"
	"github.com/kirillkom/business-assistant/internal/infrastructure/llm/ollama"
	"github.com/kirillkom/business-assistant/internal/infrastructure/llm/static"
	natsbus "github.com/kirillkom/business-assistant/internal/infrastructure/queue/nats"
	"github.com/kirillkom/business-assistant/internal/infrastructure/repository/memory"
	"github.com/kirillkom/business-assistant/internal/infrastructure/repository/postgres"
	"github.com/kirillkom/business-assistant/internal/infrastructure/resilience"
	"github.com/kirillkom/business-assistant/internal/infrastructure/search"
	"github.com/kirillkom/business-assistant/internal/infrastructure/similarity"
	"github.com/kirillkom/business-assistant/internal/observability/metrics"
)

const serviceName = "business-assistant"

type App struct {
	Config  config.Config
	Metrics *metrics.Metrics

	Assistant ports.BusinessQueryService
	Events    *natsbus.EventBus
	Cache     ports.QueryCache

	changeHandler ports.ChangeEventHandler
	closeFn       func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	m := metrics.New(serviceName)

	stores, closeStores, err := buildStores(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var l2 *cache.RedisTier
	if cfg.RedisAddr != "" {
		l2 = cache.NewRedisTier(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	}
	layer, err := cache.NewLayer(cfg.CacheL1Size, l2)
	if err != nil {
		return nil, fmt.Errorf("init cache layer: %w", err)
	}

	guards := resilience.NewRegistry(resilience.Config{
		FailureThreshold: cfg.BreakerFailureThreshold,
		RecoveryTimeout:  cfg.BreakerRecoveryTimeout,
		MaxConcurrent:    cfg.MaxConcurrentSearches,
		AcquireWait:      cfg.LimiterAcquireWait,
		CallTimeout:      cfg.SearchCallTimeout,
	}, m.BreakerStateHook(serviceName))

	textSim := similarity.NewTokenOverlap()
	imageSim := similarity.NewCaptionImage()

	structured := resilience.WrapStructured(
		search.NewStructuredSearchService(stores.businesses),
		guards.Guard(resilience.ServiceStructuredSearch),
	)
	reviews := resilience.WrapReviews(
		search.NewReviewVectorSearchService(stores.reviews, textSim),
		guards.Guard(resilience.ServiceReviewSearch),
	)
	photos := resilience.WrapPhotos(
		search.NewPhotoHybridRetrievalService(stores.photos, textSim, imageSim),
		guards.Guard(resilience.ServicePhotoSearch),
	)

	router := usecase.NewQueryRouter(structured, reviews, photos)
	orchestrator := usecase.NewAnswerOrchestrator(
		usecase.NewKeywordConflictDetector(),
		cfg.MaxContextReviews,
		cfg.MaxContextPhotos,
	)

	assistant := usecase.NewAssistantUseCase(
		usecase.NewIntentClassifier(),
		router,
		orchestrator,
		buildGenerator(cfg),
		layer,
		cfg.CacheTTL,
		&pipelineMetrics{metrics: m},
	)

	app := &App{
		Config:        cfg,
		Metrics:       m,
		Assistant:     assistant,
		Cache:         layer,
		changeHandler: assistant,
	}

	var events *natsbus.EventBus
	if cfg.NATSURL != "" {
		events, err = natsbus.New(cfg.NATSURL, cfg.NATSSubject)
		if err != nil {
			closeStores()
			return nil, fmt.Errorf("init event bus: %w", err)
		}
	}
	app.Events = events

	app.closeFn = func() {
		if events != nil {
			events.Close()
		}
		if l2 != nil {
			_ = l2.Close()
		}
		closeStores()
	}
	return app, nil
}

// RunEventSubscriber reacts to ingestion change events until ctx ends. The
// subscriber lives in the API process because the L1 tier is in-process
// state. Without a configured broker this is a no-op.
func (a *App) RunEventSubscriber(ctx context.Context) error {
	if a.Events == nil {
		return nil
	}
	return a.Events.SubscribeChangeEvents(ctx, func(ctx context.Context, event domain.ChangeEvent) error {
		if err := a.changeHandler.HandleChangeEvent(ctx, event); err != nil {
			return err
		}
		a.Metrics.RecordInvalidation()
		return nil
	})
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

type dataStores struct {
	businesses ports.BusinessDataStore
	reviews    ports.ReviewStore
	photos     ports.PhotoStore
}

func buildStores(ctx context.Context, cfg config.Config) (dataStores, func(), error) {
	if cfg.StoreBackend == "postgres" {
		db, err := postgres.OpenDB(cfg.PostgresDSN)
		if err != nil {
			return dataStores{}, nil, fmt.Errorf("open postgres: %w", err)
		}
		repo := postgres.NewBusinessRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return dataStores{}, nil, fmt.Errorf("ensure schema: %w", err)
		}
		return dataStores{
			businesses: repo,
			reviews:    postgres.NewReviewRepository(db),
			photos:     postgres.NewPhotoRepository(db),
		}, func() { _ = db.Close() }, nil
	}

	store := memory.NewStore()
	if cfg.SeedPath != "" {
		if err := store.LoadSeedFile(cfg.SeedPath); err != nil {
			return dataStores{}, nil, fmt.Errorf("seed memory store: %w", err)
		}
	}
	return dataStores{
		businesses: store,
		reviews:    store,
		photos:     store.Photos(),
	}, func() {}, nil
}

// buildGenerator selects the response backend once at construction. Unknown
// values fall back to the static responder so a missing model configuration
// never takes the service down.
func buildGenerator(cfg config.Config) ports.ResponseGenerator {
	switch cfg.GeneratorBackend {
	case "ollama":
		return ollama.NewGenerator(ollama.New(cfg.OllamaURL, cfg.OllamaGenModel))
	default:
		return static.NewGenerator()
	}
}

type pipelineMetrics struct {
	metrics *metrics.Metrics
}

func (p *pipelineMetrics) RecordQuery(intent domain.QueryIntent, cacheHit bool, duration time.Duration) {
	p.metrics.RecordQuery(serviceName, intent, cacheHit, duration)
}
