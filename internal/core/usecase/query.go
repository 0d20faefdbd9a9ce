package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/kirillkom/business-assistant/internal/core/domain"
	"github.com/kirillkom/business-assistant/internal/core/ports"
)

// Metrics receives pipeline observations. The zero value of noopMetrics is
// used when observability is not wired.
type Metrics interface {
	RecordQuery(intent domain.QueryIntent, cacheHit bool, duration time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) RecordQuery(domain.QueryIntent, bool, time.Duration) {}

// AssistantUseCase runs the full answer pipeline: cache lookup, intent
// classification, routed fan-out, orchestration, generation, cache fill.
// Downstream failures degrade the answer, they never fail the request.
type AssistantUseCase struct {
	classifier   *IntentClassifier
	router       *QueryRouter
	orchestrator *AnswerOrchestrator
	generator    ports.ResponseGenerator
	cache        ports.QueryCache
	cacheTTL     time.Duration
	metrics      Metrics
}

func NewAssistantUseCase(
	classifier *IntentClassifier,
	router *QueryRouter,
	orchestrator *AnswerOrchestrator,
	generator ports.ResponseGenerator,
	cache ports.QueryCache,
	cacheTTL time.Duration,
	metrics Metrics,
) *AssistantUseCase {
	if cacheTTL <= 0 {
		cacheTTL = 300 * time.Second
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &AssistantUseCase{
		classifier:   classifier,
		router:       router,
		orchestrator: orchestrator,
		generator:    generator,
		cache:        cache,
		cacheTTL:     cacheTTL,
		metrics:      metrics,
	}
}

func (uc *AssistantUseCase) Query(ctx context.Context, text, businessID string) (*domain.QueryResponse, error) {
	start := time.Now()

	text = strings.TrimSpace(text)
	businessID = strings.TrimSpace(businessID)
	if text == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "query", errEmptyQuery)
	}
	if businessID == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "query", errEmptyBusinessID)
	}

	if cached, ok := uc.cache.GetQueryResult(ctx, businessID, text); ok {
		uc.metrics.RecordQuery(cached.Intent, true, time.Since(start))
		return cached, nil
	}

	classification := uc.classifier.Classify(text)
	routed := uc.router.Route(ctx, text, businessID, classification.Intent)
	bundle := uc.orchestrator.Orchestrate(routed)

	answer := uc.generateAnswer(ctx, bundle, text)

	response := &domain.QueryResponse{
		Answer:     answer,
		Confidence: bundle.FinalScore,
		Intent:     routed.Intent,
		Evidence: domain.EvidenceSummary{
			Structured:  bundle.Business != nil,
			ReviewsUsed: len(bundle.Reviews),
			PhotosUsed:  len(bundle.Photos),
		},
		LatencyMS: float64(time.Since(start).Microseconds()) / 1000.0,
	}

	uc.cache.SetQueryResult(ctx, businessID, text, response, uc.cacheTTL)
	uc.metrics.RecordQuery(response.Intent, false, time.Since(start))
	return response, nil
}

// generateAnswer hands the orchestrated context to the generator. A failing
// generator degrades to a canonical-facts summary instead of failing the
// request.
func (uc *AssistantUseCase) generateAnswer(ctx context.Context, bundle domain.EvidenceBundle, query string) string {
	contextBlock := uc.orchestrator.BuildLLMContext(bundle, query)
	answer, err := uc.generator.Generate(ctx, contextBlock, query)
	if err == nil && strings.TrimSpace(answer) != "" {
		return answer
	}
	if err != nil {
		slog.Warn("generator_failed", "error", err)
	}
	return fallbackAnswer(bundle)
}

func fallbackAnswer(bundle domain.EvidenceBundle) string {
	if bundle.Business == nil {
		return "I don't have enough information about this business to answer that."
	}
	var b strings.Builder
	b.WriteString("Here is what I know about ")
	b.WriteString(bundle.Business.Name)
	b.WriteString(". ")
	if len(bundle.Structured) > 0 && len(bundle.Structured[0].MatchedFields) > 0 {
		b.WriteString("Relevant details: ")
		b.WriteString(strings.Join(bundle.Structured[0].MatchedFields, ", "))
		b.WriteString(".")
	} else {
		b.WriteString("I could not find details matching your question.")
	}
	return b.String()
}

// HandleChangeEvent reacts to an ingestion change by dropping every cached
// answer for the affected business.
func (uc *AssistantUseCase) HandleChangeEvent(ctx context.Context, event domain.ChangeEvent) error {
	if strings.TrimSpace(event.BusinessID) == "" {
		return domain.WrapError(domain.ErrInvalidInput, "change event", errEmptyBusinessID)
	}
	uc.cache.InvalidateBusiness(ctx, event.BusinessID)
	slog.Info("cache_invalidated",
		"business_id", event.BusinessID,
		"event_type", string(event.EventType),
	)
	return nil
}
