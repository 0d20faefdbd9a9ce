package usecase

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/kirillkom/business-assistant/internal/core/domain"
	"github.com/kirillkom/business-assistant/internal/core/ports"
)

// DecideRouting maps an intent to the set of search backends worth asking.
// Pure lookup, no side effects.
func DecideRouting(intent domain.QueryIntent) domain.RoutingDecision {
	decision := domain.RoutingDecision{Intent: intent}
	switch intent {
	case domain.IntentOperational:
		decision.UseStructured = true
	case domain.IntentAmenity:
		decision.UseStructured = true
		decision.UseReviewVector = true
		decision.UsePhotoHybrid = true
	case domain.IntentQuality:
		decision.UseReviewVector = true
	case domain.IntentPhoto:
		decision.UsePhotoHybrid = true
	default:
		decision.Intent = domain.IntentUnknown
		decision.UseStructured = true
		decision.UseReviewVector = true
	}
	return decision
}

// QueryRouter fans a query out to the enabled search backends. The injected
// searchers are expected to arrive already wrapped in their per-service
// circuit breaker and concurrency limiter, so Route itself never fails: a
// broken backend contributes an empty result list.
type QueryRouter struct {
	structured ports.StructuredSearcher
	reviews    ports.ReviewSearcher
	photos     ports.PhotoSearcher
}

func NewQueryRouter(
	structured ports.StructuredSearcher,
	reviews ports.ReviewSearcher,
	photos ports.PhotoSearcher,
) *QueryRouter {
	return &QueryRouter{
		structured: structured,
		reviews:    reviews,
		photos:     photos,
	}
}

// Route launches at most three concurrent downstream calls and joins all of
// them before returning. Un-requested sources are not invoked at all.
func (r *QueryRouter) Route(
	ctx context.Context,
	query, businessID string,
	intent domain.QueryIntent,
) domain.RoutedResults {
	decision := DecideRouting(intent)
	results := domain.RoutedResults{
		Intent:     decision.Intent,
		Structured: []domain.StructuredSearchResult{},
		Reviews:    []domain.ReviewSearchResult{},
		Photos:     []domain.PhotoSearchResult{},
	}

	group, groupCtx := errgroup.WithContext(ctx)

	if decision.UseStructured {
		group.Go(func() error {
			out, err := r.structured.Search(groupCtx, query, businessID)
			if err != nil {
				slog.Warn("structured_search_failed", "business_id", businessID, "error", err)
				return nil
			}
			if out != nil {
				results.Structured = out
			}
			return nil
		})
	}
	if decision.UseReviewVector {
		group.Go(func() error {
			out, err := r.reviews.Search(groupCtx, query, businessID)
			if err != nil {
				slog.Warn("review_search_failed", "business_id", businessID, "error", err)
				return nil
			}
			if out != nil {
				results.Reviews = out
			}
			return nil
		})
	}
	if decision.UsePhotoHybrid {
		group.Go(func() error {
			out, err := r.photos.Search(groupCtx, query, businessID)
			if err != nil {
				slog.Warn("photo_search_failed", "business_id", businessID, "error", err)
				return nil
			}
			if out != nil {
				results.Photos = out
			}
			return nil
		})
	}

	// Branches swallow their own failures, so the only join error source is
	// context cancellation, which leaves partial results in place.
	_ = group.Wait()
	return results
}
