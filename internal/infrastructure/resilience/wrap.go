package resilience

import (
	"context"

	"github.com/kirillkom/business-assistant/internal/core/domain"
	"github.com/kirillkom/business-assistant/internal/core/ports"
)

// Searcher decorators. Each wraps one search backend in its guard so the
// router can fan out without knowing about breakers or limiters: a guarded
// call that fails or short-circuits yields an empty result list.

const (
	ServiceStructuredSearch = "structured_search"
	ServiceReviewSearch     = "review_vector_search"
	ServicePhotoSearch      = "photo_hybrid_search"
)

type guardedStructured struct {
	inner ports.StructuredSearcher
	guard *Guard
}

func WrapStructured(inner ports.StructuredSearcher, guard *Guard) ports.StructuredSearcher {
	return &guardedStructured{inner: inner, guard: guard}
}

func (s *guardedStructured) Search(ctx context.Context, query, businessID string) ([]domain.StructuredSearchResult, error) {
	out := Execute(ctx, s.guard, func(ctx context.Context) ([]domain.StructuredSearchResult, error) {
		return s.inner.Search(ctx, query, businessID)
	}, []domain.StructuredSearchResult{})
	return out, nil
}

type guardedReviews struct {
	inner ports.ReviewSearcher
	guard *Guard
}

func WrapReviews(inner ports.ReviewSearcher, guard *Guard) ports.ReviewSearcher {
	return &guardedReviews{inner: inner, guard: guard}
}

func (s *guardedReviews) Search(ctx context.Context, query, businessID string) ([]domain.ReviewSearchResult, error) {
	out := Execute(ctx, s.guard, func(ctx context.Context) ([]domain.ReviewSearchResult, error) {
		return s.inner.Search(ctx, query, businessID)
	}, []domain.ReviewSearchResult{})
	return out, nil
}

type guardedPhotos struct {
	inner ports.PhotoSearcher
	guard *Guard
}

func WrapPhotos(inner ports.PhotoSearcher, guard *Guard) ports.PhotoSearcher {
	return &guardedPhotos{inner: inner, guard: guard}
}

func (s *guardedPhotos) Search(ctx context.Context, query, businessID string) ([]domain.PhotoSearchResult, error) {
	out := Execute(ctx, s.guard, func(ctx context.Context) ([]domain.PhotoSearchResult, error) {
		return s.inner.Search(ctx, query, businessID)
	}, []domain.PhotoSearchResult{})
	return out, nil
}
