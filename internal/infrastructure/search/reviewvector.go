package search

import (
	"context"
	"fmt"
	"sort"

	"github.com/kirillkom/business-assistant/internal/core/domain"
	"github.com/kirillkom/business-assistant/internal/core/ports"
)

// ReviewVectorSearchService scores ingested reviews against the query with
// an injected similarity function and returns candidates sorted descending
// by similarity. Unknown businesses yield an empty list.
type ReviewVectorSearchService struct {
	store      ports.ReviewStore
	similarity ports.TextSimilarity
}

func NewReviewVectorSearchService(store ports.ReviewStore, similarity ports.TextSimilarity) *ReviewVectorSearchService {
	return &ReviewVectorSearchService{store: store, similarity: similarity}
}

func (s *ReviewVectorSearchService) Search(ctx context.Context, query, businessID string) ([]domain.ReviewSearchResult, error) {
	reviews, err := s.store.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("list reviews for %s: %w", businessID, err)
	}

	results := make([]domain.ReviewSearchResult, 0, len(reviews))
	for _, review := range reviews {
		score := clampScore(s.similarity.Score(query, review.Text))
		if score <= 0 {
			continue
		}
		results = append(results, domain.ReviewSearchResult{
			Review:          review,
			SimilarityScore: score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].SimilarityScore != results[j].SimilarityScore {
			return results[i].SimilarityScore > results[j].SimilarityScore
		}
		return results[i].Review.ReviewID < results[j].Review.ReviewID
	})
	return results, nil
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
