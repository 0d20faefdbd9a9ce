package search

import (
	"context"
	"fmt"
	"sort"

	"github.com/kirillkom/business-assistant/internal/core/domain"
	"github.com/kirillkom/business-assistant/internal/core/ports"
)

// PhotoHybridRetrievalService blends a caption-text score with an image
// similarity score, half and half, and returns candidates sorted descending
// by the blend. Both scorers are injected and opaque to this service.
type PhotoHybridRetrievalService struct {
	store   ports.PhotoStore
	caption ports.TextSimilarity
	image   ports.ImageSimilarity
}

func NewPhotoHybridRetrievalService(
	store ports.PhotoStore,
	caption ports.TextSimilarity,
	image ports.ImageSimilarity,
) *PhotoHybridRetrievalService {
	return &PhotoHybridRetrievalService{store: store, caption: caption, image: image}
}

func (s *PhotoHybridRetrievalService) Search(ctx context.Context, query, businessID string) ([]domain.PhotoSearchResult, error) {
	photos, err := s.store.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("list photos for %s: %w", businessID, err)
	}

	results := make([]domain.PhotoSearchResult, 0, len(photos))
	for _, photo := range photos {
		captionScore := clampScore(s.caption.Score(query, photo.Caption))
		imageScore := clampScore(s.image.Score(query, photo))
		result := domain.NewPhotoSearchResult(photo, captionScore, imageScore)
		if result.CombinedScore <= 0 {
			continue
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].CombinedScore != results[j].CombinedScore {
			return results[i].CombinedScore > results[j].CombinedScore
		}
		return results[i].Photo.PhotoID < results[j].Photo.PhotoID
	})
	return results, nil
}
