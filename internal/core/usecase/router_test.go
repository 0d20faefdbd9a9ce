package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/kirillkom/business-assistant/internal/core/domain"
)

type structuredSearcherFake struct {
	calls int32
	out   []domain.StructuredSearchResult
	err   error
}

func (f *structuredSearcherFake) Search(context.Context, string, string) ([]domain.StructuredSearchResult, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.out, f.err
}

type reviewSearcherFake struct {
	calls int32
	out   []domain.ReviewSearchResult
	err   error
}

func (f *reviewSearcherFake) Search(context.Context, string, string) ([]domain.ReviewSearchResult, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.out, f.err
}

type photoSearcherFake struct {
	calls int32
	out   []domain.PhotoSearchResult
	err   error
}

func (f *photoSearcherFake) Search(context.Context, string, string) ([]domain.PhotoSearchResult, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.out, f.err
}

func TestDecideRouting(t *testing.T) {
	cases := []struct {
		intent     domain.QueryIntent
		structured bool
		reviews    bool
		photos     bool
	}{
		{domain.IntentOperational, true, false, false},
		{domain.IntentAmenity, true, true, true},
		{domain.IntentQuality, false, true, false},
		{domain.IntentPhoto, false, false, true},
		{domain.IntentUnknown, true, true, false},
	}
	for _, tc := range cases {
		d := DecideRouting(tc.intent)
		if d.UseStructured != tc.structured || d.UseReviewVector != tc.reviews || d.UsePhotoHybrid != tc.photos {
			t.Fatalf("DecideRouting(%s) = %+v, want structured=%t reviews=%t photos=%t",
				tc.intent, d, tc.structured, tc.reviews, tc.photos)
		}
	}
}

func TestRouteOnlyInvokesRoutedSources(t *testing.T) {
	structured := &structuredSearcherFake{}
	reviews := &reviewSearcherFake{}
	photos := &photoSearcherFake{}
	router := NewQueryRouter(structured, reviews, photos)

	router.Route(context.Background(), "hours", "biz-1", domain.IntentOperational)

	if structured.calls != 1 {
		t.Fatalf("structured calls = %d, want 1", structured.calls)
	}
	if reviews.calls != 0 || photos.calls != 0 {
		t.Fatalf("un-routed sources were invoked: reviews=%d photos=%d", reviews.calls, photos.calls)
	}
}

func TestRouteJoinsAllBranches(t *testing.T) {
	structured := &structuredSearcherFake{out: []domain.StructuredSearchResult{{Score: 0.7}}}
	reviews := &reviewSearcherFake{out: []domain.ReviewSearchResult{{SimilarityScore: 0.5}}}
	photos := &photoSearcherFake{out: []domain.PhotoSearchResult{{CombinedScore: 0.4}}}
	router := NewQueryRouter(structured, reviews, photos)

	results := router.Route(context.Background(), "patio", "biz-1", domain.IntentAmenity)

	if len(results.Structured) != 1 || len(results.Reviews) != 1 || len(results.Photos) != 1 {
		t.Fatalf("expected one result per source, got %d/%d/%d",
			len(results.Structured), len(results.Reviews), len(results.Photos))
	}
	if results.Intent != domain.IntentAmenity {
		t.Fatalf("intent = %s, want amenity", results.Intent)
	}
}

func TestRouteSwallowsBranchFailures(t *testing.T) {
	structured := &structuredSearcherFake{out: []domain.StructuredSearchResult{{Score: 0.9}}}
	reviews := &reviewSearcherFake{err: errors.New("review backend down")}
	photos := &photoSearcherFake{err: errors.New("photo backend down")}
	router := NewQueryRouter(structured, reviews, photos)

	results := router.Route(context.Background(), "patio", "biz-1", domain.IntentAmenity)

	if len(results.Structured) != 1 {
		t.Fatalf("healthy branch lost: structured=%d", len(results.Structured))
	}
	if results.Reviews == nil || results.Photos == nil {
		t.Fatalf("failed branches must yield empty slices, got %v / %v", results.Reviews, results.Photos)
	}
	if len(results.Reviews) != 0 || len(results.Photos) != 0 {
		t.Fatalf("failed branches leaked results")
	}
}

func TestRouteUnknownIntentFallsBack(t *testing.T) {
	structured := &structuredSearcherFake{}
	reviews := &reviewSearcherFake{}
	photos := &photoSearcherFake{}
	router := NewQueryRouter(structured, reviews, photos)

	results := router.Route(context.Background(), "anything", "biz-1", domain.QueryIntent("bogus"))

	if results.Intent != domain.IntentUnknown {
		t.Fatalf("intent = %s, want unknown", results.Intent)
	}
	if structured.calls != 1 || reviews.calls != 1 || photos.calls != 0 {
		t.Fatalf("unknown routing calls = %d/%d/%d, want 1/1/0",
			structured.calls, reviews.calls, photos.calls)
	}
}
