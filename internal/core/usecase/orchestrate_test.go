package usecase

import (
	"strings"
	"testing"

	"github.com/kirillkom/business-assistant/internal/core/domain"
)

func orchestrateFixture() domain.RoutedResults {
	business := &domain.BusinessData{
		BusinessID: "biz-1",
		Name:       "Test Bistro",
		Address:    "12 Main St",
		PriceRange: "$$",
		Hours:      []domain.BusinessHours{{Day: "monday", Open: "09:00", Close: "22:00"}},
		Amenities:  map[string]bool{"heated_patio": false, "wifi": true},
		Rating:     4.2, ReviewCount: 31,
	}
	return domain.RoutedResults{
		Intent: domain.IntentAmenity,
		Structured: []domain.StructuredSearchResult{{
			Business:      business,
			MatchedFields: []string{"amenities.heated_patio"},
			Score:         0.8,
		}},
		Reviews: []domain.ReviewSearchResult{{
			Review:          domain.Review{ReviewID: "r-1", Rating: 5, Text: "The heated patio is wonderful"},
			SimilarityScore: 0.6,
		}},
		Photos: []domain.PhotoSearchResult{
			domain.NewPhotoSearchResult(domain.Photo{PhotoID: "p-1", Caption: "patio view"}, 0.5, 0.3),
		},
	}
}

func TestOrchestrateFinalScoreWeights(t *testing.T) {
	o := NewAnswerOrchestrator(NewKeywordConflictDetector(), 3, 3)

	cases := []struct {
		intent domain.QueryIntent
		want   float64
	}{
		{domain.IntentOperational, 0.8},
		{domain.IntentAmenity, 0.5*0.8 + 0.3*0.6 + 0.2*0.4},
		{domain.IntentQuality, 0.6},
		{domain.IntentPhoto, 0.4},
		{domain.IntentUnknown, 0.5*0.8 + 0.5*0.6},
	}
	for _, tc := range cases {
		results := orchestrateFixture()
		results.Intent = tc.intent
		bundle := o.Orchestrate(results)
		if diff := bundle.FinalScore - tc.want; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("FinalScore for %s = %v, want %v", tc.intent, bundle.FinalScore, tc.want)
		}
	}
}

func TestOrchestrateAnnotatesConflicts(t *testing.T) {
	o := NewAnswerOrchestrator(NewKeywordConflictDetector(), 3, 3)
	bundle := o.Orchestrate(orchestrateFixture())

	if len(bundle.ConflictNotes) != 1 {
		t.Fatalf("expected one conflict note, got %v", bundle.ConflictNotes)
	}
	if bundle.Business.Amenities["heated_patio"] {
		t.Fatalf("canonical amenity value was mutated")
	}
}

func TestOrchestrateTrimsEvidence(t *testing.T) {
	o := NewAnswerOrchestrator(NewKeywordConflictDetector(), 1, 1)
	results := orchestrateFixture()
	results.Reviews = append(results.Reviews, domain.ReviewSearchResult{
		Review: domain.Review{ReviewID: "r-2"}, SimilarityScore: 0.2,
	})
	results.Photos = append(results.Photos,
		domain.NewPhotoSearchResult(domain.Photo{PhotoID: "p-2"}, 0.1, 0.1))

	bundle := o.Orchestrate(results)
	if len(bundle.Reviews) != 1 || len(bundle.Photos) != 1 {
		t.Fatalf("evidence not trimmed: %d reviews, %d photos", len(bundle.Reviews), len(bundle.Photos))
	}
}

func TestBuildLLMContextSections(t *testing.T) {
	o := NewAnswerOrchestrator(NewKeywordConflictDetector(), 3, 3)
	bundle := o.Orchestrate(orchestrateFixture())
	block := o.BuildLLMContext(bundle, "Do they have a heated patio?")

	canonical := strings.Index(block, "Canonical Facts:")
	evidence := strings.Index(block, "Supporting Evidence:")
	conflicts := strings.Index(block, "Conflicts:")
	instructions := strings.Index(block, "Instructions:")
	if canonical < 0 || evidence < 0 || conflicts < 0 || instructions < 0 {
		t.Fatalf("missing section in context:\n%s", block)
	}
	if !(canonical < evidence && evidence < conflicts && conflicts < instructions) {
		t.Fatalf("sections out of order:\n%s", block)
	}
	if !strings.Contains(block, "heated_patio=false") {
		t.Fatalf("canonical amenity value missing from facts:\n%s", block)
	}
	if !strings.Contains(block, "Canonical facts are authoritative") {
		t.Fatalf("instructions do not assert canonical precedence:\n%s", block)
	}
	if !strings.Contains(block, "Question: Do they have a heated patio?") {
		t.Fatalf("question missing from context:\n%s", block)
	}
}

func TestBuildLLMContextWithoutBusiness(t *testing.T) {
	o := NewAnswerOrchestrator(NewKeywordConflictDetector(), 3, 3)
	bundle := o.Orchestrate(domain.RoutedResults{Intent: domain.IntentQuality})
	block := o.BuildLLMContext(bundle, "how is it?")

	if !strings.Contains(block, "no canonical record found") {
		t.Fatalf("missing-business marker absent:\n%s", block)
	}
	if !strings.Contains(block, "- none") {
		t.Fatalf("empty evidence marker absent:\n%s", block)
	}
}

func TestOrchestrateScoreClamped(t *testing.T) {
	o := NewAnswerOrchestrator(NewKeywordConflictDetector(), 3, 3)
	results := orchestrateFixture()
	results.Intent = domain.IntentOperational
	results.Structured[0].Score = 1.7

	bundle := o.Orchestrate(results)
	if bundle.FinalScore != 1.0 {
		t.Fatalf("FinalScore = %v, want clamp to 1.0", bundle.FinalScore)
	}
}
