package search

import (
	"context"
	"errors"
	"testing"

	"github.com/kirillkom/business-assistant/internal/core/domain"
)

type businessStoreFake struct {
	business *domain.BusinessData
	err      error
}

func (f *businessStoreFake) Get(context.Context, string) (*domain.BusinessData, error) {
	return f.business, f.err
}

func structuredTestBusiness() *domain.BusinessData {
	return &domain.BusinessData{
		BusinessID: "biz-1",
		Name:       "Test Bistro",
		Phone:      "555-0101",
		PriceRange: "$$",
		Hours:      []domain.BusinessHours{{Day: "monday", Open: "09:00", Close: "22:00"}},
		Amenities:  map[string]bool{"heated_patio": true, "wifi": false},
	}
}

func TestStructuredSearchMatchesHours(t *testing.T) {
	svc := NewStructuredSearchService(&businessStoreFake{business: structuredTestBusiness()})

	results, err := svc.Search(context.Background(), "What are your hours on Monday?", "biz-1")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, want exactly one", len(results))
	}
	r := results[0]
	if len(r.MatchedFields) != 1 || r.MatchedFields[0] != "hours" {
		t.Fatalf("matched fields = %v, want [hours]", r.MatchedFields)
	}
	if r.Score != 0.7 {
		t.Fatalf("score = %v, want 0.7 for a single matched field", r.Score)
	}
}

func TestStructuredSearchMatchesAmenity(t *testing.T) {
	svc := NewStructuredSearchService(&businessStoreFake{business: structuredTestBusiness()})

	results, err := svc.Search(context.Background(), "do they have a heated patio", "biz-1")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results[0].MatchedFields) != 1 || results[0].MatchedFields[0] != "amenities.heated_patio" {
		t.Fatalf("matched fields = %v, want [amenities.heated_patio]", results[0].MatchedFields)
	}
}

func TestStructuredSearchNoMatchStillReturnsBusiness(t *testing.T) {
	svc := NewStructuredSearchService(&businessStoreFake{business: structuredTestBusiness()})

	results, err := svc.Search(context.Background(), "blah blah blah", "biz-1")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 || len(results[0].MatchedFields) != 0 {
		t.Fatalf("no-match result = %+v, want business with zero matched fields", results)
	}
	if results[0].Score != 0.4 {
		t.Fatalf("score = %v, want 0.4 base", results[0].Score)
	}
}

func TestStructuredSearchScoreClamped(t *testing.T) {
	svc := NewStructuredSearchService(&businessStoreFake{business: structuredTestBusiness()})

	results, err := svc.Search(context.Background(),
		"when are you open, what is the price, phone number and address rating", "biz-1")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if results[0].Score != 1.0 {
		t.Fatalf("score = %v, want clamp to 1.0", results[0].Score)
	}
}

func TestStructuredSearchUnknownBusiness(t *testing.T) {
	svc := NewStructuredSearchService(&businessStoreFake{})

	results, err := svc.Search(context.Background(), "hours", "missing")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("results = %v, want empty for unknown business", results)
	}
}

func TestStructuredSearchStoreError(t *testing.T) {
	svc := NewStructuredSearchService(&businessStoreFake{err: errors.New("db down")})
	if _, err := svc.Search(context.Background(), "hours", "biz-1"); err == nil {
		t.Fatalf("expected error from store failure")
	}
}
