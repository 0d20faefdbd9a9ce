package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/kirillkom/business-assistant/internal/core/domain"
	"github.com/kirillkom/business-assistant/internal/core/ports"
)

// StructuredSearchService matches canonical business fields via keyword
// rules. It returns at most one result per business: the business itself,
// annotated with the fields the query matched. An unknown business yields an
// empty list, never an error.
type StructuredSearchService struct {
	store ports.BusinessDataStore
}

func NewStructuredSearchService(store ports.BusinessDataStore) *StructuredSearchService {
	return &StructuredSearchService{store: store}
}

var hoursKeywords = []string{
	"hours", "open", "opens", "close", "closes", "closed", "when",
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
	"sunday", "weekend",
}

var fieldKeywords = map[string][]string{
	"price_range": {"price", "prices", "cost", "expensive", "cheap"},
	"phone":       {"phone", "call", "number"},
	"address":     {"address", "where", "located", "location"},
	"rating":      {"rating", "rated", "stars", "review count"},
	"categories":  {"category", "cuisine", "kind of"},
}

func (s *StructuredSearchService) Search(ctx context.Context, query, businessID string) ([]domain.StructuredSearchResult, error) {
	business, err := s.store.Get(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("get business %s: %w", businessID, err)
	}
	if business == nil {
		return []domain.StructuredSearchResult{}, nil
	}

	text := strings.ToLower(query)
	matched := []string{}

	if containsAny(text, hoursKeywords) {
		matched = append(matched, "hours")
	}
	for _, field := range []string{"price_range", "phone", "address", "rating", "categories"} {
		if containsAny(text, fieldKeywords[field]) {
			matched = append(matched, field)
		}
	}
	for _, name := range sortedAmenityNames(business.Amenities) {
		phrase := strings.ReplaceAll(name, "_", " ")
		if strings.Contains(text, phrase) {
			matched = append(matched, "amenities."+name)
		}
	}

	return []domain.StructuredSearchResult{{
		Business:      business,
		MatchedFields: matched,
		Score:         structuredScore(matched),
	}}, nil
}

// structuredScore reflects the number of matched fields: 0.4 base for a
// canonical hit plus 0.3 per matched field, clamped to 1.0.
func structuredScore(matched []string) float64 {
	score := 0.4 + 0.3*float64(len(matched))
	if score > 1.0 {
		return 1.0
	}
	return score
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
