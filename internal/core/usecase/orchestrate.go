package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kirillkom/business-assistant/internal/core/domain"
)

// intentWeights blends the best structured, review and photo scores into the
// bundle's final score. Weights are fixed per intent so scores are
// reproducible given identical inputs.
type intentWeights struct {
	structured float64
	review     float64
	photo      float64
}

var finalScoreWeights = map[domain.QueryIntent]intentWeights{
	domain.IntentOperational: {structured: 1.0},
	domain.IntentAmenity:     {structured: 0.5, review: 0.3, photo: 0.2},
	domain.IntentQuality:     {review: 1.0},
	domain.IntentPhoto:       {photo: 1.0},
	domain.IntentUnknown:     {structured: 0.5, review: 0.5},
}

// AnswerOrchestrator merges routed results into an evidence bundle and
// renders the hand-off context for the response generator. It holds no
// per-request state.
type AnswerOrchestrator struct {
	conflicts  ConflictDetector
	maxReviews int
	maxPhotos  int
}

func NewAnswerOrchestrator(conflicts ConflictDetector, maxReviews, maxPhotos int) *AnswerOrchestrator {
	if maxReviews <= 0 {
		maxReviews = 3
	}
	if maxPhotos <= 0 {
		maxPhotos = 3
	}
	return &AnswerOrchestrator{
		conflicts:  conflicts,
		maxReviews: maxReviews,
		maxPhotos:  maxPhotos,
	}
}

// Orchestrate combines results in fixed precedence order (structured, then
// reviews, then photos) so conflict notes and the final score are
// deterministic regardless of which downstream call finished first.
func (o *AnswerOrchestrator) Orchestrate(results domain.RoutedResults) domain.EvidenceBundle {
	bundle := domain.EvidenceBundle{
		Structured:    results.Structured,
		Reviews:       trimReviews(results.Reviews, o.maxReviews),
		Photos:        trimPhotos(results.Photos, o.maxPhotos),
		ConflictNotes: []string{},
	}
	if len(results.Structured) > 0 {
		bundle.Business = results.Structured[0].Business
	}

	bundle.ConflictNotes = o.conflicts.Detect(bundle.Business, bundle.Reviews, bundle.Photos)
	bundle.FinalScore = finalScore(results)
	return bundle
}

func finalScore(results domain.RoutedResults) float64 {
	weights, ok := finalScoreWeights[results.Intent]
	if !ok {
		weights = finalScoreWeights[domain.IntentUnknown]
	}

	var structured float64
	if len(results.Structured) > 0 {
		structured = results.Structured[0].Score
	}
	var review float64
	for _, r := range results.Reviews {
		if r.SimilarityScore > review {
			review = r.SimilarityScore
		}
	}
	var photo float64
	for _, p := range results.Photos {
		if p.CombinedScore > photo {
			photo = p.CombinedScore
		}
	}

	score := weights.structured*structured + weights.review*review + weights.photo*photo
	return clamp01(score)
}

// BuildLLMContext renders the full hand-off contract for the generator:
// canonical facts first, supporting evidence second, and instructions that
// direct the generator to prefer canonical facts on conflict.
func (o *AnswerOrchestrator) BuildLLMContext(bundle domain.EvidenceBundle, query string) string {
	var b strings.Builder

	b.WriteString("Canonical Facts:\n")
	if bundle.Business != nil {
		writeCanonicalFacts(&b, bundle.Business)
	} else {
		b.WriteString("- no canonical record found for this business\n")
	}

	b.WriteString("\nSupporting Evidence:\n")
	if len(bundle.Reviews) == 0 && len(bundle.Photos) == 0 {
		b.WriteString("- none\n")
	}
	for _, r := range bundle.Reviews {
		fmt.Fprintf(&b, "- review (similarity %.2f, rating %.1f): %s\n",
			r.SimilarityScore, r.Review.Rating, r.Review.Text)
	}
	for _, p := range bundle.Photos {
		fmt.Fprintf(&b, "- photo (score %.2f): %s\n", p.CombinedScore, p.Photo.Caption)
	}

	if len(bundle.ConflictNotes) > 0 {
		b.WriteString("\nConflicts:\n")
		for _, note := range bundle.ConflictNotes {
			fmt.Fprintf(&b, "- %s\n", note)
		}
	}

	b.WriteString("\nInstructions:\n")
	b.WriteString("Answer the question using only the information above. ")
	b.WriteString("Canonical facts are authoritative: when supporting evidence ")
	b.WriteString("contradicts them, state the canonical value. ")
	b.WriteString("If the information is insufficient, say so plainly.\n")

	fmt.Fprintf(&b, "\nQuestion: %s\n", query)
	return b.String()
}

func writeCanonicalFacts(b *strings.Builder, business *domain.BusinessData) {
	fmt.Fprintf(b, "- name: %s\n", business.Name)
	if business.Address != "" {
		fmt.Fprintf(b, "- address: %s\n", business.Address)
	}
	if business.Phone != "" {
		fmt.Fprintf(b, "- phone: %s\n", business.Phone)
	}
	if business.PriceRange != "" {
		fmt.Fprintf(b, "- price range: %s\n", business.PriceRange)
	}
	if business.Rating > 0 {
		fmt.Fprintf(b, "- rating: %.1f (%d reviews)\n", business.Rating, business.ReviewCount)
	}
	if len(business.Categories) > 0 {
		fmt.Fprintf(b, "- categories: %s\n", strings.Join(business.Categories, ", "))
	}
	if len(business.Hours) > 0 {
		parts := make([]string, 0, len(business.Hours))
		for _, h := range business.Hours {
			parts = append(parts, fmt.Sprintf("%s %s-%s", h.Day, h.Open, h.Close))
		}
		fmt.Fprintf(b, "- hours: %s\n", strings.Join(parts, "; "))
	}
	if len(business.Amenities) > 0 {
		names := make([]string, 0, len(business.Amenities))
		for name := range business.Amenities {
			names = append(names, name)
		}
		sort.Strings(names)
		parts := make([]string, 0, len(names))
		for _, name := range names {
			parts = append(parts, fmt.Sprintf("%s=%t", name, business.Amenities[name]))
		}
		fmt.Fprintf(b, "- amenities: %s\n", strings.Join(parts, ", "))
	}
}

func trimReviews(reviews []domain.ReviewSearchResult, limit int) []domain.ReviewSearchResult {
	if len(reviews) <= limit {
		return reviews
	}
	return reviews[:limit]
}

func trimPhotos(photos []domain.PhotoSearchResult, limit int) []domain.PhotoSearchResult {
	if len(photos) <= limit {
		return photos
	}
	return photos[:limit]
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
