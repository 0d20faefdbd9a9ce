package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kirillkom/business-assistant/internal/core/domain"
)

// ConflictDetector finds unstructured evidence that contradicts canonical
// amenity facts. Detection never changes canonical data; it only annotates.
type ConflictDetector interface {
	Detect(business *domain.BusinessData, reviews []domain.ReviewSearchResult, photos []domain.PhotoSearchResult) []string
}

// KeywordConflictDetector matches amenity mentions by phrase. The phrase for
// an amenity defaults to its name with underscores spaced out; extraPhrases
// adds synonyms that the default derivation cannot produce.
type KeywordConflictDetector struct {
	extraPhrases map[string][]string
}

func NewKeywordConflictDetector() *KeywordConflictDetector {
	return &KeywordConflictDetector{
		extraPhrases: map[string][]string{
			"wifi":            {"wi-fi", "wireless internet"},
			"parking":         {"parking lot", "car park"},
			"outdoor_seating": {"seating outside", "tables outside"},
			"pet_friendly":    {"dogs allowed", "dog friendly"},
			"wheelchair_accessible": {
				"wheelchair access", "accessible entrance",
			},
		},
	}
}

var negationMarkers = []string{
	"no ", "not ", "n't ", "n't.", "without ", "lacks ", "lacking ",
	"missing ", "never had ",
}

func (d *KeywordConflictDetector) Detect(
	business *domain.BusinessData,
	reviews []domain.ReviewSearchResult,
	photos []domain.PhotoSearchResult,
) []string {
	notes := []string{}
	if business == nil || len(business.Amenities) == 0 {
		return notes
	}

	// Amenity names are walked in sorted order so note order is stable.
	names := make([]string, 0, len(business.Amenities))
	for name := range business.Amenities {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		canonical := business.Amenities[name]
		for _, r := range reviews {
			claim, ok := d.claimAbout(name, r.Review.Text)
			if ok && claim != canonical {
				notes = append(notes, fmt.Sprintf(
					"review %s claims %s=%t but canonical data says %t",
					r.Review.ReviewID, name, claim, canonical,
				))
			}
		}
		for _, p := range photos {
			claim, ok := d.claimAbout(name, p.Photo.Caption)
			if ok && claim != canonical {
				notes = append(notes, fmt.Sprintf(
					"photo %s caption claims %s=%t but canonical data says %t",
					p.Photo.PhotoID, name, claim, canonical,
				))
			}
		}
	}
	return notes
}

// claimAbout reports whether text asserts anything about the amenity, and if
// so whether the assertion is positive. A negation marker shortly before the
// mention flips the claim.
func (d *KeywordConflictDetector) claimAbout(amenity, text string) (claim bool, ok bool) {
	lower := strings.ToLower(text)
	for _, phrase := range d.phrasesFor(amenity) {
		idx := strings.Index(lower, phrase)
		if idx < 0 {
			continue
		}
		return !negatedBefore(lower, idx), true
	}
	return false, false
}

func (d *KeywordConflictDetector) phrasesFor(amenity string) []string {
	phrases := []string{strings.ReplaceAll(amenity, "_", " ")}
	return append(phrases, d.extraPhrases[amenity]...)
}

// negatedBefore looks a short window back from the mention for a negation
// marker ("no heated patio", "doesn't have wifi").
func negatedBefore(text string, idx int) bool {
	start := idx - 24
	if start < 0 {
		start = 0
	}
	window := text[start:idx]
	for _, marker := range negationMarkers {
		if strings.Contains(window, marker) {
			return true
		}
	}
	return false
}
