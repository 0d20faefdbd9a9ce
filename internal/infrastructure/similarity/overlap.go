package similarity

import (
	"strings"
	"unicode"

	"github.com/kirillkom/business-assistant/internal/core/domain"
)

// TokenOverlap scores text similarity as the fraction of query tokens found
// in the candidate. It is one pluggable scorer behind the TextSimilarity
// port; the core only requires scores be comparable and bounded to [0,1].
type TokenOverlap struct{}

func NewTokenOverlap() *TokenOverlap {
	return &TokenOverlap{}
}

func (*TokenOverlap) Score(query, candidate string) float64 {
	queryTokens := toTokenSet(query)
	if len(queryTokens) == 0 {
		return 0
	}
	candidateTokens := toTokenSet(candidate)
	hits := 0
	for token := range queryTokens {
		if _, ok := candidateTokens[token]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(queryTokens))
}

// CaptionImage approximates image relevance from the photo's caption and its
// URL path tokens. A real deployment swaps this for an embedding-backed
// scorer behind the same port.
type CaptionImage struct {
	text *TokenOverlap
}

func NewCaptionImage() *CaptionImage {
	return &CaptionImage{text: NewTokenOverlap()}
}

func (s *CaptionImage) Score(query string, photo domain.Photo) float64 {
	caption := s.text.Score(query, photo.Caption)
	url := s.text.Score(query, urlTokens(photo.URL))
	score := 0.8*caption + 0.2*url
	if score > 1 {
		return 1
	}
	return score
}

func urlTokens(url string) string {
	replacer := strings.NewReplacer("/", " ", "-", " ", "_", " ", ".", " ")
	return replacer.Replace(url)
}

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "do": {}, "does": {},
	"for": {}, "have": {}, "is": {}, "it": {}, "of": {}, "on": {},
	"the": {}, "they": {}, "this": {}, "to": {}, "what": {}, "with": {},
}

func toTokenSet(text string) map[string]struct{} {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		if len(token) < 2 {
			continue
		}
		if _, ok := stopwords[token]; ok {
			continue
		}
		set[token] = struct{}{}
	}
	return set
}
