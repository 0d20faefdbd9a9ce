package usecase

import (
	"strings"
	"time"

	"github.com/kirillkom/business-assistant/internal/core/domain"
)

// IntentClassifier maps query text to a query category with keyword rules.
// It is stateless and deterministic: same text, same answer. When a query
// matches several categories the fixed priority photo > amenity > quality >
// operational breaks the tie.
type IntentClassifier struct{}

func NewIntentClassifier() *IntentClassifier {
	return &IntentClassifier{}
}

type Classification struct {
	Intent     domain.QueryIntent
	Confidence float64
	Elapsed    time.Duration
}

type intentRule struct {
	intent   domain.QueryIntent
	keywords []string
}

// Priority order is the slice order.
var intentRules = []intentRule{
	{
		intent: domain.IntentPhoto,
		keywords: []string{
			"photo", "photos", "picture", "pictures", "image", "images",
			"look like", "looks like", "show me", "interior", "exterior",
		},
	},
	{
		intent: domain.IntentAmenity,
		keywords: []string{
			"patio", "wifi", "wi-fi", "parking", "outdoor seating", "heated",
			"pet friendly", "dog friendly", "dogs allowed", "wheelchair",
			"accessible", "vegan", "vegetarian", "gluten", "takeout",
			"delivery", "reservation", "do they have", "is there a",
			"do you have",
		},
	},
	{
		intent: domain.IntentQuality,
		keywords: []string{
			"good", "great", "best", "worst", "bad", "recommend", "review",
			"reviews", "rating", "rated", "worth", "favorite", "tasty",
			"delicious", "quality", "how is the", "how was the",
		},
	},
	{
		intent: domain.IntentOperational,
		keywords: []string{
			"hours", "open", "opens", "close", "closes", "closed", "when",
			"monday", "tuesday", "wednesday", "thursday", "friday",
			"saturday", "sunday", "weekend", "price", "prices", "cost",
			"expensive", "cheap", "phone", "call", "number", "address",
			"where", "located", "location",
		},
	},
}

// Classify never errors and does no I/O; Elapsed is informational.
func (c *IntentClassifier) Classify(query string) Classification {
	start := time.Now()
	text := strings.ToLower(query)

	for _, rule := range intentRules {
		hits := 0
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				hits++
			}
		}
		if hits > 0 {
			return Classification{
				Intent:     rule.intent,
				Confidence: keywordConfidence(hits),
				Elapsed:    time.Since(start),
			}
		}
	}

	return Classification{
		Intent:     domain.IntentUnknown,
		Confidence: 0.0,
		Elapsed:    time.Since(start),
	}
}

// keywordConfidence grows with the number of matched keywords: one hit is a
// reasonable guess, each extra hit adds 0.15 up to 1.0.
func keywordConfidence(hits int) float64 {
	confidence := 0.6 + 0.15*float64(hits-1)
	if confidence > 1.0 {
		return 1.0
	}
	return confidence
}
