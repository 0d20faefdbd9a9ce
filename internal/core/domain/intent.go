package domain

// QueryIntent is the inferred category of a user query.
type QueryIntent string

const (
	IntentOperational QueryIntent = "operational"
	IntentAmenity     QueryIntent = "amenity"
	IntentQuality     QueryIntent = "quality"
	IntentPhoto       QueryIntent = "photo"
	IntentUnknown     QueryIntent = "unknown"
)

// RoutingDecision says which search backends a query fans out to. It is a pure
// function of the intent (see DecideRouting).
type RoutingDecision struct {
	Intent          QueryIntent `json:"intent"`
	UseStructured   bool        `json:"use_structured"`
	UseReviewVector bool        `json:"use_review_vector"`
	UsePhotoHybrid  bool        `json:"use_photo_hybrid"`
}
