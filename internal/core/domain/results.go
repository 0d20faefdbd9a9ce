package domain

// StructuredSearchResult annotates the canonical record with the fields a
// query matched. At most one per business.
type StructuredSearchResult struct {
	Business      *BusinessData `json:"business"`
	MatchedFields []string      `json:"matched_fields"`
	Score         float64       `json:"score"`
}

type ReviewSearchResult struct {
	Review          Review  `json:"review"`
	SimilarityScore float64 `json:"similarity_score"`
}

// PhotoSearchResult holds both the caption and image scores and their blend.
// CombinedScore is always 0.5*CaptionScore + 0.5*ImageSimilarity.
type PhotoSearchResult struct {
	Photo           Photo   `json:"photo"`
	CaptionScore    float64 `json:"caption_score"`
	ImageSimilarity float64 `json:"image_similarity"`
	CombinedScore   float64 `json:"combined_score"`
}

// NewPhotoSearchResult is the only way results are built, so the blend
// invariant holds for every instance.
func NewPhotoSearchResult(photo Photo, captionScore, imageSimilarity float64) PhotoSearchResult {
	return PhotoSearchResult{
		Photo:           photo,
		CaptionScore:    captionScore,
		ImageSimilarity: imageSimilarity,
		CombinedScore:   0.5*captionScore + 0.5*imageSimilarity,
	}
}

// RoutedResults carries the joined fan-out output in fixed precedence order:
// structured, then reviews, then photos. Sources that were not routed hold
// empty slices.
type RoutedResults struct {
	Intent     QueryIntent
	Structured []StructuredSearchResult
	Reviews    []ReviewSearchResult
	Photos     []PhotoSearchResult
}

// EvidenceBundle is the orchestrator's merged, scored, conflict-annotated
// output for one request. Built fresh per request, never shared.
type EvidenceBundle struct {
	Business      *BusinessData            `json:"business,omitempty"`
	Structured    []StructuredSearchResult `json:"structured"`
	Reviews       []ReviewSearchResult     `json:"reviews"`
	Photos        []PhotoSearchResult      `json:"photos"`
	ConflictNotes []string                 `json:"conflict_notes"`
	FinalScore    float64                  `json:"final_score"`
}

type EvidenceSummary struct {
	Structured  bool `json:"structured"`
	ReviewsUsed int  `json:"reviews_used"`
	PhotosUsed  int  `json:"photos_used"`
}

type QueryResponse struct {
	Answer     string          `json:"answer"`
	Confidence float64         `json:"confidence"`
	Intent     QueryIntent     `json:"intent"`
	Evidence   EvidenceSummary `json:"evidence"`
	LatencyMS  float64         `json:"latency_ms"`
}
