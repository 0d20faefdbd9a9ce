package ports

import (
	"context"
	"time"

	"github.com/kirillkom/business-assistant/internal/core/domain"
)

// BusinessDataStore reads canonical business records. A missing business is
// reported as (nil, nil), not an error.
type BusinessDataStore interface {
	Get(ctx context.Context, businessID string) (*domain.BusinessData, error)
}

// ReviewStore lists ingested reviews for one business.
type ReviewStore interface {
	ListByBusiness(ctx context.Context, businessID string) ([]domain.Review, error)
}

// PhotoStore lists ingested photos for one business.
type PhotoStore interface {
	ListByBusiness(ctx context.Context, businessID string) ([]domain.Photo, error)
}

// TextSimilarity scores how close a candidate text is to the query. Scores
// are comparable and bounded to [0,1]; the algorithm is opaque to the core.
type TextSimilarity interface {
	Score(query, candidate string) float64
}

// ImageSimilarity scores a photo against the query text. Bounded to [0,1].
type ImageSimilarity interface {
	Score(query string, photo domain.Photo) float64
}

// StructuredSearcher matches canonical fields against the query.
type StructuredSearcher interface {
	Search(ctx context.Context, query, businessID string) ([]domain.StructuredSearchResult, error)
}

// ReviewSearcher returns review candidates sorted descending by similarity.
type ReviewSearcher interface {
	Search(ctx context.Context, query, businessID string) ([]domain.ReviewSearchResult, error)
}

// PhotoSearcher returns photo candidates sorted descending by combined score.
type PhotoSearcher interface {
	Search(ctx context.Context, query, businessID string) ([]domain.PhotoSearchResult, error)
}

// ResponseGenerator renders the final answer from the orchestrated context
// block and the original query. Any backend satisfying this signature is
// interchangeable.
type ResponseGenerator interface {
	Generate(ctx context.Context, contextBlock, query string) (string, error)
}

// QueryCache is the two-tier result cache keyed by (business, normalized
// query). Backend unavailability is absorbed by implementations; Get reports
// a miss as (nil, false).
type QueryCache interface {
	GetQueryResult(ctx context.Context, businessID, query string) (*domain.QueryResponse, bool)
	SetQueryResult(ctx context.Context, businessID, query string, response *domain.QueryResponse, ttl time.Duration)
	InvalidateBusiness(ctx context.Context, businessID string)
}
