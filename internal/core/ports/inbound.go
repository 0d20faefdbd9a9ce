package ports

import (
	"context"

	"github.com/kirillkom/business-assistant/internal/core/domain"
)

// BusinessQueryService is the inbound contract for answering natural-language
// questions about a business. It never surfaces partial downstream failure;
// the worst case is a low-confidence answer with empty evidence counts.
type BusinessQueryService interface {
	Query(ctx context.Context, text, businessID string) (*domain.QueryResponse, error)
}

// ChangeEventHandler is the inbound contract for ingestion change events.
type ChangeEventHandler interface {
	HandleChangeEvent(ctx context.Context, event domain.ChangeEvent) error
}
