package domain

import (
	"encoding/json"
	"time"
)

// ChangeEventType labels ingestion-side mutations. The assistant does not
// interpret payloads; any event for a business invalidates its cached answers.
type ChangeEventType string

const (
	EventReviewCreated ChangeEventType = "review_created"
	EventRatingUpdated ChangeEventType = "rating_updated"
	EventHoursChanged  ChangeEventType = "hours_changed"
	EventPhotoAdded    ChangeEventType = "photo_added"
)

type ChangeEvent struct {
	EventType  ChangeEventType `json:"event_type"`
	BusinessID string          `json:"business_id"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
}
