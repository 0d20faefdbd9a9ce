package domain

// BusinessHours is one opening interval. Hours are kept in weekday order as
// ingested; times are "HH:MM" local to the business.
type BusinessHours struct {
	Day   string `json:"day"`
	Open  string `json:"open"`
	Close string `json:"close"`
}

// BusinessData is the canonical record for a business. Canonical fields are
// authoritative and are never overridden by unstructured evidence.
type BusinessData struct {
	BusinessID  string          `json:"business_id"`
	Name        string          `json:"name"`
	Address     string          `json:"address"`
	Phone       string          `json:"phone"`
	PriceRange  string          `json:"price_range"`
	Hours       []BusinessHours `json:"hours"`
	Amenities   map[string]bool `json:"amenities"`
	Categories  []string        `json:"categories"`
	Rating      float64         `json:"rating"`
	ReviewCount int             `json:"review_count"`
}

// Review is immutable once ingested; corrections arrive as new events.
type Review struct {
	ReviewID   string  `json:"review_id"`
	BusinessID string  `json:"business_id"`
	UserID     string  `json:"user_id"`
	Rating     float64 `json:"rating"`
	Text       string  `json:"text"`
}

type Photo struct {
	PhotoID    string `json:"photo_id"`
	BusinessID string `json:"business_id"`
	URL        string `json:"url"`
	Caption    string `json:"caption"`
}
