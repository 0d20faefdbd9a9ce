package memory

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kirillkom/business-assistant/internal/core/domain"
)

type seedFile struct {
	Businesses []domain.BusinessData `json:"businesses"`
	Reviews    []domain.Review       `json:"reviews"`
	Photos     []domain.Photo        `json:"photos"`
}

// LoadSeedFile populates the store from a JSON fixture so a fresh checkout
// answers real queries without any backing services.
func (s *Store) LoadSeedFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}
	for _, business := range seed.Businesses {
		s.AddBusiness(business)
	}
	for _, review := range seed.Reviews {
		s.AddReview(review)
	}
	for _, photo := range seed.Photos {
		s.AddPhoto(photo)
	}
	return nil
}
