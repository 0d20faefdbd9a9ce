package memory

import (
	"context"
	"sync"

	"github.com/kirillkom/business-assistant/internal/core/domain"
)

// Store is the in-memory adapter for the canonical data ports. It is the
// default wiring, so the assistant runs end-to-end with no external
// dependencies, and is swappable for the Postgres adapter without touching
// routing or orchestration code.
type Store struct {
	mu         sync.RWMutex
	businesses map[string]domain.BusinessData
	reviews    map[string][]domain.Review
	photos     map[string][]domain.Photo
}

func NewStore() *Store {
	return &Store{
		businesses: make(map[string]domain.BusinessData),
		reviews:    make(map[string][]domain.Review),
		photos:     make(map[string][]domain.Photo),
	}
}

func (s *Store) Get(_ context.Context, businessID string) (*domain.BusinessData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	business, ok := s.businesses[businessID]
	if !ok {
		return nil, nil
	}
	copied := business
	return &copied, nil
}

func (s *Store) ListByBusiness(_ context.Context, businessID string) ([]domain.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Review, len(s.reviews[businessID]))
	copy(out, s.reviews[businessID])
	return out, nil
}

// PhotoLister adapts the same store to the photo port; a separate method
// name is not possible with identical signatures, so photos are exposed via
// a view type.
type PhotoView struct{ store *Store }

func (s *Store) Photos() *PhotoView { return &PhotoView{store: s} }

func (v *PhotoView) ListByBusiness(_ context.Context, businessID string) ([]domain.Photo, error) {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	out := make([]domain.Photo, len(v.store.photos[businessID]))
	copy(out, v.store.photos[businessID])
	return out, nil
}

func (s *Store) AddBusiness(business domain.BusinessData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.businesses[business.BusinessID] = business
}

func (s *Store) AddReview(review domain.Review) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reviews[review.BusinessID] = append(s.reviews[review.BusinessID], review)
}

func (s *Store) AddPhoto(photo domain.Photo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.photos[photo.BusinessID] = append(s.photos[photo.BusinessID], photo)
}
