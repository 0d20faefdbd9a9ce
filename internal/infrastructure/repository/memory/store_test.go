package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kirillkom/business-assistant/internal/core/domain"
)

func TestStoreGetReturnsCopy(t *testing.T) {
	store := NewStore()
	store.AddBusiness(domain.BusinessData{BusinessID: "biz-1", Name: "Test Bistro"})

	first, err := store.Get(context.Background(), "biz-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	first.Name = "mutated"

	second, _ := store.Get(context.Background(), "biz-1")
	if second.Name != "Test Bistro" {
		t.Fatalf("stored record mutated through returned pointer")
	}
}

func TestStoreGetUnknown(t *testing.T) {
	store := NewStore()
	business, err := store.Get(context.Background(), "missing")
	if err != nil || business != nil {
		t.Fatalf("Get(missing) = %v, %v; want nil, nil", business, err)
	}
}

func TestStoreListScopedToBusiness(t *testing.T) {
	store := NewStore()
	store.AddReview(domain.Review{ReviewID: "r-1", BusinessID: "biz-1"})
	store.AddReview(domain.Review{ReviewID: "r-2", BusinessID: "biz-2"})
	store.AddPhoto(domain.Photo{PhotoID: "p-1", BusinessID: "biz-1"})

	reviews, err := store.ListByBusiness(context.Background(), "biz-1")
	if err != nil {
		t.Fatalf("ListByBusiness() error = %v", err)
	}
	if len(reviews) != 1 || reviews[0].ReviewID != "r-1" {
		t.Fatalf("reviews = %+v", reviews)
	}

	photos, err := store.Photos().ListByBusiness(context.Background(), "biz-1")
	if err != nil {
		t.Fatalf("Photos().ListByBusiness() error = %v", err)
	}
	if len(photos) != 1 || photos[0].PhotoID != "p-1" {
		t.Fatalf("photos = %+v", photos)
	}
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	payload := `{
		"businesses": [{"business_id": "biz-1", "name": "Test Bistro", "amenities": {"wifi": true}}],
		"reviews": [{"review_id": "r-1", "business_id": "biz-1", "text": "great"}],
		"photos": [{"photo_id": "p-1", "business_id": "biz-1", "caption": "patio"}]
	}`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	store := NewStore()
	if err := store.LoadSeedFile(path); err != nil {
		t.Fatalf("LoadSeedFile() error = %v", err)
	}

	business, _ := store.Get(context.Background(), "biz-1")
	if business == nil || !business.Amenities["wifi"] {
		t.Fatalf("seed business = %+v", business)
	}
	reviews, _ := store.ListByBusiness(context.Background(), "biz-1")
	photos, _ := store.Photos().ListByBusiness(context.Background(), "biz-1")
	if len(reviews) != 1 || len(photos) != 1 {
		t.Fatalf("seeded %d reviews, %d photos; want 1 and 1", len(reviews), len(photos))
	}
}

func TestLoadSeedFileMissing(t *testing.T) {
	store := NewStore()
	if err := store.LoadSeedFile("/nonexistent/seed.json"); err == nil {
		t.Fatalf("expected error for missing seed file")
	}
}
