package similarity

import (
	"testing"

	"github.com/kirillkom/business-assistant/internal/core/domain"
)

func TestTokenOverlapScore(t *testing.T) {
	s := NewTokenOverlap()

	cases := []struct {
		name      string
		query     string
		candidate string
		want      float64
	}{
		{"full overlap", "heated patio", "we loved the heated patio", 1.0},
		{"half overlap", "heated patio", "nice patio outside", 0.5},
		{"no overlap", "heated patio", "great pasta", 0.0},
		{"empty query", "", "anything", 0.0},
		{"stopwords ignored", "do they have a patio", "patio seating", 1.0},
		{"case insensitive", "PATIO", "Patio views", 1.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.Score(tc.query, tc.candidate); got != tc.want {
				t.Fatalf("Score(%q, %q) = %v, want %v", tc.query, tc.candidate, got, tc.want)
			}
		})
	}
}

func TestTokenOverlapBounded(t *testing.T) {
	s := NewTokenOverlap()
	got := s.Score("patio patio patio", "patio")
	if got < 0 || got > 1 {
		t.Fatalf("score %v out of [0,1]", got)
	}
}

func TestCaptionImageBlendsURL(t *testing.T) {
	s := NewCaptionImage()
	photo := domain.Photo{
		Caption: "sunny terrace",
		URL:     "https://cdn.example.com/photos/heated-patio-winter.jpg",
	}

	withURLHit := s.Score("heated patio", photo)
	if withURLHit <= 0 {
		t.Fatalf("url tokens ignored, score = %v", withURLHit)
	}

	photo.URL = "https://cdn.example.com/photos/xyz.jpg"
	withoutURLHit := s.Score("heated patio", photo)
	if withoutURLHit >= withURLHit {
		t.Fatalf("matching url did not raise score: %v vs %v", withURLHit, withoutURLHit)
	}
}

func TestCaptionImageBounded(t *testing.T) {
	s := NewCaptionImage()
	photo := domain.Photo{Caption: "heated patio", URL: "https://x/heated-patio.jpg"}
	got := s.Score("heated patio", photo)
	if got < 0 || got > 1 {
		t.Fatalf("score %v out of [0,1]", got)
	}
}
