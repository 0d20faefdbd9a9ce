package static

import (
	"context"
	"strings"
	"testing"
)

const sampleContext = `Canonical Facts:
- name: Test Bistro
- amenities: heated_patio=false, wifi=true

Supporting Evidence:
- review (similarity 0.60, rating 5.0): The heated patio is wonderful

Instructions:
Answer the question using only the information above.

Question: Do they have a heated patio?
`

func TestGenerateEchoesFactsAndEvidence(t *testing.T) {
	g := NewGenerator()
	answer, err := g.Generate(context.Background(), sampleContext, "Do they have a heated patio?")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.Contains(answer, "name: Test Bistro") {
		t.Fatalf("canonical facts missing: %q", answer)
	}
	if !strings.Contains(answer, "heated_patio=false") {
		t.Fatalf("amenity value missing: %q", answer)
	}
	if !strings.Contains(answer, "Supporting evidence:") {
		t.Fatalf("evidence section missing: %q", answer)
	}
}

func TestGenerateWithoutFacts(t *testing.T) {
	g := NewGenerator()
	answer, err := g.Generate(context.Background(), "Question: anything?\n", "anything?")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !strings.Contains(answer, "no canonical facts") {
		t.Fatalf("missing-facts marker absent: %q", answer)
	}
}

func TestGenerateSkipsEmptyEvidence(t *testing.T) {
	g := NewGenerator()
	block := "Canonical Facts:\n- name: Test Bistro\n\nSupporting Evidence:\n- none\n\nInstructions:\nx\n"
	answer, err := g.Generate(context.Background(), block, "q")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if strings.Contains(answer, "Supporting evidence:") {
		t.Fatalf("empty evidence echoed: %q", answer)
	}
}
