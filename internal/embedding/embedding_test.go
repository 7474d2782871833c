package embedding

import (
	"math"
	"testing"
)

func TestEmbedIsDeterministic(t *testing.T) {
	first := New(DefaultDimension).Embed("Senior Python Developer")
	second := New(DefaultDimension).Embed("Senior Python Developer")

	if len(first) != len(second) {
		t.Fatalf("vector lengths differ: %d vs %d", len(first), len(second))
	}

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("vectors differ at index %d: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestEmbedNormalizesInput(t *testing.T) {
	g := New(DefaultDimension)

	a := g.Embed("  Python Developer  ")
	b := g.Embed("python developer")

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("case/space-normalized inputs produced different vectors at index %d", i)
		}
	}
}

func TestEmbedProducesUnitVector(t *testing.T) {
	vector := New(DefaultDimension).Embed("docker kubernetes aws")

	var sum float64
	for _, v := range vector {
		sum += v * v
	}

	if norm := math.Sqrt(sum); math.Abs(norm-1.0) > 1e-9 {
		t.Fatalf("expected unit norm, got %v", norm)
	}
}

func TestSimilaritySelf(t *testing.T) {
	g := New(DefaultDimension)

	if sim := g.Similarity("golang services", "golang services"); math.Abs(sim-1.0) > 1e-9 {
		t.Fatalf("expected self-similarity 1.0, got %v", sim)
	}
}

func TestSimilarityBounds(t *testing.T) {
	g := New(64)

	pairs := [][2]string{
		{"python", "java"},
		{"", "nonempty"},
		{"machine learning engineer", "truck driver"},
	}

	for _, pair := range pairs {
		sim := g.Similarity(pair[0], pair[1])
		if sim < -1.0 || sim > 1.0 {
			t.Fatalf("similarity %v out of range for %q vs %q", sim, pair[0], pair[1])
		}
	}
}

func TestNewFallsBackToDefaultDimension(t *testing.T) {
	g := New(0)

	if g.Dimension() != DefaultDimension {
		t.Fatalf("expected default dimension %d, got %d", DefaultDimension, g.Dimension())
	}

	if got := len(g.Embed("anything")); got != DefaultDimension {
		t.Fatalf("expected vector of length %d, got %d", DefaultDimension, got)
	}
}
