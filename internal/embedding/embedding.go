package embedding

import (
	"crypto/sha256"
	"math"
	"strings"
	"sync"
)

// DefaultDimension matches the output size of common sentence-embedding models.
const DefaultDimension = 384

// Generator produces deterministic pseudo-embeddings from text. Vectors are
// derived from a SHA-256 digest of the normalized input, so the same text
// always maps to the bit-identical vector across runs and processes. The
// vectors are a stand-in for a learned model: they only reward exact lexical
// overlap, which is enough for a small bounded similarity signal.
type Generator struct {
	dimension int

	mu sync.RWMutex
	// cache grows without bound. Fine for the corpus sizes this tool
	// sees (hundreds of short summary strings per run).
	cache map[string][]float64
}

// New creates a Generator with the given vector dimension. Non-positive
// dimensions fall back to DefaultDimension.
func New(dimension int) *Generator {
	if dimension <= 0 {
		dimension = DefaultDimension
	}
	return &Generator{
		dimension: dimension,
		cache:     make(map[string][]float64),
	}
}

// Dimension returns the length of vectors produced by Embed.
func (g *Generator) Dimension() int { return g.dimension }

// Embed returns the unit-norm vector for the given text. Results are
// memoized by normalized text.
func (g *Generator) Embed(text string) []float64 {
	normalized := strings.TrimSpace(strings.ToLower(text))

	g.mu.RLock()
	cached, ok := g.cache[normalized]
	g.mu.RUnlock()
	if ok {
		return cached
	}

	digest := sha256.Sum256([]byte(normalized))

	vector := make([]float64, g.dimension)
	for i := range vector {
		vector[i] = float64(digest[i%len(digest)]) / 255.0
	}

	var sum float64
	for _, v := range vector {
		sum += v * v
	}
	// Digest bytes are never all zero in practice, but guard the
	// division anyway.
	if norm := math.Sqrt(sum); norm > 0 {
		for i := range vector {
			vector[i] /= norm
		}
	}

	g.mu.Lock()
	g.cache[normalized] = vector
	g.mu.Unlock()

	return vector
}

// Similarity returns the cosine similarity between the embeddings of two
// texts, in [-1, 1].
func (g *Generator) Similarity(a, b string) float64 {
	va := g.Embed(a)
	vb := g.Embed(b)

	var dot, na, nb float64
	for i := range va {
		dot += va[i] * vb[i]
		na += va[i] * va[i]
		nb += vb[i] * vb[i]
	}

	if na == 0 || nb == 0 {
		return 0
	}

	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
