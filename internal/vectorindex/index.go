// Package vectorindex is an exact nearest-neighbor index over a fixed set of
// embeddings. Search is a brute-force scan by squared Euclidean distance,
// O(N*D) per query, which is the right tool for a corpus of a few thousand
// vectors that never changes after startup.
package vectorindex

import (
	"container/heap"
	"fmt"
	"sort"

	"booking_rag/internal/domain"
)

// Neighbor is a search hit: the position of the vector in the build input and
// its squared distance to the query.
type Neighbor struct {
	Index    int     `json:"index"`
	Distance float64 `json:"distance"`
}

// Index is read-only after Build and safe for concurrent searches.
type Index struct {
	dim  int
	vecs [][]float32
}

// Build copies embeddings into a new index.
func Build(embeddings [][]float32) (*Index, error) {
	if len(embeddings) == 0 {
		return nil, domain.ErrEmptyCorpus
	}
	dim := len(embeddings[0])
	if dim == 0 {
		return nil, fmt.Errorf("vector 0 has no components: %w", domain.ErrDimensionMismatch)
	}
	vecs := make([][]float32, len(embeddings))
	for i, v := range embeddings {
		if len(v) != dim {
			return nil, fmt.Errorf("vector %d has dim %d, want %d: %w", i, len(v), dim, domain.ErrDimensionMismatch)
		}
		vecs[i] = append([]float32(nil), v...)
	}
	return &Index{dim: dim, vecs: vecs}, nil
}

func (ix *Index) Dim() int  { return ix.dim }
func (ix *Index) Size() int { return len(ix.vecs) }

// Search returns the min(k, Size()) nearest vectors to query, ordered by
// ascending distance and then ascending index.
func (ix *Index) Search(query []float32, k int) ([]Neighbor, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k=%d: %w", k, domain.ErrInvalidK)
	}
	if len(query) != ix.dim {
		return nil, fmt.Errorf("query dim %d, index dim %d: %w", len(query), ix.dim, domain.ErrDimensionMismatch)
	}
	if k > len(ix.vecs) {
		k = len(ix.vecs)
	}

	// max-heap of the k best so far; the root is the worst kept neighbor
	h := make(worstFirst, 0, k)
	for i, v := range ix.vecs {
		n := Neighbor{Index: i, Distance: squaredL2(query, v)}
		if len(h) < k {
			heap.Push(&h, n)
			continue
		}
		if closer(n, h[0]) {
			h[0] = n
			heap.Fix(&h, 0)
		}
	}

	out := []Neighbor(h)
	sort.Slice(out, func(a, b int) bool { return closer(out[a], out[b]) })
	return out, nil
}

func squaredL2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}

// closer orders neighbors by distance, then by index.
func closer(a, b Neighbor) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return a.Index < b.Index
}

type worstFirst []Neighbor

func (h worstFirst) Len() int           { return len(h) }
func (h worstFirst) Less(i, j int) bool { return closer(h[j], h[i]) }
func (h worstFirst) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *worstFirst) Push(x any)        { *h = append(*h, x.(Neighbor)) }
func (h *worstFirst) Pop() any {
	old := *h
	n := old[len(old)-1]
	*h = old[:len(old)-1]
	return n
}
