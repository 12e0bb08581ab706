package memory

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"pdfrag/internal/domain"
)

// Storage is an in-memory vector store using brute-force cosine distance.
// Collections are independent; the RWMutex admits unlimited concurrent
// readers while Replace swaps a collection in a single critical section.
type Storage struct {
	mu          sync.RWMutex
	collections map[string]*collection
}

type collection struct {
	dimension int
	chunks    []domain.Chunk
	vectors   [][]float64
}

func NewStorage() *Storage {
	return &Storage{collections: make(map[string]*collection)}
}

func (s *Storage) CreateCollection(name string, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("%w: invalid dimension %d", domain.ErrStore, dimension)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[name]; ok {
		return fmt.Errorf("%w: collection %q already exists", domain.ErrStore, name)
	}
	s.collections[name] = &collection{dimension: dimension}
	return nil
}

// DeleteCollection removes a collection. Deleting an absent collection is
// not an error.
func (s *Storage) DeleteCollection(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections, name)
	return nil
}

func (s *Storage) Insert(name string, chunks []domain.Chunk, vectors [][]float64) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("%w: chunks and vectors length mismatch", domain.ErrStore)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.collections[name]
	if !ok {
		return fmt.Errorf("%w: collection %q does not exist", domain.ErrStore, name)
	}
	for _, v := range vectors {
		if len(v) != col.dimension {
			return fmt.Errorf("%w: vector dimension mismatch: expected %d, got %d", domain.ErrStore, col.dimension, len(v))
		}
	}
	col.chunks = append(col.chunks, chunks...)
	col.vectors = append(col.vectors, vectors...)
	return nil
}

func (s *Storage) Query(name string, vector []float64, topK int) ([]domain.SearchResult, error) {
	if topK <= 0 {
		topK = 5
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	col, ok := s.collections[name]
	if !ok || len(col.chunks) == 0 {
		return nil, nil
	}
	results := make([]domain.SearchResult, len(col.chunks))
	for i := range col.chunks {
		results[i] = domain.SearchResult{
			Chunk:    col.chunks[i],
			Distance: cosineDistance(col.vectors[i], vector),
		}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Distance < results[j].Distance })
	if topK > len(results) {
		topK = len(results)
	}
	return results[:topK], nil
}

// Replace builds the new collection contents outside the lock and swaps
// them in under it, so readers never observe an intermediate empty state.
func (s *Storage) Replace(name string, dimension int, chunks []domain.Chunk, vectors [][]float64) error {
	if dimension <= 0 {
		return fmt.Errorf("%w: invalid dimension %d", domain.ErrStore, dimension)
	}
	if len(chunks) != len(vectors) {
		return fmt.Errorf("%w: chunks and vectors length mismatch", domain.ErrStore)
	}
	col := &collection{dimension: dimension}
	for _, v := range vectors {
		if len(v) != dimension {
			return fmt.Errorf("%w: vector dimension mismatch: expected %d, got %d", domain.ErrStore, dimension, len(v))
		}
	}
	col.chunks = append(col.chunks, chunks...)
	col.vectors = append(col.vectors, vectors...)
	s.mu.Lock()
	s.collections[name] = col
	s.mu.Unlock()
	return nil
}

// cosineDistance is 1 minus the cosine similarity; zero-norm vectors are
// treated as maximally distant.
func cosineDistance(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}
