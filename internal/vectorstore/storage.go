package vectorstore

import "pdfrag/internal/domain"

// Storage persists chunk vectors under named collections and answers
// nearest-neighbor queries. Results are ordered by ascending distance.
//
// Every vector inserted into a collection must have the dimensionality the
// collection was created with. DeleteCollection is idempotent. Query on a
// missing or empty collection returns an empty result, not an error.
type Storage interface {
	CreateCollection(name string, dimension int) error
	DeleteCollection(name string) error
	Insert(collection string, chunks []domain.Chunk, vectors [][]float64) error
	Query(collection string, vector []float64, topK int) ([]domain.SearchResult, error)

	// Replace swaps the full contents of a collection in one operation,
	// so re-ingestion never leaves stale chunks behind. Implementations
	// that cannot do this atomically must document the gap.
	Replace(name string, dimension int, chunks []domain.Chunk, vectors [][]float64) error
}
