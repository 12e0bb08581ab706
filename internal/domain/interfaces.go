package domain

// Document represents a single extracted text source, typically one PDF.
type Document struct {
	Origin  string
	Content string
}

// Chunk is a bounded-size segment of a document, the unit of storage
// and retrieval. IDs follow the "chunk_{index}" convention and are
// unique within a collection.
type Chunk struct {
	ID       string
	Text     string
	Index    int
	Metadata map[string]string
}

// SearchResult is a retrieved chunk with its distance from the query
// vector. Smaller distance means more similar.
type SearchResult struct {
	Chunk    Chunk
	Distance float64
}

// Answer is the outcome of the retrieval+answer pipeline: the generated
// text plus the chunks it was grounded on, in ascending-distance order.
type Answer struct {
	Text    string
	Sources []SearchResult
}

// Extractor produces the full text of a document at the given path.
type Extractor interface {
	Extract(path string) (string, error)
}

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(text string) ([]float64, error)
}

// Chunker splits a document into chunks suitable for retrieval indexing.
type Chunker interface {
	Chunk(document Document) ([]Chunk, error)
}

// Answerer generates natural-language output from a prompt.
type Answerer interface {
	Generate(prompt string) (string, error)
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}

// RAGService defines the operations exposed by the application core.
type RAGService interface {
	IngestFile(path, collection string) (summary string, name string, err error)
	Ingest(text, origin, collection string) error
	Answer(query, collection string, topK int) (Answer, error)
}
