package service

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/phuslu/log"

	"pdfrag/internal/domain"
	"pdfrag/internal/vectorstore"
)

// NoRelevantInformation is returned when retrieval finds nothing to ground
// an answer on. The answerer is not invoked in that case.
const NoRelevantInformation = "No relevant information found to answer your question."

const promptTemplate = `Based on the following information, please answer the question.
If the answer is not contained in the provided information, say "I don't have enough information to answer this question."

CONTEXT:
%s

QUESTION:
%s

ANSWER:
`

// RAGServiceImpl wires the extractor, chunker, embedder, store and answerer
// into the ingestion and retrieval+answer pipelines. The same embedder value
// serves both pipelines, so a collection is always queried with the
// vectorizer that built it.
type RAGServiceImpl struct {
	extractor           domain.Extractor
	chunker             domain.Chunker
	embedder            domain.Embedder
	store               vectorstore.Storage
	summarizer          domain.Summarizer
	answerer            domain.Answerer
	summaryMaxSentences int
	logger              *log.Logger
}

func NewRAGService(
	extractor domain.Extractor,
	chunker domain.Chunker,
	embedder domain.Embedder,
	store vectorstore.Storage,
	summarizer domain.Summarizer,
	answerer domain.Answerer,
	summaryMaxSentences int,
	logger *log.Logger,
) *RAGServiceImpl {
	return &RAGServiceImpl{
		extractor:           extractor,
		chunker:             chunker,
		embedder:            embedder,
		store:               store,
		summarizer:          summarizer,
		answerer:            answerer,
		summaryMaxSentences: summaryMaxSentences,
		logger:              logger,
	}
}

// IngestFile extracts a PDF and ingests it into the named collection.
// An empty collection name defaults to the file stem. Returns a brief
// summary of the document and the collection name actually used.
func (s *RAGServiceImpl) IngestFile(path, collection string) (string, string, error) {
	if collection == "" {
		base := filepath.Base(path)
		collection = strings.TrimSuffix(base, filepath.Ext(base))
	}
	text, err := s.extractor.Extract(path)
	if err != nil {
		return "", "", err
	}
	s.logger.Info().Str("path", path).Int("characters", len(text)).Msg("extracted document text")
	if err := s.Ingest(text, path, collection); err != nil {
		return "", "", err
	}
	summary, err := s.summarizer.Summarize(text, s.summaryMaxSentences)
	if err != nil {
		return "", "", err
	}
	return summary, collection, nil
}

// Ingest chunks the text and replaces the named collection with the result.
// Re-ingestion is never additive: the previous contents of the collection
// are fully discarded. Zero extracted chunks still produce an (empty)
// collection.
func (s *RAGServiceImpl) Ingest(text, origin, collection string) error {
	chunks, err := s.chunker.Chunk(domain.Document{Origin: origin, Content: text})
	if err != nil {
		return err
	}
	for i := range chunks {
		chunks[i].Metadata = map[string]string{
			"source":   origin,
			"chunk_id": strconv.Itoa(chunks[i].Index),
		}
	}
	if len(chunks) == 0 {
		// Degenerate but valid: register an empty collection. The
		// dimension is a placeholder since no vector will ever be stored.
		dim := s.embedder.Dimension()
		if dim == 0 {
			dim = 1
		}
		s.logger.Warn().Str("collection", collection).Msg("no chunks extracted, creating empty collection")
		return s.store.Replace(collection, dim, nil, nil)
	}

	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}
	if err := s.embedder.Prepare(texts); err != nil {
		return err
	}
	vectors := make([][]float64, len(chunks))
	for i := range chunks {
		vec, err := s.embedder.Embed(chunks[i].Text)
		if err != nil {
			return err
		}
		vectors[i] = vec
	}
	if err := s.store.Replace(collection, len(vectors[0]), chunks, vectors); err != nil {
		return err
	}
	s.logger.Info().
		Str("collection", collection).
		Str("embedder", s.embedder.Name()).
		Int("chunks", len(chunks)).
		Msg("ingested document")
	return nil
}

// Answer retrieves the topK nearest chunks and asks the answerer exactly
// once, conditioned on them. Empty retrieval short-circuits with a fixed
// response; a generation failure is converted into a fixed error string
// rather than propagated.
func (s *RAGServiceImpl) Answer(query, collection string, topK int) (domain.Answer, error) {
	if topK <= 0 {
		topK = 5
	}
	vec, err := s.embedder.Embed(query)
	if err != nil {
		return domain.Answer{}, err
	}
	results, err := s.store.Query(collection, vec, topK)
	if err != nil {
		return domain.Answer{}, err
	}
	if len(results) == 0 {
		s.logger.Debug().Str("collection", collection).Msg("no chunks retrieved")
		return domain.Answer{Text: NoRelevantInformation}, nil
	}

	contexts := make([]string, len(results))
	for i, r := range results {
		contexts[i] = r.Chunk.Text
	}
	prompt := fmt.Sprintf(promptTemplate, strings.Join(contexts, "\n\n"), query)
	answer, err := s.answerer.Generate(prompt)
	if err != nil {
		s.logger.Error().Err(err).Str("collection", collection).Msg("answer generation failed")
		return domain.Answer{
			Text:    fmt.Sprintf("Sorry, I encountered an error: %v", err),
			Sources: results,
		}, nil
	}
	return domain.Answer{Text: answer, Sources: results}, nil
}
