package qdrant

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"pdfrag/internal/domain"
)

var errNotFound = errors.New("qdrant: not found")

// Storage is a minimal REST client to Qdrant using cosine distance.
// Replace is composed of delete + create + insert; unlike the in-memory
// store this is not atomic, so concurrent writers to one collection name
// can observe or produce a partially populated collection.
type Storage struct {
	url    string
	apiKey string
	client *http.Client
}

type Config struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

func NewStorage(cfg Config) *Storage {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Storage{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		client: &http.Client{Timeout: timeout},
	}
}

func (s *Storage) CreateCollection(name string, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("%w: invalid dimension %d", domain.ErrStore, dimension)
	}
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	return s.putJSON(fmt.Sprintf("%s/collections/%s", s.url, name), body)
}

// DeleteCollection drops the collection; a missing collection is not an error.
func (s *Storage) DeleteCollection(name string) error {
	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/collections/%s", s.url, name), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStore, err)
	}
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStore, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("%w: qdrant DELETE %s failed: %s", domain.ErrStore, name, resp.Status)
	}
	return nil
}

func (s *Storage) Insert(name string, chunks []domain.Chunk, vectors [][]float64) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("%w: chunks and vectors length mismatch", domain.ErrStore)
	}
	if len(chunks) == 0 {
		return nil
	}
	points := make([]map[string]any, len(chunks))
	for i := range chunks {
		points[i] = map[string]any{
			// Qdrant point ids must be unsigned ints or UUIDs; the chunk
			// ordinal is unique within a collection.
			"id":     chunks[i].Index,
			"vector": vectors[i],
			"payload": map[string]any{
				"chunk_id": chunks[i].ID,
				"index":    chunks[i].Index,
				"text":     chunks[i].Text,
				"metadata": chunks[i].Metadata,
			},
		}
	}
	body := map[string]any{"points": points}
	return s.putJSON(fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, name), body)
}

func (s *Storage) Query(name string, vector []float64, topK int) ([]domain.SearchResult, error) {
	if topK <= 0 {
		topK = 5
	}
	req := map[string]any{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}
	var resp struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	err := s.postJSON(fmt.Sprintf("%s/collections/%s/points/search", s.url, name), req, &resp)
	if errors.Is(err, errNotFound) {
		// Searching a collection that does not exist yet is not a failure.
		return []domain.SearchResult{}, nil
	}
	if err != nil {
		return nil, err
	}
	results := make([]domain.SearchResult, 0, len(resp.Result))
	for _, r := range resp.Result {
		results = append(results, domain.SearchResult{
			Chunk: chunkFromPayload(r.Payload),
			// Qdrant reports cosine similarity; callers expect distance.
			Distance: 1 - r.Score,
		})
	}
	return results, nil
}

func (s *Storage) Replace(name string, dimension int, chunks []domain.Chunk, vectors [][]float64) error {
	if err := s.DeleteCollection(name); err != nil {
		return err
	}
	if err := s.CreateCollection(name, dimension); err != nil {
		return err
	}
	return s.Insert(name, chunks, vectors)
}

func chunkFromPayload(payload map[string]any) domain.Chunk {
	chunk := domain.Chunk{}
	if v, ok := payload["chunk_id"].(string); ok {
		chunk.ID = v
	}
	if v, ok := payload["index"].(float64); ok {
		chunk.Index = int(v)
	}
	if v, ok := payload["text"].(string); ok {
		chunk.Text = v
	}
	if m, ok := payload["metadata"].(map[string]any); ok {
		chunk.Metadata = make(map[string]string, len(m))
		for k, v := range m {
			if sv, ok := v.(string); ok {
				chunk.Metadata[k] = sv
			}
		}
	}
	return chunk
}

func (s *Storage) putJSON(url string, body any) error {
	data, _ := json.Marshal(body)
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStore, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStore, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: qdrant PUT %s failed: %s", domain.ErrStore, url, resp.Status)
	}
	return nil
}

func (s *Storage) postJSON(url string, body any, out any) error {
	data, _ := json.Marshal(body)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStore, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStore, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: qdrant POST %s: %s", errNotFound, url, resp.Status)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: qdrant POST %s failed: %s", domain.ErrStore, url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
