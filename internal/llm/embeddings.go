package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrEmptyInput is returned when EmbedTexts is called without texts.
var ErrEmptyInput = errors.New("empty input array")

// EmbeddingsClient calls an OpenAI-compatible /v1/embeddings endpoint
// (llama.cpp, text-embeddings-inference, Ollama and similar servers).
type EmbeddingsClient struct {
	BaseURL      string
	APIKey       string
	Model        string
	ExpectedSize int // Expected vector size for validation
	client       *http.Client
}

// NewEmbeddingsClient creates a new embeddings client.
// expectedSize is the embedding dimension of the model. All embeddings
// returned by EmbedTexts are validated against it.
func NewEmbeddingsClient(baseURL, apiKey, model string, expectedSize int) *EmbeddingsClient {
	return &EmbeddingsClient{
		BaseURL:      strings.TrimRight(baseURL, "/"),
		APIKey:       apiKey,
		Model:        model,
		ExpectedSize: expectedSize,
		client:       &http.Client{Timeout: 60 * time.Second},
	}
}

// EmbeddingsRequest represents the request payload for embeddings API.
type EmbeddingsRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// EmbeddingData represents a single embedding in the response.
type EmbeddingData struct {
	Index     int       `json:"index"`
	Embedding []float64 `json:"embedding"`
}

// EmbeddingsResponse represents the response from the embeddings API.
type EmbeddingsResponse struct {
	Data []EmbeddingData `json:"data"`
}

// Dimension returns the size of the vectors produced by the client.
func (c *EmbeddingsClient) Dimension() int {
	return c.ExpectedSize
}

// Embed generates the embedding of a single text.
func (c *EmbeddingsClient) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := c.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedTexts generates embeddings for the given texts, one per input text in
// input order. Validates that all returned vectors match the expected size.
func (c *EmbeddingsClient) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyInput
	}

	url := fmt.Sprintf("%s/v1/embeddings", c.BaseURL)

	payload := EmbeddingsRequest{
		Model: c.Model,
		Input: texts,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.APIKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var embeddingsResp EmbeddingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&embeddingsResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	vectors := make([][]float64, len(embeddingsResp.Data))
	for i, data := range embeddingsResp.Data {
		vectors[i] = data.Embedding
	}
	ordered, err := orderByIndex(embeddingsResp.Data, len(texts))
	if err == nil {
		vectors = ordered
	}

	return toFloat32(vectors, len(texts), c.ExpectedSize)
}

// orderByIndex places each embedding at its reported index. It fails when the
// indices are not a permutation of 0..n-1, in which case callers keep
// response order.
func orderByIndex(data []EmbeddingData, n int) ([][]float64, error) {
	if len(data) != n {
		return nil, fmt.Errorf("expected %d embeddings, got %d", n, len(data))
	}
	out := make([][]float64, n)
	for _, d := range data {
		if d.Index < 0 || d.Index >= n || out[d.Index] != nil {
			return nil, fmt.Errorf("invalid embedding index %d", d.Index)
		}
		out[d.Index] = d.Embedding
	}
	return out, nil
}

// toFloat32 converts API vectors and validates their count and size.
// expectedSize <= 0 disables the size check.
func toFloat32(vectors [][]float64, wantCount, expectedSize int) ([][]float32, error) {
	if len(vectors) != wantCount {
		return nil, fmt.Errorf("expected %d embeddings, got %d", wantCount, len(vectors))
	}

	result := make([][]float32, len(vectors))
	for i, v := range vectors {
		if expectedSize > 0 && len(v) != expectedSize {
			return nil, fmt.Errorf("embedding %d has size %d, expected %d", i, len(v), expectedSize)
		}

		vec := make([]float32, len(v))
		for j, x := range v {
			vec[j] = float32(x)
		}
		result[i] = vec
	}
	return result, nil
}
