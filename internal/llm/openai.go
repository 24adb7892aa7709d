package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIEmbedder generates embeddings through the OpenAI API, or any server
// speaking the same protocol when a base URL is given.
type OpenAIEmbedder struct {
	client    openai.Client
	model     string
	dimension int
}

// NewOpenAIEmbedder creates an embedder for model. An empty baseURL targets
// api.openai.com. dimension is requested from models that support shortened
// embeddings and used to validate every response.
func NewOpenAIEmbedder(apiKey, baseURL, model string, dimension int) *OpenAIEmbedder {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIEmbedder{
		client:    openai.NewClient(opts...),
		model:     model,
		dimension: dimension,
	}
}

// Dimension returns the size of the vectors produced by the embedder.
func (e *OpenAIEmbedder) Dimension() int {
	return e.dimension
}

// Embed generates the embedding of a single text.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedTexts generates embeddings for texts, in input order.
func (e *OpenAIEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyInput
	}

	params := openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		Model: openai.EmbeddingModel(e.model),
	}
	if e.dimension > 0 && supportsDimensions(e.model) {
		params.Dimensions = openai.Int(int64(e.dimension))
	}

	resp, err := e.client.Embeddings.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create embeddings: %w", err)
	}

	data := make([]EmbeddingData, len(resp.Data))
	for i, d := range resp.Data {
		data[i] = EmbeddingData{Index: int(d.Index), Embedding: d.Embedding}
	}

	vectors, err := orderByIndex(data, len(texts))
	if err != nil {
		return nil, fmt.Errorf("failed to order embeddings: %w", err)
	}
	return toFloat32(vectors, len(texts), e.dimension)
}

// supportsDimensions reports whether the model accepts the dimensions parameter.
func supportsDimensions(model string) bool {
	return model == string(openai.EmbeddingModelTextEmbedding3Small) ||
		model == string(openai.EmbeddingModelTextEmbedding3Large)
}
