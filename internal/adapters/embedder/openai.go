package embedder

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"booking_rag/internal/adapters/observability"
	"booking_rag/internal/domain"
)

// OpenAI is an embedder backed by any OpenAI-compatible /embeddings endpoint.
type OpenAI struct {
	client *openai.Client
	model  openai.EmbeddingModel
	dims   int
}

type OpenAIConfig struct {
	APIKey     string
	BaseURL    string // empty keeps the client default
	Model      string
	Dimensions int // 0 lets the model decide
}

func NewOpenAI(cfg OpenAIConfig) *OpenAI {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(clientCfg),
		model:  openai.EmbeddingModel(cfg.Model),
		dims:   cfg.Dimensions,
	}
}

func (e *OpenAI) Embed(ctx context.Context, text string) ([]float32, error) {
	out, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// EmbedBatch returns vectors in input order regardless of response order.
func (e *OpenAI) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	req := openai.EmbeddingRequest{
		Input:          texts,
		Model:          e.model,
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	}
	if e.dims > 0 {
		req.Dimensions = e.dims
	}

	start := time.Now()
	resp, err := e.client.CreateEmbeddings(ctx, req)
	if err != nil {
		observability.ObserveExternal("openai", "/embeddings", statusOf(err), time.Since(start))
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbedding, err)
	}
	observability.ObserveExternal("openai", "/embeddings", 200, time.Since(start))

	out := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(out) {
			return nil, fmt.Errorf("%w: response index %d out of %d", domain.ErrEmbedding, d.Index, len(out))
		}
		v := append([]float32(nil), d.Embedding...)
		normalize(v)
		out[d.Index] = v
	}
	for i, v := range out {
		if v == nil {
			return nil, fmt.Errorf("%w: no vector for input %d", domain.ErrEmbedding, i)
		}
	}
	return out, nil
}

func statusOf(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
