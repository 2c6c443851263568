// Package openai provides a pdfoutline.Embedder backed by the OpenAI
// embeddings API or any server compatible with it.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/fwojciec/pdfoutline"
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// DefaultModel is the embedding model used when none is configured.
const DefaultModel = "text-embedding-3-small"

const defaultBatchSize = 256

// Ensure Embedder implements pdfoutline.Embedder at compile time.
var _ pdfoutline.Embedder = (*Embedder)(nil)

// Config configures an Embedder.
type Config struct {
	APIKey     string
	Model      string
	BaseURL    string // Optional, for compatible servers and tests.
	BatchSize  int
	Dimensions int64
	MaxRetries int // Zero means 2; negative disables retries.
	Timeout    time.Duration
	HTTPClient *http.Client // Optional (tests)
}

// Embedder implements pdfoutline.Embedder using the OpenAI SDK.
type Embedder struct {
	client     openai.Client
	model      string
	batchSize  int
	dimensions int64
}

// NewEmbedder creates a new Embedder.
func NewEmbedder(cfg Config) *Embedder {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	switch {
	case cfg.MaxRetries == 0:
		cfg.MaxRetries = 2
	case cfg.MaxRetries < 0:
		cfg.MaxRetries = 0
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Embedder{
		client:     openai.NewClient(opts...),
		model:      cfg.Model,
		batchSize:  cfg.BatchSize,
		dimensions: cfg.Dimensions,
	}
}

// Model returns the embedding model name.
func (e *Embedder) Model() string {
	return e.model
}

// Embed embeds texts in batches, one request per batch.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += e.batchSize {
		end := min(start+e.batchSize, len(texts))
		vecs, err := e.embedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		out = append(out, vecs...)
	}
	return out, nil
}

func (e *Embedder) embedBatch(ctx context.Context, batch []string) ([][]float32, error) {
	params := openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: batch},
		Model: openai.EmbeddingModel(e.model),
	}
	if e.dimensions > 0 {
		params.Dimensions = openai.Int(e.dimensions)
	}

	resp, err := e.client.Embeddings.New(ctx, params)
	if err != nil {
		return nil, mapError(err)
	}
	if len(resp.Data) != len(batch) {
		return nil, pdfoutline.Errorf(pdfoutline.EINTERNAL, "openai returned %d embeddings for %d texts", len(resp.Data), len(batch))
	}

	data := resp.Data
	sort.SliceStable(data, func(i, j int) bool { return data[i].Index < data[j].Index })

	vecs := make([][]float32, len(data))
	for i, d := range data {
		vec := make([]float32, len(d.Embedding))
		for j, v := range d.Embedding {
			vec[j] = float32(v)
		}
		vecs[i] = vec
	}
	return vecs, nil
}

func mapError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusUnauthorized {
			return pdfoutline.Errorf(pdfoutline.EINVALID, "openai rejected the API key")
		}
		if apiErr.Message != "" {
			return fmt.Errorf("openai embeddings error (status %d): %s", apiErr.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("openai embeddings error (status %d)", apiErr.StatusCode)
	}
	return fmt.Errorf("openai embeddings: %w", err)
}
