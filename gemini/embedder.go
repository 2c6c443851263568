// Package gemini provides a pdfoutline.Embedder backed by the Gemini API.
package gemini

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/fwojciec/pdfoutline"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// DefaultModel is the embedding model used when none is configured.
const DefaultModel = "gemini-embedding-001"

// maxBatchSize is the most texts the API accepts in one request.
const maxBatchSize = 100

// Ensure Embedder implements pdfoutline.Embedder at compile time.
var _ pdfoutline.Embedder = (*Embedder)(nil)

// ContentEmbedder is the subset of *genai.Models used by Embedder.
type ContentEmbedder interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// Config configures an Embedder.
type Config struct {
	Model             string
	BatchSize         int
	RequestsPerSecond float64
	Attempts          uint
	RetryDelay        time.Duration
	// Dimensions truncates output vectors when positive.
	Dimensions int32
}

func (c Config) withDefaults() Config {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.BatchSize <= 0 || c.BatchSize > maxBatchSize {
		c.BatchSize = maxBatchSize
	}
	if c.Attempts == 0 {
		c.Attempts = 3
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = time.Second
	}
	return c
}

// Embedder implements pdfoutline.Embedder using Gemini embeddings.
type Embedder struct {
	models  ContentEmbedder
	cfg     Config
	limiter *rate.Limiter
}

// NewEmbedder creates a new Embedder. Pass client.Models as models.
func NewEmbedder(models ContentEmbedder, cfg Config) *Embedder {
	cfg = cfg.withDefaults()
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	return &Embedder{
		models:  models,
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Model returns the embedding model name.
func (e *Embedder) Model() string {
	return e.cfg.Model
}

// Embed embeds texts in batches, one request per batch.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += e.cfg.BatchSize {
		end := min(start+e.cfg.BatchSize, len(texts))
		vecs, err := e.embedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		out = append(out, vecs...)
	}
	return out, nil
}

func (e *Embedder) embedBatch(ctx context.Context, batch []string) ([][]float32, error) {
	contents := make([]*genai.Content, len(batch))
	for i, text := range batch {
		contents[i] = genai.NewContentFromText(text, "user")
	}

	config := &genai.EmbedContentConfig{TaskType: "SEMANTIC_SIMILARITY"}
	if e.cfg.Dimensions > 0 {
		dims := e.cfg.Dimensions
		config.OutputDimensionality = &dims
	}

	var resp *genai.EmbedContentResponse
	err := retry.Do(
		func() error {
			if err := e.limiter.Wait(ctx); err != nil {
				return retry.Unrecoverable(err)
			}
			r, err := e.models.EmbedContent(ctx, e.cfg.Model, contents, config)
			if err != nil {
				return err
			}
			resp = r
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(e.cfg.Attempts),
		retry.Delay(e.cfg.RetryDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini embed: %w", err)
	}
	if resp == nil || len(resp.Embeddings) != len(batch) {
		got := 0
		if resp != nil {
			got = len(resp.Embeddings)
		}
		return nil, pdfoutline.Errorf(pdfoutline.EINTERNAL, "gemini returned %d embeddings for %d texts", got, len(batch))
	}

	vecs := make([][]float32, len(batch))
	for i, emb := range resp.Embeddings {
		if emb == nil {
			return nil, pdfoutline.Errorf(pdfoutline.EINTERNAL, "gemini returned empty embedding at %d", i)
		}
		vecs[i] = emb.Values
	}
	return vecs, nil
}
