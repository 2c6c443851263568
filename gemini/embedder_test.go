package gemini_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/pdfoutline"
	"github.com/fwojciec/pdfoutline/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

// fakeModels returns one embedding per content whose single value is the
// length of the content's text.
type fakeModels struct {
	calls   atomic.Int32
	failFor int32
	sizes   []int
	config  *genai.EmbedContentConfig
	model   string
	drop    bool
}

func (f *fakeModels) EmbedContent(_ context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error) {
	n := f.calls.Add(1)
	if n <= f.failFor {
		return nil, errors.New("503 unavailable")
	}
	f.sizes = append(f.sizes, len(contents))
	f.config = config
	f.model = model

	resp := &genai.EmbedContentResponse{}
	for _, c := range contents {
		resp.Embeddings = append(resp.Embeddings, &genai.ContentEmbedding{
			Values: []float32{float32(len(c.Parts[0].Text))},
		})
	}
	if f.drop {
		resp.Embeddings = resp.Embeddings[1:]
	}
	return resp, nil
}

func TestEmbedder_Embed(t *testing.T) {
	t.Parallel()

	t.Run("embeds in batches preserving order", func(t *testing.T) {
		t.Parallel()

		models := &fakeModels{}
		e := gemini.NewEmbedder(models, gemini.Config{BatchSize: 2})

		vecs, err := e.Embed(context.Background(), []string{"a", "bb", "ccc"})

		require.NoError(t, err)
		assert.Equal(t, [][]float32{{1}, {2}, {3}}, vecs)
		assert.Equal(t, []int{2, 1}, models.sizes)
		assert.Equal(t, gemini.DefaultModel, models.model)
		assert.Equal(t, "SEMANTIC_SIMILARITY", models.config.TaskType)
	})

	t.Run("passes output dimensionality", func(t *testing.T) {
		t.Parallel()

		models := &fakeModels{}
		e := gemini.NewEmbedder(models, gemini.Config{Dimensions: 256})

		_, err := e.Embed(context.Background(), []string{"a"})

		require.NoError(t, err)
		require.NotNil(t, models.config.OutputDimensionality)
		assert.Equal(t, int32(256), *models.config.OutputDimensionality)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		t.Parallel()

		models := &fakeModels{failFor: 2}
		e := gemini.NewEmbedder(models, gemini.Config{Attempts: 3, RetryDelay: time.Millisecond})

		vecs, err := e.Embed(context.Background(), []string{"abcd"})

		require.NoError(t, err)
		assert.Equal(t, [][]float32{{4}}, vecs)
		assert.Equal(t, int32(3), models.calls.Load())
	})

	t.Run("gives up after configured attempts", func(t *testing.T) {
		t.Parallel()

		models := &fakeModels{failFor: 10}
		e := gemini.NewEmbedder(models, gemini.Config{Attempts: 2, RetryDelay: time.Millisecond})

		_, err := e.Embed(context.Background(), []string{"a"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "503 unavailable")
		assert.Equal(t, int32(2), models.calls.Load())
	})

	t.Run("rejects short responses", func(t *testing.T) {
		t.Parallel()

		e := gemini.NewEmbedder(&fakeModels{drop: true}, gemini.Config{})

		_, err := e.Embed(context.Background(), []string{"a", "b"})

		assert.Equal(t, pdfoutline.EINTERNAL, pdfoutline.ErrorCode(err))
	})

	t.Run("makes no request for no texts", func(t *testing.T) {
		t.Parallel()

		models := &fakeModels{}
		e := gemini.NewEmbedder(models, gemini.Config{})

		vecs, err := e.Embed(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, vecs)
		assert.Zero(t, models.calls.Load())
	})
}
