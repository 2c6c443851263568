package openai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/pdfoutline"
	"github.com/fwojciec/pdfoutline/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type embeddingRequest struct {
	Input      []string `json:"input"`
	Model      string   `json:"model"`
	Dimensions int64    `json:"dimensions"`
}

// newServer answers /embeddings with one vector per input whose single
// value is the input's length. Data is returned in reverse index order.
func newServer(t *testing.T, requests *[]embeddingRequest) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			http.NotFound(w, r)
			return
		}
		var req embeddingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		*requests = append(*requests, req)

		data := make([]map[string]any, 0, len(req.Input))
		for i := len(req.Input) - 1; i >= 0; i-- {
			data = append(data, map[string]any{
				"object":    "embedding",
				"index":     i,
				"embedding": []float64{float64(len(req.Input[i]))},
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data":   data,
			"model":  req.Model,
			"usage":  map[string]any{"prompt_tokens": 1, "total_tokens": 1},
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestEmbedder_Embed(t *testing.T) {
	t.Parallel()

	t.Run("embeds in batches preserving order", func(t *testing.T) {
		t.Parallel()

		var requests []embeddingRequest
		server := newServer(t, &requests)
		e := openai.NewEmbedder(openai.Config{APIKey: "test-key", BaseURL: server.URL, BatchSize: 2})

		vecs, err := e.Embed(context.Background(), []string{"a", "bb", "ccc"})

		require.NoError(t, err)
		assert.Equal(t, [][]float32{{1}, {2}, {3}}, vecs)
		require.Len(t, requests, 2)
		assert.Equal(t, []string{"a", "bb"}, requests[0].Input)
		assert.Equal(t, openai.DefaultModel, requests[0].Model)
	})

	t.Run("sends dimensions when configured", func(t *testing.T) {
		t.Parallel()

		var requests []embeddingRequest
		server := newServer(t, &requests)
		e := openai.NewEmbedder(openai.Config{APIKey: "k", BaseURL: server.URL, Model: "custom", Dimensions: 64})

		_, err := e.Embed(context.Background(), []string{"x"})

		require.NoError(t, err)
		require.Len(t, requests, 1)
		assert.Equal(t, "custom", requests[0].Model)
		assert.Equal(t, int64(64), requests[0].Dimensions)
	})

	t.Run("maps unauthorized to invalid", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
		}))
		defer server.Close()
		e := openai.NewEmbedder(openai.Config{APIKey: "bad", BaseURL: server.URL})

		_, err := e.Embed(context.Background(), []string{"x"})

		assert.Equal(t, pdfoutline.EINVALID, pdfoutline.ErrorCode(err))
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("makes no request for no texts", func(t *testing.T) {
		t.Parallel()

		var requests []embeddingRequest
		server := newServer(t, &requests)
		e := openai.NewEmbedder(openai.Config{APIKey: "k", BaseURL: server.URL})

		vecs, err := e.Embed(context.Background(), nil)

		require.NoError(t, err)
		assert.Empty(t, vecs)
		assert.Empty(t, requests)
	})
}
