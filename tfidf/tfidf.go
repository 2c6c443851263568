// Package tfidf provides an offline pdfoutline.Embedder based on TF-IDF.
//
// Each call to Embed fits a fresh vocabulary on the texts it is given, so
// vectors are only comparable within one call. The ranker embeds all
// candidates and the query together, which is exactly that case.
package tfidf

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/fwojciec/pdfoutline"
)

// Compile-time interface verification.
var _ pdfoutline.Embedder = (*Embedder)(nil)

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’][\p{L}\p{N}]+)*`)

// Embedder implements pdfoutline.Embedder with smoothed TF-IDF weights and
// L2-normalised vectors.
type Embedder struct {
	stopwords map[string]struct{}
}

// NewEmbedder creates an Embedder with the default English stopword list.
func NewEmbedder() *Embedder {
	return &Embedder{stopwords: defaultStopwords()}
}

// Embed fits the vocabulary on texts and returns one vector per text.
// Texts with no known terms get a zero vector.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	docs := make([][]string, len(texts))
	df := make(map[string]int)
	for i, text := range texts {
		docs[i] = e.tokenize(text)
		seen := make(map[string]struct{}, len(docs[i]))
		for _, tok := range docs[i] {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	vocab := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(len(texts))
	for i, term := range terms {
		vocab[term] = i
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	out := make([][]float32, len(texts))
	for i, tokens := range docs {
		out[i] = vectorize(tokens, vocab, idf)
	}
	return out, nil
}

func vectorize(tokens []string, vocab map[string]int, idf []float64) []float32 {
	weights := make([]float64, len(idf))
	if len(tokens) == 0 {
		return make([]float32, len(idf))
	}
	for _, tok := range tokens {
		weights[vocab[tok]]++
	}

	var norm float64
	for i, count := range weights {
		weights[i] = count / float64(len(tokens)) * idf[i]
		norm += weights[i] * weights[i]
	}
	norm = math.Sqrt(norm)

	vec := make([]float32, len(weights))
	for i, w := range weights {
		if norm > 0 {
			vec[i] = float32(w / norm)
		}
	}
	return vec
}

func (e *Embedder) tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, tok := range raw {
		if _, stop := e.stopwords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at",
		"by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that",
		"these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so",
		"such", "into", "about", "between", "through", "during", "before", "after", "above", "below",
		"out", "off", "own", "same", "too", "very", "can", "will", "just", "should", "now", "i", "you",
		"we", "my", "our", "your",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
