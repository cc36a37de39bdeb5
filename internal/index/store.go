// Package index provides an in-memory embedding index with cosine-similarity
// retrieval.
package index

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/talachev/interview-pilot/internal/ai"
)

// Entry is one embedded text chunk.
type Entry struct {
	Text   string
	Vector []float32
}

// Result is a retrieved chunk with its similarity score.
type Result struct {
	Text  string
	Score float64
}

// Store holds embedded chunks in memory. It is built once per document and
// read sequentially afterwards; no locking is needed.
type Store struct {
	entries []Entry
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Add appends entries to the store.
func (s *Store) Add(entries ...Entry) {
	s.entries = append(s.entries, entries...)
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Search returns the topK entries most similar to the query vector, ordered
// by descending score.
func (s *Store) Search(vector []float32, topK int) []Result {
	if topK <= 0 {
		return nil
	}

	results := make([]Result, 0, len(s.entries))
	for _, entry := range s.entries {
		results = append(results, Result{
			Text:  entry.Text,
			Score: cosineSimilarity(vector, entry.Vector),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topK {
		results = results[:topK]
	}

	return results
}

// Build embeds the non-blank texts and returns a populated Store.
func Build(ctx context.Context, embedder ai.Embedder, texts []string) (*Store, error) {
	kept := make([]string, 0, len(texts))
	for _, text := range texts {
		if strings.TrimSpace(text) != "" {
			kept = append(kept, text)
		}
	}

	if len(kept) == 0 {
		return nil, errors.New("no text to index")
	}

	vectors, err := embedder.EmbedBatch(ctx, kept)
	if err != nil {
		return nil, fmt.Errorf("embedding %d chunks: %w", len(kept), err)
	}

	store := NewStore()
	for i, text := range kept {
		store.Add(Entry{Text: text, Vector: vectors[i]})
	}

	return store, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
