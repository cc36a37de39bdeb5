package index

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.vectors[text], nil
}

func (s *stubEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = s.vectors[text]
	}
	return out, nil
}

type stubCompleter struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestStoreSearchOrdersByScore(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.Add(
		Entry{Text: "orthogonal", Vector: []float32{0, 1}},
		Entry{Text: "aligned", Vector: []float32{1, 0}},
		Entry{Text: "close", Vector: []float32{0.9, 0.1}},
	)

	results := store.Search([]float32{1, 0}, 2)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Text != "aligned" || results[1].Text != "close" {
		t.Fatalf("unexpected ordering: %+v", results)
	}
	if results[0].Score <= results[1].Score {
		t.Fatalf("expected descending scores: %+v", results)
	}
}

func TestStoreSearchHandlesMismatchedVectors(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.Add(Entry{Text: "short", Vector: []float32{1}})

	results := store.Search([]float32{1, 0}, 1)
	if len(results) != 1 || results[0].Score != 0 {
		t.Fatalf("expected zero score for mismatched dimensions, got %+v", results)
	}
}

func TestBuildSkipsBlankChunks(t *testing.T) {
	t.Parallel()

	embedder := &stubEmbedder{vectors: map[string][]float32{
		"job chunk": {1, 0},
	}}

	store, err := Build(context.Background(), embedder, []string{"job chunk", "  ", ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", store.Len())
	}
}

func TestBuildEmptyInput(t *testing.T) {
	t.Parallel()

	if _, err := Build(context.Background(), &stubEmbedder{}, []string{"", "  "}); err == nil {
		t.Fatal("expected error for no indexable text")
	}
}

func TestRetrieverAnswer(t *testing.T) {
	t.Parallel()

	embedder := &stubEmbedder{vectors: map[string][]float32{
		"What are the requirements?": {1, 0},
	}}
	llm := &stubCompleter{response: " Go and Kubernetes. "}

	store := NewStore()
	store.Add(
		Entry{Text: "Must know Go", Vector: []float32{1, 0}},
		Entry{Text: "We ship weekly", Vector: []float32{0, 1}},
	)

	retriever := NewRetriever(store, embedder, llm, 1)

	answer, err := retriever.Answer(context.Background(), "What are the requirements?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "Go and Kubernetes." {
		t.Fatalf("unexpected answer: %q", answer)
	}

	if !strings.Contains(llm.lastPrompt, "Must know Go") {
		t.Fatalf("expected top chunk in prompt, got %q", llm.lastPrompt)
	}
	if strings.Contains(llm.lastPrompt, "We ship weekly") {
		t.Fatalf("expected low-similarity chunk excluded, got %q", llm.lastPrompt)
	}
}

func TestRetrieverAnswerEmbeddingError(t *testing.T) {
	t.Parallel()

	retriever := NewRetriever(NewStore(), &stubEmbedder{err: errors.New("boom")}, &stubCompleter{}, 1)

	if _, err := retriever.Answer(context.Background(), "query"); err == nil {
		t.Fatal("expected error")
	}
}
