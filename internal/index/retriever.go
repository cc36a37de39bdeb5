package index

import (
	"context"
	"fmt"
	"strings"

	"github.com/talachev/interview-pilot/internal/ai"
)

const defaultTopK = 4

// Retriever answers natural-language queries against a Store by stuffing the
// most similar chunks into a single completion prompt.
type Retriever struct {
	store    *Store
	embedder ai.Embedder
	llm      ai.Completer
	topK     int
}

// NewRetriever creates a Retriever over the given store.
func NewRetriever(store *Store, embedder ai.Embedder, llm ai.Completer, topK int) *Retriever {
	if topK <= 0 {
		topK = defaultTopK
	}

	return &Retriever{
		store:    store,
		embedder: embedder,
		llm:      llm,
		topK:     topK,
	}
}

// Answer embeds the query, retrieves the closest chunks, and asks the model
// to answer from them.
func (r *Retriever) Answer(ctx context.Context, query string) (string, error) {
	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return "", fmt.Errorf("embedding query: %w", err)
	}

	results := r.store.Search(vector, r.topK)

	chunks := make([]string, len(results))
	for i, result := range results {
		chunks[i] = result.Text
	}

	answer, err := r.llm.Complete(ctx, buildPrompt(query, chunks))
	if err != nil {
		return "", fmt.Errorf("answering %q: %w", query, err)
	}

	return strings.TrimSpace(answer), nil
}

func buildPrompt(query string, chunks []string) string {
	var sb strings.Builder
	sb.WriteString("Answer the question using only the provided context.\n\n")
	sb.WriteString("Context:\n")
	sb.WriteString(strings.Join(chunks, "\n\n"))
	sb.WriteString("\n\nQuestion: ")
	sb.WriteString(query)
	sb.WriteString("\n\nAnswer:")
	return sb.String()
}
