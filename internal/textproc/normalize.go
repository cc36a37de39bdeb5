// Package textproc cleans ingested documents and pulls requirement and value
// statements out of them.
package textproc

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
)

// Normalize cleans a document line by line: each non-blank line is tokenized,
// punctuation-only tokens are dropped, and the remaining tokens are re-joined
// with single spaces. Blank lines are removed; line order is preserved.
func Normalize(text string) (string, error) {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		normalized, err := normalizeLine(line)
		if err != nil {
			return "", err
		}
		if normalized != "" {
			cleaned = append(cleaned, normalized)
		}
	}

	return strings.Join(cleaned, "\n"), nil
}

func normalizeLine(line string) (string, error) {
	doc, err := prose.NewDocument(
		strings.TrimSpace(line),
		prose.WithTagging(false),
		prose.WithExtraction(false),
		prose.WithSegmentation(false),
	)
	if err != nil {
		return "", fmt.Errorf("tokenizing line: %w", err)
	}

	words := make([]string, 0, len(doc.Tokens()))
	for _, token := range doc.Tokens() {
		if isPunctuation(token.Text) {
			continue
		}
		words = append(words, token.Text)
	}

	return strings.Join(words, " "), nil
}

func isPunctuation(text string) bool {
	if text == "" {
		return true
	}
	for _, r := range text {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}
