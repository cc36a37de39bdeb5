// Package ai defines the language-model boundary shared by all providers.
package ai

import "context"

// Role tags a conversation message. Prompt assembly switches exhaustively on
// these values instead of guessing from message shape.
type Role string

const (
	RoleSystem    Role = "system"
	RoleHuman     Role = "human"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged entry in a chat request.
type Message struct {
	Role    Role
	Content string
}

// Chatter submits an ordered message list and returns the model's single
// response text.
type Chatter interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

// Completer submits one prompt string and returns one response text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Embedder converts text into vector representations.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Transcriber converts captured WAV audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, wav []byte) (string, error)
}
