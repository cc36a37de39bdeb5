package gemini

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/talachev/interview-pilot/internal/ai"
)

type fakeModels struct {
	generateResp *genai.GenerateContentResponse
	generateErr  error
	embedResp    *genai.EmbedContentResponse
	embedErr     error

	lastModel    string
	lastContents []*genai.Content
	lastConfig   *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.lastModel = model
	f.lastContents = contents
	f.lastConfig = config
	return f.generateResp, f.generateErr
}

func (f *fakeModels) EmbedContent(_ context.Context, model string, contents []*genai.Content, _ *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error) {
	f.lastModel = model
	f.lastContents = contents
	return f.embedResp, f.embedErr
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func newTestClient(models modelCaller) *Client {
	return &Client{
		models:         models,
		model:          "gemini-test",
		embeddingModel: "embed-test",
		logger:         zap.NewNop(),
	}
}

func TestChatSplitsSystemInstruction(t *testing.T) {
	fake := &fakeModels{generateResp: textResponse("What draws you to this role?")}
	client := newTestClient(fake)

	output, err := client.Chat(context.Background(), []ai.Message{
		{Role: ai.RoleSystem, Content: "You are an interviewer."},
		{Role: ai.RoleHuman, Content: "I know Go."},
		{Role: ai.RoleAssistant, Content: "Great."},
		{Role: ai.RoleSystem, Content: "Ask the next question."},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output != "What draws you to this role?" {
		t.Fatalf("unexpected output: %q", output)
	}

	if fake.lastConfig == nil || fake.lastConfig.SystemInstruction == nil {
		t.Fatal("expected system instruction to be set")
	}
	if got := fake.lastConfig.SystemInstruction.Parts[0].Text; got != "You are an interviewer." {
		t.Fatalf("unexpected system instruction: %q", got)
	}

	// Human, assistant, and the trailing directive.
	if len(fake.lastContents) != 3 {
		t.Fatalf("expected 3 contents, got %d", len(fake.lastContents))
	}
	if fake.lastContents[1].Role != genai.RoleModel {
		t.Fatalf("expected assistant message mapped to model role, got %q", fake.lastContents[1].Role)
	}
	if fake.lastContents[2].Role != genai.RoleUser {
		t.Fatalf("expected trailing directive mapped to user role, got %q", fake.lastContents[2].Role)
	}
}

func TestChatSystemOnlyFirstTurn(t *testing.T) {
	fake := &fakeModels{generateResp: textResponse("Tell me about yourself.")}
	client := newTestClient(fake)

	output, err := client.Chat(context.Background(), []ai.Message{
		{Role: ai.RoleSystem, Content: "You are an interviewer."},
		{Role: ai.RoleSystem, Content: "Ask the next question."},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output != "Tell me about yourself." {
		t.Fatalf("unexpected output: %q", output)
	}

	// The directive must reach the model as a user part.
	if len(fake.lastContents) != 1 || fake.lastContents[0].Parts[0].Text != "Ask the next question." {
		t.Fatalf("unexpected contents: %+v", fake.lastContents)
	}
}

func TestChatErrorPropagates(t *testing.T) {
	fake := &fakeModels{generateErr: errors.New("quota exhausted")}
	client := newTestClient(fake)

	if _, err := client.Chat(context.Background(), []ai.Message{{Role: ai.RoleHuman, Content: "hi"}}); err == nil {
		t.Fatal("expected error")
	}
}

func TestCompleteCollectsParts(t *testing.T) {
	fake := &fakeModels{generateResp: &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{Text: "1. First question"},
				{Text: "2. Second question"},
			}},
		}},
	}}
	client := newTestClient(fake)

	output, err := client.Complete(context.Background(), "Generate questions")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output != "1. First question\n2. Second question" {
		t.Fatalf("unexpected output: %q", output)
	}
	if fake.lastModel != "gemini-test" {
		t.Fatalf("unexpected model: %q", fake.lastModel)
	}
}

func TestCompleteEmptyResponse(t *testing.T) {
	fake := &fakeModels{generateResp: &genai.GenerateContentResponse{}}
	client := newTestClient(fake)

	if _, err := client.Complete(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestEmbedBatch(t *testing.T) {
	fake := &fakeModels{embedResp: &genai.EmbedContentResponse{
		Embeddings: []*genai.ContentEmbedding{
			{Values: []float32{1, 0}},
			{Values: []float32{0, 1}},
		},
	}}
	client := newTestClient(fake)

	vectors, err := client.EmbedBatch(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vectors) != 2 || vectors[0][0] != 1 || vectors[1][1] != 1 {
		t.Fatalf("unexpected vectors: %v", vectors)
	}
	if fake.lastModel != "embed-test" {
		t.Fatalf("unexpected embedding model: %q", fake.lastModel)
	}
}

func TestEmbedBatchCountMismatch(t *testing.T) {
	fake := &fakeModels{embedResp: &genai.EmbedContentResponse{
		Embeddings: []*genai.ContentEmbedding{{Values: []float32{1}}},
	}}
	client := newTestClient(fake)

	if _, err := client.EmbedBatch(context.Background(), []string{"a", "b"}); err == nil {
		t.Fatal("expected error for embedding count mismatch")
	}
}
