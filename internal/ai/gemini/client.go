// Package gemini implements the ai interfaces over the Google GenAI API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/talachev/interview-pilot/internal/ai"
	"github.com/talachev/interview-pilot/internal/logger"
)

const (
	// Provider is the name used in configuration and log fields.
	Provider = "gemini"

	defaultModel          = "gemini-2.5-pro"
	defaultEmbeddingModel = "gemini-embedding-001"
)

// modelCaller is the slice of the GenAI SDK the client depends on, kept small
// so tests can stub it.
type modelCaller interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// Config holds model settings for the Gemini client.
type Config struct {
	APIKey         string
	Model          string
	EmbeddingModel string
	Temperature    float64
}

// Client talks to the Gemini API. It implements ai.Chatter, ai.Completer, and
// ai.Embedder. There is no transcription support; voice interviews require the
// openai provider.
type Client struct {
	models         modelCaller
	model          string
	embeddingModel string
	temperature    float64
	logger         *zap.Logger
}

var (
	_ ai.Chatter   = (*Client)(nil)
	_ ai.Completer = (*Client)(nil)
	_ ai.Embedder  = (*Client)(nil)
)

// New creates a Client configured for the Gemini API backend.
func New(ctx context.Context, cfg Config, log *zap.Logger) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	embeddingModel := strings.TrimSpace(cfg.EmbeddingModel)
	if embeddingModel == "" {
		embeddingModel = defaultEmbeddingModel
	}

	return &Client{
		models:         client.Models,
		model:          model,
		embeddingModel: embeddingModel,
		temperature:    cfg.Temperature,
		logger:         logger.WithCommonFields(log, Provider, model),
	}, nil
}

// Chat submits the ordered message list in one request. Leading system
// messages become the system instruction; a later system message (the
// next-question directive) is carried as a user part, since Gemini accepts
// only one instruction per request.
func (c *Client) Chat(ctx context.Context, messages []ai.Message) (string, error) {
	if len(messages) == 0 {
		return "", errors.New("message list must not be empty")
	}

	var instructions []string
	contents := make([]*genai.Content, 0, len(messages))
	leading := true

	for _, msg := range messages {
		switch msg.Role {
		case ai.RoleSystem:
			if leading {
				instructions = append(instructions, msg.Content)
				continue
			}
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		case ai.RoleHuman:
			leading = false
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		case ai.RoleAssistant:
			leading = false
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		default:
			return "", fmt.Errorf("unknown message role: %q", msg.Role)
		}
	}

	config := c.generateConfig()
	if len(instructions) > 0 {
		config.SystemInstruction = genai.NewContentFromText(strings.Join(instructions, "\n\n"), genai.RoleUser)
	}

	if len(contents) == 0 {
		// A session's very first request carries only system messages; the
		// trailing directive still has to reach the model as a user part.
		last := instructions[len(instructions)-1]
		instructions = instructions[:len(instructions)-1]
		if len(instructions) > 0 {
			config.SystemInstruction = genai.NewContentFromText(strings.Join(instructions, "\n\n"), genai.RoleUser)
		} else {
			config.SystemInstruction = nil
		}
		contents = append(contents, genai.NewContentFromText(last, genai.RoleUser))
	}

	c.logger.Debug("gemini chat request", zap.Int("contents", len(contents)))

	resp, err := c.models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return collectText(resp)
}

// Complete submits a single prompt and returns the response text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), c.generateConfig())
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return collectText(resp)
}

// Embed returns the vector for a single text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch returns one vector per input text, in input order.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, errors.New("texts must not be empty")
	}

	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	resp, err := c.models.EmbedContent(ctx, c.embeddingModel, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}

	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("gemini returned %d embeddings for %d inputs", len(resp.Embeddings), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for i, embedding := range resp.Embeddings {
		if embedding == nil {
			return nil, fmt.Errorf("gemini returned empty embedding at index %d", i)
		}
		vectors[i] = embedding.Values
	}

	return vectors, nil
}

// Model returns the configured generation model name.
func (c *Client) Model() string {
	return c.model
}

func (c *Client) generateConfig() *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{}
	if c.temperature > 0 {
		config.Temperature = genai.Ptr(float32(c.temperature))
	}
	return config
}

func collectText(resp *genai.GenerateContentResponse) (string, error) {
	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}
