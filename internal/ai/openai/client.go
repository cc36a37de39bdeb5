// Package openai implements the ai interfaces over the OpenAI HTTP API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/talachev/interview-pilot/internal/ai"
	"github.com/talachev/interview-pilot/internal/logger"
	"github.com/talachev/interview-pilot/internal/utils"
)

const (
	// Provider is the name used in configuration and log fields.
	Provider = "openai"

	DefaultBaseURL         = "https://api.openai.com/v1"
	DefaultChatModel       = "gpt-4o"
	DefaultCompletionModel = "gpt-4o-mini"
	DefaultEmbeddingModel  = "text-embedding-3-small"
	DefaultTranscribeModel = "whisper-1"
	DefaultTemperature     = 0.7

	defaultMaxLogLength = 200
)

var retryBaseDelay = 2 * time.Second

// Config holds connection and model settings for the OpenAI client.
type Config struct {
	// APIKey is required.
	APIKey string

	// BaseURL can point at an OpenAI-compatible endpoint.
	BaseURL string

	ChatModel       string
	CompletionModel string
	EmbeddingModel  string
	TranscribeModel string

	Temperature float64

	// MaxRetries bounds attempts for requests rejected with a retryable
	// status. Zero means a single attempt.
	MaxRetries int

	MaxLogLength int
}

// Client talks to the OpenAI API. It implements ai.Chatter, ai.Completer,
// ai.Embedder, and ai.Transcriber.
type Client struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

var (
	_ ai.Chatter     = (*Client)(nil)
	_ ai.Completer   = (*Client)(nil)
	_ ai.Embedder    = (*Client)(nil)
	_ ai.Transcriber = (*Client)(nil)
)

// New creates a Client from the provided config.
func New(cfg Config, log *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("openai api key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = DefaultChatModel
	}
	if cfg.CompletionModel == "" {
		cfg.CompletionModel = DefaultCompletionModel
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = DefaultEmbeddingModel
	}
	if cfg.TranscribeModel == "" {
		cfg.TranscribeModel = DefaultTranscribeModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.MaxLogLength <= 0 {
		cfg.MaxLogLength = defaultMaxLogLength
	}

	return &Client{
		cfg:    cfg,
		client: &http.Client{},
		logger: logger.WithCommonFields(log, Provider, cfg.ChatModel),
	}, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Chat submits the ordered message list in one request and returns the
// response text.
func (c *Client) Chat(ctx context.Context, messages []ai.Message) (string, error) {
	if len(messages) == 0 {
		return "", errors.New("message list must not be empty")
	}

	wire := make([]chatMessage, len(messages))
	for i, msg := range messages {
		role, err := wireRole(msg.Role)
		if err != nil {
			return "", err
		}
		wire[i] = chatMessage{Role: role, Content: msg.Content}
	}

	c.logger.Debug("chat request",
		zap.Int("messages", len(wire)),
		zap.String("last_message_preview", logger.TruncateForLog(wire[len(wire)-1].Content, c.cfg.MaxLogLength)),
	)

	return c.chatCompletion(ctx, c.cfg.ChatModel, wire)
}

// Complete submits a single prompt and returns the response text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	c.logger.Debug("completion request",
		zap.String("model", c.cfg.CompletionModel),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, c.cfg.MaxLogLength)),
	)

	return c.chatCompletion(ctx, c.cfg.CompletionModel, []chatMessage{{Role: "user", Content: prompt}})
}

func (c *Client) chatCompletion(ctx context.Context, model string, messages []chatMessage) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	data, err := c.post(ctx, "/chat/completions", "application/json", func() (io.Reader, error) {
		return bytes.NewReader(body), nil
	})
	if err != nil {
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if resp.Error != nil {
		return "", fmt.Errorf("openai: %s", resp.Error.Message)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}

	output := resp.Choices[0].Message.Content
	if strings.TrimSpace(output) == "" {
		return "", errors.New("openai returned empty response")
	}

	return output, nil
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Error *apiError `json:"error,omitempty"`
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

	body, err := json.Marshal(embeddingRequest{Model: c.cfg.EmbeddingModel, Input: texts})
	if err != nil {
		return nil, fmt.Errorf("marshal embeddings request: %w", err)
	}

	data, err := c.post(ctx, "/embeddings", "application/json", func() (io.Reader, error) {
		return bytes.NewReader(body), nil
	})
	if err != nil {
		return nil, err
	}

	var resp embeddingResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode embeddings response: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("openai: %s", resp.Error.Message)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("openai returned %d embeddings for %d inputs", len(resp.Data), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for _, item := range resp.Data {
		if item.Index < 0 || item.Index >= len(vectors) {
			return nil, fmt.Errorf("openai returned embedding with index %d", item.Index)
		}
		vectors[item.Index] = item.Embedding
	}

	return vectors, nil
}

type transcribeResponse struct {
	Text  string    `json:"text"`
	Error *apiError `json:"error,omitempty"`
}

// Transcribe converts WAV audio to text via the transcription endpoint.
func (c *Client) Transcribe(ctx context.Context, wav []byte) (string, error) {
	if len(wav) == 0 {
		return "", errors.New("audio payload must not be empty")
	}

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)

	part, err := writer.CreateFormFile("file", "audio.wav")
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(wav); err != nil {
		return "", fmt.Errorf("write audio payload: %w", err)
	}
	if err := writer.WriteField("model", c.cfg.TranscribeModel); err != nil {
		return "", fmt.Errorf("write model field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("finalize form: %w", err)
	}

	body := form.Bytes()
	data, err := c.post(ctx, "/audio/transcriptions", writer.FormDataContentType(), func() (io.Reader, error) {
		return bytes.NewReader(body), nil
	})
	if err != nil {
		return "", err
	}

	var resp transcribeResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("decode transcription response: %w", err)
	}
	if resp.Error != nil {
		return "", fmt.Errorf("openai: %s", resp.Error.Message)
	}

	return strings.TrimSpace(resp.Text), nil
}

// post sends the request, retrying on retryable statuses up to MaxRetries
// attempts. The body is rebuilt per attempt.
func (c *Client) post(ctx context.Context, path, contentType string, body func() (io.Reader, error)) ([]byte, error) {
	attempts := c.cfg.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		reader, err := body()
		if err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, reader)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("send request: %w", err)
		}

		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}

		if resp.StatusCode == http.StatusOK {
			return data, nil
		}

		lastErr = fmt.Errorf("openai status %d: %s", resp.StatusCode, logger.TruncateForLog(string(data), c.cfg.MaxLogLength))
		if !retryableStatus(resp.StatusCode) || attempt == attempts {
			return nil, lastErr
		}

		delay := retryBaseDelay * time.Duration(attempt)
		c.logger.Debug("retrying openai request",
			zap.String("path", path),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(lastErr),
		)
		if err := utils.WaitFor(ctx, delay); err != nil {
			return nil, err
		}
	}

	return nil, lastErr
}

func retryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func wireRole(role ai.Role) (string, error) {
	switch role {
	case ai.RoleSystem:
		return "system", nil
	case ai.RoleHuman:
		return "user", nil
	case ai.RoleAssistant:
		return "assistant", nil
	default:
		return "", fmt.Errorf("unknown message role: %q", role)
	}
}
