package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/talachev/interview-pilot/internal/ai"
	"github.com/talachev/interview-pilot/internal/ai/gemini"
	"github.com/talachev/interview-pilot/internal/ai/openai"
	"github.com/talachev/interview-pilot/internal/secrets"
)

// aiClients bundles the model capabilities one provider exposes. Transcriber
// is nil when the provider has no speech-to-text support.
type aiClients struct {
	chatter     ai.Chatter
	completer   ai.Completer
	embedder    ai.Embedder
	transcriber ai.Transcriber
}

// newAIClients builds the provider selected in the config. The openai
// provider is the default and the only one with transcription.
func newAIClients(ctx context.Context, config *AIConfig, logger *zap.Logger) (*aiClients, error) {
	provider := openai.Provider
	if config != nil && config.Provider != "" {
		provider = config.Provider
	}

	switch provider {
	case openai.Provider:
		cfg := &OpenAIConfig{}
		if config != nil && config.OpenAI != nil {
			cfg = config.OpenAI
		}

		key, err := secrets.Load(secrets.Source{
			Name:  "openai api key",
			Value: cfg.APIKey,
			File:  cfg.APIKeyFile,
			Env:   "OPENAI_API_KEY",
		})
		if err != nil {
			return nil, err
		}

		client, err := openai.New(openai.Config{
			APIKey:          key,
			BaseURL:         cfg.BaseURL,
			ChatModel:       cfg.ChatModel,
			CompletionModel: cfg.CompletionModel,
			EmbeddingModel:  cfg.EmbeddingModel,
			TranscribeModel: cfg.TranscribeModel,
			Temperature:     cfg.Temperature,
			MaxRetries:      cfg.MaxRetries,
			MaxLogLength:    cfg.MaxLogLength,
		}, logger)
		if err != nil {
			return nil, err
		}

		return &aiClients{chatter: client, completer: client, embedder: client, transcriber: client}, nil

	case gemini.Provider:
		cfg := &GeminiConfig{}
		if config != nil && config.Gemini != nil {
			cfg = config.Gemini
		}

		key, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: cfg.APIKey,
			File:  cfg.APIKeyFile,
			Env:   "GEMINI_API_KEY",
		})
		if err != nil {
			return nil, err
		}

		client, err := gemini.New(ctx, gemini.Config{
			APIKey:         key,
			Model:          cfg.Model,
			EmbeddingModel: cfg.EmbeddingModel,
			Temperature:    cfg.Temperature,
		}, logger)
		if err != nil {
			return nil, err
		}

		return &aiClients{chatter: client, completer: client, embedder: client}, nil

	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", provider)
	}
}
