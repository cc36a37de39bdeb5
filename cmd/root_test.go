package cmd

import (
	"testing"

	"github.com/spf13/viper"
)

func TestAPIKeyFileEnvBindings(t *testing.T) {
	t.Setenv("OPENAI_API_KEY_FILE", "/run/secrets/openai.key")
	t.Setenv("GEMINI_API_KEY_FILE", "/run/secrets/gemini.key")

	if got := viper.GetString("ai.openai.api-key-file"); got != "/run/secrets/openai.key" {
		t.Fatalf("expected openai key file from environment, got %q", got)
	}
	if got := viper.GetString("ai.gemini.api-key-file"); got != "/run/secrets/gemini.key" {
		t.Fatalf("expected gemini key file from environment, got %q", got)
	}
}
