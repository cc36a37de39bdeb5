package cmd

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "interview-pilot"

	defaultQuestions = 7
	defaultMaxRounds = 5
	defaultCacheDir  = ".interview-pilot"
)

type Config struct {
	Documents *DocumentsConfig `mapstructure:"documents"`
	CacheDir  string           `mapstructure:"cache-dir"`
	Questions int              `mapstructure:"questions"`
	MaxRounds int              `mapstructure:"max-rounds"`
	AI        *AIConfig        `mapstructure:"ai"`
	Voice     *VoiceConfig     `mapstructure:"voice"`
}

// DocumentsConfig names the three input documents. Each entry is a local path
// or an HTTP(S) URL; the resume may be a PDF.
type DocumentsConfig struct {
	JobPosting     string `mapstructure:"job-posting"`
	CompanyProfile string `mapstructure:"company-profile"`
	Resume         string `mapstructure:"resume"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	OpenAI   *OpenAIConfig `mapstructure:"openai"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type OpenAIConfig struct {
	APIKey          string  `mapstructure:"api-key"`
	APIKeyFile      string  `mapstructure:"api-key-file"`
	BaseURL         string  `mapstructure:"base-url"`
	ChatModel       string  `mapstructure:"chat-model"`
	CompletionModel string  `mapstructure:"completion-model"`
	EmbeddingModel  string  `mapstructure:"embedding-model"`
	TranscribeModel string  `mapstructure:"transcribe-model"`
	Temperature     float64 `mapstructure:"temperature"`
	MaxRetries      int     `mapstructure:"max-retries"`
	MaxLogLength    int     `mapstructure:"max-log-length"`
}

type GeminiConfig struct {
	APIKey         string  `mapstructure:"api-key"`
	APIKeyFile     string  `mapstructure:"api-key-file"`
	Model          string  `mapstructure:"model"`
	EmbeddingModel string  `mapstructure:"embedding-model"`
	Temperature    float64 `mapstructure:"temperature"`
}

type VoiceConfig struct {
	CaptureCommand string `mapstructure:"capture-command"`
	SynthCommand   string `mapstructure:"synth-command"`
	MaxSeconds     int    `mapstructure:"max-seconds"`
	Rate           int    `mapstructure:"rate"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "interview-pilot prepares interview questions from a job posting, a company profile, and a resume, then conducts the interview",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.openai.api-key-file", "OPENAI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding OPENAI_API_KEY_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is interview-pilot.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	viper.SetDefault("questions", defaultQuestions)
	viper.SetDefault("max-rounds", defaultMaxRounds)
	viper.SetDefault("cache-dir", defaultCacheDir)
}

func initConfig() {
	// Config needed only for the interview commands. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" && converseCmd.CalledAs() == "" {
		return
	}

	// API keys are commonly exported through a local .env file.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
