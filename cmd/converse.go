package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talachev/interview-pilot/internal/interview"
	"github.com/talachev/interview-pilot/internal/logger"
	"github.com/talachev/interview-pilot/internal/voice"
)

var converseCmd = &cobra.Command{
	Use:   "converse",
	Short: "Run a free-form interview with conversational memory, spoken by default",
	Run: func(cmd *cobra.Command, _ []string) {
		converse(cmd)
	},
}

func init() {
	rootCmd.AddCommand(converseCmd)

	converseCmd.Flags().BoolP("text", "t", false, "use keyboard and stdout instead of microphone and speaker")
	converseCmd.Flags().Int("max-rounds", defaultMaxRounds, "maximum number of answer rounds")

	viper.BindPFlag("max-rounds", converseCmd.Flags().Lookup("max-rounds"))
}

// converse runs the model-driven interview loop: every question after the
// first is a follow-up grounded in the conversation so far.
func converse(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the "+app, zap.String("version", version))

	if config == nil {
		logger.Fatal("config is required")
	}

	documents, err := prepareDocuments(ctx, config, logger)
	if err != nil {
		logger.Fatal("preparing documents", zap.Error(err))
	}

	clients, err := newAIClients(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("creating ai clients", zap.Error(err))
	}

	session := interview.NewSession(clients.chatter, sessionContext(documents), logger)

	channel, err := newChannel(ctx, cmd, config, clients, logger)
	if err != nil {
		logger.Fatal("creating the interview channel", zap.Error(err))
	}

	driver := interview.NewDriver(session, channel, config.MaxRounds, logger)
	if err := driver.Run(ctx); err != nil {
		logger.Fatal("running the interview", zap.Error(err))
	}

	logger.Info("interview finished", zap.Int("memory_turns", len(session.History())))
}

// sessionContext renders the prepared documents into the session's system
// message inputs. The job slot carries the full normalized posting, not just
// the extracted requirement lines, so a posting without bullets or keywords
// still reaches the model.
func sessionContext(documents *preparedDocuments) interview.Context {
	return interview.Context{
		JobRequirements: documents.job,
		CompanyProfile:  documents.company,
		ResumeSummary:   documents.resume,
	}
}

func newChannel(ctx context.Context, cmd *cobra.Command, config *Config, clients *aiClients, logger *zap.Logger) (interview.Channel, error) {
	if text, _ := cmd.Flags().GetBool("text"); text {
		return interview.NewConsole(), nil
	}

	if clients.transcriber == nil {
		logger.Fatal("the configured ai provider has no transcription support",
			zap.String("hint", "use the openai provider or pass --text"),
		)
	}

	voiceCfg := &VoiceConfig{}
	if config.Voice != nil {
		voiceCfg = config.Voice
	}

	recorder := voice.NewRecorder(voice.RecorderConfig{
		Command:    voiceCfg.CaptureCommand,
		MaxSeconds: voiceCfg.MaxSeconds,
	}, logger)

	speaker := voice.NewSpeaker(voice.SpeakerConfig{
		Command: voiceCfg.SynthCommand,
		Rate:    voiceCfg.Rate,
	}, logger)

	return voice.NewChannel(ctx, recorder, speaker, clients.transcriber, logger), nil
}
