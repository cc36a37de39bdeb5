package voice

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"go.uber.org/zap"
)

const defaultSpeechRate = 210

// SpeakerConfig tunes local speech synthesis.
type SpeakerConfig struct {
	// Command is the synth binary. Defaults to say on macOS and espeak
	// elsewhere.
	Command string
	// Rate is the speaking rate in words per minute. Defaults to 210.
	Rate int
}

// Speaker renders interviewer text to audio through a local synth command.
type Speaker struct {
	command string
	rate    int
	runner  CommandRunner
	logger  *zap.Logger
}

// NewSpeaker creates a Speaker, filling config defaults.
func NewSpeaker(cfg SpeakerConfig, log *zap.Logger) *Speaker {
	if cfg.Command == "" {
		cfg.Command = defaultSynthCommand()
	}
	if cfg.Rate <= 0 {
		cfg.Rate = defaultSpeechRate
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Speaker{
		command: cfg.Command,
		rate:    cfg.Rate,
		runner:  execRunner{},
		logger:  log,
	}
}

// Speak blocks until the text has been rendered to audio.
func (s *Speaker) Speak(ctx context.Context, text string) error {
	args := make([]string, 0, 3)
	if s.rate > 0 {
		args = append(args, rateFlag(s.command), strconv.Itoa(s.rate))
	}
	args = append(args, text)

	if _, err := s.runner.Run(ctx, s.command, args...); err != nil {
		return fmt.Errorf("synthesizing speech: %w", err)
	}

	return nil
}

func defaultSynthCommand() string {
	if runtime.GOOS == "darwin" {
		return "say"
	}
	return "espeak"
}

func rateFlag(command string) string {
	if command == "say" {
		return "-r"
	}
	return "-s"
}
