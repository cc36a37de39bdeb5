package voice

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"
)

const (
	defaultCaptureCommand = "arecord"
	defaultMaxSeconds     = 10
	defaultSampleRate     = 16000
)

// RecorderConfig tunes microphone capture.
type RecorderConfig struct {
	// Command is the capture binary. Defaults to arecord.
	Command string
	// MaxSeconds bounds how long one capture waits for the candidate.
	MaxSeconds int
	SampleRate int
}

// Recorder captures one bounded WAV clip per Listen round.
type Recorder struct {
	command    string
	maxSeconds int
	sampleRate int
	runner     CommandRunner
	logger     *zap.Logger
}

// NewRecorder creates a Recorder, filling config defaults.
func NewRecorder(cfg RecorderConfig, log *zap.Logger) *Recorder {
	if cfg.Command == "" {
		cfg.Command = defaultCaptureCommand
	}
	if cfg.MaxSeconds <= 0 {
		cfg.MaxSeconds = defaultMaxSeconds
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = defaultSampleRate
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Recorder{
		command:    cfg.Command,
		maxSeconds: cfg.MaxSeconds,
		sampleRate: cfg.SampleRate,
		runner:     execRunner{},
		logger:     log,
	}
}

// Record captures up to the configured duration of mono 16-bit audio and
// returns it as WAV bytes.
func (r *Recorder) Record(ctx context.Context) ([]byte, error) {
	args := []string{
		"-q",
		"-f", "S16_LE",
		"-c", "1",
		"-r", strconv.Itoa(r.sampleRate),
		"-d", strconv.Itoa(r.maxSeconds),
		"-t", "wav",
	}

	r.logger.Debug("capturing audio",
		zap.String("command", r.command),
		zap.Int("max_seconds", r.maxSeconds),
	)

	audio, err := r.runner.Run(ctx, r.command, args...)
	if err != nil {
		return nil, fmt.Errorf("capturing audio: %w", err)
	}

	return audio, nil
}
