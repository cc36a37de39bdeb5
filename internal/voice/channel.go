package voice

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/talachev/interview-pilot/internal/ai"
)

// Channel is the spoken interview.Channel: questions are printed and spoken,
// answers are captured from the microphone and transcribed.
//
// Unrecognized audio and transcription service failures are recoverable: both
// are logged and surfaced as an empty answer so the interview continues.
type Channel struct {
	ctx         context.Context
	recorder    *Recorder
	speaker     *Speaker
	transcriber ai.Transcriber
	out         io.Writer
	logger      *zap.Logger
}

// NewChannel creates a voice Channel. The context bounds every capture,
// synthesis, and transcription call made through the channel.
func NewChannel(ctx context.Context, recorder *Recorder, speaker *Speaker, transcriber ai.Transcriber, log *zap.Logger) *Channel {
	if log == nil {
		log = zap.NewNop()
	}

	return &Channel{
		ctx:         ctx,
		recorder:    recorder,
		speaker:     speaker,
		transcriber: transcriber,
		out:         os.Stdout,
		logger:      log,
	}
}

// Say prints the text and speaks it. A synthesis failure is logged and
// swallowed so a broken speaker does not end the interview.
func (c *Channel) Say(text string) error {
	if _, err := fmt.Fprintf(c.out, "\nAI Interviewer: %s\n\n", text); err != nil {
		return err
	}

	if err := c.speaker.Speak(c.ctx, text); err != nil {
		c.logger.Warn("speech synthesis failed", zap.Error(err))
	}

	return nil
}

// Listen records one bounded clip and transcribes it. Capture or
// transcription failure yields an empty answer.
func (c *Channel) Listen() (string, error) {
	fmt.Fprintln(c.out, "Listening...")

	audio, err := c.recorder.Record(c.ctx)
	if err != nil {
		c.logger.Warn("audio capture failed", zap.Error(err))
		return "", nil
	}

	answer, err := c.transcriber.Transcribe(c.ctx, audio)
	if err != nil {
		c.logger.Warn("transcription failed", zap.Error(err))
		return "", nil
	}

	answer = strings.TrimSpace(answer)
	fmt.Fprintf(c.out, "Candidate: %s\n", answer)

	return answer, nil
}
