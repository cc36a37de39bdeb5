package interview

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Channel is the input/output boundary of an interview: keyboard and stdout
// for text sessions, microphone and speaker for voice sessions.
type Channel interface {
	// Say surfaces interviewer output to the candidate.
	Say(text string) error
	// Listen acquires the candidate's next answer.
	Listen() (string, error)
}

var stopPhrases = []string{"quit", "exit", "stop"}

const (
	endedByUserMessage = "Interview ended by user."
	completeMessage    = "Interview complete."
)

// IsStopPhrase reports whether the input, trimmed and lower-cased, is one of
// the termination phrases.
func IsStopPhrase(input string) bool {
	normalized := strings.ToLower(strings.TrimSpace(input))
	for _, phrase := range stopPhrases {
		if normalized == phrase {
			return true
		}
	}
	return false
}

// Driver runs the turn-by-turn interview loop over a Session.
type Driver struct {
	session   *Session
	channel   Channel
	maxRounds int
	logger    *zap.Logger
}

// NewDriver creates a Driver with the given round limit.
func NewDriver(session *Session, channel Channel, maxRounds int, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Driver{
		session:   session,
		channel:   channel,
		maxRounds: maxRounds,
		logger:    logger,
	}
}

// Run conducts the interview: the session opens with its first question, then
// up to maxRounds candidate answers are collected. A stop phrase ends the
// loop immediately without a further model call. The answer given on the
// final round is collected but not fed back into the session; the interview
// ends after it.
func (d *Driver) Run(ctx context.Context) error {
	question, err := d.session.Advance(ctx, "", true)
	if err != nil {
		return err
	}
	if err := d.channel.Say(question); err != nil {
		return err
	}

	for round := 0; round < d.maxRounds; round++ {
		answer, err := d.channel.Listen()
		if err != nil {
			return fmt.Errorf("listening for answer: %w", err)
		}

		if IsStopPhrase(answer) {
			d.logger.Info("interview ended by stop phrase", zap.Int("round", round+1))
			return d.channel.Say(endedByUserMessage)
		}

		if round < d.maxRounds-1 {
			question, err = d.session.Advance(ctx, answer, false)
			if err != nil {
				return err
			}
			if err := d.channel.Say(question); err != nil {
				return err
			}
		}
	}

	d.logger.Info("interview finished", zap.Int("rounds", d.maxRounds))
	return d.channel.Say(completeMessage)
}

// RunScripted walks a pre-generated question set in order, collecting each
// answer into the returned transcript. No model calls are made.
func RunScripted(questions []string, channel Channel) (*Transcript, error) {
	transcript := NewTranscript()

	for i, question := range questions {
		if err := channel.Say(fmt.Sprintf("(Q%d) %s", i+1, question)); err != nil {
			return transcript, err
		}

		answer, err := channel.Listen()
		if err != nil {
			return transcript, fmt.Errorf("listening for answer to question %d: %w", i+1, err)
		}

		transcript.Set(question, answer)
	}

	return transcript, nil
}
