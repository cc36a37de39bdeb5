package interview

import (
	"context"
	"testing"
)

type scriptedChannel struct {
	answers []string
	said    []string
}

func (c *scriptedChannel) Say(text string) error {
	c.said = append(c.said, text)
	return nil
}

func (c *scriptedChannel) Listen() (string, error) {
	answer := c.answers[0]
	c.answers = c.answers[1:]
	return answer, nil
}

func TestIsStopPhrase(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"quit", true},
		{"exit", true},
		{"stop", true},
		{"  QUIT  ", true},
		{"Stop", true},
		{"stop it", false},
		{"continue", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := IsStopPhrase(tc.input); got != tc.want {
			t.Errorf("IsStopPhrase(%q) = %v, expected %v", tc.input, got, tc.want)
		}
	}
}

func TestDriverRunStopsOnStopPhrase(t *testing.T) {
	chat := &stubChatter{responses: []string{"Opening question?"}}
	session := NewSession(chat, Context{}, nil)
	channel := &scriptedChannel{answers: []string{"quit"}}

	if err := NewDriver(session, channel, 5, nil).Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(chat.calls) != 1 {
		t.Fatalf("stop phrase must not trigger a model call, got %d calls", len(chat.calls))
	}
	if got := channel.said[len(channel.said)-1]; got != endedByUserMessage {
		t.Fatalf("expected termination message, got %q", got)
	}
	if got := len(session.History()); got != 0 {
		t.Fatalf("stop phrase must not be recorded, got %d turns", got)
	}
}

func TestDriverRunFinalAnswerNotFedBack(t *testing.T) {
	chat := &stubChatter{responses: []string{"Q1?", "Q2?"}}
	session := NewSession(chat, Context{}, nil)
	channel := &scriptedChannel{answers: []string{"answer one", "answer two"}}

	if err := NewDriver(session, channel, 2, nil).Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Opening turn plus one mid-round advance; the final answer is dropped.
	if len(chat.calls) != 2 {
		t.Fatalf("expected 2 model calls, got %d", len(chat.calls))
	}

	history := session.History()
	if len(history) != 2 {
		t.Fatalf("expected one recorded pair, got %d turns", len(history))
	}
	if history[0].Content != "answer one" {
		t.Fatalf("unexpected recorded answer: %q", history[0].Content)
	}

	if got := channel.said[len(channel.said)-1]; got != completeMessage {
		t.Fatalf("expected completion message, got %q", got)
	}
}

func TestRunScriptedCollectsTranscript(t *testing.T) {
	questions := []string{"Why this company?", "Biggest project?"}
	channel := &scriptedChannel{answers: []string{"mission fit", "a payments platform"}}

	transcript, err := RunScripted(questions, channel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if transcript.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", transcript.Len())
	}

	entries := transcript.Entries()
	if entries[0].Question != "Why this company?" || entries[0].Answer != "mission fit" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Question != "Biggest project?" || entries[1].Answer != "a payments platform" {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}

	if len(channel.said) != 2 {
		t.Fatalf("expected each question said once, got %d", len(channel.said))
	}
}

func TestTranscriptOverwriteKeepsFirstPosition(t *testing.T) {
	transcript := NewTranscript()
	transcript.Set("Q1?", "first")
	transcript.Set("Q2?", "second")
	transcript.Set("Q1?", "revised")

	if transcript.Len() != 2 {
		t.Fatalf("expected 2 distinct questions, got %d", transcript.Len())
	}

	entries := transcript.Entries()
	if entries[0].Question != "Q1?" || entries[0].Answer != "revised" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}

	if answer, ok := transcript.Answer("Q2?"); !ok || answer != "second" {
		t.Fatalf("unexpected answer for Q2: %q, %v", answer, ok)
	}
}
