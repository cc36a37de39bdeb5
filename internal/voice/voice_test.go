package voice

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

type mockRunner struct {
	output []byte
	err    error

	name string
	args []string
}

func (m *mockRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	m.name = name
	m.args = args
	return m.output, m.err
}

type stubTranscriber struct {
	text string
	err  error
	wav  []byte
}

func (s *stubTranscriber) Transcribe(_ context.Context, audio []byte) (string, error) {
	s.wav = audio
	return s.text, s.err
}

func TestRecorderBuildsCaptureArgs(t *testing.T) {
	runner := &mockRunner{output: []byte("RIFF-wav-bytes")}
	recorder := NewRecorder(RecorderConfig{MaxSeconds: 7}, nil)
	recorder.runner = runner

	audio, err := recorder.Record(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(audio) != "RIFF-wav-bytes" {
		t.Fatalf("unexpected audio: %q", audio)
	}

	if runner.name != "arecord" {
		t.Fatalf("expected arecord, got %q", runner.name)
	}

	joined := strings.Join(runner.args, " ")
	for _, want := range []string{"-d 7", "-t wav", "-c 1"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("capture args missing %q: %v", want, runner.args)
		}
	}
}

func TestRecorderCaptureError(t *testing.T) {
	runner := &mockRunner{err: errors.New("no capture device")}
	recorder := NewRecorder(RecorderConfig{}, nil)
	recorder.runner = runner

	if _, err := recorder.Record(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestSpeakerRateFlagPerCommand(t *testing.T) {
	cases := []struct {
		command  string
		wantFlag string
	}{
		{"say", "-r"},
		{"espeak", "-s"},
	}

	for _, tc := range cases {
		runner := &mockRunner{}
		speaker := NewSpeaker(SpeakerConfig{Command: tc.command, Rate: 150}, nil)
		speaker.runner = runner

		if err := speaker.Speak(context.Background(), "hello"); err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.command, err)
		}

		if len(runner.args) != 3 || runner.args[0] != tc.wantFlag || runner.args[1] != "150" {
			t.Fatalf("%s: unexpected args: %v", tc.command, runner.args)
		}
		if runner.args[2] != "hello" {
			t.Fatalf("%s: text must be the last argument: %v", tc.command, runner.args)
		}
	}
}

func TestSpeakerDefaultRate(t *testing.T) {
	runner := &mockRunner{}
	speaker := NewSpeaker(SpeakerConfig{Command: "espeak"}, nil)
	speaker.runner = runner

	if err := speaker.Speak(context.Background(), "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.args) != 3 || runner.args[0] != "-s" || runner.args[1] != "210" {
		t.Fatalf("expected default rate flag, got args: %v", runner.args)
	}
}

func newTestChannel(capture *mockRunner, transcriber *stubTranscriber) (*Channel, *bytes.Buffer) {
	recorder := NewRecorder(RecorderConfig{}, nil)
	recorder.runner = capture

	speaker := NewSpeaker(SpeakerConfig{Command: "espeak"}, nil)
	speaker.runner = &mockRunner{}

	channel := NewChannel(context.Background(), recorder, speaker, transcriber, nil)
	out := &bytes.Buffer{}
	channel.out = out

	return channel, out
}

func TestChannelListenTranscribes(t *testing.T) {
	transcriber := &stubTranscriber{text: "  I led the migration.  "}
	channel, out := newTestChannel(&mockRunner{output: []byte("wav")}, transcriber)

	answer, err := channel.Listen()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "I led the migration." {
		t.Fatalf("unexpected answer: %q", answer)
	}
	if string(transcriber.wav) != "wav" {
		t.Fatalf("transcriber received wrong audio: %q", transcriber.wav)
	}
	if !strings.Contains(out.String(), "Listening...") {
		t.Fatalf("missing listening notice: %q", out.String())
	}
}

func TestChannelListenMapsFailuresToEmptyAnswer(t *testing.T) {
	cases := []struct {
		name        string
		capture     *mockRunner
		transcriber *stubTranscriber
	}{
		{
			name:        "capture failure",
			capture:     &mockRunner{err: errors.New("no capture device")},
			transcriber: &stubTranscriber{},
		},
		{
			name:        "transcription failure",
			capture:     &mockRunner{output: []byte("wav")},
			transcriber: &stubTranscriber{err: errors.New("service unavailable")},
		},
	}

	for _, tc := range cases {
		channel, _ := newTestChannel(tc.capture, tc.transcriber)

		answer, err := channel.Listen()
		if err != nil {
			t.Fatalf("%s: failure must be recovered, got error: %v", tc.name, err)
		}
		if answer != "" {
			t.Fatalf("%s: expected empty answer, got %q", tc.name, answer)
		}
	}
}

func TestChannelSaySurvivesSynthFailure(t *testing.T) {
	recorder := NewRecorder(RecorderConfig{}, nil)
	speaker := NewSpeaker(SpeakerConfig{Command: "espeak"}, nil)
	speaker.runner = &mockRunner{err: errors.New("no audio output")}

	channel := NewChannel(context.Background(), recorder, speaker, &stubTranscriber{}, nil)
	out := &bytes.Buffer{}
	channel.out = out

	if err := channel.Say("Tell me about yourself."); err != nil {
		t.Fatalf("synth failure must not be fatal: %v", err)
	}
	if !strings.Contains(out.String(), "Tell me about yourself.") {
		t.Fatalf("question must still be printed: %q", out.String())
	}
}
