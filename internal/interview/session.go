package interview

import (
	"context"
	"fmt"
	"strings"

	_ "embed"

	"go.uber.org/zap"

	"github.com/talachev/interview-pilot/internal/ai"
)

//go:embed system_prompt.md
var systemTemplate string

const nextQuestionDirective = "Please provide the next interview question or a follow-up question based on the conversation so far."

// Context carries the documents interpolated once into the session's system
// message.
type Context struct {
	JobRequirements string
	CompanyProfile  string
	ResumeSummary   string
}

// Session is the conversation state machine of one interview. It owns the
// append-only memory log and assembles the full message list on every turn.
// A Session is used by a single goroutine.
type Session struct {
	chat   ai.Chatter
	system string
	log    *Log
	logger *zap.Logger
}

// NewSession creates a Session with the context rendered into its system
// message.
func NewSession(chat ai.Chatter, interviewCtx Context, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}

	system := strings.ReplaceAll(systemTemplate, "{{JOB_REQUIREMENTS}}", interviewCtx.JobRequirements)
	system = strings.ReplaceAll(system, "{{COMPANY_PROFILE}}", interviewCtx.CompanyProfile)
	system = strings.ReplaceAll(system, "{{RESUME_SUMMARY}}", interviewCtx.ResumeSummary)

	return &Session{
		chat:   chat,
		system: system,
		log:    NewLog(),
		logger: logger,
	}
}

// Advance produces the interviewer's next question or follow-up. The rendered
// request is: system context, every prior turn in order, the new human turn
// (when firstTurn is false and userInput is non-blank), and a trailing
// directive asking for the next question.
//
// Memory is mutated only after a successful model call, and only when a human
// turn was included: exactly one human turn and one assistant turn are
// appended, in that order. The first turn never touches memory, so a failed
// call always leaves the log consistent with the last successful exchange.
func (s *Session) Advance(ctx context.Context, userInput string, firstTurn bool) (string, error) {
	history := s.log.Snapshot()

	messages := make([]ai.Message, 0, len(history)+3)
	messages = append(messages, ai.Message{Role: ai.RoleSystem, Content: s.system})
	for _, turn := range history {
		messages = append(messages, ai.Message{Role: turn.Role, Content: turn.Content})
	}

	record := !firstTurn && strings.TrimSpace(userInput) != ""
	if record {
		messages = append(messages, ai.Message{Role: ai.RoleHuman, Content: userInput})
	}
	messages = append(messages, ai.Message{Role: ai.RoleSystem, Content: nextQuestionDirective})

	s.logger.Debug("advancing interview",
		zap.Bool("first_turn", firstTurn),
		zap.Int("history_turns", len(history)),
		zap.Bool("recording_input", record),
	)

	response, err := s.chat.Chat(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("generating next question: %w", err)
	}

	if record {
		s.log.Append(Turn{Role: ai.RoleHuman, Content: userInput})
		s.log.Append(Turn{Role: ai.RoleAssistant, Content: response})
	}

	return response, nil
}

// History returns a snapshot of the conversation memory.
func (s *Session) History() []Turn {
	return s.log.Snapshot()
}
