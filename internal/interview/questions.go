package interview

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	_ "embed"

	"go.uber.org/zap"

	"github.com/talachev/interview-pilot/internal/ai"
	"github.com/talachev/interview-pilot/internal/logger"
)

//go:embed questions_prompt.md
var questionsTemplate string

// The retrieval queries issued against each document index.
const (
	jobFactsQuery     = "Summarize the top 5 job requirements in detail."
	companyFactsQuery = "Summarize the company's mission and core values in detail."
	resumeFactsQuery  = "Summarize the candidate's top 10 key technical skills in detail."
)

// FactRetriever answers a natural-language query from one document index.
type FactRetriever interface {
	Answer(ctx context.Context, query string) (string, error)
}

// Generator synthesizes an interview question set from the three document
// indices.
type Generator struct {
	llm       ai.Completer
	logger    *zap.Logger
	maxLogLen int
}

// NewGenerator creates a question Generator.
func NewGenerator(llm ai.Completer, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}

	return &Generator{
		llm:       llm,
		logger:    log,
		maxLogLen: 200,
	}
}

// Generate retrieves facts from each index, asks the model for n questions in
// one call, and returns the response's non-blank lines in order. The model is
// not forced to return exactly n lines; the caller gets whatever it produced.
func (g *Generator) Generate(ctx context.Context, job, company, resume FactRetriever, n int) ([]string, error) {
	jobFacts, err := job.Answer(ctx, jobFactsQuery)
	if err != nil {
		return nil, fmt.Errorf("retrieving job facts: %w", err)
	}

	companyFacts, err := company.Answer(ctx, companyFactsQuery)
	if err != nil {
		return nil, fmt.Errorf("retrieving company facts: %w", err)
	}

	resumeFacts, err := resume.Answer(ctx, resumeFactsQuery)
	if err != nil {
		return nil, fmt.Errorf("retrieving resume facts: %w", err)
	}

	prompt := buildQuestionsPrompt(jobFacts, companyFacts, resumeFacts, n)

	g.logger.Debug("question synthesis request",
		zap.Int("requested_questions", n),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, g.maxLogLen)),
	)

	raw, err := g.llm.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("synthesizing questions: %w", err)
	}

	questions := splitQuestions(raw)

	if len(questions) != n {
		g.logger.Debug("question count differs from requested",
			zap.Int("requested", n),
			zap.Int("generated", len(questions)),
		)
	}

	return questions, nil
}

func buildQuestionsPrompt(jobFacts, companyFacts, resumeFacts string, n int) string {
	prompt := strings.ReplaceAll(questionsTemplate, "{{JOB_FACTS}}", jobFacts)
	prompt = strings.ReplaceAll(prompt, "{{COMPANY_FACTS}}", companyFacts)
	prompt = strings.ReplaceAll(prompt, "{{RESUME_FACTS}}", resumeFacts)
	prompt = strings.ReplaceAll(prompt, "{{N_QUESTIONS}}", strconv.Itoa(n))
	return prompt
}

func splitQuestions(raw string) []string {
	lines := strings.Split(raw, "\n")
	questions := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			questions = append(questions, trimmed)
		}
	}
	return questions
}
