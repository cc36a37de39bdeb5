package interview

// QA pairs a question with the candidate's answer.
type QA struct {
	Question string
	Answer   string
}

// Transcript maps question text to the candidate's answer, retaining the
// order questions were first asked in. A repeated question text overwrites
// the earlier answer; the scripted flow never re-asks, but a model-driven
// session can repeat itself.
type Transcript struct {
	order   []string
	answers map[string]string
}

// NewTranscript creates an empty Transcript.
func NewTranscript() *Transcript {
	return &Transcript{answers: make(map[string]string)}
}

// Set records the answer for a question.
func (t *Transcript) Set(question, answer string) {
	if _, seen := t.answers[question]; !seen {
		t.order = append(t.order, question)
	}
	t.answers[question] = answer
}

// Answer returns the recorded answer for a question.
func (t *Transcript) Answer(question string) (string, bool) {
	answer, ok := t.answers[question]
	return answer, ok
}

// Entries returns the question/answer pairs in first-asked order.
func (t *Transcript) Entries() []QA {
	entries := make([]QA, len(t.order))
	for i, question := range t.order {
		entries[i] = QA{Question: question, Answer: t.answers[question]}
	}
	return entries
}

// Len returns the number of distinct questions recorded.
func (t *Transcript) Len() int {
	return len(t.order)
}
