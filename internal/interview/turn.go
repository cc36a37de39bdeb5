// Package interview holds the conversation state machine, question
// generation, and the interview loop.
package interview

import "github.com/talachev/interview-pilot/internal/ai"

// Turn is one role-tagged entry in the conversation memory.
type Turn struct {
	Role    ai.Role
	Content string
}

// Log is the append-only conversation memory of a single session. Turns are
// recorded in strict chronological order and never reordered or deleted; the
// log is discarded with the session.
type Log struct {
	turns []Turn
}

// NewLog creates an empty Log.
func NewLog() *Log {
	return &Log{}
}

// Append records a turn at the end of the log.
func (l *Log) Append(turn Turn) {
	l.turns = append(l.turns, turn)
}

// Snapshot returns the recorded turns in order. The returned slice is a copy;
// mutating it does not affect the log.
func (l *Log) Snapshot() []Turn {
	snapshot := make([]Turn, len(l.turns))
	copy(snapshot, l.turns)
	return snapshot
}

// Len returns the number of recorded turns.
func (l *Log) Len() int {
	return len(l.turns)
}
