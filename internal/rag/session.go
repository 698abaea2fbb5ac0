package rag

import "sync"

// Turn is one question and the answer it got.
type Turn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Session keeps the turns of one conversation. Limit caps how many recent
// turns are kept; zero keeps everything.
type Session struct {
	mu    sync.Mutex
	turns []Turn
	limit int
}

// NewSession creates an empty session keeping at most limit turns.
func NewSession(limit int) *Session {
	return &Session{limit: limit}
}

// Add records a turn, dropping the oldest one when the session is full.
func (s *Session) Add(question, answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, Turn{Question: question, Answer: answer})
	if s.limit > 0 && len(s.turns) > s.limit {
		s.turns = s.turns[len(s.turns)-s.limit:]
	}
}

// History returns a copy of the recorded turns, oldest first.
func (s *Session) History() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Reset forgets every turn.
func (s *Session) Reset() {
	s.mu.Lock()
	s.turns = nil
	s.mu.Unlock()
}
