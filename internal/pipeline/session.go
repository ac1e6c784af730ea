package pipeline

import (
	"context"
	"sync"
)

// Session holds the state and last result for one shell. A submission
// resets it to Idle and drops the previous result before running.
type Session struct {
	pipeline *Pipeline

	runMu sync.Mutex // one run at a time

	mu     sync.RWMutex
	state  State
	result *Result
	err    error
}

// NewSession creates an idle session
func NewSession(p *Pipeline) *Session {
	return &Session{pipeline: p}
}

// Submit runs req, replacing whatever the previous run left behind
func (s *Session) Submit(ctx context.Context, req Request) (*Result, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	s.mu.Lock()
	s.result = nil
	s.err = nil
	s.mu.Unlock()
	s.setState(Idle)

	result, err := s.pipeline.run(ctx, req, s.setState)

	s.mu.Lock()
	s.result = result
	s.err = err
	s.mu.Unlock()

	return result, err
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	s.pipeline.notify(state)
}

// State returns the current state
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Result returns the last successful result, nil after a failure
func (s *Session) Result() *Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// Err returns the error of the last run
func (s *Session) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}
