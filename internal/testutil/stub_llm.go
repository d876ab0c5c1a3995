// Package testutil provides shared test doubles.
package testutil

import (
	"context"
	"sync"
)

// StubCall records one prompt pair received by the stub client.
type StubCall struct {
	SystemPrompt string
	UserPrompt   string
}

// StubClient is an llm.Client double returning canned completions in order.
// It records every call so tests can assert on sequencing and prompt
// content, and can be told to fail on a specific call.
type StubClient struct {
	mu        sync.Mutex
	Responses []string
	// FailOn makes the n-th call (1-based) return FailErr.
	FailOn  int
	FailErr error

	calls []StubCall
}

// Generate implements llm.Client.
func (s *StubClient) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, StubCall{SystemPrompt: systemPrompt, UserPrompt: userPrompt})
	n := len(s.calls)

	if s.FailOn > 0 && n == s.FailOn {
		return "", s.FailErr
	}

	if n <= len(s.Responses) {
		return s.Responses[n-1], nil
	}
	return "", nil
}

// Calls returns a copy of the recorded calls.
func (s *StubClient) Calls() []StubCall {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]StubCall, len(s.calls))
	copy(out, s.calls)
	return out
}

// CallCount returns how many times Generate was invoked.
func (s *StubClient) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}
