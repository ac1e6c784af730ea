package testutil

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// MockModel mocks the language model used by the translator
type MockModel struct {
	// Responses are returned in call order; further calls get "translation N"
	Responses []string
	// FailOn makes the Nth call (1-based) fail with Err
	FailOn int
	Err    error

	mu           sync.Mutex
	Prompts      []string
	Temperatures []float32
}

// Generate records the prompt and returns the next canned response
func (m *MockModel) Generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Prompts = append(m.Prompts, prompt)
	m.Temperatures = append(m.Temperatures, temperature)
	n := len(m.Prompts)

	if m.FailOn == n {
		if m.Err != nil {
			return "", m.Err
		}
		return "", errors.New("mock model failure")
	}

	if n <= len(m.Responses) {
		return m.Responses[n-1], nil
	}
	return fmt.Sprintf("translation %d", n), nil
}

// Calls returns the number of Generate calls so far
func (m *MockModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}

// SpeechCall records one synthesis request
type SpeechCall struct {
	Text     string
	LangCode string
}

// MockSpeechProvider mocks a text-to-speech provider
type MockSpeechProvider struct {
	Audio []byte
	Err   error
	// Unsupported language codes fail like the real service does
	Unsupported []string

	mu    sync.Mutex
	Calls []SpeechCall
}

// Synthesize records the request and returns Audio (MP3Data by default)
func (m *MockSpeechProvider) Synthesize(ctx context.Context, text, langCode string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, SpeechCall{Text: text, LangCode: langCode})

	if m.Err != nil {
		return nil, m.Err
	}
	for _, code := range m.Unsupported {
		if strings.EqualFold(code, langCode) {
			return nil, fmt.Errorf("language not supported: %s", langCode)
		}
	}
	if m.Audio != nil {
		return m.Audio, nil
	}
	return MP3Data, nil
}

// Name returns the provider name
func (m *MockSpeechProvider) Name() string {
	return "mock"
}

// IsAvailable always succeeds
func (m *MockSpeechProvider) IsAvailable() error {
	return nil
}
