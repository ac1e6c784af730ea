package models

import (
	"bytes"
	"context"
	"errors"
	"os"
	"reflect"
	"strings"
	"testing"
)

func TestNewLister(t *testing.T) {
	lister := NewLister("gemini-key", "openai-key")

	if lister.geminiKey != "gemini-key" || lister.openAIKey != "openai-key" {
		t.Errorf("Unexpected keys %q %q", lister.geminiKey, lister.openAIKey)
	}
	if lister.out == nil {
		t.Error("Output writer not initialized")
	}
}

func TestListAvailableModels_NoAPIKey(t *testing.T) {
	lister := NewLister("", "")

	err := lister.ListAvailableModels(context.Background())
	if !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("Expected ErrNoAPIKey, got: %v", err)
	}
}

func TestSupportsGenerate(t *testing.T) {
	tests := []struct {
		actions []string
		want    bool
	}{
		{[]string{"generateContent", "countTokens"}, true},
		{[]string{"embedContent"}, false},
		{nil, false},
	}

	for _, tt := range tests {
		if got := supportsGenerate(tt.actions); got != tt.want {
			t.Errorf("supportsGenerate(%v) = %v, want %v", tt.actions, got, tt.want)
		}
	}
}

func TestCategorizeOpenAI(t *testing.T) {
	ids := []string{
		"text-embedding-3-small",
		"gpt-4o-mini",
		"tts-1",
		"gpt-4o-mini-tts",
		"gpt-4o-audio-preview",
		"dall-e-3",
		"omni-moderation-latest",
		"o3-mini",
		"gpt-4o",
	}

	tts, chat := categorizeOpenAI(ids)

	wantTTS := []string{"gpt-4o-mini-tts", "tts-1"}
	wantChat := []string{"gpt-4o", "gpt-4o-mini", "o3-mini"}

	if !reflect.DeepEqual(tts, wantTTS) {
		t.Errorf("tts = %v, want %v", tts, wantTTS)
	}
	if !reflect.DeepEqual(chat, wantChat) {
		t.Errorf("chat = %v, want %v", chat, wantChat)
	}
}

func TestPrintSection(t *testing.T) {
	var buf bytes.Buffer
	lister := NewLister("", "")
	lister.SetOutput(&buf)

	lister.printSection("Empty", nil)
	lister.printSection("Some", []string{"a", "b"})

	want := "\nEmpty:\n  None found\n\nSome:\n  a\n  b\n"
	if buf.String() != want {
		t.Errorf("Output = %q, want %q", buf.String(), want)
	}
}

func TestListAvailableModels_Integration(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: GEMINI_API_KEY not set")
	}

	var buf bytes.Buffer
	lister := NewLister(apiKey, "")
	lister.SetOutput(&buf)

	if err := lister.ListAvailableModels(context.Background()); err != nil {
		t.Fatalf("ListAvailableModels failed: %v", err)
	}
	if !strings.Contains(buf.String(), "gemini") {
		t.Errorf("Expected gemini models in output:\n%s", buf.String())
	}
}
