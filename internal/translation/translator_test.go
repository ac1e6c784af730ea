package translation

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"codeberg.org/snonux/voxlate/internal/breaker"
	"codeberg.org/snonux/voxlate/internal/testutil"
)

func TestTranslate_CallsModelPerChunkInOrder(t *testing.T) {
	model := &testutil.MockModel{Responses: []string{"  Uno.\n", "Dos.", "Tres."}}
	translator := NewTranslator(model, DefaultTemperature)

	chunks := []string{"One.", "Two.", "Three."}
	got, err := translator.Translate(context.Background(), chunks, "Spanish")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	if model.Calls() != len(chunks) {
		t.Fatalf("Expected %d model calls, got %d", len(chunks), model.Calls())
	}
	for i, chunk := range chunks {
		if !strings.HasSuffix(model.Prompts[i], "\n\n"+chunk) {
			t.Errorf("Prompt %d does not end with its chunk: %q", i, model.Prompts[i])
		}
		if !strings.Contains(model.Prompts[i], "into Spanish") {
			t.Errorf("Prompt %d does not name the target language: %q", i, model.Prompts[i])
		}
		if model.Temperatures[i] != DefaultTemperature {
			t.Errorf("Prompt %d used temperature %v", i, model.Temperatures[i])
		}
	}

	want := "Uno.\n\nDos.\n\nTres."
	if got != want {
		t.Errorf("Translate() = %q, want %q", got, want)
	}
}

func TestTranslate_SingleChunk(t *testing.T) {
	model := &testutil.MockModel{Responses: []string{"Hola mundo."}}

	got, err := NewTranslator(model, 0.2).Translate(context.Background(), []string{"Hello world."}, "Spanish")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got != "Hola mundo." {
		t.Errorf("Expected 'Hola mundo.', got %q", got)
	}
	if model.Calls() != 1 {
		t.Errorf("Expected 1 call, got %d", model.Calls())
	}
}

func TestTranslate_FailureReportsChunk(t *testing.T) {
	cause := errors.New("quota exceeded")
	model := &testutil.MockModel{FailOn: 2, Err: cause}

	got, err := NewTranslator(model, 0.2).Translate(context.Background(), []string{"a", "b", "c"}, "French")
	if err == nil {
		t.Fatal("Expected error")
	}
	if got != "" {
		t.Errorf("Expected no partial result, got %q", got)
	}

	if !errors.Is(err, ErrTranslationFailed) {
		t.Errorf("Expected ErrTranslationFailed, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("Expected cause to be wrapped, got %v", err)
	}

	var terr *Error
	if !errors.As(err, &terr) {
		t.Fatalf("Expected *Error, got %T", err)
	}
	if terr.Index != 1 || terr.Total != 3 {
		t.Errorf("Expected chunk 1 of 3, got %d of %d", terr.Index, terr.Total)
	}
	if model.Calls() != 2 {
		t.Errorf("Expected translation to stop after the failing chunk, got %d calls", model.Calls())
	}
}

func TestTranslate_EmptyResponse(t *testing.T) {
	model := &testutil.MockModel{Responses: []string{"   "}}

	_, err := NewTranslator(model, 0.2).Translate(context.Background(), []string{"Hello"}, "German")
	if !errors.Is(err, ErrTranslationFailed) {
		t.Errorf("Expected ErrTranslationFailed for blank response, got %v", err)
	}
}

func TestTranslate_NoChunksOrModel(t *testing.T) {
	if _, err := NewTranslator(&testutil.MockModel{}, 0.2).Translate(context.Background(), nil, "German"); !errors.Is(err, ErrTranslationFailed) {
		t.Errorf("Expected ErrTranslationFailed for no chunks, got %v", err)
	}
	if _, err := NewTranslator(nil, 0.2).Translate(context.Background(), []string{"x"}, "German"); !errors.Is(err, ErrTranslationFailed) {
		t.Errorf("Expected ErrTranslationFailed for nil model, got %v", err)
	}
}

func TestTranslate_Progress(t *testing.T) {
	var out bytes.Buffer
	translator := NewTranslator(&testutil.MockModel{}, 0.2)
	translator.SetProgress(&out)

	if _, err := translator.Translate(context.Background(), []string{"a", "b"}, "Italian"); err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if !strings.Contains(out.String(), "Translating chunk 2/2") {
		t.Errorf("Expected progress output, got %q", out.String())
	}
}

func TestBreakerModel_FailsFast(t *testing.T) {
	model := &testutil.MockModel{FailOn: 1}
	guarded := NewBreakerModel(model, breaker.Config{MaxFailures: 1, OpenTimeout: time.Minute})

	if _, err := guarded.Generate(context.Background(), "p", 0.2); err == nil {
		t.Fatal("Expected first call to fail")
	}
	if _, err := guarded.Generate(context.Background(), "p", 0.2); err == nil {
		t.Fatal("Expected open breaker to fail")
	}
	if model.Calls() != 1 {
		t.Errorf("Expected open breaker to skip the model, got %d calls", model.Calls())
	}
}

func TestBreakerModel_PassesThrough(t *testing.T) {
	guarded := NewBreakerModel(&testutil.MockModel{Responses: []string{"ok"}}, breaker.DefaultConfig())

	got, err := guarded.Generate(context.Background(), "p", 0.2)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "ok" {
		t.Errorf("Expected 'ok', got %q", got)
	}
}

func TestNewModel(t *testing.T) {
	tests := []struct {
		name    string
		config  ModelConfig
		wantErr bool
	}{
		{"gemini without key", ModelConfig{Provider: "gemini"}, true},
		{"gemini with key", ModelConfig{Provider: "gemini", APIKey: "test-key"}, false},
		{"default provider is gemini", ModelConfig{APIKey: "test-key"}, false},
		{"openai without key", ModelConfig{Provider: "openai"}, true},
		{"openai with key", ModelConfig{Provider: "openai", APIKey: "test-key"}, false},
		{"unknown provider", ModelConfig{Provider: "llama", APIKey: "test-key"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, err := NewModel(context.Background(), tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewModel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && model == nil {
				t.Error("Expected a model")
			}
		})
	}
}

func TestNewOpenAIModel_IgnoresGeminiModelName(t *testing.T) {
	model, err := NewOpenAIModel(ModelConfig{APIKey: "k", Model: DefaultGeminiModel})
	if err != nil {
		t.Fatalf("NewOpenAIModel failed: %v", err)
	}
	if model.model != DefaultOpenAIModel {
		t.Errorf("Expected %s, got %s", DefaultOpenAIModel, model.model)
	}
}

func TestGeminiModel_Integration(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: GEMINI_API_KEY not set")
	}

	model, err := NewGeminiModel(context.Background(), ModelConfig{APIKey: apiKey})
	if err != nil {
		t.Fatalf("NewGeminiModel failed: %v", err)
	}

	got, err := NewTranslator(model, DefaultTemperature).Translate(context.Background(), []string{"Hello world."}, "Spanish")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got == "" {
		t.Error("Got empty translation")
	}

	t.Logf("Translation of 'Hello world.': %s", got)
}

func TestSaveTranslation(t *testing.T) {
	tmpDir := filepath.Join(t.TempDir(), "out")

	path, err := SaveTranslation(tmpDir, "Hola mundo.")
	if err != nil {
		t.Fatalf("SaveTranslation failed: %v", err)
	}

	if path != filepath.Join(tmpDir, FileName) {
		t.Errorf("Unexpected path %s", path)
	}
	testutil.AssertFileContent(t, path, []byte("Hola mundo."))

	// A second run overwrites the single output slot
	if _, err := SaveTranslation(tmpDir, "Bonjour."); err != nil {
		t.Fatalf("SaveTranslation failed: %v", err)
	}
	testutil.AssertFileContent(t, path, []byte("Bonjour."))
}
