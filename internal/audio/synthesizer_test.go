package audio

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"codeberg.org/snonux/voxlate/internal/testutil"
)

func newTestSynthesizer(t *testing.T, provider Provider, cache bool) (*Synthesizer, string) {
	t.Helper()

	dir := testutil.CreateTestDirectory(t)
	config := DefaultProviderConfig()
	config.OutputDir = filepath.Join(dir, "output")
	config.EnableCache = cache
	config.CacheDir = filepath.Join(dir, "cache")

	s, err := NewSynthesizer(provider, config)
	if err != nil {
		t.Fatalf("NewSynthesizer failed: %v", err)
	}
	return s, config.OutputDir
}

func TestSynthesize_WritesOutputSlot(t *testing.T) {
	mock := &testutil.MockSpeechProvider{}
	s, outDir := newTestSynthesizer(t, mock, false)

	artifact, err := s.Synthesize(context.Background(), "Hola mundo.", "es")
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("Expected 1 provider call, got %d", len(mock.Calls))
	}
	if mock.Calls[0].LangCode != "es" || mock.Calls[0].Text != "Hola mundo." {
		t.Errorf("Unexpected provider call %+v", mock.Calls[0])
	}

	wantPath := filepath.Join(outDir, OutputFileName)
	if artifact.Path != wantPath {
		t.Errorf("Expected path %s, got %s", wantPath, artifact.Path)
	}
	if artifact.LangCode != "es" || artifact.Format != "mp3" {
		t.Errorf("Unexpected artifact %+v", artifact)
	}
	if len(artifact.Data) == 0 {
		t.Error("Expected non-empty audio data")
	}
	testutil.AssertFileContent(t, wantPath, testutil.MP3Data)
}

func TestSynthesize_OverwritesPreviousRun(t *testing.T) {
	mock := &testutil.MockSpeechProvider{Audio: []byte("first")}
	s, outDir := newTestSynthesizer(t, mock, false)

	if _, err := s.Synthesize(context.Background(), "uno", "es"); err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	mock.Audio = []byte("second")
	if _, err := s.Synthesize(context.Background(), "deux", "fr"); err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	testutil.AssertFileContent(t, filepath.Join(outDir, OutputFileName), []byte("second"))
}

func TestSynthesize_Failures(t *testing.T) {
	tests := []struct {
		name     string
		provider *testutil.MockSpeechProvider
		text     string
		langCode string
		calls    int
	}{
		{"empty text", &testutil.MockSpeechProvider{}, "   ", "es", 0},
		{"unknown language code", &testutil.MockSpeechProvider{}, "hola", "tlh", 0},
		{"provider error", &testutil.MockSpeechProvider{Err: errors.New("network down")}, "hola", "es", 1},
		{"provider rejects language", &testutil.MockSpeechProvider{Unsupported: []string{"ne"}}, "namaste", "ne", 1},
		{"empty audio", &testutil.MockSpeechProvider{Audio: []byte{}}, "hola", "es", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, outDir := newTestSynthesizer(t, tt.provider, false)

			_, err := s.Synthesize(context.Background(), tt.text, tt.langCode)
			if !errors.Is(err, ErrSynthesisFailed) {
				t.Errorf("Expected ErrSynthesisFailed, got %v", err)
			}
			if len(tt.provider.Calls) != tt.calls {
				t.Errorf("Expected %d provider calls, got %d", tt.calls, len(tt.provider.Calls))
			}
			testutil.AssertFileNotExists(t, filepath.Join(outDir, OutputFileName))
		})
	}
}

func TestSynthesize_NoProvider(t *testing.T) {
	s, _ := newTestSynthesizer(t, nil, false)

	if _, err := s.Synthesize(context.Background(), "hola", "es"); !errors.Is(err, ErrSynthesisFailed) {
		t.Errorf("Expected ErrSynthesisFailed, got %v", err)
	}
}

func TestSynthesize_Cache(t *testing.T) {
	mock := &testutil.MockSpeechProvider{}
	s, _ := newTestSynthesizer(t, mock, true)

	for i := 0; i < 2; i++ {
		if _, err := s.Synthesize(context.Background(), "Hola mundo.", "es"); err != nil {
			t.Fatalf("Synthesize %d failed: %v", i, err)
		}
	}
	if len(mock.Calls) != 1 {
		t.Errorf("Expected cached second run, got %d provider calls", len(mock.Calls))
	}

	// Another language is a different cache entry
	if _, err := s.Synthesize(context.Background(), "Hola mundo.", "pt"); err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if len(mock.Calls) != 2 {
		t.Errorf("Expected cache miss for new language, got %d provider calls", len(mock.Calls))
	}

	files, size, err := s.cache.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if files != 2 || size == 0 {
		t.Errorf("Expected 2 cached files, got %d (%d bytes)", files, size)
	}

	if err := s.cache.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if files, _, _ := s.cache.Stats(); files != 0 {
		t.Errorf("Expected empty cache after Clear, got %d files", files)
	}
}
