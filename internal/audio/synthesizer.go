package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"codeberg.org/snonux/voxlate/internal/languages"
)

// OutputFileName is the single audio output slot, overwritten on every run
const OutputFileName = "translated_audio.mp3"

// ErrSynthesisFailed is matched by every synthesis error
var ErrSynthesisFailed = errors.New("speech synthesis failed")

// Artifact is the synthesized speech of one run
type Artifact struct {
	Data     []byte
	LangCode string
	Path     string
	Format   string
}

// Synthesizer turns the final translation into an audio file
type Synthesizer struct {
	provider  Provider
	outputDir string
	cache     *Cache
	out       io.Writer
}

// NewSynthesizer creates a synthesizer writing into config.OutputDir
func NewSynthesizer(provider Provider, config *Config) (*Synthesizer, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}

	s := &Synthesizer{
		provider:  provider,
		outputDir: config.OutputDir,
		out:       io.Discard,
	}

	if config.EnableCache {
		cache, err := NewCache(config.CacheDir)
		if err != nil {
			return nil, err
		}
		s.cache = cache
	}

	return s, nil
}

// SetProgress sets where progress lines are written
func (s *Synthesizer) SetProgress(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	s.out = w
}

// OutputPath returns where the artifact is written
func (s *Synthesizer) OutputPath() string {
	return filepath.Join(s.outputDir, OutputFileName)
}

// Synthesize converts text to speech in one provider call and writes it to
// the output slot, replacing the previous run's audio
func (s *Synthesizer) Synthesize(ctx context.Context, text, langCode string) (*Artifact, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("%w: no speech provider configured", ErrSynthesisFailed)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty text", ErrSynthesisFailed)
	}
	if _, ok := languages.ByCode(langCode); !ok {
		return nil, fmt.Errorf("%w: unsupported language code %q", ErrSynthesisFailed, langCode)
	}

	name := s.provider.Name()
	data, cached := s.lookupCache(name, langCode, text)
	if cached {
		fmt.Fprintf(s.out, "  Using cached audio (%s, %s)\n", name, langCode)
	} else {
		fmt.Fprintf(s.out, "  Synthesizing %d chars with %s (%s)\n", utf8.RuneCountInString(text), name, langCode)

		var err error
		data, err = s.provider.Synthesize(ctx, text, langCode)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSynthesisFailed, err)
		}
		if len(data) == 0 {
			return nil, fmt.Errorf("%w: no audio data received from %s", ErrSynthesisFailed, name)
		}

		if s.cache != nil {
			if err := s.cache.Put(name, langCode, text, data); err != nil {
				fmt.Fprintf(s.out, "  Warning: failed to cache audio: %v\n", err)
			}
		}
	}

	path := s.OutputPath()
	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: failed to create output directory: %w", ErrSynthesisFailed, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("%w: failed to write audio file: %w", ErrSynthesisFailed, err)
	}

	return &Artifact{
		Data:     data,
		LangCode: langCode,
		Path:     path,
		Format:   "mp3",
	}, nil
}

func (s *Synthesizer) lookupCache(provider, langCode, text string) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(provider, langCode, text)
}
