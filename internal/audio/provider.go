package audio

import (
	"context"
	"fmt"
	"time"
)

// Provider defines the interface for text-to-speech providers
type Provider interface {
	// Synthesize converts text spoken in langCode into MP3 audio bytes
	Synthesize(ctx context.Context, text, langCode string) ([]byte, error)

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Config holds common configuration for audio providers
type Config struct {
	Provider     string // Provider name: "google" or "openai"
	OutputDir    string // Directory for the audio artifact
	OutputFormat string // Output format, always "mp3"

	EnableCache bool
	CacheDir    string

	// Google Translate TTS settings
	GoogleEndpoint string
	GoogleTimeout  time.Duration

	// OpenAI-specific settings
	OpenAIKey   string
	OpenAIModel string  // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
	OpenAIVoice string  // "alloy", "ash", "ballad", "coral", "echo", "fable", "onyx", "nova", "sage", "shimmer", "verse"
	OpenAISpeed float64 // 0.25 to 4.0
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:       "google",
		OutputDir:      "./",
		OutputFormat:   "mp3",
		CacheDir:       "./.voxlate_cache",
		GoogleEndpoint: DefaultGoogleEndpoint,
		GoogleTimeout:  30 * time.Second,
		OpenAIModel:    "gpt-4o-mini-tts",
		OpenAIVoice:    "alloy",
		OpenAISpeed:    1.0,
	}
}

// NewProvider creates the appropriate audio provider based on configuration
func NewProvider(config *Config) (Provider, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}

	switch config.Provider {
	case "", "google":
		return NewGoogleProvider(config), nil

	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAIProvider(config)

	default:
		return nil, fmt.Errorf("unknown audio provider: %s", config.Provider)
	}
}
