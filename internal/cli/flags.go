package cli

import (
	"codeberg.org/snonux/voxlate/internal/audio"
	"codeberg.org/snonux/voxlate/internal/chunk"
	"codeberg.org/snonux/voxlate/internal/credentials"
	"codeberg.org/snonux/voxlate/internal/languages"
	"codeberg.org/snonux/voxlate/internal/translation"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile       string
	OutputDir     string
	InputFile     string
	Language      string
	MaxChars      int
	SecretsFile   string
	ListLanguages bool
	ListModels    bool
	NoAutoPlay    bool
	Archive       bool

	// Language model flags
	ModelProvider  string
	Model          string
	Temperature    float64
	VertexProject  string
	VertexLocation string

	// Speech flags
	AudioProvider string
	EnableCache   bool
	OpenAIModel   string
	OpenAIVoice   string
	OpenAISpeed   float64

	// serve subcommand
	ServeAddr string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	defaults := audio.DefaultProviderConfig()

	return &Flags{
		Language:       languages.Default().Name,
		MaxChars:       chunk.DefaultMaxChars,
		SecretsFile:    credentials.DefaultSecretsFile,
		ModelProvider:  "gemini",
		Model:          translation.DefaultGeminiModel,
		Temperature:    float64(translation.DefaultTemperature),
		VertexLocation: "us-central1",
		AudioProvider:  defaults.Provider,
		OpenAIModel:    defaults.OpenAIModel,
		OpenAIVoice:    defaults.OpenAIVoice,
		OpenAISpeed:    defaults.OpenAISpeed,
		ServeAddr:      ":8080",
	}
}
