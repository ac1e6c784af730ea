package audio

import (
	"context"
	"fmt"
	"io"
	"strings"

	"codeberg.org/snonux/voxlate/internal/languages"
	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider interface for OpenAI TTS
type OpenAIProvider struct {
	client *openai.Client
	config *Config
}

// NewOpenAIProvider creates a new OpenAI TTS provider
func NewOpenAIProvider(config *Config) (Provider, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	return &OpenAIProvider{
		client: openai.NewClient(config.OpenAIKey),
		config: config,
	}, nil
}

// supportsInstructions reports whether the model accepts voice instructions
func (p *OpenAIProvider) supportsInstructions() bool {
	return p.config.OpenAIModel == "gpt-4o-mini-tts" || p.config.OpenAIModel == "gpt-4o-mini-audio-preview"
}

// instruction tells the voice model which language it is reading
func instruction(langCode string) string {
	name := langCode
	if lang, ok := languages.ByCode(langCode); ok {
		name = lang.Name
	}
	return fmt.Sprintf("You are speaking %s. Read the text naturally with native %s pronunciation.", name, name)
}

// Synthesize generates MP3 audio using OpenAI TTS
func (p *OpenAIProvider) Synthesize(ctx context.Context, text, langCode string) ([]byte, error) {
	req := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(p.config.OpenAIModel),
		Input:          text,
		Voice:          openai.SpeechVoice(p.config.OpenAIVoice),
		Speed:          p.config.OpenAISpeed,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	}
	if p.supportsInstructions() {
		req.Instructions = instruction(langCode)
	}

	response, err := p.client.CreateSpeech(ctx, req)
	if err != nil {
		if strings.Contains(err.Error(), "does not have access to model") && p.supportsInstructions() {
			return nil, fmt.Errorf("OpenAI TTS API error: %w\nNote: The %s model requires access. Try using --openai-model tts-1-hd instead", err, p.config.OpenAIModel)
		}
		return nil, fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer response.Close()

	data, err := io.ReadAll(response)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no audio data received from OpenAI")
	}

	return data, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// IsAvailable checks if the OpenAI API is accessible
func (p *OpenAIProvider) IsAvailable() error {
	if p.config.OpenAIKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}

	// A test call would use credits, so only the key is checked
	return nil
}
