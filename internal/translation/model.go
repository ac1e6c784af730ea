package translation

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// Model generates text for a prompt
type Model interface {
	Generate(ctx context.Context, prompt string, temperature float32) (string, error)
}

const (
	// DefaultGeminiModel is used when no model is configured
	DefaultGeminiModel = "gemini-2.0-flash"
	// DefaultOpenAIModel is used for the openai provider when no model is configured
	DefaultOpenAIModel = openai.GPT4oMini
	// DefaultTemperature keeps translations close to deterministic
	DefaultTemperature float32 = 0.2
)

// ModelConfig selects and configures the language model
type ModelConfig struct {
	Provider string // "gemini" or "openai"
	APIKey   string
	Model    string

	// Vertex AI backend for gemini; used instead of APIKey when Project is set
	Project  string
	Location string
}

// NewModel creates the model named by config.Provider
func NewModel(ctx context.Context, config ModelConfig) (Model, error) {
	switch strings.ToLower(config.Provider) {
	case "", "gemini":
		return NewGeminiModel(ctx, config)
	case "openai":
		return NewOpenAIModel(config)
	default:
		return nil, fmt.Errorf("unknown model provider: %s", config.Provider)
	}
}

// GeminiModel calls the Gemini API (or Vertex AI) through the genai SDK
type GeminiModel struct {
	client *genai.Client
	model  string
}

// NewGeminiModel creates a Gemini client
func NewGeminiModel(ctx context.Context, config ModelConfig) (*GeminiModel, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.Project != "" {
		location := config.Location
		if location == "" {
			location = "us-central1"
		}
		clientConfig = &genai.ClientConfig{
			Project:  config.Project,
			Location: location,
			Backend:  genai.BackendVertexAI,
		}
	} else if config.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := config.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	return &GeminiModel{client: client, model: model}, nil
}

// Name returns the model name
func (m *GeminiModel) Name() string {
	return m.model
}

// Generate sends one prompt and returns the response text
func (m *GeminiModel) Generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	resp, err := m.client.Models.GenerateContent(ctx, m.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temperature),
	})
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	return resp.Text(), nil
}

// OpenAIModel uses OpenAI chat completion
type OpenAIModel struct {
	client *openai.Client
	model  string
}

// NewOpenAIModel creates an OpenAI chat model
func NewOpenAIModel(config ModelConfig) (*OpenAIModel, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	model := config.Model
	if model == "" || strings.HasPrefix(model, "gemini") {
		model = DefaultOpenAIModel
	}

	return &OpenAIModel{
		client: openai.NewClient(config.APIKey),
		model:  model,
	}, nil
}

// Name returns the model name
func (m *OpenAIModel) Name() string {
	return m.model
}

// Generate sends one prompt and returns the response text
func (m *OpenAIModel) Generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: m.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: temperature,
	}

	resp, err := m.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no translation returned")
	}

	return resp.Choices[0].Message.Content, nil
}
