package models

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// ErrNoAPIKey is returned when neither provider has a key configured
var ErrNoAPIKey = errors.New("no API key found. Set GEMINI_API_KEY or OPENAI_API_KEY, or configure them in .voxlate.yaml")

// Lister handles listing available models
type Lister struct {
	geminiKey string
	openAIKey string
	out       io.Writer
}

// NewLister creates a new model lister. Either key may be empty.
func NewLister(geminiKey, openAIKey string) *Lister {
	return &Lister{
		geminiKey: geminiKey,
		openAIKey: openAIKey,
		out:       os.Stdout,
	}
}

// SetOutput redirects the listing
func (l *Lister) SetOutput(w io.Writer) {
	l.out = w
}

// ListAvailableModels prints the models of every provider that has a key
func (l *Lister) ListAvailableModels(ctx context.Context) error {
	if l.geminiKey == "" && l.openAIKey == "" {
		return ErrNoAPIKey
	}

	if l.geminiKey != "" {
		if err := l.listGemini(ctx); err != nil {
			return err
		}
	}

	if l.openAIKey != "" {
		if l.geminiKey != "" {
			fmt.Fprintln(l.out)
		}
		if err := l.listOpenAI(ctx); err != nil {
			return err
		}
	}

	return nil
}

func (l *Lister) listGemini(ctx context.Context) error {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  l.geminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}

	var generate, other []string
	for model, err := range client.Models.All(ctx) {
		if err != nil {
			return fmt.Errorf("failed to list Gemini models: %w", err)
		}
		name := strings.TrimPrefix(model.Name, "models/")
		if supportsGenerate(model.SupportedActions) {
			generate = append(generate, name)
		} else {
			other = append(other, name)
		}
	}

	sort.Strings(generate)
	sort.Strings(other)

	fmt.Fprintln(l.out, "Available Gemini Models:")
	l.printSection("Translation models (generateContent)", generate)
	l.printSection("Other models", other)

	return nil
}

func (l *Lister) listOpenAI(ctx context.Context) error {
	client := openai.NewClient(l.openAIKey)

	models, err := client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list OpenAI models: %w", err)
	}

	ids := make([]string, 0, len(models.Models))
	for _, model := range models.Models {
		ids = append(ids, model.ID)
	}
	tts, chat := categorizeOpenAI(ids)

	fmt.Fprintln(l.out, "Available OpenAI Models:")
	l.printSection("Text-to-Speech (TTS) models", tts)
	l.printSection("Chat/Translation models", chat)

	return nil
}

func (l *Lister) printSection(title string, names []string) {
	fmt.Fprintf(l.out, "\n%s:\n", title)
	if len(names) == 0 {
		fmt.Fprintln(l.out, "  None found")
		return
	}
	for _, name := range names {
		fmt.Fprintf(l.out, "  %s\n", name)
	}
}

func supportsGenerate(actions []string) bool {
	for _, a := range actions {
		if a == "generateContent" {
			return true
		}
	}
	return false
}

// categorizeOpenAI splits model IDs into sorted speech and chat lists,
// dropping everything else (embeddings, images, moderation)
func categorizeOpenAI(ids []string) (tts, chat []string) {
	for _, id := range ids {
		switch {
		case strings.Contains(id, "tts"):
			tts = append(tts, id)
		case strings.Contains(id, "audio"), strings.Contains(id, "realtime"):
			// audio-in chat models can't be used for translation
		case strings.HasPrefix(id, "gpt-") || isReasoningModel(id):
			chat = append(chat, id)
		}
	}

	sort.Strings(tts)
	sort.Strings(chat)
	return tts, chat
}

// isReasoningModel matches the o1/o3/o4 families
func isReasoningModel(id string) bool {
	return len(id) > 1 && id[0] == 'o' && id[1] >= '0' && id[1] <= '9'
}
