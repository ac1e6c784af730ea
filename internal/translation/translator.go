package translation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// FileName is the name of the saved translation in the output directory
const FileName = "translation.txt"

// ErrTranslationFailed is matched by every translation error
var ErrTranslationFailed = errors.New("translation failed")

// Error reports the chunk that failed
type Error struct {
	Index int // zero-based chunk index
	Total int
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("translation failed on chunk %d of %d: %v", e.Index+1, e.Total, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrTranslationFailed) true for every *Error
func (e *Error) Is(target error) bool {
	return target == ErrTranslationFailed
}

// Prompt builds the instruction sent for one chunk
func Prompt(targetLanguage, chunk string) string {
	return fmt.Sprintf("Translate the following English text into %s.\n"+
		"Return only the translation, with no extra commentary or quotation marks.\n\n%s",
		targetLanguage, chunk)
}

// Translator translates chunks with a Model
type Translator struct {
	model       Model
	temperature float32
	out         io.Writer
}

// NewTranslator creates a new translator instance
func NewTranslator(model Model, temperature float32) *Translator {
	return &Translator{
		model:       model,
		temperature: temperature,
		out:         io.Discard,
	}
}

// SetProgress sets where progress lines are written
func (t *Translator) SetProgress(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	t.out = w
}

// Translate translates every chunk in order and joins the results with a
// blank line. The first failing chunk aborts the whole translation.
func (t *Translator) Translate(ctx context.Context, chunks []string, targetLanguage string) (string, error) {
	if t.model == nil {
		return "", fmt.Errorf("%w: no language model configured", ErrTranslationFailed)
	}
	if len(chunks) == 0 {
		return "", fmt.Errorf("%w: nothing to translate", ErrTranslationFailed)
	}

	outputs := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		fmt.Fprintf(t.out, "  Translating chunk %d/%d (%d chars) into %s\n",
			i+1, len(chunks), utf8.RuneCountInString(chunk), targetLanguage)

		resp, err := t.model.Generate(ctx, Prompt(targetLanguage, chunk), t.temperature)
		if err != nil {
			return "", &Error{Index: i, Total: len(chunks), Err: err}
		}

		resp = strings.TrimSpace(resp)
		if resp == "" {
			return "", &Error{Index: i, Total: len(chunks), Err: errors.New("empty response from language model")}
		}
		outputs = append(outputs, resp)
	}

	return strings.TrimSpace(strings.Join(outputs, "\n\n")), nil
}

// SaveTranslation saves the translated text to translation.txt in dir
func SaveTranslation(dir, text string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	outputFile := filepath.Join(dir, FileName)
	if err := os.WriteFile(outputFile, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("failed to write translation file: %w", err)
	}

	return outputFile, nil
}
