package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultGoogleEndpoint is the Google Translate speech endpoint
	DefaultGoogleEndpoint = "https://translate.google.com/translate_tts"

	// googleMaxChars is the longest text the endpoint accepts per request
	googleMaxChars = 100
)

// GoogleProvider implements Provider with the keyless Google Translate TTS endpoint
type GoogleProvider struct {
	client   *http.Client
	endpoint string
}

// NewGoogleProvider creates a new Google Translate TTS provider
func NewGoogleProvider(config *Config) *GoogleProvider {
	endpoint := config.GoogleEndpoint
	if endpoint == "" {
		endpoint = DefaultGoogleEndpoint
	}

	return &GoogleProvider{
		client:   &http.Client{Timeout: config.GoogleTimeout},
		endpoint: endpoint,
	}
}

// Synthesize fetches MP3 audio for text. The endpoint only takes short
// inputs, so text is sent in word-aligned pieces and the MP3 streams are
// concatenated, which players handle as one file.
func (p *GoogleProvider) Synthesize(ctx context.Context, text, langCode string) ([]byte, error) {
	pieces := splitWords(text, googleMaxChars)
	if len(pieces) == 0 {
		return nil, fmt.Errorf("no text to synthesize")
	}

	var audio []byte
	for i, piece := range pieces {
		data, err := p.fetch(ctx, piece, langCode, i, len(pieces))
		if err != nil {
			return nil, err
		}
		audio = append(audio, data...)
	}
	return audio, nil
}

func (p *GoogleProvider) fetch(ctx context.Context, text, langCode string, idx, total int) ([]byte, error) {
	query := url.Values{}
	query.Set("ie", "UTF-8")
	query.Set("q", text)
	query.Set("tl", langCode)
	query.Set("client", "tw-ob")
	query.Set("idx", strconv.Itoa(idx))
	query.Set("total", strconv.Itoa(total))
	query.Set("textlen", strconv.Itoa(utf8.RuneCountInString(text)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create TTS request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Referer", "https://translate.google.com/")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Google TTS request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("Google TTS returned %s for language %q: %s",
			resp.Status, langCode, strings.TrimSpace(string(body)))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read TTS response: %w", err)
	}
	return data, nil
}

// Name returns the provider name
func (p *GoogleProvider) Name() string {
	return "google"
}

// IsAvailable reports whether an endpoint is configured; no key is needed
func (p *GoogleProvider) IsAvailable() error {
	if p.endpoint == "" {
		return fmt.Errorf("Google TTS endpoint not configured")
	}
	return nil
}

// splitWords cuts text into pieces of at most max runes on whitespace,
// hard-cutting only words that are longer than max
func splitWords(text string, max int) []string {
	var pieces []string
	var cur []rune

	for _, word := range strings.Fields(text) {
		w := []rune(word)
		for len(w) > max {
			if len(cur) > 0 {
				pieces = append(pieces, string(cur))
				cur = nil
			}
			pieces = append(pieces, string(w[:max]))
			w = w[max:]
		}
		if len(w) == 0 {
			continue
		}

		if len(cur) > 0 && len(cur)+1+len(w) > max {
			pieces = append(pieces, string(cur))
			cur = nil
		}
		if len(cur) > 0 {
			cur = append(cur, ' ')
		}
		cur = append(cur, w...)
	}
	if len(cur) > 0 {
		pieces = append(pieces, string(cur))
	}
	return pieces
}
