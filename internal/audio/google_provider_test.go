package audio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"
)

func TestGoogleProvider_Synthesize(t *testing.T) {
	var mu sync.Mutex
	var queries []map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		mu.Lock()
		queries = append(queries, map[string]string{
			"q":      q.Get("q"),
			"tl":     q.Get("tl"),
			"client": q.Get("client"),
			"idx":    q.Get("idx"),
			"total":  q.Get("total"),
		})
		mu.Unlock()

		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("mp3:" + q.Get("idx") + ";"))
	}))
	defer server.Close()

	provider := NewGoogleProvider(&Config{GoogleEndpoint: server.URL, GoogleTimeout: 5 * time.Second})

	data, err := provider.Synthesize(context.Background(), "Hola mundo.", "es")
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if string(data) != "mp3:0;" {
		t.Errorf("Unexpected audio data %q", data)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(queries) != 1 {
		t.Fatalf("Expected 1 request, got %d", len(queries))
	}
	want := map[string]string{"q": "Hola mundo.", "tl": "es", "client": "tw-ob", "idx": "0", "total": "1"}
	if !reflect.DeepEqual(queries[0], want) {
		t.Errorf("Query = %v, want %v", queries[0], want)
	}
}

func TestGoogleProvider_LongTextConcatenated(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if n := utf8.RuneCountInString(r.URL.Query().Get("q")); n > googleMaxChars {
			http.Error(w, "too long", http.StatusBadRequest)
			return
		}
		w.Write([]byte("x"))
	}))
	defer server.Close()

	provider := NewGoogleProvider(&Config{GoogleEndpoint: server.URL})
	text := strings.Repeat("palabra ", 60)

	data, err := provider.Synthesize(context.Background(), text, "es")
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	n := int(requests.Load())
	if len(data) != n || n < 2 {
		t.Errorf("Expected one audio part per request, got %d bytes for %d requests", len(data), n)
	}
}

func TestGoogleProvider_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad language", http.StatusBadRequest)
	}))
	defer server.Close()

	provider := NewGoogleProvider(&Config{GoogleEndpoint: server.URL})

	_, err := provider.Synthesize(context.Background(), "hello", "xx")
	if err == nil {
		t.Fatal("Expected error for HTTP 400")
	}
	if !strings.Contains(err.Error(), "400") {
		t.Errorf("Expected status in error, got %v", err)
	}
}

func TestGoogleProvider_EmptyText(t *testing.T) {
	provider := NewGoogleProvider(&Config{GoogleEndpoint: "http://127.0.0.1:0"})

	if _, err := provider.Synthesize(context.Background(), "  \n ", "es"); err == nil {
		t.Error("Expected error for empty text")
	}
}

func TestGoogleProvider_IsAvailable(t *testing.T) {
	provider := NewGoogleProvider(&Config{})
	if err := provider.IsAvailable(); err != nil {
		t.Errorf("IsAvailable() = %v", err)
	}
	if provider.Name() != "google" {
		t.Errorf("Name() = %q, want google", provider.Name())
	}
}

func TestSplitWords(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want []string
	}{
		{"empty", "   ", 10, nil},
		{"fits", "one two", 10, []string{"one two"}},
		{"word boundaries", "one two three four", 9, []string{"one two", "three", "four"}},
		{"long word cut", "abcdefghij kl", 4, []string{"abcd", "efgh", "ij", "kl"}},
		{"runes", "день день", 4, []string{"день", "день"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitWords(tt.text, tt.max)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitWords(%q, %d) = %q, want %q", tt.text, tt.max, got, tt.want)
			}
		})
	}
}
