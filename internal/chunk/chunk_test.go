package chunk

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func nonSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxChars int
		want     []string
	}{
		{
			name:     "fits unchanged",
			text:     "  Hello world.\r\n",
			maxChars: 5000,
			want:     []string{"  Hello world.\r\n"},
		},
		{
			name:     "empty input",
			text:     "",
			maxChars: 10,
			want:     []string{""},
		},
		{
			name:     "exactly max",
			text:     "abcde",
			maxChars: 5,
			want:     []string{"abcde"},
		},
		{
			name:     "paragraphs kept together",
			text:     "One.\n\nTwo.\n\nThree four five.",
			maxChars: 12,
			want:     []string{"One.\n\nTwo.", "Three four five."},
		},
		{
			name:     "oversized paragraph split into sentences",
			text:     "One two. Three four. Five six.",
			maxChars: 20,
			want:     []string{"One two. Three four.", "Five six."},
		},
		{
			name:     "sentences after a paragraph",
			text:     "Alpha.\n\nBeta gamma. Delta epsilon.",
			maxChars: 20,
			want:     []string{"Alpha.\n\nBeta gamma.", "Delta epsilon."},
		},
		{
			name:     "single oversized sentence stays whole",
			text:     "Short. This sentence is far too long to fit",
			maxChars: 10,
			want:     []string{"Short.", "This sentence is far too long to fit"},
		},
		{
			name:     "blank paragraphs dropped",
			text:     "First part.\r\n\r\n   \r\n\r\nSecond part.",
			maxChars: 15,
			want:     []string{"First part.", "Second part."},
		},
		{
			name:     "runes not bytes",
			text:     "Привет мир. Добрый день.",
			maxChars: 12,
			want:     []string{"Привет мир.", "Добрый день."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.text, tt.maxChars)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split(%q, %d) = %q, want %q", tt.text, tt.maxChars, got, tt.want)
			}
		})
	}
}

func TestSplit_DefaultMaxChars(t *testing.T) {
	text := strings.Repeat("a", DefaultMaxChars)
	if got := Split(text, 0); len(got) != 1 {
		t.Errorf("Expected 1 chunk with default size, got %d", len(got))
	}

	text += "\n\nb"
	if got := Split(text, -1); len(got) != 2 {
		t.Errorf("Expected 2 chunks past default size, got %d", len(got))
	}
}

func TestSplit_TwoLargeParagraphs(t *testing.T) {
	para := strings.Repeat("word ", 899) + "end."
	if n := utf8.RuneCountInString(para); n != 4499 {
		t.Fatalf("Test paragraph has %d chars, want 4499", n)
	}
	text := para + "\n\n" + para

	chunks := Split(text, 4500)
	if len(chunks) != 2 {
		t.Fatalf("Expected 2 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c != para {
			t.Errorf("Chunk %d is not the original paragraph", i)
		}
	}
}

func TestSplit_Properties(t *testing.T) {
	sentence := func(i int) string {
		return strings.Repeat("lorem ipsum ", i%7+1) + "dolor."
	}

	var paras []string
	for p := 0; p < 12; p++ {
		var sentences []string
		for s := 0; s < p*3+1; s++ {
			sentences = append(sentences, sentence(p+s))
		}
		paras = append(paras, strings.Join(sentences, " "))
	}
	text := strings.Join(paras, "\n\n") + "\n\n" + strings.Repeat("x", 300)

	for _, maxChars := range []int{50, 120, 400, 1000} {
		chunks := Split(text, maxChars)

		if len(chunks) == 0 {
			t.Fatalf("max %d: no chunks", maxChars)
		}
		if got, want := nonSpace(strings.Join(chunks, "")), nonSpace(text); got != want {
			t.Errorf("max %d: non-whitespace content not preserved", maxChars)
		}
		for i, c := range chunks {
			if utf8.RuneCountInString(c) <= maxChars {
				continue
			}
			// Only an unsplittable sentence may overflow
			if strings.Contains(c, ". ") || strings.Contains(c, "\n\n") {
				t.Errorf("max %d: chunk %d has %d chars and could have been split", maxChars, i, utf8.RuneCountInString(c))
			}
		}
	}
}

func TestSplit_Restartable(t *testing.T) {
	text := "A b c. D e f.\n\nG h i. J k l."
	first := Split(text, 8)
	second := Split(text, 8)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Split is not deterministic: %q vs %q", first, second)
	}
}
