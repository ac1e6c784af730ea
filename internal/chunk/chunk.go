// Package chunk splits long text into pieces small enough for one
// translation request, preferring paragraph and then sentence boundaries.
package chunk

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxChars is the chunk size used when none is configured
const DefaultMaxChars = 4500

type unit struct {
	text string
	// sentence reports a unit cut from an oversized paragraph; consecutive
	// sentences of one paragraph are joined with a space instead of a blank line
	sentence bool
	first    bool
}

// Split returns text as an ordered list of chunks of at most maxChars runes.
// Text that fits is returned unchanged as the only chunk. A single sentence
// longer than maxChars is never split and becomes a chunk of its own.
func Split(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	if utf8.RuneCountInString(text) <= maxChars {
		return []string{text}
	}

	var chunks []string
	var buf strings.Builder
	bufLen := 0

	flush := func() {
		if bufLen > 0 {
			chunks = append(chunks, buf.String())
			buf.Reset()
			bufLen = 0
		}
	}

	for _, u := range units(text, maxChars) {
		sep := "\n\n"
		if u.sentence && !u.first {
			sep = " "
		}
		n := utf8.RuneCountInString(u.text)

		if bufLen > 0 && bufLen+len(sep)+n > maxChars {
			flush()
		}
		if bufLen > 0 {
			buf.WriteString(sep)
			bufLen += len(sep)
		}
		buf.WriteString(u.text)
		bufLen += n
	}
	flush()

	return chunks
}

// units breaks text into paragraphs, descending to sentences only for
// paragraphs that do not fit on their own
func units(text string, maxChars int) []unit {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var out []unit
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if utf8.RuneCountInString(para) <= maxChars {
			out = append(out, unit{text: para})
			continue
		}

		pieces := strings.Split(para, ". ")
		first := true
		for i, piece := range pieces {
			if i < len(pieces)-1 {
				piece += "."
			}
			piece = strings.TrimSpace(piece)
			if piece == "" {
				continue
			}
			out = append(out, unit{text: piece, sentence: true, first: first})
			first = false
		}
	}
	return out
}
