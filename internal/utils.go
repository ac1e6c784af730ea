package internal

import (
	"strings"
	"unicode"
)

// SanitizeFilename creates a safe filename from a string
func SanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// SuggestedFileName builds a save-dialog default such as
// "translation_spanish.txt" from a base name, a language and an extension
func SuggestedFileName(base, language, ext string) string {
	lang := strings.Trim(SanitizeFilename(strings.ToLower(language)), "_")
	if lang == "" {
		return base + "." + ext
	}
	return base + "_" + lang + "." + ext
}
