package languages

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLanguage is returned when a name or code is not in the table
var ErrUnknownLanguage = errors.New("unknown target language")

// Language is a translation target and its synthesis code
type Language struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// String returns the display name
func (l Language) String() string {
	return l.Name
}

var table = []Language{
	{Name: "English", Code: "en"},
	{Name: "Spanish", Code: "es"},
	{Name: "French", Code: "fr"},
	{Name: "German", Code: "de"},
	{Name: "Portuguese", Code: "pt"},
	{Name: "Italian", Code: "it"},
	{Name: "Chinese (Simplified)", Code: "zh-CN"},
	{Name: "Japanese", Code: "ja"},
	{Name: "Korean", Code: "ko"},
	{Name: "Arabic", Code: "ar"},
	{Name: "Russian", Code: "ru"},
	{Name: "Hindi", Code: "hi"},
	{Name: "Nepali", Code: "ne"},
	{Name: "Bengali", Code: "bn"},
}

// All returns the supported languages in display order
func All() []Language {
	result := make([]Language, len(table))
	copy(result, table)
	return result
}

// Names returns the display names in display order
func Names() []string {
	names := make([]string, len(table))
	for i, l := range table {
		names[i] = l.Name
	}
	return names
}

// Default returns the preselected target language (Spanish)
func Default() Language {
	return table[1]
}

// Lookup finds a language by display name or synthesis code, ignoring case
func Lookup(nameOrCode string) (Language, error) {
	key := strings.ToLower(strings.TrimSpace(nameOrCode))
	if key == "" {
		return Language{}, fmt.Errorf("%w: empty name", ErrUnknownLanguage)
	}

	for _, l := range table {
		if strings.ToLower(l.Name) == key || strings.ToLower(l.Code) == key {
			return l, nil
		}
	}

	// Accept the bare name without the qualifier, e.g. "chinese"
	for _, l := range table {
		if base, _, ok := strings.Cut(strings.ToLower(l.Name), " ("); ok && base == key {
			return l, nil
		}
	}

	return Language{}, fmt.Errorf("%w: %s", ErrUnknownLanguage, nameOrCode)
}

// ByCode returns the language for a synthesis code, ignoring case
func ByCode(code string) (Language, bool) {
	for _, l := range table {
		if strings.EqualFold(l.Code, strings.TrimSpace(code)) {
			return l, true
		}
	}
	return Language{}, false
}
