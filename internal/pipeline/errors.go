package pipeline

import (
	"errors"

	"codeberg.org/snonux/voxlate/internal/audio"
	"codeberg.org/snonux/voxlate/internal/credentials"
	"codeberg.org/snonux/voxlate/internal/extract"
	"codeberg.org/snonux/voxlate/internal/languages"
	"codeberg.org/snonux/voxlate/internal/translation"
)

// ErrEmptyInput is returned when there is no text to translate
var ErrEmptyInput = errors.New("no input: enter some text or choose a file")

// Error kinds reported to users
const (
	KindMissingCredential   = "MissingCredential"
	KindUnsupportedFileType = "UnsupportedFileType"
	KindNoExtractableText   = "NoExtractableText"
	KindTranslationFailed   = "TranslationFailed"
	KindSynthesisFailed     = "SynthesisFailed"
	KindEmptyInput          = "EmptyInput"
	KindUnknownLanguage     = "UnknownLanguage"
	KindInternal            = "Internal"
)

var kinds = []struct {
	err  error
	kind string
}{
	{credentials.ErrMissingCredential, KindMissingCredential},
	{extract.ErrUnsupportedFileType, KindUnsupportedFileType},
	{extract.ErrNoExtractableText, KindNoExtractableText},
	{translation.ErrTranslationFailed, KindTranslationFailed},
	{audio.ErrSynthesisFailed, KindSynthesisFailed},
	{ErrEmptyInput, KindEmptyInput},
	{languages.ErrUnknownLanguage, KindUnknownLanguage},
}

// Kind returns the error kind name of err, or "" for nil
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}
