// Package language provides best-effort language identification for
// extracted label text, with a deterministic English fallback.
package language

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// DefaultLanguage is returned whenever detection is not possible or the
// detected language is outside the supported set.
const DefaultLanguage = "en"

// isoCodes maps detected languages to ISO 639-1 codes for the label
// languages this service supports.
var isoCodes = map[whatlanggo.Lang]string{
	whatlanggo.Hun: "hu",
	whatlanggo.Eng: "en",
	whatlanggo.Deu: "de",
	whatlanggo.Fra: "fr",
	whatlanggo.Spa: "es",
	whatlanggo.Ita: "it",
	whatlanggo.Ron: "ro",
	whatlanggo.Slk: "sk",
	whatlanggo.Ces: "cs",
	whatlanggo.Pol: "pl",
}

var languageNames = map[string]string{
	"hu": "Hungarian",
	"en": "English",
	"de": "German",
	"fr": "French",
	"es": "Spanish",
	"it": "Italian",
	"ro": "Romanian",
	"sk": "Slovak",
	"cs": "Czech",
	"pl": "Polish",
}

// Detect returns the two-letter language code of the text, or
// DefaultLanguage for short or unrecognizable input.
func Detect(text string) string {
	if len(strings.TrimSpace(text)) < 10 {
		return DefaultLanguage
	}

	info := whatlanggo.Detect(strings.Join(strings.Fields(text), " "))
	if code, ok := isoCodes[info.Lang]; ok {
		return code
	}
	return DefaultLanguage
}

// Name returns the full language name for a two-letter code, or the
// uppercased code when unknown.
func Name(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return strings.ToUpper(code)
}
