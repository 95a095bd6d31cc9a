package conjug

import (
	"fmt"
	"strings"
)

// Language identifies one of the supported conjugation languages.
type Language string

const (
	French     Language = "fr"
	English    Language = "en"
	Spanish    Language = "es"
	Italian    Language = "it"
	Portuguese Language = "pt"
	Romanian   Language = "ro"
)

// DefaultLanguage is used when callers pass "default" or an empty code.
const DefaultLanguage = French

// languageNames maps language code → native language name.
var languageNames = map[Language]string{
	French:     "Français",
	English:    "English",
	Spanish:    "Español",
	Italian:    "Italiano",
	Portuguese: "Português",
	Romanian:   "Română",
}

// Languages returns the supported languages in a stable order.
func Languages() []Language {
	return []Language{French, English, Spanish, Italian, Portuguese, Romanian}
}

// ParseLanguage resolves a language code. "default" and "" map to French.
func ParseLanguage(code string) (Language, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || code == "default" {
		return DefaultLanguage, nil
	}
	lang := Language(code)
	if _, ok := languageNames[lang]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, code)
	}
	return lang, nil
}

// Name returns the native name of the language, e.g. "Español".
func (l Language) Name() string {
	return languageNames[l]
}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	_, ok := languageNames[l]
	return ok
}

// unrestrictedMorphology reports whether any word may be treated as a verb
// in l. English verbs are too productive for an ending filter.
func (l Language) unrestrictedMorphology() bool {
	return l == English
}

// LanguageNames returns a copy of the code → native name map.
func LanguageNames() map[string]string {
	out := make(map[string]string, len(languageNames))
	for k, v := range languageNames {
		out[string(k)] = v
	}
	return out
}
