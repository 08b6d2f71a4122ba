package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed locales/*.json
var localesFS embed.FS

// SupportedLanguages lists the languages with a locale file.
var SupportedLanguages = []string{"ja", "en"}

// Localizer handles translation for different languages.
type Localizer struct {
	translations map[string]map[string]string
	fallback     string
	mu           sync.RWMutex
}

// NewLocalizer creates a new Localizer instance and loads all translations.
// Keys missing in a language are looked up in fallback.
func NewLocalizer(fallback string) (*Localizer, error) {
	locale := &Localizer{
		translations: make(map[string]map[string]string),
		fallback:     fallback,
	}

	for _, lang := range SupportedLanguages {
		if err := locale.loadLanguage(lang); err != nil {
			return nil, fmt.Errorf("failed to load language %s: %w", lang, err)
		}
	}
	if _, ok := locale.translations[fallback]; !ok {
		return nil, fmt.Errorf("unsupported fallback language %q", fallback)
	}

	return locale, nil
}

// loadLanguage loads translations for a specific language from embedded JSON files.
func (l *Localizer) loadLanguage(lang string) error {
	filename := fmt.Sprintf("locales/%s.json", lang)
	data, err := localesFS.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read locale file %s: %w", filename, err)
	}

	var translations map[string]string
	if err = json.Unmarshal(data, &translations); err != nil {
		return fmt.Errorf("failed to unmarshal locale file %s: %w", filename, err)
	}

	l.mu.Lock()
	l.translations[lang] = translations
	l.mu.Unlock()

	return nil
}

// Fallback returns the language used when nothing better is known.
func (l *Localizer) Fallback() string {
	return l.fallback
}

// Get returns the translation for the given key in the specified language.
// If the translation is not found, it returns the key itself.
func (l *Localizer) Get(lang, key string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if langTranslations, ok := l.translations[lang]; ok {
		if translation, exists := langTranslations[key]; exists {
			return translation
		}
	}

	if lang != l.fallback {
		if translation, exists := l.translations[l.fallback][key]; exists {
			return translation
		}
	}

	return key
}

// GetWithData returns the translation for the given key with placeholder replacement.
// Example: GetWithData("en", "msg.confirm_delete", map[string]any{"nickname": "Aki"}).
func (l *Localizer) GetWithData(lang, key string, data map[string]any) string {
	translation := l.Get(lang, key)

	for k, v := range data {
		translation = strings.ReplaceAll(translation, "{"+k+"}", fmt.Sprintf("%v", v))
	}

	return translation
}

// Negotiate picks the first supported language of an Accept-Language header
// such as "en-US,en;q=0.9,ja;q=0.8". Quality values are not weighed; browsers
// already list languages in preference order.
func (l *Localizer) Negotiate(acceptLanguage string) string {
	for _, part := range strings.Split(acceptLanguage, ",") {
		if lang := NormalizeLanguageCode(part); lang != "" {
			return lang
		}
	}

	return l.fallback
}

// NormalizeLanguageCode maps a single language tag to a supported language,
// or returns an empty string when the tag is not supported.
func NormalizeLanguageCode(tag string) string {
	tag, _, _ = strings.Cut(strings.TrimSpace(tag), ";")

	const langCodeShortLength = 2
	if len(tag) < langCodeShortLength {
		return ""
	}

	switch strings.ToLower(tag[:langCodeShortLength]) {
	case "ja":
		return "ja"
	case "en":
		return "en"
	default:
		return ""
	}
}
