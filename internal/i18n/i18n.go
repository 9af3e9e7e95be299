// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n provides internationalization support for the UI.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/language"
)

//go:embed locales
var localesFS embed.FS

// DateTimeKey is the message holding a language's Go time layout for event times.
const DateTimeKey = "format.datetime"

// fallbackLayout is used when no catalog is loaded.
const fallbackLayout = "2006-01-02 15:04"

// Message represents a single translatable message.
type Message struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	Translation string `json:"translation"`
}

// MessageFile represents the structure of a messages JSON file.
type MessageFile struct {
	Language string    `json:"language"`
	Messages []Message `json:"messages"`
}

// Catalog holds all translations for all supported languages.
type Catalog struct {
	mu           sync.RWMutex
	translations map[string]map[string]string // lang -> key -> translation
	matcher      language.Matcher
	supported    []language.Tag
	defaultLang  string
	logger       *slog.Logger
}

// catalog is the global catalog instance.
var catalog *Catalog

// SupportedLanguages lists the UI languages we support.
var SupportedLanguages = []string{"en", "nl"}

// Init loads the embedded catalogs. defaultLang must be a supported language.
func Init(logger *slog.Logger, defaultLang string) error {
	if defaultLang == "" {
		defaultLang = SupportedLanguages[0]
	}
	if !IsSupported(defaultLang) {
		return fmt.Errorf("default language %q is not supported (supported: %s)",
			defaultLang, strings.Join(SupportedLanguages, ", "))
	}

	// put the default first so the matcher falls back to it
	ordered := []string{strings.ToLower(defaultLang)}
	for _, lang := range SupportedLanguages {
		if lang != ordered[0] {
			ordered = append(ordered, lang)
		}
	}

	c := &Catalog{
		translations: make(map[string]map[string]string),
		defaultLang:  ordered[0],
		logger:       logger,
	}
	for _, lang := range ordered {
		c.supported = append(c.supported, language.MustParse(lang))
	}
	c.matcher = language.NewMatcher(c.supported)

	for _, lang := range ordered {
		if err := c.loadLanguage(lang); err != nil {
			return fmt.Errorf("failed to load language %s: %w", lang, err)
		}
	}
	catalog = c

	if logger != nil {
		logger.Info("i18n initialized", "languages", SupportedLanguages, "default", c.defaultLang)
	}
	return nil
}

// loadLanguage loads translations for a specific language.
func (c *Catalog) loadLanguage(lang string) error {
	path := fmt.Sprintf("locales/%s/messages.json", lang)
	data, err := localesFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var msgFile MessageFile
	if err := json.Unmarshal(data, &msgFile); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.translations[lang] = make(map[string]string, len(msgFile.Messages))
	for _, msg := range msgFile.Messages {
		c.translations[lang][msg.ID] = msg.Translation
	}

	if c.logger != nil {
		c.logger.Debug("loaded translations", "language", lang, "count", len(msgFile.Messages))
	}
	return nil
}

// T translates a message key to the specified language.
// Unknown languages and missing keys fall back to the default language,
// then to the key itself. Optional args are applied with fmt.Sprintf.
func T(lang, key string, args ...any) string {
	if catalog == nil {
		return key
	}

	catalog.mu.RLock()
	defer catalog.mu.RUnlock()

	translation, ok := catalog.translations[lang][key]
	if !ok {
		translation, ok = catalog.translations[catalog.defaultLang][key]
		if !ok {
			return key
		}
		if lang != catalog.defaultLang && catalog.logger != nil {
			catalog.logger.Debug("missing translation, using default", "key", key, "lang", lang)
		}
	}

	if len(args) > 0 {
		return fmt.Sprintf(translation, args...)
	}
	return translation
}

// FormatDateTime renders t with the language's datetime layout.
func FormatDateTime(lang string, t time.Time) string {
	layout := T(lang, DateTimeKey)
	if layout == DateTimeKey {
		layout = fallbackLayout
	}
	return t.Format(layout)
}

// DefaultLanguage returns the configured fallback language.
func DefaultLanguage() string {
	if catalog == nil {
		return SupportedLanguages[0]
	}
	return catalog.defaultLang
}

// GetSupportedLanguages returns the list of supported UI languages.
func GetSupportedLanguages() []string {
	return SupportedLanguages
}

// MatchLanguage finds the best matching supported language for an
// Accept-Language header or a single language code.
func MatchLanguage(acceptLang string) string {
	if catalog == nil {
		return DefaultLanguage()
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		tag, err := language.Parse(acceptLang)
		if err != nil {
			return catalog.defaultLang
		}
		tags = []language.Tag{tag}
	}

	_, idx, confidence := catalog.matcher.Match(tags...)
	if confidence == language.No || idx < 0 || idx >= len(catalog.supported) {
		return catalog.defaultLang
	}
	base, _ := catalog.supported[idx].Base()
	return base.String()
}

// IsSupported checks if a language code is supported.
func IsSupported(lang string) bool {
	return slices.Contains(SupportedLanguages, strings.ToLower(lang))
}
