// Package i18n translates product type labels using per-language
// dictionaries from configuration.
package i18n

import (
	"fmt"
	"sort"

	"golang.org/x/text/language"
)

// Config lists dictionaries keyed by BCP 47 tag and the locale to serve.
type Config struct {
	Locale       string                       `json:"locale"`
	Dictionaries map[string]map[string]string `json:"dictionaries"`
}

// Localizer translates strings into one locale.
type Localizer struct {
	tag  language.Tag
	dict map[string]string
}

// New picks the dictionary that best matches cfg.Locale. With no
// dictionaries, or no acceptable match, strings pass through unchanged.
func New(cfg Config) (*Localizer, error) {
	if len(cfg.Dictionaries) == 0 || cfg.Locale == "" {
		return &Localizer{tag: language.Und}, nil
	}
	want, err := language.Parse(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("i18n: locale %q: %w", cfg.Locale, err)
	}

	names := make([]string, 0, len(cfg.Dictionaries))
	for name := range cfg.Dictionaries {
		names = append(names, name)
	}
	sort.Strings(names)
	tags := make([]language.Tag, len(names))
	for i, name := range names {
		tag, err := language.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("i18n: dictionary %q: %w", name, err)
		}
		tags[i] = tag
	}

	_, idx, conf := language.NewMatcher(tags).Match(want)
	if conf == language.No {
		return &Localizer{tag: language.Und}, nil
	}
	return &Localizer{tag: tags[idx], dict: cfg.Dictionaries[names[idx]]}, nil
}

// Tag returns the language of the selected dictionary.
func (l *Localizer) Tag() language.Tag { return l.tag }

// Translate returns the translation of s, or s itself.
func (l *Localizer) Translate(s string) string {
	if v, ok := l.dict[s]; ok && v != "" {
		return v
	}
	return s
}
