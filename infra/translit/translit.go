// Package translit turns product names into ASCII url keys.
package translit

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultConvert is the symbol table applied before transliteration.
var DefaultConvert = map[string]string{
	"&": "and",
	"@": "at",
}

// letters that do not decompose into a base letter plus marks.
var letters = map[string]string{
	"ß": "ss", "Æ": "AE", "æ": "ae", "Ø": "O", "ø": "o",
	"Œ": "OE", "œ": "oe", "Ł": "L", "ł": "l", "Đ": "D",
	"đ": "d", "Ð": "D", "ð": "d", "Þ": "TH", "þ": "th",
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Filter transliterates strings.
type Filter struct {
	symbols *strings.Replacer
	letters *strings.Replacer
}

// New builds a Filter. convert entries override DefaultConvert.
func New(convert map[string]string) *Filter {
	table := make(map[string]string, len(DefaultConvert)+len(convert))
	for k, v := range DefaultConvert {
		table[k] = v
	}
	for k, v := range convert {
		table[k] = v
	}
	return &Filter{symbols: replacer(table), letters: replacer(letters)}
}

// replacer orders longer keys first so multi-rune symbols win.
func replacer(table map[string]string) *strings.Replacer {
	keys := make([]string, 0, len(table))
	for k := range table {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, k, table[k])
	}
	return strings.NewReplacer(pairs...)
}

// Translit replaces symbols and strips diacritics.
func (f *Filter) Translit(s string) string {
	s = f.letters.Replace(f.symbols.Replace(s))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// TranslitURL returns a lowercase url key: runs of anything but ASCII
// letters and digits collapse into one hyphen, with none at either end.
func (f *Filter) TranslitURL(s string) string {
	s = strings.ToLower(f.Translit(s))
	return strings.Trim(nonAlnum.ReplaceAllString(s, "-"), "-")
}
