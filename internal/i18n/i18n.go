// Package i18n loads the RO/EN string tables and resolves the visitor's language.
package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"github.com/mitropolia-targovistei/calendar-site/internal/fetch"
)

// Supported languages. Romanian is the default.
const (
	Romanian = "ro"
	English  = "en"
	Default  = Romanian
)

// ErrDefaultUnavailable is returned when even the default table cannot be loaded.
var ErrDefaultUnavailable = errors.New("default translations unavailable")

// SourceName returns the collection name of a language table.
func SourceName(lang string) string {
	return "i18n-" + lang + ".json"
}

// Table is one language's translations: an arbitrarily nested JSON object with string
// leaves.
type Table map[string]any

// Lookup resolves a dot-separated path such as "nav.home". Missing segments and
// non-string leaves report false.
func (t Table) Lookup(key string) (string, bool) {
	var cur any = map[string]any(t)
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return "", false
		}
		if cur, ok = m[part]; !ok {
			return "", false
		}
	}
	s, ok := cur.(string)
	return s, ok
}

// Bundle holds the loaded tables. It is safe for concurrent use; Load may be called
// again to refresh a table.
type Bundle struct {
	mu        sync.RWMutex
	tables    map[string]Table
	fallback  string
	supported []string
	matcher   language.Matcher
}

// NewBundle returns an empty bundle. The fallback is always supported and wins ties
// during Accept-Language matching.
func NewBundle(fallback string, supported ...string) *Bundle {
	langs := []string{fallback}
	for _, l := range supported {
		if l != fallback {
			langs = append(langs, l)
		}
	}
	tags := make([]language.Tag, 0, len(langs))
	for _, l := range langs {
		tags = append(tags, language.Make(l))
	}
	return &Bundle{
		tables:    map[string]Table{},
		fallback:  fallback,
		supported: langs,
		matcher:   language.NewMatcher(tags),
	}
}

// Fallback returns the default language.
func (b *Bundle) Fallback() string { return b.fallback }

// Supported returns the supported languages in sorted order.
func (b *Bundle) Supported() []string {
	out := append([]string(nil), b.supported...)
	sort.Strings(out)
	return out
}

// IsSupported reports whether lang is one of the bundle's languages.
func (b *Bundle) IsSupported(lang string) bool {
	for _, l := range b.supported {
		if l == lang {
			return true
		}
	}
	return false
}

// Load fetches the table for lang. When that fails for a non-default language the
// default table is loaded instead and its language is returned. Only a failure of the
// default table is an error.
func (b *Bundle) Load(ctx context.Context, f fetch.Fetcher, lang string) (string, error) {
	err := b.load(ctx, f, lang)
	if err == nil {
		return lang, nil
	}
	if lang == b.fallback {
		return "", fmt.Errorf("%w: %w", ErrDefaultUnavailable, err)
	}
	if ferr := b.load(ctx, f, b.fallback); ferr != nil {
		return "", fmt.Errorf("%w: %w", ErrDefaultUnavailable, ferr)
	}
	return b.fallback, nil
}

// LoadAll loads every supported table. Missing non-default tables are tolerated.
func (b *Bundle) LoadAll(ctx context.Context, f fetch.Fetcher) error {
	if err := b.load(ctx, f, b.fallback); err != nil {
		return fmt.Errorf("%w: %w", ErrDefaultUnavailable, err)
	}
	for _, l := range b.supported {
		if l == b.fallback {
			continue
		}
		_ = b.load(ctx, f, l)
	}
	return nil
}

func (b *Bundle) load(ctx context.Context, f fetch.Fetcher, lang string) error {
	data, err := f.Fetch(ctx, SourceName(lang))
	if err != nil {
		return fmt.Errorf("fetch %s translations: %w", lang, err)
	}
	var t Table
	if err := json.Unmarshal(data, &t); err != nil {
		return fmt.Errorf("decode %s translations: %w", lang, err)
	}
	b.mu.Lock()
	b.tables[lang] = t
	b.mu.Unlock()
	return nil
}

// Has reports whether a table for lang is loaded.
func (b *Bundle) Has(lang string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.tables[lang]
	return ok
}

// Lookup resolves key in lang only.
func (b *Bundle) Lookup(lang, key string) (string, bool) {
	b.mu.RLock()
	t, ok := b.tables[lang]
	b.mu.RUnlock()
	if !ok {
		return "", false
	}
	return t.Lookup(key)
}

// T returns the translation for key in lang, falling back to the default language and
// finally to the key itself.
func (b *Bundle) T(lang, key string) string {
	if v, ok := b.Lookup(lang, key); ok {
		return v
	}
	if v, ok := b.Lookup(b.fallback, key); ok {
		return v
	}
	return key
}

// Match picks the best supported language for an Accept-Language header value.
func (b *Bundle) Match(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return b.fallback
	}
	_, idx, conf := b.matcher.Match(tags...)
	if conf == language.No {
		return b.fallback
	}
	return b.supported[idx]
}

// Toggle returns the other language of the RO/EN pair.
func Toggle(lang string) string {
	if lang == Romanian {
		return English
	}
	return Romanian
}

// SwitcherLabel is the text of the language switcher: the language it switches to.
func SwitcherLabel(lang string) string {
	return strings.ToUpper(Toggle(lang))
}
