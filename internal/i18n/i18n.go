package i18n

import (
	"fmt"
	"strings"
	"sync"
)

// Locale identifies a supported display language.
type Locale string

const (
	English Locale = "en"
	Turkish Locale = "tr"
)

// DefaultLocale is used when no locale is configured.
const DefaultLocale = English

// Locales returns the supported locales in display order.
func Locales() []Locale {
	return []Locale{English, Turkish}
}

// ParseLocale converts a locale tag such as "tr" or "en-US" to a Locale.
func ParseLocale(s string) (Locale, error) {
	tag := strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		tag = tag[:i]
	}
	for _, l := range Locales() {
		if Locale(tag) == l {
			return l, nil
		}
	}
	return "", fmt.Errorf("unsupported locale %q", s)
}

// Translator resolves message keys for the current locale.
// It is safe for concurrent use; screens read it from command goroutines.
type Translator struct {
	mu     sync.RWMutex
	locale Locale
}

// New creates a Translator for the given locale.
func New(locale Locale) (*Translator, error) {
	if _, ok := catalogs[locale]; !ok {
		return nil, fmt.Errorf("unsupported locale %q", locale)
	}
	return &Translator{locale: locale}, nil
}

// MustNew is New for locales known at compile time.
func MustNew(locale Locale) *Translator {
	t, err := New(locale)
	if err != nil {
		panic(err)
	}
	return t
}

// Locale returns the current locale.
func (t *Translator) Locale() Locale {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.locale
}

// SetLocale switches the current locale.
func (t *Translator) SetLocale(locale Locale) error {
	if _, ok := catalogs[locale]; !ok {
		return fmt.Errorf("unsupported locale %q", locale)
	}
	t.mu.Lock()
	t.locale = locale
	t.mu.Unlock()
	return nil
}

// Toggle cycles to the next supported locale and returns it.
func (t *Translator) Toggle() Locale {
	t.mu.Lock()
	defer t.mu.Unlock()
	all := Locales()
	for i, l := range all {
		if l == t.locale {
			t.locale = all[(i+1)%len(all)]
			break
		}
	}
	return t.locale
}

// T returns the message for key in the current locale.
func (t *Translator) T(key Key) string {
	t.mu.RLock()
	tbl := catalogs[t.locale]
	t.mu.RUnlock()
	if key < 0 || key >= keyCount {
		return ""
	}
	return tbl[key]
}

// Tf formats the message for key with args.
func (t *Translator) Tf(key Key, args ...any) string {
	return fmt.Sprintf(t.T(key), args...)
}
