package speech

import (
	"fmt"
	"maps"
	"slices"

	"golang.org/x/text/language"
)

const (
	// DefaultLocale is the locale used when a request names none or an unsupported one.
	DefaultLocale = "en-US"

	// DefaultFormat is the provider output format used when a request names none.
	DefaultFormat = "audio-16khz-32kbitrate-mono-mp3"
)

// defaultVoices maps each supported locale to the voice used when a request names none.
var defaultVoices = map[string]string{
	"en-US": "en-US-GuyNeural",
	"it-IT": "it-IT-DiegoNeural",
}

// DefaultVoices returns a copy of the built-in locale to voice table.
func DefaultVoices() map[string]string {
	return maps.Clone(defaultVoices)
}

// Catalog is the closed set of supported locales with their default voices,
// plus the fallback locale and output format. A Catalog is never mutated after
// construction and is safe for concurrent use.
type Catalog struct {
	voices        map[string]string
	defaultLocale string
	defaultFormat string
}

// NewCatalog validates and copies the given table.
// Every key must be a well-formed BCP 47 tag with a non-empty voice, and
// defaultLocale must be one of the keys. An empty defaultFormat falls back to DefaultFormat.
func NewCatalog(defaultLocale, defaultFormat string, voices map[string]string) (*Catalog, error) {
	for locale, voice := range voices {
		if _, err := language.Parse(locale); err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidLocale, locale, err)
		}
		if voice == "" {
			return nil, fmt.Errorf("%w: %q", ErrMissingVoice, locale)
		}
	}

	if _, ok := voices[defaultLocale]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDefault, defaultLocale)
	}

	if defaultFormat == "" {
		defaultFormat = DefaultFormat
	}

	return &Catalog{
		voices:        maps.Clone(voices),
		defaultLocale: defaultLocale,
		defaultFormat: defaultFormat,
	}, nil
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	return &Catalog{
		voices:        DefaultVoices(),
		defaultLocale: DefaultLocale,
		defaultFormat: DefaultFormat,
	}
}

// Supports reports whether locale is an exact member of the catalog.
func (c *Catalog) Supports(locale string) bool {
	_, ok := c.voices[locale]
	return ok
}

// VoiceFor returns the default voice of a supported locale.
func (c *Catalog) VoiceFor(locale string) (string, bool) {
	v, ok := c.voices[locale]
	return v, ok
}

// DefaultLocale returns the fallback locale.
func (c *Catalog) DefaultLocale() string {
	return c.defaultLocale
}

// DefaultFormat returns the output format used when a request names none.
func (c *Catalog) DefaultFormat() string {
	return c.defaultFormat
}

// Locales returns the supported locales in sorted order.
func (c *Catalog) Locales() []string {
	return slices.Sorted(maps.Keys(c.voices))
}
