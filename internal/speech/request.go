package speech

import (
	"encoding/json"
	"strings"

	"github.com/ekisa-team/ttsrelay/internal/mapsafe"
)

// Request is a synthesis request as received from a client.
// Empty fields mean "not supplied".
type Request struct {
	Text   string
	Locale string
	Voice  string
	Format string
}

// Resolved is a Request after locale, voice and format defaults have been applied.
type Resolved struct {
	Text   string
	Locale string
	Voice  string
	Format string
}

// ParseRequest decodes a JSON request body.
// Fields that are not strings are treated as absent. A body that is not a JSON
// object, or whose text is absent, empty or not a string, yields ErrMissingText.
func ParseRequest(body []byte) (Request, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return Request{}, ErrMissingText
	}

	text, ok := mapsafe.NonEmptyString(raw, "text")
	if !ok {
		return Request{}, ErrMissingText
	}

	return Request{
		Text:   text,
		Locale: mapsafe.Get(raw, "locale", ""),
		Voice:  mapsafe.Get(raw, "voice", ""),
		Format: mapsafe.Get(raw, "format", ""),
	}, nil
}

// Resolve applies the catalog's defaults to req.
// Unsupported locales silently fall back to the default locale. An explicit
// voice is kept verbatim, otherwise it comes from the resolved locale.
func (c *Catalog) Resolve(req Request) (Resolved, error) {
	if req.Text == "" {
		return Resolved{}, ErrMissingText
	}

	locale := c.defaultLocale
	if req.Locale != "" && c.Supports(req.Locale) {
		locale = req.Locale
	}

	voice := req.Voice
	if voice == "" {
		voice = c.voices[locale]
	}

	format := req.Format
	if format == "" {
		format = c.defaultFormat
	}

	return Resolved{
		Text:   req.Text,
		Locale: locale,
		Voice:  voice,
		Format: format,
	}, nil
}

// ContentType returns the MIME type relayed to the client for the resolved format.
func (r Resolved) ContentType() string {
	return ContentTypeFor(r.Format)
}

// ContentTypeFor maps a provider output format to audio/mpeg or audio/wav.
func ContentTypeFor(format string) string {
	if strings.Contains(format, "mp3") {
		return "audio/mpeg"
	}
	return "audio/wav"
}
