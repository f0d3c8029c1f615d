package speech

import (
	"encoding/xml"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type speakDoc struct {
	XMLName xml.Name `xml:"speak"`
	Version string   `xml:"version,attr"`
	Lang    string   `xml:"http://www.w3.org/XML/1998/namespace lang,attr"`
	Voice   struct {
		Name string `xml:"name,attr"`
		Text string `xml:",chardata"`
	} `xml:"voice"`
}

func parseDocument(t *testing.T, doc string) speakDoc {
	t.Helper()

	var out speakDoc
	require.NoError(t, xml.Unmarshal([]byte(doc), &out), doc)
	return out
}

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    Request
		wantErr error
	}{
		{
			name: "all fields",
			body: `{"text":"ciao","locale":"it-IT","voice":"it-IT-ElsaNeural","format":"riff-24khz-16bit-mono-pcm"}`,
			want: Request{Text: "ciao", Locale: "it-IT", Voice: "it-IT-ElsaNeural", Format: "riff-24khz-16bit-mono-pcm"},
		},
		{
			name: "text only",
			body: `{"text":"hello"}`,
			want: Request{Text: "hello"},
		},
		{
			name: "non-string optionals are ignored",
			body: `{"text":"hello","locale":7,"voice":true,"format":["mp3"]}`,
			want: Request{Text: "hello"},
		},
		{name: "missing text", body: `{"locale":"en-US"}`, wantErr: ErrMissingText},
		{name: "empty text", body: `{"text":""}`, wantErr: ErrMissingText},
		{name: "numeric text", body: `{"text":42}`, wantErr: ErrMissingText},
		{name: "null text", body: `{"text":null}`, wantErr: ErrMissingText},
		{name: "array body", body: `["hello"]`, wantErr: ErrMissingText},
		{name: "malformed json", body: `{"text":`, wantErr: ErrMissingText},
		{name: "empty body", body: ``, wantErr: ErrMissingText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRequest([]byte(tt.body))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_Defaults(t *testing.T) {
	c := DefaultCatalog()

	got, err := c.Resolve(Request{Text: "Hello <world> & friends"})
	require.NoError(t, err)

	assert.Equal(t, "en-US", got.Locale)
	assert.Equal(t, "en-US-GuyNeural", got.Voice)
	assert.Equal(t, DefaultFormat, got.Format)
	assert.Equal(t, "audio/mpeg", got.ContentType())
	assert.Contains(t, Document(got), "Hello &lt;world&gt; &amp; friends")
}

func TestResolve_UnsupportedLocaleFallsBack(t *testing.T) {
	c := DefaultCatalog()

	for _, locale := range []string{"fr-FR", "en-us", "it", "IT-it", " en-US"} {
		got, err := c.Resolve(Request{Text: "x", Locale: locale})
		require.NoError(t, err)

		assert.Equal(t, "en-US", got.Locale, locale)
		assert.Equal(t, "en-US-GuyNeural", got.Voice, locale)
	}

	got, err := c.Resolve(Request{Text: "x", Locale: "fr-FR", Voice: "fr-FR-DeniseNeural"})
	require.NoError(t, err)
	assert.Equal(t, "en-US", got.Locale)
	assert.Equal(t, "fr-FR-DeniseNeural", got.Voice)
}

func TestResolve_VoiceSelection(t *testing.T) {
	c := DefaultCatalog()

	got, err := c.Resolve(Request{Text: "ciao", Locale: "it-IT"})
	require.NoError(t, err)
	assert.Equal(t, "it-IT", got.Locale)
	assert.Equal(t, "it-IT-DiegoNeural", got.Voice)

	got, err = c.Resolve(Request{Text: "ciao", Locale: "it-IT", Voice: "custom-voice"})
	require.NoError(t, err)
	assert.Equal(t, "custom-voice", got.Voice)
}

func TestResolve_FormatAndContentType(t *testing.T) {
	c := DefaultCatalog()

	got, err := c.Resolve(Request{Text: "x", Format: "raw-24khz-wav"})
	require.NoError(t, err)
	assert.Equal(t, "raw-24khz-wav", got.Format)
	assert.Equal(t, "audio/wav", got.ContentType())

	assert.Equal(t, "audio/mpeg", ContentTypeFor("audio-48khz-192kbitrate-mono-mp3"))
	assert.Equal(t, "audio/wav", ContentTypeFor("riff-24khz-16bit-mono-pcm"))
	assert.Equal(t, "audio/wav", ContentTypeFor("ogg-24khz-16bit-mono-opus"))
}

func TestResolve_MissingText(t *testing.T) {
	_, err := DefaultCatalog().Resolve(Request{Locale: "it-IT"})
	assert.ErrorIs(t, err, ErrMissingText)
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "&amp;&lt;&gt;&quot;&apos;", Escape(`&<>"'`))
	assert.Equal(t, "&amp;amp;", Escape("&amp;"))
	assert.Equal(t, "plain text", Escape("plain text"))
}

func TestDocument_Shape(t *testing.T) {
	doc := Document(Resolved{Text: "Hi", Locale: "en-US", Voice: "en-US-GuyNeural"})

	want := "<speak version=\"1.0\" xml:lang=\"en-US\">\n" +
		"  <voice name=\"en-US-GuyNeural\">Hi</voice>\n" +
		"</speak>"
	assert.Equal(t, want, doc)
}

func TestDocument_WellFormedForReservedCharacters(t *testing.T) {
	alphabet := []string{"&", "<", ">", `"`, "'", "a"}

	inputs := []string{""}
	for range 3 {
		var next []string
		for _, prefix := range inputs {
			for _, r := range alphabet {
				next = append(next, prefix+r)
			}
		}
		inputs = append(inputs, next...)
	}

	for _, text := range inputs {
		if text == "" {
			continue
		}

		doc := Document(Resolved{Text: text, Locale: "en-US", Voice: "en-US-GuyNeural"})

		content := doc[strings.Index(doc, `Neural">`)+len(`Neural">`) : strings.LastIndex(doc, "</voice>")]
		assert.NotContainsf(t, content, "<", "raw '<' in %q", content)
		assert.NotContainsf(t, content, ">", "raw '>' in %q", content)
		assert.NotContainsf(t, content, `"`, "raw '\"' in %q", content)
		assert.NotContainsf(t, content, "'", "raw \"'\" in %q", content)

		parsed := parseDocument(t, doc)
		assert.Equal(t, text, parsed.Voice.Text)
		assert.Equal(t, "en-US", parsed.Lang)
	}
}

func TestDocument_VoiceAttributeIsPreserved(t *testing.T) {
	voice := `odd"voice'<name>&`
	parsed := parseDocument(t, Document(Resolved{Text: "x", Locale: "it-IT", Voice: voice}))

	assert.Equal(t, voice, parsed.Voice.Name)
	assert.Equal(t, "1.0", parsed.Version)
}

func TestNewCatalog(t *testing.T) {
	c, err := NewCatalog("de-DE", "", map[string]string{
		"de-DE": "de-DE-ConradNeural",
		"en-GB": "en-GB-RyanNeural",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"de-DE", "en-GB"}, c.Locales())
	assert.Equal(t, DefaultFormat, c.DefaultFormat())
	assert.True(t, c.Supports("en-GB"))
	assert.False(t, c.Supports("en-US"))

	got, err := c.Resolve(Request{Text: "x", Locale: "en-US"})
	require.NoError(t, err)
	assert.Equal(t, "de-DE", got.Locale)
	assert.Equal(t, "de-DE-ConradNeural", got.Voice)
}

func TestNewCatalog_CopiesInput(t *testing.T) {
	voices := map[string]string{"en-US": "a"}
	c, err := NewCatalog("en-US", "", voices)
	require.NoError(t, err)

	voices["en-US"] = "b"
	v, _ := c.VoiceFor("en-US")
	assert.Equal(t, "a", v)
}

func TestNewCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		def     string
		voices  map[string]string
		wantErr error
	}{
		{"malformed locale", "en-US", map[string]string{"en-US": "v", "not a locale": "v"}, ErrInvalidLocale},
		{"empty voice", "en-US", map[string]string{"en-US": ""}, ErrMissingVoice},
		{"default not in table", "fr-FR", map[string]string{"en-US": "v"}, ErrUnknownDefault},
		{"empty table", "en-US", nil, ErrUnknownDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.def, "", tt.voices)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}
