package speech

import "strings"

// SSMLContentType is the content type of documents built by Document.
const SSMLContentType = "application/ssml+xml"

var markupEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Escape replaces the five XML reserved characters with their entity forms.
// Replacement is a single pass, so existing entities are escaped rather than preserved.
func Escape(s string) string {
	return markupEscaper.Replace(s)
}

// Document renders the speech markup sent to the provider.
// Attribute values are escaped as well, so a verbatim voice name cannot break the document.
func Document(r Resolved) string {
	var b strings.Builder

	b.WriteString(`<speak version="1.0" xml:lang="`)
	b.WriteString(Escape(r.Locale))
	b.WriteString("\">\n  <voice name=\"")
	b.WriteString(Escape(r.Voice))
	b.WriteString(`">`)
	b.WriteString(Escape(r.Text))
	b.WriteString("</voice>\n</speak>")

	return b.String()
}
