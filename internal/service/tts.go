package service

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/ekisa-team/ttsrelay/internal/speech"
	"github.com/ekisa-team/ttsrelay/internal/upstream"
)

// Synthesizer is the provider call the TTS service depends on.
type Synthesizer interface {
	Synthesize(ctx context.Context, req *upstream.Request) (*upstream.Response, error)
}

// Result is a successful synthesis. The caller must close Audio.
type Result struct {
	Audio    io.ReadCloser
	Metadata *upstream.ResponseMetadata
	Resolved speech.Resolved
}

// ContentType returns the MIME type to relay to the client.
func (r *Result) ContentType() string {
	return r.Resolved.ContentType()
}

// TTS is a service abstraction for text-to-speech.
type TTS struct {
	synth   Synthesizer
	catalog atomic.Pointer[speech.Catalog]
}

// NewTTS creates a new TTS service. A nil catalog selects the built-in one.
func NewTTS(synth Synthesizer, catalog *speech.Catalog) *TTS {
	if catalog == nil {
		catalog = speech.DefaultCatalog()
	}

	s := &TTS{synth: synth}
	s.catalog.Store(catalog)
	return s
}

// Catalog returns the catalog currently used to resolve requests.
func (s *TTS) Catalog() *speech.Catalog {
	return s.catalog.Load()
}

// SetCatalog replaces the catalog for subsequent requests. In-flight requests
// keep the catalog they started with.
func (s *TTS) SetCatalog(catalog *speech.Catalog) {
	if catalog == nil {
		return
	}
	s.catalog.Store(catalog)
}

// Resolve applies the current catalog's defaults to req.
func (s *TTS) Resolve(req speech.Request) (speech.Resolved, error) {
	return s.Catalog().Resolve(req)
}

// Synthesize resolves req, builds the markup document and calls the provider.
// Validation failures return speech.ErrMissingText without calling the provider.
func (s *TTS) Synthesize(ctx context.Context, req speech.Request) (*Result, error) {
	resolved, err := s.Resolve(req)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Synthesizing speech",
		"locale", resolved.Locale,
		"voice", resolved.Voice,
		"format", resolved.Format,
		"text_length", len(resolved.Text),
	)

	resp, err := s.synth.Synthesize(ctx, &upstream.Request{
		Document: strings.NewReader(speech.Document(resolved)),
		Format:   resolved.Format,
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Audio:    resp.Body,
		Metadata: resp.Metadata,
		Resolved: resolved,
	}, nil
}
