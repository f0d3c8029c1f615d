package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ekisa-team/ttsrelay/internal/service"
	"github.com/ekisa-team/ttsrelay/internal/speech"
	"github.com/ekisa-team/ttsrelay/internal/upstream"
)

const streamBufferSize = 32 * 1024

type (
	// SynthesizeRequestDTO documents the JSON body of the synthesize operation.
	// The body is decoded leniently by speech.ParseRequest, not by huma.
	SynthesizeRequestDTO struct {
		Text   string `json:"text" minLength:"1" doc:"Text to speak"`
		Locale string `json:"locale,omitempty" doc:"Locale; unsupported values fall back to the default" example:"it-IT"`
		Voice  string `json:"voice,omitempty" doc:"Voice name, used verbatim" example:"it-IT-ElsaNeural"`
		Format string `json:"format,omitempty" doc:"Provider output format" example:"audio-16khz-32kbitrate-mono-mp3"`
	}

	// SynthesizeInput is the huma input for the synthesize operation.
	SynthesizeInput struct {
		RawBody []byte `contentType:"application/json" required:"false"`
	}
)

// TTSHandler handles HTTP requests for TTS.
type TTSHandler struct {
	service *service.TTS
}

// NewTTSHandler creates a new TTSHandler instance.
func NewTTSHandler(api huma.API, service *service.TTS) *TTSHandler {
	h := &TTSHandler{service: service}

	huma.Register(api, huma.Operation{
		OperationID: "synthesize",
		Method:      http.MethodPost,
		Path:        "/tts",
		Summary:     "Synthesize speech from text",
		Description: "Relays the text to the speech provider and streams the audio back. " +
			"Provider failures are returned with the provider's status and body.",
		Tags: []string{"tts"},
		// The body is decoded by speech.ParseRequest so malformed input maps to 400 Missing 'text'.
		SkipValidateBody: true,
		RequestBody: &huma.RequestBody{
			Required: false,
			Content: map[string]*huma.MediaType{
				"application/json": {
					Schema: api.OpenAPI().Components.Schemas.Schema(
						reflect.TypeOf(SynthesizeRequestDTO{}), true, "SynthesizeRequest"),
				},
			},
		},
		Responses: map[string]*huma.Response{
			"200": {
				Description: "Audio stream",
				Content: map[string]*huma.MediaType{
					"audio/mpeg": {},
					"audio/wav":  {},
				},
			},
			"400": {
				Description: "Missing or invalid text",
				Content:     map[string]*huma.MediaType{"text/plain": {}},
			},
			"500": {
				Description: "Unexpected failure",
				Content:     map[string]*huma.MediaType{"text/plain": {}},
			},
		},
	}, h.handleSynthesize)

	return h
}

// handleSynthesize handles the synthesize operation.
func (h *TTSHandler) handleSynthesize(ctx context.Context, input *SynthesizeInput) (*huma.StreamResponse, error) {
	req, err := speech.ParseRequest(input.RawBody)
	if err != nil {
		return textResponse(http.StatusBadRequest, speech.MissingTextMessage), nil
	}

	res, err := h.service.Synthesize(ctx, req)
	if err != nil {
		return errorResponse(ctx, err), nil
	}

	return &huma.StreamResponse{
		Body: func(hctx huma.Context) {
			defer res.Audio.Close()

			hctx.SetHeader("Content-Type", res.ContentType())
			hctx.SetStatus(http.StatusOK)

			written, err := streamCopy(hctx.BodyWriter(), res.Audio)
			if err != nil {
				slog.WarnContext(ctx, "Audio stream interrupted",
					"request_id", RequestIDFrom(ctx),
					"bytes", written,
					"error", err,
				)
				return
			}

			attrs := []any{
				"request_id", RequestIDFrom(ctx),
				"bytes", written,
				"content_type", res.ContentType(),
			}
			if md := res.Metadata; md != nil {
				attrs = append(attrs,
					"upstream_request_id", md.RequestID,
					"upstream_latency", md.Latency,
				)
			}
			slog.InfoContext(ctx, "Audio streamed", attrs...)
		},
	}, nil
}

// errorResponse maps a service error onto the relay's status contract.
func errorResponse(ctx context.Context, err error) *huma.StreamResponse {
	if errors.Is(err, speech.ErrMissingText) {
		return textResponse(http.StatusBadRequest, speech.MissingTextMessage)
	}

	if ue, ok := upstream.AsError(err); ok {
		slog.WarnContext(ctx, "Speech provider rejected request",
			"request_id", RequestIDFrom(ctx),
			"status", ue.StatusCode,
		)
		return textResponse(ue.StatusCode, ue.Body)
	}

	slog.ErrorContext(ctx, "Synthesis failed",
		"request_id", RequestIDFrom(ctx),
		"error", err,
	)
	return textResponse(http.StatusInternalServerError, err.Error())
}

// textResponse writes a plain-text body with the given status.
func textResponse(status int, body string) *huma.StreamResponse {
	return &huma.StreamResponse{
		Body: func(hctx huma.Context) {
			hctx.SetHeader("Content-Type", "text/plain; charset=utf-8")
			hctx.SetStatus(status)
			_, _ = io.WriteString(hctx.BodyWriter(), body)
		},
	}
}

// streamCopy copies src to dst, flushing after every chunk so audio reaches
// the client as it arrives.
func streamCopy(dst io.Writer, src io.Reader) (int64, error) {
	flusher, _ := dst.(http.Flusher)
	buf := make([]byte, streamBufferSize)

	var written int64
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			m, werr := dst.Write(buf[:n])
			written += int64(m)
			if werr != nil {
				return written, werr
			}
			if flusher != nil {
				flusher.Flush()
			}
		}

		if rerr == io.EOF {
			return written, nil
		}
		if rerr != nil {
			return written, rerr
		}
	}
}
