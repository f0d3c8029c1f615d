package upstream

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	// Header names of the speech provider's REST contract.
	HeaderSubscriptionKey = "Ocp-Apim-Subscription-Key"
	HeaderOutputFormat    = "X-Microsoft-OutputFormat"

	ssmlContentType = "application/ssml+xml"
	userAgent       = "ttsrelay"

	defaultHeaderTimeout = 30 * time.Second

	// maxErrorBody bounds how much of a failed response is read back.
	maxErrorBody = 1 << 20
)

// Config holds the connection settings for the speech provider.
type Config struct {
	// Region selects the regional endpoint, e.g. "westeurope".
	Region string

	// Key is the subscription key sent with every call.
	Key string

	// Endpoint overrides the URL derived from Region when set.
	Endpoint string

	// HeaderTimeout bounds the wait for response headers. The body is not
	// subject to a deadline so long audio can stream.
	HeaderTimeout time.Duration
}

// Request is a single synthesis call.
type Request struct {
	// Document is the speech markup sent as the request body.
	Document io.Reader

	// Format is the provider output format, e.g. "audio-16khz-32kbitrate-mono-mp3".
	Format string
}

// Response is a successful synthesis call. The caller must close Body.
type Response struct {
	// Body streams the audio as the provider sends it.
	Body io.ReadCloser

	// Metadata describes the response.
	Metadata *ResponseMetadata
}

// ResponseMetadata contains metadata about the response.
type ResponseMetadata struct {
	Timestamp     time.Time     `json:"timestamp"`
	ContentType   string        `json:"content_type"`
	RequestID     string        `json:"request_id,omitempty"`
	StatusCode    int           `json:"status_code"`
	ContentLength int64         `json:"content_length"`
	Latency       time.Duration `json:"latency"`
}

// Client calls the speech provider's synthesis endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	key        string
}

// EndpointForRegion returns the synthesis URL of a region.
func EndpointForRegion(region string) string {
	return fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1", region)
}

// NewClient creates a provider client.
func NewClient(cfg Config) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		region := strings.TrimSpace(cfg.Region)
		if region == "" {
			return nil, ErrMissingRegion
		}
		endpoint = EndpointForRegion(region)
	}

	if cfg.Key == "" {
		return nil, ErrMissingKey
	}

	timeout := cfg.HeaderTimeout
	if timeout <= 0 {
		timeout = defaultHeaderTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = timeout

	return &Client{
		httpClient: &http.Client{Transport: transport},
		endpoint:   endpoint,
		key:        cfg.Key,
	}, nil
}

// Endpoint returns the synthesis URL the client posts to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Synthesize posts the markup document and returns the audio stream.
// A non-2xx answer is returned as *Error with the provider's body.
func (c *Client) Synthesize(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, req.Document)
	if err != nil {
		return nil, fmt.Errorf("build synthesis request: %w", err)
	}

	httpReq.Header.Set(HeaderSubscriptionKey, c.key)
	httpReq.Header.Set("Content-Type", ssmlContentType)
	httpReq.Header.Set(HeaderOutputFormat, req.Format)
	httpReq.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("synthesis request failed: %w", err)
	}

	slog.DebugContext(ctx, "Speech provider responded",
		"status", resp.StatusCode,
		"format", req.Format,
		"latency", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if err != nil {
			return nil, fmt.Errorf("read provider error body: %w", err)
		}

		return nil, &Error{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return &Response{
		Body: resp.Body,
		Metadata: &ResponseMetadata{
			Timestamp:     start,
			ContentType:   resp.Header.Get("Content-Type"),
			RequestID:     resp.Header.Get("X-RequestId"),
			StatusCode:    resp.StatusCode,
			ContentLength: resp.ContentLength,
			Latency:       time.Since(start),
		},
	}, nil
}
