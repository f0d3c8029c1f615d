package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ekisa-team/ttsrelay/internal/speech"
	"github.com/ekisa-team/ttsrelay/internal/upstream"
)

// ErrInvalidConfig is returned when a loaded configuration fails semantic checks.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the main configuration for the application.
type Config struct {
	Version   string          `json:"version"   yaml:"version"`
	Server    ServerConfig    `json:"server"    yaml:"server"`
	Upstream  UpstreamConfig  `json:"upstream"  yaml:"upstream"`
	Synthesis SynthesisConfig `json:"synthesis" yaml:"synthesis"`
}

// ServerConfig holds configuration for the HTTP listener and static frontend.
type ServerConfig struct {
	FrontendDir     string        `json:"frontend_dir,omitempty"     yaml:"frontend_dir,omitempty"     env:"TTSRELAY_FRONTEND_DIR"`
	Port            int           `json:"port"                       yaml:"port"                       env:"PORT"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout,omitempty" yaml:"shutdown_timeout,omitempty"`
}

// UpstreamConfig holds configuration for the speech provider.
// The subscription key is only ever read from the environment.
type UpstreamConfig struct {
	Region        string        `json:"region,omitempty"         yaml:"region,omitempty"         env:"AZURE_REGION"`
	Endpoint      string        `json:"endpoint,omitempty"       yaml:"endpoint,omitempty"       env:"AZURE_TTS_ENDPOINT"`
	Key           string        `json:"-"                        yaml:"-"                        env:"AZURE_KEY"`
	HeaderTimeout time.Duration `json:"header_timeout,omitempty" yaml:"header_timeout,omitempty"`
}

// SynthesisConfig holds the supported locales and request defaults.
type SynthesisConfig struct {
	Voices        map[string]string `json:"voices,omitempty"         yaml:"voices,omitempty"`
	DefaultLocale string            `json:"default_locale,omitempty" yaml:"default_locale,omitempty"`
	DefaultFormat string            `json:"default_format,omitempty" yaml:"default_format,omitempty"`
}

// Catalog builds the immutable voice catalog described by the synthesis section.
func (c *Config) Catalog() (*speech.Catalog, error) {
	catalog, err := speech.NewCatalog(c.Synthesis.DefaultLocale, c.Synthesis.DefaultFormat, c.Synthesis.Voices)
	if err != nil {
		return nil, fmt.Errorf("%w: synthesis: %w", ErrInvalidConfig, err)
	}
	return catalog, nil
}

// UpstreamClientConfig returns the settings for upstream.NewClient.
func (c *Config) UpstreamClientConfig() upstream.Config {
	return upstream.Config{
		Region:        c.Upstream.Region,
		Key:           c.Upstream.Key,
		Endpoint:      c.Upstream.Endpoint,
		HeaderTimeout: c.Upstream.HeaderTimeout,
	}
}

// Addr returns the listen address of the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// Validate performs semantic checks the schema cannot express.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d out of range", ErrInvalidConfig, c.Server.Port)
	}

	if _, err := c.Catalog(); err != nil {
		return err
	}

	return nil
}
