package config

import (
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/ekisa-team/ttsrelay/internal/speech"
)

const (
	defaultVersion         = "1"
	defaultHTTPPort        = 3000
	defaultFrontendDir     = "frontend"
	defaultShutdownTimeout = 10 * time.Second
	defaultHeaderTimeout   = 30 * time.Second
)

// DefaultConfigPath returns the default path for the ttsrelay config directory.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "ttsrelay")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "ttsrelay")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "ttsrelay")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "ttsrelay")
		}
		return filepath.Join(home, ".config", "ttsrelay")
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills every zero field with its built-in value.
func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = defaultVersion
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultHTTPPort
	}
	if cfg.Server.FrontendDir == "" {
		cfg.Server.FrontendDir = defaultFrontendDir
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = defaultShutdownTimeout
	}
	if cfg.Upstream.HeaderTimeout == 0 {
		cfg.Upstream.HeaderTimeout = defaultHeaderTimeout
	}
	if len(cfg.Synthesis.Voices) == 0 {
		cfg.Synthesis.Voices = speech.DefaultVoices()
	}
	if cfg.Synthesis.DefaultLocale == "" {
		cfg.Synthesis.DefaultLocale = speech.DefaultLocale
	}
	if cfg.Synthesis.DefaultFormat == "" {
		cfg.Synthesis.DefaultFormat = speech.DefaultFormat
	}
}
