package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekisa-team/ttsrelay/internal/envvar"
	"github.com/ekisa-team/ttsrelay/internal/speech"
)

const sampleConfig = `
version: "1"
server:
  port: 8080
  frontend_dir: /srv/frontend
  shutdown_timeout: 5s
upstream:
  region: westeurope
  header_timeout: 15s
synthesis:
  default_locale: it-IT
  default_format: riff-24khz-16bit-mono-pcm
  voices:
    it-IT: it-IT-ElsaNeural
    en-GB: en-GB-RyanNeural
`

// clearEnv isolates a test from the variables the loader reads.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, name := range []string{
		envvar.Port,
		envvar.AzureRegion,
		envvar.AzureKey,
		envvar.AzureEndpoint,
		envvar.TTSRelayFrontendDir,
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, ":3000", cfg.Addr())
	assert.Equal(t, "en-US", cfg.Synthesis.DefaultLocale)
	assert.Equal(t, speech.DefaultFormat, cfg.Synthesis.DefaultFormat)
	assert.Equal(t, "it-IT-DiegoNeural", cfg.Synthesis.Voices["it-IT"])
	assert.NoError(t, cfg.Validate())
}

func TestLoadAndValidate(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadAndValidate(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "/srv/frontend", cfg.Server.FrontendDir)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "westeurope", cfg.Upstream.Region)
	assert.Equal(t, 15*time.Second, cfg.Upstream.HeaderTimeout)

	catalog, err := cfg.Catalog()
	require.NoError(t, err)
	assert.Equal(t, []string{"en-GB", "it-IT"}, catalog.Locales())
	assert.Equal(t, "it-IT", catalog.DefaultLocale())
	assert.Equal(t, "riff-24khz-16bit-mono-pcm", catalog.DefaultFormat())
}

func TestLoadAndValidate_EnvWins(t *testing.T) {
	clearEnv(t)
	t.Setenv(envvar.Port, "9090")
	t.Setenv(envvar.AzureRegion, "eastus")
	t.Setenv(envvar.AzureKey, "secret")
	t.Setenv(envvar.AzureEndpoint, "http://127.0.0.1:1234/v1")

	cfg, err := LoadAndValidate(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "eastus", cfg.Upstream.Region)
	assert.Equal(t, "secret", cfg.Upstream.Key)

	uc := cfg.UpstreamClientConfig()
	assert.Equal(t, "http://127.0.0.1:1234/v1", uc.Endpoint)
	assert.Equal(t, "secret", uc.Key)
	assert.Equal(t, 15*time.Second, uc.HeaderTimeout)
}

func TestLoadAndValidate_EmptyFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadAndValidate(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadAndValidate_SchemaViolations(t *testing.T) {
	clearEnv(t)

	tests := map[string]string{
		"unknown key":       "server:\n  hostname: x\n",
		"key in file":       "upstream:\n  key: secret\n",
		"port out of range": "server:\n  port: 70000\n",
		"bad duration":      "upstream:\n  header_timeout: soon\n",
		"empty voice":       "synthesis:\n  voices:\n    en-US: \"\"\n",
		"unquoted version":  "version: 1\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadAndValidate(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoadAndValidate_SemanticViolations(t *testing.T) {
	clearEnv(t)

	tests := map[string]string{
		"default locale not in voices": "synthesis:\n  default_locale: fr-FR\n",
		"malformed locale key":         "synthesis:\n  voices:\n    en-US: a\n    not a tag: b\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadAndValidate(writeConfig(t, content))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadAndValidate_BadEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(envvar.Port, "not-a-number")

	_, err := LoadAndValidate(writeConfig(t, sampleConfig))
	assert.Error(t, err)
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv(envvar.AzureRegion, "westeurope")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "westeurope", cfg.Upstream.Region)
}

func TestLoad_InvalidFileIsAnError(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeConfig(t, "server: [\n"))
	assert.Error(t, err)
}
