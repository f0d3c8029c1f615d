package envvar

const (
	// TTSRelayEnv is the environment variable used to determine the environment
	TTSRelayEnv = "TTSRELAY_ENV"

	// TTSRelayConfig is the environment variable used to override the config file path
	TTSRelayConfig = "TTSRELAY_CONFIG"

	// TTSRelayFrontendDir is the environment variable used to determine the static frontend directory
	TTSRelayFrontendDir = "TTSRELAY_FRONTEND_DIR"

	// Port is the environment variable used to determine the HTTP port
	Port = "PORT"

	// AzureRegion is the environment variable holding the speech service region
	AzureRegion = "AZURE_REGION"

	// AzureKey is the environment variable holding the speech service subscription key
	AzureKey = "AZURE_KEY"

	// AzureEndpoint is the environment variable used to override the synthesis endpoint URL
	AzureEndpoint = "AZURE_TTS_ENDPOINT"
)
