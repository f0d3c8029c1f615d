package env

import (
	"os"
	"strings"

	"github.com/ekisa-team/ttsrelay/internal/envvar"
)

// Environment is the runtime environment the process runs in.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

// FromEnv returns the environment named by TTSRELAY_ENV.
// Unknown or empty values resolve to Development.
func FromEnv() Environment {
	return Parse(os.Getenv(envvar.TTSRelayEnv))
}

// Parse converts a raw value into an Environment.
func Parse(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prod", "production":
		return Production
	default:
		return Development
	}
}

// IsProduction reports whether e is the production environment.
func (e Environment) IsProduction() bool {
	return e == Production
}

func (e Environment) String() string {
	return string(e)
}
