package upstream

import (
	"errors"
	"fmt"
)

// Error definitions for the upstream package.
var (
	ErrMissingRegion = errors.New("speech provider region is not configured")
	ErrMissingKey    = errors.New("speech provider subscription key is not configured")
)

// Error is returned when the provider answers with a non-2xx status.
// Body holds the provider's response text unchanged.
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("speech provider returned status %d: %s", e.StatusCode, e.Body)
}

// AsError extracts an *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var ue *Error
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}
