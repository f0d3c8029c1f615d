package speech

import "errors"

// Error definitions for the speech package.
var (
	ErrMissingText    = errors.New("request text is missing or not a string")
	ErrInvalidLocale  = errors.New("locale is not a well-formed language tag")
	ErrMissingVoice   = errors.New("locale has no default voice")
	ErrUnknownDefault = errors.New("default locale is not in the voice table")
)

// MissingTextMessage is the client-facing body for requests rejected with ErrMissingText.
const MissingTextMessage = "Missing 'text'."
