package voice

import "errors"

// Common errors returned by the voice package and its provider
// implementations.
var (
	// ErrUnknownMessageType is returned when a preset lookup uses a type
	// that is not in the catalog.
	ErrUnknownMessageType = errors.New("unknown message type")

	// ErrUpstream is returned when the external provider rejects or fails a
	// request. Provider implementations wrap it with the provider's status
	// and a truncated message.
	ErrUpstream = errors.New("voice provider request failed")

	// ErrInvalidConfig is returned when the provider configuration is
	// invalid, e.g. a missing API credential.
	ErrInvalidConfig = errors.New("invalid voice provider configuration")
)
