package voice

import "context"

// Cloner creates a voice clone from a raw audio sample. Implementations
// delegate to an external voice-cloning provider.
type Cloner interface {
	// CloneVoice submits the sample and returns the provider's opaque voice
	// identifier. A failed provider call returns an error wrapping
	// ErrUpstream; there is no retry.
	CloneVoice(ctx context.Context, name, description string, sample []byte, mimeType string) (string, error)
}

// Synthesizer converts text to speech using a previously cloned voice.
type Synthesizer interface {
	// Synthesize renders the text with the given voice and returns the raw
	// audio bytes along with their content type (e.g. "audio/mpeg").
	// A failed provider call returns an error wrapping ErrUpstream.
	Synthesize(ctx context.Context, voiceID, text string) ([]byte, string, error)
}
